package glb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/sceneform/gltf/wire"
)

func TestEncodeFraming(t *testing.T) {
	json := []byte(`{"asset":{"version":"2.0"}}`) // 27 bytes, needs 1 pad
	bin := []byte{1, 2, 3, 4, 5}                  // needs 3 pad

	out := Encode(json, bin)

	jsonChunk := len(json) + 1
	binChunk := len(bin) + 3
	wantTotal := 12 + 8 + jsonChunk + 8 + binChunk
	if got := int(binary.LittleEndian.Uint32(out[8:])); got != wantTotal {
		t.Errorf("totalLength = %d, want %d", got, wantTotal)
	}
	if len(out) != wantTotal {
		t.Errorf("len(out) = %d, want %d", len(out), wantTotal)
	}
	if got := int(binary.LittleEndian.Uint32(out[12:])); got%4 != 0 {
		t.Errorf("json chunk length %d not aligned", got)
	}
	// JSON chunk is space-padded
	if out[12+8+len(json)] != ' ' {
		t.Error("json padding is not spaces")
	}
	// BIN chunk is zero-padded
	if out[wantTotal-1] != 0 {
		t.Error("bin padding is not zeros")
	}
}

func TestEncodeOmitsEmptyBin(t *testing.T) {
	json := []byte(`{}`)
	out := Encode(json, nil)
	wantTotal := 12 + 8 + 4
	if len(out) != wantTotal {
		t.Fatalf("len(out) = %d, want %d", len(out), wantTotal)
	}
}

func TestRoundTrip(t *testing.T) {
	json := []byte(`{"asset":{"version":"2.0"}}`)
	bin := []byte("payload")
	gotJSON, gotBin, err := Decode(Encode(json, bin))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(bytes.TrimRight(gotJSON, " "), json) {
		t.Errorf("json round trip: %q", gotJSON)
	}
	if !bytes.Equal(gotBin[:len(bin)], bin) {
		t.Errorf("bin round trip: %q", gotBin)
	}
}

func TestDecodeErrors(t *testing.T) {
	valid := Encode([]byte(`{}`), nil)

	badMagic := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(badMagic, 0xDEADBEEF)

	badVersion := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(badVersion[4:], 3)

	truncated := valid[:len(valid)-2]

	misaligned := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(misaligned[12:], 3)

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"short header", []byte("glTF"), "truncated"},
		{"bad magic", badMagic, "magic"},
		{"bad version", badVersion, "version"},
		{"truncated", truncated, "length"},
		{"misaligned chunk", misaligned, "aligned"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.data)
			if !errors.Is(err, wire.ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

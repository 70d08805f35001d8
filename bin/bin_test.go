package bin

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sceneform/gltf/wire"
)

func TestElementSize(t *testing.T) {
	tests := []struct {
		c    wire.ComponentType
		e    wire.ElementType
		want int
	}{
		{wire.UnsignedByte, wire.Scalar, 1},
		{wire.Short, wire.Vec2, 4},
		{wire.Float, wire.Vec3, 12},
		{wire.Float, wire.Mat4, 64},
		{wire.UnsignedShort, wire.Mat3, 18},
	}
	for _, tt := range tests {
		got, err := ElementSize(tt.c, tt.e)
		if err != nil {
			t.Fatalf("ElementSize(%v, %v): %v", tt.c, tt.e, err)
		}
		if got != tt.want {
			t.Errorf("ElementSize(%v, %v) = %d, want %d", tt.c, tt.e, got, tt.want)
		}
	}
}

func TestElementSizeInt32Unsupported(t *testing.T) {
	if _, err := ElementSize(wire.ComponentType(5124), wire.Scalar); !errors.Is(err, wire.ErrUsage) {
		t.Fatalf("INT32 accepted: %v", err)
	}
}

func TestRoundTripPerComponentType(t *testing.T) {
	tests := []struct {
		name string
		c    wire.ComponentType
		norm bool
		in   []float64
		step float64
	}{
		{"float", wire.Float, false, []float64{0, 1.5, -2.25, 1e10}, 0},
		{"u8", wire.UnsignedByte, false, []float64{0, 1, 255}, 0},
		{"i8", wire.Byte, false, []float64{-128, -1, 0, 127}, 0},
		{"u16", wire.UnsignedShort, false, []float64{0, 12345, 65535}, 0},
		{"i16", wire.Short, false, []float64{-32768, -7, 0, 32767}, 0},
		{"u32", wire.UnsignedInt, false, []float64{0, 1 << 24, 4294967295}, 0},
		{"u8 normalized", wire.UnsignedByte, true, []float64{0, 0.25, 0.5, 1}, 1.0 / 255},
		{"i8 normalized", wire.Byte, true, []float64{-1, -0.5, 0, 0.5, 1}, 1.0 / 127},
		{"u16 normalized", wire.UnsignedShort, true, []float64{0, 0.125, 1}, 1.0 / 65535},
		{"i16 normalized", wire.Short, true, []float64{-1, 0.3, 1}, 1.0 / 32767},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, err := ElementSize(tt.c, wire.Scalar)
			if err != nil {
				t.Fatal(err)
			}
			buf := make([]byte, len(tt.in)*size)
			if err := Encode(buf, 0, 0, tt.in, tt.c, wire.Scalar, tt.norm); err != nil {
				t.Fatal(err)
			}
			out, err := Decode(buf, 0, 0, len(tt.in), tt.c, wire.Scalar, tt.norm)
			if err != nil {
				t.Fatal(err)
			}
			for i := range tt.in {
				want := tt.in[i]
				if tt.c == wire.Float {
					want = float64(float32(want))
				}
				if math.Abs(out[i]-want) > tt.step {
					t.Errorf("element %d: decode(encode(%v)) = %v, step %v", i, tt.in[i], out[i], tt.step)
				}
			}
		})
	}
}

func TestDecodeInterleaved(t *testing.T) {
	// Stride 16: VEC3 u16 at offset 0, VEC2 u16 at offsets 6 and 10,
	// two vertices.
	buf := make([]byte, 32)
	put := func(off int, v uint16) { binary.LittleEndian.PutUint16(buf[off:], v) }
	// vertex 0
	put(0, 0)
	put(2, 1)
	put(4, 2)
	put(6, 10)
	put(8, 20)
	put(10, 100)
	put(12, 200)
	// vertex 1
	put(16, 3)
	put(18, 4)
	put(20, 5)
	put(22, 40)
	put(24, 50)
	put(26, 400)
	put(28, 500)

	pos, err := Decode(buf, 0, 16, 2, wire.UnsignedShort, wire.Vec3, false)
	if err != nil {
		t.Fatal(err)
	}
	uvA, err := Decode(buf, 6, 16, 2, wire.UnsignedShort, wire.Vec2, false)
	if err != nil {
		t.Fatal(err)
	}
	uvB, err := Decode(buf, 10, 16, 2, wire.UnsignedShort, wire.Vec2, false)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{0, 1, 2, 3, 4, 5}, pos); diff != "" {
		t.Errorf("pos (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{10, 20, 40, 50}, uvA); diff != "" {
		t.Errorf("uvA (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{100, 200, 400, 500}, uvB); diff != "" {
		t.Errorf("uvB (-want +got):\n%s", diff)
	}
}

func TestDecodeOutOfRange(t *testing.T) {
	buf := make([]byte, 10)
	if _, err := Decode(buf, 0, 0, 4, wire.Float, wire.Scalar, false); !errors.Is(err, wire.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestApplySparse(t *testing.T) {
	dense := make([]float64, 100*3)
	indices := []float64{10, 50, 51}
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	if err := ApplySparse(dense, 3, indices, values); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{0, 0, 0}, dense[0:3]); diff != "" {
		t.Errorf("element 0 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 2, 3}, dense[30:33]); diff != "" {
		t.Errorf("element 10 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{7, 8, 9}, dense[153:156]); diff != "" {
		t.Errorf("element 51 (-want +got):\n%s", diff)
	}
}

func TestApplySparseOutOfRange(t *testing.T) {
	dense := make([]float64, 4)
	if err := ApplySparse(dense, 1, []float64{4}, []float64{1}); !errors.Is(err, wire.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestSparseEntries(t *testing.T) {
	values := make([]float64, 6*3)
	copy(values[3:6], []float64{1, 2, 3})
	copy(values[12:15], []float64{0, 0, 9})
	indices, out := SparseEntries(values, 3)
	if diff := cmp.Diff([]int{1, 4}, indices); diff != "" {
		t.Errorf("indices (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 2, 3, 0, 0, 9}, out); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
}

func TestSparseIndexType(t *testing.T) {
	tests := []struct {
		max  int
		want wire.ComponentType
	}{
		{0, wire.UnsignedByte},
		{255, wire.UnsignedByte},
		{256, wire.UnsignedShort},
		{65535, wire.UnsignedShort},
		{65536, wire.UnsignedInt},
	}
	for _, tt := range tests {
		if got := SparseIndexType(tt.max); got != tt.want {
			t.Errorf("SparseIndexType(%d) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestBoundsIgnoresNonFinite(t *testing.T) {
	values := []float64{
		1, math.NaN(),
		-5, 2,
		math.Inf(1), math.Inf(-1),
	}
	min, max := Bounds(values, 2)
	if diff := cmp.Diff([]float64{-5, 2}, min); diff != "" {
		t.Errorf("min (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 2}, max); diff != "" {
		t.Errorf("max (-want +got):\n%s", diff)
	}
}

func TestBoundsEmpty(t *testing.T) {
	min, max := Bounds([]float64{math.NaN()}, 1)
	if min[0] != 0 || max[0] != 0 {
		t.Errorf("bounds of all-NaN = [%v, %v], want [0, 0]", min[0], max[0])
	}
}

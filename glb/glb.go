// Package glb frames and unframes the binary glTF container: a 12-byte
// header followed by a JSON chunk and an optional binary chunk, all
// little-endian and 4-byte aligned.
package glb

import (
	"encoding/binary"
	"fmt"

	"github.com/sceneform/gltf/wire"
)

const (
	headerLen = 12
	chunkLen  = 8
)

// Encode frames json (space-padded) and an optional non-empty bin chunk
// (zero-padded) into a GLB byte stream.
func Encode(json []byte, bin []byte) []byte {
	jsonPad := pad4(len(json))
	total := headerLen + chunkLen + len(json) + jsonPad
	binPad := 0
	if len(bin) > 0 {
		binPad = pad4(len(bin))
		total += chunkLen + len(bin) + binPad
	}

	out := make([]byte, 0, total)
	out = appendU32(out, wire.GLBMagic)
	out = appendU32(out, wire.GLBVersion)
	out = appendU32(out, uint32(total))

	out = appendU32(out, uint32(len(json)+jsonPad))
	out = appendU32(out, wire.GLBChunkJSON)
	out = append(out, json...)
	for i := 0; i < jsonPad; i++ {
		out = append(out, ' ')
	}

	if len(bin) > 0 {
		out = appendU32(out, uint32(len(bin)+binPad))
		out = appendU32(out, wire.GLBChunkBIN)
		out = append(out, bin...)
		for i := 0; i < binPad; i++ {
			out = append(out, 0)
		}
	}
	return out
}

// Decode unframes a GLB byte stream into its JSON chunk and binary chunk
// (nil when absent). The returned slices alias data.
func Decode(data []byte) (json []byte, bin []byte, err error) {
	if len(data) < headerLen {
		return nil, nil, fmt.Errorf("%w: truncated GLB header (%d bytes)", wire.ErrFormat, len(data))
	}
	if u32(data, 0) != wire.GLBMagic {
		return nil, nil, fmt.Errorf("%w: bad GLB magic 0x%08X", wire.ErrFormat, u32(data, 0))
	}
	if v := u32(data, 4); v != wire.GLBVersion {
		return nil, nil, fmt.Errorf("%w: unsupported GLB version %d", wire.ErrFormat, v)
	}
	total := int(u32(data, 8))
	if total != len(data) {
		return nil, nil, fmt.Errorf("%w: GLB length %d, have %d bytes", wire.ErrFormat, total, len(data))
	}

	off := headerLen
	for off < total {
		if off+chunkLen > total {
			return nil, nil, fmt.Errorf("%w: truncated chunk header at offset %d", wire.ErrFormat, off)
		}
		length := int(u32(data, off))
		ctype := u32(data, off+4)
		off += chunkLen
		if length%4 != 0 {
			return nil, nil, fmt.Errorf("%w: chunk length %d not 4-byte aligned", wire.ErrFormat, length)
		}
		if off+length > total {
			return nil, nil, fmt.Errorf("%w: chunk overruns container at offset %d", wire.ErrFormat, off)
		}
		body := data[off : off+length]
		off += length
		switch ctype {
		case wire.GLBChunkJSON:
			json = body
		case wire.GLBChunkBIN:
			bin = body
		default:
			// unknown chunk types are skipped per the container spec
		}
	}
	if json == nil {
		return nil, nil, fmt.Errorf("%w: GLB container has no JSON chunk", wire.ErrFormat)
	}
	return json, bin, nil
}

func pad4(n int) int {
	return (4 - n%4) % 4
}

func appendU32(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}

func u32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off:])
}

// Package bin converts between typed numeric element arrays and packed
// byte regions: component-type coding, normalization, interleaved strides,
// sparse overlays, and finite bounds. All functions are pure and operate
// on little-endian data as required by glTF.
package bin

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/sceneform/gltf/wire"
)

// ElementSize returns the packed size in bytes of one element.
func ElementSize(c wire.ComponentType, e wire.ElementType) (int, error) {
	cs, err := c.Size()
	if err != nil {
		return 0, err
	}
	n, err := e.Components()
	if err != nil {
		return 0, err
	}
	return cs * n, nil
}

// Decode reads count elements of (c, e) from data. Element i, component j
// sits at byteOffset + i*byteStride + j*componentSize; a zero byteStride
// means tightly packed. Normalized integer data maps into [0,1] or [-1,1].
func Decode(data []byte, byteOffset, byteStride, count int, c wire.ComponentType, e wire.ElementType, normalized bool) ([]float64, error) {
	cs, err := c.Size()
	if err != nil {
		return nil, err
	}
	n, err := e.Components()
	if err != nil {
		return nil, err
	}
	if byteStride == 0 {
		byteStride = cs * n
	}
	if byteStride < cs*n {
		return nil, fmt.Errorf("%w: byte stride %d below element size %d", wire.ErrFormat, byteStride, cs*n)
	}
	if count < 0 || byteOffset < 0 {
		return nil, fmt.Errorf("%w: negative accessor extent", wire.ErrFormat)
	}
	if count > 0 {
		end := byteOffset + (count-1)*byteStride + cs*n
		if end > len(data) {
			return nil, fmt.Errorf("%w: accessor extent %d exceeds buffer view length %d", wire.ErrFormat, end, len(data))
		}
	}
	res := make([]float64, count*n)
	for i := 0; i < count; i++ {
		base := byteOffset + i*byteStride
		for j := 0; j < n; j++ {
			v := readComponent(data, base+j*cs, c)
			if normalized {
				v = denormalize(v, c)
			}
			res[i*n+j] = v
		}
	}
	return res, nil
}

// Encode writes values into dst using the same layout contract as Decode.
// dst must already be sized to hold the last element.
func Encode(dst []byte, byteOffset, byteStride int, values []float64, c wire.ComponentType, e wire.ElementType, normalized bool) error {
	cs, err := c.Size()
	if err != nil {
		return err
	}
	n, err := e.Components()
	if err != nil {
		return err
	}
	if byteStride == 0 {
		byteStride = cs * n
	}
	count := len(values) / n
	if count > 0 {
		end := byteOffset + (count-1)*byteStride + cs*n
		if end > len(dst) {
			return fmt.Errorf("%w: encode extent %d exceeds destination length %d", wire.ErrUsage, end, len(dst))
		}
	}
	for i := 0; i < count; i++ {
		base := byteOffset + i*byteStride
		for j := 0; j < n; j++ {
			v := values[i*n+j]
			if normalized {
				v = normalize(v, c)
			}
			writeComponent(dst, base+j*cs, v, c)
		}
	}
	return nil
}

func readComponent(data []byte, off int, c wire.ComponentType) float64 {
	switch c {
	case wire.Byte:
		return float64(int8(data[off]))
	case wire.UnsignedByte:
		return float64(data[off])
	case wire.Short:
		return float64(int16(binary.LittleEndian.Uint16(data[off:])))
	case wire.UnsignedShort:
		return float64(binary.LittleEndian.Uint16(data[off:]))
	case wire.UnsignedInt:
		return float64(binary.LittleEndian.Uint32(data[off:]))
	case wire.Float:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off:])))
	}
	return 0
}

func writeComponent(dst []byte, off int, v float64, c wire.ComponentType) {
	switch c {
	case wire.Byte:
		dst[off] = byte(int8(clampRound(v, math.MinInt8, math.MaxInt8)))
	case wire.UnsignedByte:
		dst[off] = byte(clampRound(v, 0, math.MaxUint8))
	case wire.Short:
		binary.LittleEndian.PutUint16(dst[off:], uint16(int16(clampRound(v, math.MinInt16, math.MaxInt16))))
	case wire.UnsignedShort:
		binary.LittleEndian.PutUint16(dst[off:], uint16(clampRound(v, 0, math.MaxUint16)))
	case wire.UnsignedInt:
		binary.LittleEndian.PutUint32(dst[off:], uint32(clampRound(v, 0, math.MaxUint32)))
	case wire.Float:
		binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(float32(v)))
	}
}

func clampRound(v, lo, hi float64) int64 {
	v = math.Round(v)
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return int64(v)
}

// denormalize maps a stored integer to its normalized float value:
// unsigned into [0,1], signed into [-1,1].
func denormalize(v float64, c wire.ComponentType) float64 {
	switch c {
	case wire.Byte:
		return math.Max(v/math.MaxInt8, -1)
	case wire.UnsignedByte:
		return v / math.MaxUint8
	case wire.Short:
		return math.Max(v/math.MaxInt16, -1)
	case wire.UnsignedShort:
		return v / math.MaxUint16
	case wire.UnsignedInt:
		return v / math.MaxUint32
	}
	return v
}

// normalize is the exact inverse of denormalize up to the type's
// quantization step; writeComponent performs the rounding.
func normalize(v float64, c wire.ComponentType) float64 {
	switch c {
	case wire.Byte:
		return v * math.MaxInt8
	case wire.UnsignedByte:
		return v * math.MaxUint8
	case wire.Short:
		return v * math.MaxInt16
	case wire.UnsignedShort:
		return v * math.MaxUint16
	case wire.UnsignedInt:
		return v * math.MaxUint32
	}
	return v
}

// ApplySparse overlays sparse entries onto dense: entry k replaces element
// indices[k] with values[k*components : (k+1)*components].
func ApplySparse(dense []float64, components int, indices []float64, values []float64) error {
	count := len(dense) / components
	for k, fi := range indices {
		i := int(fi)
		if i < 0 || i >= count {
			return fmt.Errorf("%w: sparse index %d out of range [0,%d)", wire.ErrFormat, i, count)
		}
		copy(dense[i*components:(i+1)*components], values[k*components:(k+1)*components])
	}
	return nil
}

// SparseEntries extracts the non-zero elements of values: the element
// indices in ascending order and the packed overridden elements.
func SparseEntries(values []float64, components int) ([]int, []float64) {
	count := len(values) / components
	var indices []int
	var out []float64
	for i := 0; i < count; i++ {
		elem := values[i*components : (i+1)*components]
		zero := true
		for _, v := range elem {
			if v != 0 {
				zero = false
				break
			}
		}
		if zero {
			continue
		}
		indices = append(indices, i)
		out = append(out, elem...)
	}
	return indices, out
}

// SparseIndexType returns the narrowest component type that can store
// maxIndex.
func SparseIndexType(maxIndex int) wire.ComponentType {
	switch {
	case maxIndex <= math.MaxUint8:
		return wire.UnsignedByte
	case maxIndex <= math.MaxUint16:
		return wire.UnsignedShort
	}
	return wire.UnsignedInt
}

// Bounds returns component-wise minima and maxima over finite values,
// ignoring NaN and infinities. Components with no finite value report 0.
func Bounds(values []float64, components int) (min, max []float64) {
	min = make([]float64, components)
	max = make([]float64, components)
	for j := 0; j < components; j++ {
		min[j] = math.Inf(1)
		max[j] = math.Inf(-1)
	}
	count := len(values) / components
	for i := 0; i < count; i++ {
		for j := 0; j < components; j++ {
			v := values[i*components+j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v < min[j] {
				min[j] = v
			}
			if v > max[j] {
				max[j] = v
			}
		}
	}
	for j := 0; j < components; j++ {
		if math.IsInf(min[j], 1) {
			min[j], max[j] = 0, 0
		}
	}
	return min, max
}

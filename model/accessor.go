package model

import (
	"fmt"

	"github.com/sceneform/gltf/graph"
	"github.com/sceneform/gltf/wire"
)

// Accessor is a typed numeric attribute stream. The element data is held
// fully decoded and unstrided; the storage encoding (component type,
// normalization, interleaving, sparse overlay) is applied at the
// read/write boundary by the bin package.
type Accessor struct {
	propBase
	array         []float64
	componentType wire.ComponentType
	elementType   wire.ElementType
	normalized    bool
	sparse        bool
	buffer        ref[*Buffer]
}

// Array returns the decoded element data. Its length is always
// Count() * Components(). A nil array on a referenced accessor means the
// backing resource could not be resolved under non-strict reading.
func (a *Accessor) Array() []float64 { return a.array }

func (a *Accessor) SetArray(v []float64) *Accessor {
	a.array = v
	return a
}

func (a *Accessor) ComponentType() wire.ComponentType { return a.componentType }

func (a *Accessor) SetComponentType(c wire.ComponentType) *Accessor {
	a.componentType = c
	return a
}

func (a *Accessor) ElementType() wire.ElementType { return a.elementType }

func (a *Accessor) SetElementType(e wire.ElementType) *Accessor {
	a.elementType = e
	return a
}

func (a *Accessor) Normalized() bool { return a.normalized }

func (a *Accessor) SetNormalized(v bool) *Accessor {
	a.normalized = v
	return a
}

// Sparse reports whether the accessor is emitted with a sparse overlay on
// write. Reading a sparse accessor sets it.
func (a *Accessor) Sparse() bool { return a.sparse }

func (a *Accessor) SetSparse(v bool) *Accessor {
	a.sparse = v
	return a
}

func (a *Accessor) Buffer() *Buffer { return a.buffer.get() }

func (a *Accessor) SetBuffer(b *Buffer) error {
	return setRef(a, "buffer", &a.buffer, b, graph.Shared)
}

// Components returns the number of components per element.
func (a *Accessor) Components() int {
	n, err := a.elementType.Components()
	if err != nil {
		return 0
	}
	return n
}

// Count returns the number of logical elements.
func (a *Accessor) Count() int {
	n := a.Components()
	if n == 0 {
		return 0
	}
	return len(a.array) / n
}

// GetElement copies element i into the returned slice.
func (a *Accessor) GetElement(i int) []float64 {
	n := a.Components()
	res := make([]float64, n)
	copy(res, a.array[i*n:(i+1)*n])
	return res
}

// SetElement overwrites element i.
func (a *Accessor) SetElement(i int, v []float64) error {
	n := a.Components()
	if len(v) != n {
		return fmt.Errorf("%w: element arity %d, want %d", wire.ErrUsage, len(v), n)
	}
	copy(a.array[i*n:(i+1)*n], v)
	return nil
}

// GetScalar returns element i of a SCALAR accessor.
func (a *Accessor) GetScalar(i int) float64 {
	n := a.Components()
	return a.array[i*n]
}

func (a *Accessor) SetScalar(i int, v float64) {
	n := a.Components()
	a.array[i*n] = v
}

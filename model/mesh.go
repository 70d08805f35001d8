package model

import (
	"github.com/sceneform/gltf/graph"
)

// Mesh is an ordered set of primitives plus default morph-target weights.
// Primitives are owned: disposing the mesh disposes them.
type Mesh struct {
	propBase
	weights    []float64
	primitives refList[*Primitive]
}

func (m *Mesh) Weights() []float64 { return m.weights }

func (m *Mesh) SetWeights(w []float64) { m.weights = w }

func (m *Mesh) ListPrimitives() []*Primitive { return m.primitives.list() }

func (m *Mesh) AddPrimitive(p *Primitive) error {
	return addRef(m, "primitives", &m.primitives, p, graph.OwnedList)
}

func (m *Mesh) RemovePrimitive(p *Primitive) {
	removeRef(m, &m.primitives, p)
}

// attribSet is an ordered semantic -> accessor map. Insertion order is the
// write order of the attributes object.
type attribSet struct {
	items []attrib
}

type attrib struct {
	semantic string
	r        ref[*Accessor]
}

func (s *attribSet) semantics() []string {
	res := make([]string, 0, len(s.items))
	for i := range s.items {
		if !s.items[i].r.edge.Dead() {
			res = append(res, s.items[i].semantic)
		}
	}
	return res
}

func (s *attribSet) get(semantic string) *Accessor {
	for i := range s.items {
		if s.items[i].semantic == semantic {
			return s.items[i].r.get()
		}
	}
	return nil
}

func (s *attribSet) set(owner Property, semantic string, a *Accessor) error {
	for i := range s.items {
		if s.items[i].semantic == semantic {
			if a == nil {
				owner.base().doc.g.Unlink(s.items[i].r.edge)
				s.items = append(s.items[:i], s.items[i+1:]...)
				return nil
			}
			return setRef(owner, "attribute:"+semantic, &s.items[i].r, a, graph.Shared)
		}
	}
	if a == nil {
		return nil
	}
	s.items = append(s.items, attrib{semantic: semantic})
	it := &s.items[len(s.items)-1]
	return setRef(owner, "attribute:"+semantic, &it.r, a, graph.Shared)
}

// Primitive is one draw batch of a mesh: a topology mode, vertex
// attributes, optional indices and material, and morph targets.
type Primitive struct {
	propBase
	mode       int
	attributes attribSet
	indices    ref[*Accessor]
	material   ref[*Material]
	targets    refList[*PrimitiveTarget]
}

func (p *Primitive) Mode() int { return p.mode }

func (p *Primitive) SetMode(mode int) { p.mode = mode }

// Semantics returns the attribute semantics in insertion order.
func (p *Primitive) Semantics() []string { return p.attributes.semantics() }

// Attribute returns the accessor bound to semantic, or nil.
func (p *Primitive) Attribute(semantic string) *Accessor { return p.attributes.get(semantic) }

// SetAttribute binds semantic to a; a nil accessor removes the binding.
func (p *Primitive) SetAttribute(semantic string, a *Accessor) error {
	return p.attributes.set(p, semantic, a)
}

func (p *Primitive) Indices() *Accessor { return p.indices.get() }

func (p *Primitive) SetIndices(a *Accessor) error {
	return setRef(p, "indices", &p.indices, a, graph.Shared)
}

func (p *Primitive) Material() *Material { return p.material.get() }

func (p *Primitive) SetMaterial(m *Material) error {
	return setRef(p, "material", &p.material, m, graph.Shared)
}

func (p *Primitive) ListTargets() []*PrimitiveTarget { return p.targets.list() }

func (p *Primitive) AddTarget(t *PrimitiveTarget) error {
	return addRef(p, "targets", &p.targets, t, graph.OwnedList)
}

func (p *Primitive) RemoveTarget(t *PrimitiveTarget) {
	removeRef(p, &p.targets, t)
}

// PrimitiveTarget is one morph target: displacement attributes keyed by
// the same semantics as the base primitive.
type PrimitiveTarget struct {
	propBase
	attributes attribSet
}

func (t *PrimitiveTarget) Semantics() []string { return t.attributes.semantics() }

func (t *PrimitiveTarget) Attribute(semantic string) *Accessor { return t.attributes.get(semantic) }

func (t *PrimitiveTarget) SetAttribute(semantic string, a *Accessor) error {
	return t.attributes.set(t, semantic, a)
}

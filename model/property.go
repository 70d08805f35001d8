package model

import (
	"encoding/json"
	"fmt"

	"github.com/sceneform/gltf/graph"
	"github.com/sceneform/gltf/wire"
)

// Property is implemented by every node of the model: the core scene
// properties, Root, and extension properties.
type Property interface {
	PropertyType() Type
	Name() string
	SetName(name string)
	Extras() json.RawMessage
	SetExtras(extras json.RawMessage)

	// Alive reports whether the property has not been disposed.
	Alive() bool
	// Detach removes all parent links; the property stays graph-resident
	// but is no longer reachable from Root.
	Detach()
	// Dispose removes the property and all of its edges, cascading over
	// owned children.
	Dispose()

	// GetExtension returns the extension property attached under name,
	// or nil.
	GetExtension(name string) ExtensionProperty
	// SetExtension attaches ep under name; a nil ep removes the entry.
	SetExtension(name string, ep ExtensionProperty) error
	// ListExtensions returns attached extension properties in attachment
	// order.
	ListExtensions() []ExtensionProperty

	base() *propBase
}

type extEntry struct {
	name string
	prop ExtensionProperty
	edge *graph.Edge
}

// propBase carries the state shared by every property kind. Concrete
// property structs embed it.
type propBase struct {
	doc    *Document
	node   *graph.Node
	typ    Type
	name   string
	extras json.RawMessage
	exts   []extEntry
}

func (b *propBase) init(d *Document, typ Type, name string) {
	b.doc = d
	b.node = d.g.Register()
	b.typ = typ
	b.name = name
}

func (b *propBase) base() *propBase { return b }

func (b *propBase) PropertyType() Type { return b.typ }

func (b *propBase) Name() string { return b.name }

func (b *propBase) SetName(name string) { b.name = name }

func (b *propBase) Extras() json.RawMessage { return b.extras }

func (b *propBase) SetExtras(extras json.RawMessage) { b.extras = extras }

func (b *propBase) Alive() bool { return b.node.Alive() }

// Document returns the owning document.
func (b *propBase) Document() *Document { return b.doc }

func (b *propBase) Detach() {
	for _, e := range append([]*graph.Edge(nil), b.node.ParentEdges()...) {
		b.doc.g.Unlink(e)
	}
}

func (b *propBase) Dispose() {
	b.doc.g.Dispose(b.node)
}

func (b *propBase) GetExtension(name string) ExtensionProperty {
	for i := range b.exts {
		e := &b.exts[i]
		if e.name == name && !e.edge.Dead() {
			return e.prop
		}
	}
	return nil
}

func (b *propBase) SetExtension(name string, ep ExtensionProperty) error {
	for i := range b.exts {
		e := &b.exts[i]
		if e.name == name && !e.edge.Dead() {
			b.doc.g.Unlink(e.edge)
			b.exts = append(b.exts[:i], b.exts[i+1:]...)
			break
		}
	}
	if ep == nil {
		return nil
	}
	tb := ep.base()
	if tb.doc != b.doc {
		return fmt.Errorf("%w: extension %q from another document", wire.ErrUsage, name)
	}
	e, err := b.doc.g.Link("extension:"+name, b.node, tb.node, graph.OwnedSingle)
	if err != nil {
		return err
	}
	b.exts = append(b.exts, extEntry{name: name, prop: ep, edge: e})
	return nil
}

func (b *propBase) ListExtensions() []ExtensionProperty {
	res := make([]ExtensionProperty, 0, len(b.exts))
	for i := range b.exts {
		if !b.exts[i].edge.Dead() {
			res = append(res, b.exts[i].prop)
		}
	}
	return res
}

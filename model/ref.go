package model

import (
	"fmt"
	"reflect"

	"github.com/sceneform/gltf/graph"
	"github.com/sceneform/gltf/wire"
)

// ref is a typed single reference backed by a graph edge. The target is
// visible only while the edge is alive, so disposal or detachment of the
// target drops it from the holder without event plumbing.
type ref[T Property] struct {
	target T
	edge   *graph.Edge
}

func (r *ref[T]) get() T {
	var zero T
	if r.edge == nil || r.edge.Dead() {
		return zero
	}
	return r.target
}

func setRef[T Property](owner Property, name string, r *ref[T], target T, kind graph.EdgeKind) error {
	ob := owner.base()
	if r.edge != nil {
		ob.doc.g.Unlink(r.edge)
		r.edge = nil
		var zero T
		r.target = zero
	}
	if isNilProp(target) {
		return nil
	}
	tb := target.base()
	if tb.doc != ob.doc {
		return fmt.Errorf("%w: %s refers to a property from another document", wire.ErrUsage, name)
	}
	e, err := ob.doc.g.Link(name, ob.node, tb.node, kind)
	if err != nil {
		return err
	}
	r.edge = e
	r.target = target
	return nil
}

// refList is an ordered list of typed references under one edge name.
type refList[T Property] struct {
	refs []ref[T]
}

func (l *refList[T]) list() []T {
	res := make([]T, 0, len(l.refs))
	for i := range l.refs {
		if !l.refs[i].edge.Dead() {
			res = append(res, l.refs[i].target)
		}
	}
	return res
}

func (l *refList[T]) contains(target T) bool {
	for i := range l.refs {
		if !l.refs[i].edge.Dead() && any(l.refs[i].target) == any(target) {
			return true
		}
	}
	return false
}

func addRef[T Property](owner Property, name string, l *refList[T], target T, kind graph.EdgeKind) error {
	ob := owner.base()
	if isNilProp(target) {
		return fmt.Errorf("%w: add nil %s", wire.ErrUsage, name)
	}
	tb := target.base()
	if tb.doc != ob.doc {
		return fmt.Errorf("%w: %s refers to a property from another document", wire.ErrUsage, name)
	}
	e, err := ob.doc.g.Link(name, ob.node, tb.node, kind)
	if err != nil {
		return err
	}
	l.refs = append(l.refs, ref[T]{target: target, edge: e})
	return nil
}

func removeRef[T Property](owner Property, l *refList[T], target T) {
	ob := owner.base()
	for i := range l.refs {
		r := &l.refs[i]
		if !r.edge.Dead() && any(r.target) == any(target) {
			ob.doc.g.Unlink(r.edge)
			l.refs = append(l.refs[:i], l.refs[i+1:]...)
			return
		}
	}
}

func isNilProp(p Property) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

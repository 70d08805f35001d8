package model

import "github.com/sceneform/gltf/graph"

// Scene is an ordered set of root nodes.
type Scene struct {
	propBase
	children refList[*Node]
}

func (s *Scene) ListChildren() []*Node { return s.children.list() }

func (s *Scene) AddChild(n *Node) error {
	return addRef(s, "children", &s.children, n, graph.Shared)
}

func (s *Scene) RemoveChild(n *Node) {
	removeRef(s, &s.children, n)
}

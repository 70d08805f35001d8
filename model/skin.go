package model

import "github.com/sceneform/gltf/graph"

// Skin binds a mesh to a skeleton: an ordered joint list, an optional
// skeleton root, and optional inverse bind matrices (MAT4 accessor).
type Skin struct {
	propBase
	joints              refList[*Node]
	skeleton            ref[*Node]
	inverseBindMatrices ref[*Accessor]
}

func (s *Skin) ListJoints() []*Node { return s.joints.list() }

func (s *Skin) AddJoint(n *Node) error {
	return addRef(s, "joints", &s.joints, n, graph.Shared)
}

func (s *Skin) RemoveJoint(n *Node) {
	removeRef(s, &s.joints, n)
}

func (s *Skin) Skeleton() *Node { return s.skeleton.get() }

func (s *Skin) SetSkeleton(n *Node) error {
	return setRef(s, "skeleton", &s.skeleton, n, graph.Shared)
}

func (s *Skin) InverseBindMatrices() *Accessor { return s.inverseBindMatrices.get() }

func (s *Skin) SetInverseBindMatrices(a *Accessor) error {
	return setRef(s, "inverseBindMatrices", &s.inverseBindMatrices, a, graph.Shared)
}

package model

import "github.com/sceneform/gltf/graph"

// Node is a transform-hierarchy node. It carries either TRS components or
// an explicit column-major matrix; when a matrix is set it takes precedence
// on write.
type Node struct {
	propBase
	translation [3]float64
	rotation    [4]float64
	scale       [3]float64
	matrix      *[16]float64
	weights     []float64

	children refList[*Node]
	mesh     ref[*Mesh]
	camera   ref[*Camera]
	skin     ref[*Skin]
}

func (n *Node) Translation() [3]float64 { return n.translation }

func (n *Node) SetTranslation(v [3]float64) { n.translation = v }

func (n *Node) Rotation() [4]float64 { return n.rotation }

func (n *Node) SetRotation(v [4]float64) { n.rotation = v }

func (n *Node) Scale() [3]float64 { return n.scale }

func (n *Node) SetScale(v [3]float64) { n.scale = v }

// Matrix returns the explicit transform matrix, or nil when the node uses
// TRS components.
func (n *Node) Matrix() *[16]float64 { return n.matrix }

func (n *Node) SetMatrix(m *[16]float64) { n.matrix = m }

func (n *Node) Weights() []float64 { return n.weights }

func (n *Node) SetWeights(w []float64) { n.weights = w }

func (n *Node) ListChildren() []*Node { return n.children.list() }

func (n *Node) AddChild(c *Node) error {
	return addRef(n, "children", &n.children, c, graph.Shared)
}

func (n *Node) RemoveChild(c *Node) {
	removeRef(n, &n.children, c)
}

func (n *Node) Mesh() *Mesh { return n.mesh.get() }

func (n *Node) SetMesh(m *Mesh) error {
	return setRef(n, "mesh", &n.mesh, m, graph.Shared)
}

func (n *Node) Camera() *Camera { return n.camera.get() }

func (n *Node) SetCamera(c *Camera) error {
	return setRef(n, "camera", &n.camera, c, graph.Shared)
}

func (n *Node) Skin() *Skin { return n.skin.get() }

func (n *Node) SetSkin(s *Skin) error {
	return setRef(n, "skin", &n.skin, s, graph.Shared)
}

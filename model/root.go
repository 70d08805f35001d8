package model

import (
	"github.com/sceneform/gltf/graph"
	"github.com/sceneform/gltf/wire"
)

// Root is the single entry point of a Document. It owns the top-level
// collections; a property is live iff it is reachable from Root.
type Root struct {
	propBase
	asset wire.Asset

	defaultScene ref[*Scene]

	buffers    refList[*Buffer]
	accessors  refList[*Accessor]
	textures   refList[*Texture]
	materials  refList[*Material]
	meshes     refList[*Mesh]
	nodes      refList[*Node]
	cameras    refList[*Camera]
	scenes     refList[*Scene]
	skins      refList[*Skin]
	animations refList[*Animation]
}

func newRoot(d *Document) *Root {
	r := &Root{asset: wire.Asset{Version: wire.Version}}
	r.init(d, TypeRoot, "")
	return r
}

// Asset returns the asset metadata written to the "asset" object.
func (r *Root) Asset() wire.Asset { return r.asset }

func (r *Root) SetGenerator(v string) { r.asset.Generator = v }

func (r *Root) SetCopyright(v string) { r.asset.Copyright = v }

// DefaultScene returns the scene emitted as the document's "scene" index,
// or nil.
func (r *Root) DefaultScene() *Scene { return r.defaultScene.get() }

func (r *Root) SetDefaultScene(s *Scene) error {
	return setRef(r, "scene", &r.defaultScene, s, graph.Shared)
}

func (r *Root) ListBuffers() []*Buffer { return r.buffers.list() }
func (r *Root) ListAccessors() []*Accessor { return r.accessors.list() }
func (r *Root) ListTextures() []*Texture { return r.textures.list() }
func (r *Root) ListMaterials() []*Material { return r.materials.list() }
func (r *Root) ListMeshes() []*Mesh { return r.meshes.list() }
func (r *Root) ListNodes() []*Node { return r.nodes.list() }
func (r *Root) ListCameras() []*Camera { return r.cameras.list() }
func (r *Root) ListScenes() []*Scene { return r.scenes.list() }
func (r *Root) ListSkins() []*Skin { return r.skins.list() }
func (r *Root) ListAnimations() []*Animation { return r.animations.list() }

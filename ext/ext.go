// Package ext defines the hook protocol through which third-party glTF
// extension schemas participate in the read and write pipelines, and the
// registry that keys implementations by schema name.
//
// An Extension declares up to four ordered hooks. PreRead and PreWrite run
// before the core properties named by PrereadTypes/PrewriteTypes are
// materialized; Read runs after all core properties exist; Write runs after
// index assignment, against the in-progress JSON tree. Within one stage,
// hooks run strictly in registration order and share the context, so a hook
// may depend on state left by an earlier one.
//
// Extensions may attach ExtensionProperty values to core properties and
// append JSON of their own, but must not reorder or reindex core
// properties.
package ext

import (
	"fmt"
	"sync"

	"github.com/sceneform/gltf/model"
	"github.com/sceneform/gltf/wire"
)

// Extension implements one glTF extension schema.
type Extension interface {
	model.Extension

	// PrereadTypes lists the property kinds whose raw definitions the
	// extension must see before they are materialized. Empty means the
	// extension has no PreRead hook.
	PrereadTypes() []model.Type
	// PrewriteTypes is the write-side counterpart of PrereadTypes.
	PrewriteTypes() []model.Type

	PreRead(c *ReadContext) error
	Read(c *ReadContext) error
	PreWrite(c *WriteContext) error
	Write(c *WriteContext) error
}

// Registry keys extension implementations by schema name, preserving
// registration order for hook invocation.
type Registry struct {
	mu    sync.RWMutex
	exts  map[string]Extension
	order []Extension
}

func NewRegistry() *Registry {
	return &Registry{exts: map[string]Extension{}}
}

// Register adds an extension. Registering an empty or duplicate schema
// name is an error.
func (r *Registry) Register(x Extension) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := x.ExtensionName()
	if name == "" {
		return fmt.Errorf("%w: extension name cannot be empty", wire.ErrUsage)
	}
	if _, ok := r.exts[name]; ok {
		return fmt.Errorf("%w: extension %q already registered", wire.ErrUsage, name)
	}
	r.exts[name] = x
	r.order = append(r.order, x)
	return nil
}

// Get returns the extension registered under name.
func (r *Registry) Get(name string) (Extension, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	x, ok := r.exts[name]
	return x, ok
}

// All returns the registered extensions in registration order.
func (r *Registry) All() []Extension {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Extension(nil), r.order...)
}

// ReadContext is the shared working state of one read pipeline run. Index
// slices are populated stage by stage in source order; a hook sees exactly
// the kinds materialized before its stage. Not reentrant: each run owns its
// own context.
type ReadContext struct {
	JSON *wire.Document
	Doc  *model.Document

	Buffers    []*model.Buffer
	Accessors  []*model.Accessor
	Textures   []*model.Texture
	Materials  []*model.Material
	Meshes     []*model.Mesh
	Cameras    []*model.Camera
	Nodes      []*model.Node
	Skins      []*model.Skin
	Scenes     []*model.Scene
	Animations []*model.Animation
}

// WriteContext is the shared working state of one write pipeline run.
// Index maps hold the stable output indices assigned to live properties.
// Not reentrant: each run owns its own context.
type WriteContext struct {
	JSON *wire.Document
	Doc  *model.Document

	BufferIndex    map[*model.Buffer]int
	AccessorIndex  map[*model.Accessor]int
	TextureIndex   map[*model.Texture]int
	MaterialIndex  map[*model.Material]int
	MeshIndex      map[*model.Mesh]int
	CameraIndex    map[*model.Camera]int
	NodeIndex      map[*model.Node]int
	SkinIndex      map[*model.Skin]int
	SceneIndex     map[*model.Scene]int
	AnimationIndex map[*model.Animation]int

	used     map[string]bool
	required map[string]bool
}

// MarkUsed records name in extensionsUsed, and in extensionsRequired when
// required is set.
func (c *WriteContext) MarkUsed(name string, req bool) {
	if c.used == nil {
		c.used = map[string]bool{}
	}
	c.used[name] = true
	if req {
		if c.required == nil {
			c.required = map[string]bool{}
		}
		c.required[name] = true
	}
}

// Used reports the names marked used, in the order given.
func (c *WriteContext) Used(order []Extension) (used, required []string) {
	for _, x := range order {
		name := x.ExtensionName()
		if c.used[name] {
			used = append(used, name)
		}
		if c.required[name] {
			required = append(required, name)
		}
	}
	return used, required
}

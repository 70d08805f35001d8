// Package write serializes a model.Document back to the glTF wire form.
//
// The pipeline assigns stable output indices to every live property,
// packs accessor element data into buffer views, emits the JSON tree, and
// runs extension hooks. Properties are emitted in creation order, except
// accessors, which are grouped by primitive usage: each mesh claims its
// attributes, morph targets and indices first, unattached accessors
// follow. Output is deterministic: writing an unmodified document twice
// yields identical bytes.
package write

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/sceneform/gltf/debug"
	"github.com/sceneform/gltf/ext"
	"github.com/sceneform/gltf/glb"
	"github.com/sceneform/gltf/model"
	"github.com/sceneform/gltf/wire"
)

// Write serializes doc into a JSONDocument: the wire tree plus the
// external resources (buffer and image payloads) it references.
func Write(doc *model.Document, opts ...Option) (*wire.JSONDocument, error) {
	return run(doc, opts, false)
}

// JSON serializes doc to .gltf JSON bytes plus its external resources.
func JSON(doc *model.Document, opts ...Option) ([]byte, map[string][]byte, error) {
	jd, err := run(doc, opts, false)
	if err != nil {
		return nil, nil, err
	}
	data, err := json.Marshal(jd.JSON)
	if err != nil {
		return nil, nil, err
	}
	return data, jd.Resources, nil
}

// GLB serializes doc as a single GLB container. All binary payloads fold
// into the binary chunk; the document must not use more than one buffer.
func GLB(doc *model.Document, opts ...Option) ([]byte, error) {
	jd, err := run(doc, opts, true)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(jd.JSON)
	if err != nil {
		return nil, err
	}
	return glb.Encode(data, jd.Resources[wire.GLBResourceKey]), nil
}

func run(doc *model.Document, opts []Option, glbMode bool) (*wire.JSONDocument, error) {
	o := &writeOpts{basename: "buffer"}
	for _, f := range opts {
		f(o)
	}
	var order []ext.Extension
	if o.extensions != nil {
		order = o.extensions.All()
	} else {
		// a document read with a registry carries its hooks along
		for _, x := range doc.Extensions() {
			if hx, ok := x.(ext.Extension); ok {
				order = append(order, hx)
			}
		}
	}

	w := &writer{
		opts:      o,
		glb:       glbMode,
		doc:       doc,
		root:      doc.Root(),
		json:      &wire.Document{},
		exts:      order,
		resources: map[string][]byte{},
		bufBytes:  map[*model.Buffer][]byte{},
	}
	w.c = &ext.WriteContext{JSON: w.json, Doc: doc}
	stages := []struct {
		name string
		fn   func() error
	}{
		{"indexes", w.indexes},
		{"prewrite", w.prewrite},
		{"accessors", w.accessors},
		{"images", w.images},
		{"materials", w.materials},
		{"meshes", w.meshes},
		{"cameras", w.cameras},
		{"nodes", w.nodes},
		{"skins", w.skins},
		{"scenes", w.scenes},
		{"animations", w.animations},
		{"asset", w.asset},
		{"buffers", w.buffers},
		{"write hooks", w.writeHooks},
		{"extension lists", w.extensionLists},
	}
	for _, stage := range stages {
		if debug.Write() {
			debug.Logf("write: %s", stage.name)
		}
		if err := stage.fn(); err != nil {
			return nil, err
		}
	}
	return &wire.JSONDocument{JSON: w.json, Resources: w.resources}, nil
}

type writer struct {
	opts *writeOpts
	glb  bool
	doc  *model.Document
	root *model.Root
	json *wire.Document
	c    *ext.WriteContext
	exts []ext.Extension

	resources map[string][]byte

	// per-buffer payloads under construction; viewOwner parallels
	// json.BufferViews until buffer indices are final
	bufBytes   map[*model.Buffer][]byte
	viewOwner  []*model.Buffer
	defaultBuf *model.Buffer

	// accessor emission order, grouped by primitive usage
	accOrder []*model.Accessor

	placements   map[*model.Accessor]placement
	texCache     map[texKey]int
	samplerCache map[samplerKey]int
}

func (w *writer) logger() *slog.Logger {
	if w.opts.logger != nil {
		return w.opts.logger
	}
	return w.doc.Logger()
}

func (w *writer) indexes() error {
	c := w.c
	c.BufferIndex = map[*model.Buffer]int{}
	// accessors are indexed grouped by primitive usage: each mesh claims
	// its attributes, targets and indices first, the rest follow in
	// creation order
	c.AccessorIndex = map[*model.Accessor]int{}
	claim := func(a *model.Accessor) {
		if a == nil {
			return
		}
		if _, ok := c.AccessorIndex[a]; !ok {
			c.AccessorIndex[a] = len(w.accOrder)
			w.accOrder = append(w.accOrder, a)
		}
	}
	for _, m := range w.root.ListMeshes() {
		for _, p := range m.ListPrimitives() {
			for _, sem := range slices.Sorted(slices.Values(p.Semantics())) {
				claim(p.Attribute(sem))
			}
			for _, t := range p.ListTargets() {
				for _, sem := range slices.Sorted(slices.Values(t.Semantics())) {
					claim(t.Attribute(sem))
				}
			}
			claim(p.Indices())
		}
	}
	for _, a := range w.root.ListAccessors() {
		claim(a)
	}
	c.TextureIndex = map[*model.Texture]int{}
	for i, t := range w.root.ListTextures() {
		c.TextureIndex[t] = i
	}
	c.MaterialIndex = map[*model.Material]int{}
	for i, m := range w.root.ListMaterials() {
		c.MaterialIndex[m] = i
	}
	c.MeshIndex = map[*model.Mesh]int{}
	for i, m := range w.root.ListMeshes() {
		c.MeshIndex[m] = i
	}
	c.CameraIndex = map[*model.Camera]int{}
	for i, cam := range w.root.ListCameras() {
		c.CameraIndex[cam] = i
	}
	c.NodeIndex = map[*model.Node]int{}
	for i, n := range w.root.ListNodes() {
		c.NodeIndex[n] = i
	}
	c.SkinIndex = map[*model.Skin]int{}
	for i, s := range w.root.ListSkins() {
		c.SkinIndex[s] = i
	}
	c.SceneIndex = map[*model.Scene]int{}
	for i, s := range w.root.ListScenes() {
		c.SceneIndex[s] = i
	}
	c.AnimationIndex = map[*model.Animation]int{}
	for i, a := range w.root.ListAnimations() {
		c.AnimationIndex[a] = i
	}
	return nil
}

func (w *writer) prewrite() error {
	for _, x := range w.exts {
		if len(x.PrewriteTypes()) == 0 {
			continue
		}
		if debug.Ext() {
			debug.Logf("ext: prewrite %s", x.ExtensionName())
		}
		if err := x.PreWrite(w.c); err != nil {
			return fmt.Errorf("extension %s prewrite: %w", x.ExtensionName(), err)
		}
	}
	return nil
}

func (w *writer) materials() error {
	for _, m := range w.root.ListMaterials() {
		wm := wire.Material{
			Name:        m.Name(),
			Extras:      m.Extras(),
			DoubleSided: m.DoubleSided(),
		}
		if am := m.AlphaMode(); am != "" && am != wire.AlphaOpaque {
			wm.AlphaMode = am
		}
		if v := m.AlphaCutoff(); v != 0.5 {
			wm.AlphaCutoff = &v
		}
		if ef := m.EmissiveFactor(); ef != ([3]float64{}) {
			wm.EmissiveFactor = &ef
		}

		var pbr wire.PBRMetallicRoughness
		hasPBR := false
		if bc := m.BaseColorFactor(); bc != ([4]float64{1, 1, 1, 1}) {
			pbr.BaseColorFactor = &bc
			hasPBR = true
		}
		if v := m.MetallicFactor(); v != 1 {
			pbr.MetallicFactor = &v
			hasPBR = true
		}
		if v := m.RoughnessFactor(); v != 1 {
			pbr.RoughnessFactor = &v
			hasPBR = true
		}
		if t := m.BaseColorTexture(); t != nil {
			ti, err := w.textureInfo(t, m.BaseColorTextureInfo())
			if err != nil {
				return err
			}
			pbr.BaseColorTexture = ti
			hasPBR = true
		}
		if t := m.MetallicRoughnessTexture(); t != nil {
			ti, err := w.textureInfo(t, m.MetallicRoughnessTextureInfo())
			if err != nil {
				return err
			}
			pbr.MetallicRoughnessTexture = ti
			hasPBR = true
		}
		if hasPBR {
			wm.PBRMetallicRoughness = &pbr
		}

		if t := m.NormalTexture(); t != nil {
			ti, err := w.textureInfo(t, m.NormalTextureInfo())
			if err != nil {
				return err
			}
			n := wire.NormalTextureInfo{TextureInfo: *ti}
			if s := m.NormalScale(); s != 1 {
				n.Scale = &s
			}
			wm.NormalTexture = &n
		}
		if t := m.OcclusionTexture(); t != nil {
			ti, err := w.textureInfo(t, m.OcclusionTextureInfo())
			if err != nil {
				return err
			}
			o := wire.OcclusionTextureInfo{TextureInfo: *ti}
			if s := m.OcclusionStrength(); s != 1 {
				o.Strength = &s
			}
			wm.OcclusionTexture = &o
		}
		if t := m.EmissiveTexture(); t != nil {
			ti, err := w.textureInfo(t, m.EmissiveTextureInfo())
			if err != nil {
				return err
			}
			wm.EmissiveTexture = ti
		}
		w.json.Materials = append(w.json.Materials, wm)
	}
	return nil
}

func (w *writer) meshes() error {
	for _, m := range w.root.ListMeshes() {
		wm := wire.Mesh{Name: m.Name(), Weights: m.Weights(), Extras: m.Extras()}
		for _, p := range m.ListPrimitives() {
			wp := wire.Primitive{Extras: p.Extras(), Attributes: map[string]int{}}
			if mode := p.Mode(); mode != wire.ModeTriangles {
				wp.Mode = &mode
			}
			for _, sem := range p.Semantics() {
				wp.Attributes[sem] = w.c.AccessorIndex[p.Attribute(sem)]
			}
			if a := p.Indices(); a != nil {
				i := w.c.AccessorIndex[a]
				wp.Indices = &i
			}
			if mat := p.Material(); mat != nil {
				i := w.c.MaterialIndex[mat]
				wp.Material = &i
			}
			for _, t := range p.ListTargets() {
				tm := map[string]int{}
				for _, sem := range t.Semantics() {
					tm[sem] = w.c.AccessorIndex[t.Attribute(sem)]
				}
				wp.Targets = append(wp.Targets, tm)
			}
			wm.Primitives = append(wm.Primitives, wp)
		}
		w.json.Meshes = append(w.json.Meshes, wm)
	}
	return nil
}

func (w *writer) cameras() error {
	for _, c := range w.root.ListCameras() {
		proj := c.Projection()
		if proj == "" {
			return fmt.Errorf("%w: camera %q has no projection", wire.ErrUsage, c.Name())
		}
		w.json.Cameras = append(w.json.Cameras, wire.Camera{
			Name:         c.Name(),
			Type:         proj,
			Perspective:  c.Perspective(),
			Orthographic: c.Orthographic(),
			Extras:       c.Extras(),
		})
	}
	return nil
}

func (w *writer) nodes() error {
	for _, n := range w.root.ListNodes() {
		wn := wire.Node{Name: n.Name(), Weights: n.Weights(), Extras: n.Extras()}
		if mtx := n.Matrix(); mtx != nil {
			m := *mtx
			wn.Matrix = &m
		} else {
			if v := n.Translation(); v != ([3]float64{}) {
				wn.Translation = &v
			}
			if v := n.Rotation(); v != ([4]float64{0, 0, 0, 1}) {
				wn.Rotation = &v
			}
			if v := n.Scale(); v != ([3]float64{1, 1, 1}) {
				wn.Scale = &v
			}
		}
		for _, c := range n.ListChildren() {
			wn.Children = append(wn.Children, w.c.NodeIndex[c])
		}
		if m := n.Mesh(); m != nil {
			i := w.c.MeshIndex[m]
			wn.Mesh = &i
		}
		if c := n.Camera(); c != nil {
			i := w.c.CameraIndex[c]
			wn.Camera = &i
		}
		if s := n.Skin(); s != nil {
			i := w.c.SkinIndex[s]
			wn.Skin = &i
		}
		w.json.Nodes = append(w.json.Nodes, wn)
	}
	return nil
}

func (w *writer) skins() error {
	for _, s := range w.root.ListSkins() {
		joints := s.ListJoints()
		ws := wire.Skin{Name: s.Name(), Joints: make([]int, 0, len(joints)), Extras: s.Extras()}
		for _, j := range joints {
			ws.Joints = append(ws.Joints, w.c.NodeIndex[j])
		}
		if n := s.Skeleton(); n != nil {
			i := w.c.NodeIndex[n]
			ws.Skeleton = &i
		}
		if a := s.InverseBindMatrices(); a != nil {
			i := w.c.AccessorIndex[a]
			ws.InverseBindMatrices = &i
		}
		w.json.Skins = append(w.json.Skins, ws)
	}
	return nil
}

func (w *writer) scenes() error {
	for _, s := range w.root.ListScenes() {
		ws := wire.Scene{Name: s.Name(), Extras: s.Extras()}
		for _, n := range s.ListChildren() {
			ws.Nodes = append(ws.Nodes, w.c.NodeIndex[n])
		}
		w.json.Scenes = append(w.json.Scenes, ws)
	}
	if s := w.root.DefaultScene(); s != nil {
		i := w.c.SceneIndex[s]
		w.json.Scene = &i
	}
	return nil
}

func (w *writer) animations() error {
	for _, a := range w.root.ListAnimations() {
		wa := wire.Animation{Name: a.Name(), Extras: a.Extras()}
		local := map[*model.AnimationSampler]int{}
		for i, s := range a.ListSamplers() {
			local[s] = i
			ws := wire.AnimationSampler{Extras: s.Extras()}
			if v := s.Interpolation(); v != "" && v != wire.InterpolationLinear {
				ws.Interpolation = v
			}
			in := s.Input()
			out := s.Output()
			if in == nil || out == nil {
				return fmt.Errorf("%w: animation %q sampler %d lacks input or output", wire.ErrUsage, a.Name(), i)
			}
			ws.Input = w.c.AccessorIndex[in]
			ws.Output = w.c.AccessorIndex[out]
			wa.Samplers = append(wa.Samplers, ws)
		}
		for i, c := range a.ListChannels() {
			s := c.Sampler()
			if s == nil {
				return fmt.Errorf("%w: animation %q channel %d has no sampler", wire.ErrUsage, a.Name(), i)
			}
			li, ok := local[s]
			if !ok {
				return fmt.Errorf("%w: animation %q channel %d targets a sampler of another animation", wire.ErrUsage, a.Name(), i)
			}
			wc := wire.AnimationChannel{
				Sampler: li,
				Target:  wire.AnimationTarget{Path: c.TargetPath()},
				Extras:  c.Extras(),
			}
			if n := c.TargetNode(); n != nil {
				ni := w.c.NodeIndex[n]
				wc.Target.Node = &ni
			}
			wa.Channels = append(wa.Channels, wc)
		}
		w.json.Animations = append(w.json.Animations, wa)
	}
	return nil
}

func (w *writer) asset() error {
	w.json.Asset = w.root.Asset()
	w.json.Asset.Version = wire.Version
	w.json.Extras = w.root.Extras()
	return nil
}

func (w *writer) writeHooks() error {
	for _, x := range w.exts {
		if debug.Ext() {
			debug.Logf("ext: write %s", x.ExtensionName())
		}
		if err := x.Write(w.c); err != nil {
			return fmt.Errorf("extension %s write: %w", x.ExtensionName(), err)
		}
	}
	return nil
}

func (w *writer) extensionLists() error {
	used, required := w.c.Used(w.exts)
	for _, x := range w.exts {
		name := x.ExtensionName()
		if x.Required() && slices.Contains(used, name) && !slices.Contains(required, name) {
			required = append(required, name)
		}
	}
	w.json.ExtensionsUsed = used
	w.json.ExtensionsRequired = required
	return nil
}

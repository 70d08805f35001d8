// Package read materializes a JSONDocument (or a GLB byte stream) into a
// mutable model.Document, resolving buffer and image resources and
// invoking extension hooks.
//
// Stages run in a fixed order: version check, buffers, accessors,
// textures, extension preread, materials, meshes, cameras, nodes, skins,
// scenes, animations, extension read. Each stage references only indices
// materialized by earlier stages. A reader context is used for exactly one
// run.
package read

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/h2non/filetype"

	"github.com/sceneform/gltf/bin"
	"github.com/sceneform/gltf/debug"
	"github.com/sceneform/gltf/ext"
	"github.com/sceneform/gltf/glb"
	"github.com/sceneform/gltf/model"
	"github.com/sceneform/gltf/wire"
)

// Read materializes jd into a new Document.
func Read(jd *wire.JSONDocument, opts ...Option) (*model.Document, error) {
	o := &readOpts{strict: true}
	for _, f := range opts {
		f(o)
	}
	if jd == nil || jd.JSON == nil {
		return nil, fmt.Errorf("%w: no JSON tree", wire.ErrFormat)
	}
	if v := jd.JSON.Asset.Version; v != wire.Version {
		return nil, fmt.Errorf("%w: unsupported asset version %q", wire.ErrFormat, v)
	}

	doc := model.NewDocument()
	if o.logger != nil {
		doc.SetLogger(o.logger)
	}
	var order []ext.Extension
	if o.extensions != nil {
		order = o.extensions.All()
		for _, x := range order {
			if err := doc.RegisterExtension(x); err != nil {
				return nil, err
			}
		}
	}

	r := &reader{
		opts: o,
		jd:   jd,
		doc:  doc,
		exts: order,
		c:    &ext.ReadContext{JSON: jd.JSON, Doc: doc},
	}
	stages := []struct {
		name string
		fn   func() error
	}{
		{"buffers", r.buffers},
		{"accessors", r.accessors},
		{"textures", r.textures},
		{"preread", r.preread},
		{"materials", r.materials},
		{"meshes", r.meshes},
		{"cameras", r.cameras},
		{"nodes", r.nodes},
		{"skins", r.skins},
		{"scenes", r.scenes},
		{"animations", r.animations},
		{"read hooks", r.readHooks},
		{"root", r.rootProps},
	}
	for _, stage := range stages {
		if debug.Read() {
			debug.Logf("read: %s", stage.name)
		}
		if err := stage.fn(); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// JSON parses a .gltf JSON payload and materializes it against resources.
func JSON(data []byte, resources map[string][]byte, opts ...Option) (*model.Document, error) {
	var tree wire.Document
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", wire.ErrFormat, err)
	}
	return Read(&wire.JSONDocument{JSON: &tree, Resources: resources}, opts...)
}

// GLB unframes a GLB container and materializes it. The binary chunk
// becomes the resource bound to the first URI-less buffer.
func GLB(data []byte, opts ...Option) (*model.Document, error) {
	jsonChunk, binChunk, err := glb.Decode(data)
	if err != nil {
		return nil, err
	}
	resources := map[string][]byte{}
	if binChunk != nil {
		resources[wire.GLBResourceKey] = binChunk
	}
	return JSON(jsonChunk, resources, opts...)
}

type reader struct {
	opts *readOpts
	jd   *wire.JSONDocument
	doc  *model.Document
	exts []ext.Extension
	c    *ext.ReadContext

	bufferData [][]byte
}

func (r *reader) warn(msg string, args ...any) {
	r.doc.Logger().Warn(msg, args...)
}

// missing handles an unresolved resource: fatal under strict reading,
// a warning otherwise.
func (r *reader) missing(err error) error {
	if r.opts.strict {
		return err
	}
	r.warn("resource unresolved, keeping null payload", "error", err)
	return nil
}

func (r *reader) buffers() error {
	for i := range r.jd.JSON.Buffers {
		wb := &r.jd.JSON.Buffers[i]
		b := r.doc.CreateBuffer(wb.Name)
		b.SetExtras(wb.Extras)
		var data []byte
		switch {
		case wb.URI == "":
			// only buffer 0 binds to the GLB binary chunk
			if i == 0 {
				data = r.jd.Resources[wire.GLBResourceKey]
			}
			if data == nil && wb.ByteLength > 0 {
				if err := r.missing(fmt.Errorf("%w: buffer %d has no URI and no binary chunk", wire.ErrResource, i)); err != nil {
					return err
				}
			}
		case isDataURI(wb.URI):
			// decoded on read, not re-emitted as a data URI
			d, err := decodeDataURI(wb.URI)
			if err != nil {
				return err
			}
			data = d
		default:
			b.SetURI(wb.URI)
			d, err := r.opts.resolve(wb.URI, r.jd.Resources)
			if err != nil {
				if err := r.missing(err); err != nil {
					return err
				}
			}
			data = d
		}
		r.bufferData = append(r.bufferData, data)
		r.c.Buffers = append(r.c.Buffers, b)
	}
	return nil
}

// view bounds-checks a bufferView index and its extent.
func (r *reader) view(i int) (*wire.BufferView, error) {
	v, err := at(r.jd.JSON.BufferViews, i, "bufferView")
	if err != nil {
		return nil, err
	}
	if _, err := at(r.jd.JSON.Buffers, v.Buffer, "buffer"); err != nil {
		return nil, err
	}
	if v.ByteOffset < 0 || v.ByteLength < 0 {
		return nil, fmt.Errorf("%w: bufferView %d has a negative extent", wire.ErrFormat, i)
	}
	data := r.bufferData[v.Buffer]
	if data != nil && v.ByteOffset+v.ByteLength > len(data) {
		return nil, fmt.Errorf("%w: bufferView %d extent %d exceeds buffer length %d",
			wire.ErrFormat, i, v.ByteOffset+v.ByteLength, len(data))
	}
	return v, nil
}

// viewData slices the view's byte range; nil when the backing buffer has a
// null payload.
func (r *reader) viewData(v *wire.BufferView) []byte {
	data := r.bufferData[v.Buffer]
	if data == nil {
		return nil
	}
	return data[v.ByteOffset : v.ByteOffset+v.ByteLength]
}

func (r *reader) accessors() error {
	for i := range r.jd.JSON.Accessors {
		wa := &r.jd.JSON.Accessors[i]
		n, err := wa.Type.Components()
		if err != nil {
			return fmt.Errorf("%w: accessor %d: unknown element type %q", wire.ErrFormat, i, wa.Type)
		}
		if _, err := wa.ComponentType.Size(); err != nil {
			return fmt.Errorf("%w: accessor %d: unsupported component type %d", wire.ErrFormat, i, int(wa.ComponentType))
		}
		if wa.Count < 0 {
			return fmt.Errorf("%w: accessor %d: negative count %d", wire.ErrFormat, i, wa.Count)
		}
		a := r.doc.CreateAccessor(wa.Name).
			SetComponentType(wa.ComponentType).
			SetElementType(wa.Type).
			SetNormalized(wa.Normalized)
		a.SetExtras(wa.Extras)

		resolved := true
		var array []float64
		if wa.BufferView != nil {
			v, err := r.view(*wa.BufferView)
			if err != nil {
				return fmt.Errorf("accessor %d: %w", i, err)
			}
			if err := a.SetBuffer(r.c.Buffers[v.Buffer]); err != nil {
				return err
			}
			data := r.viewData(v)
			if data == nil {
				resolved = false
			} else {
				stride := 0
				if v.ByteStride != nil {
					stride = *v.ByteStride
				}
				array, err = bin.Decode(data, wa.ByteOffset, stride, wa.Count, wa.ComponentType, wa.Type, wa.Normalized)
				if err != nil {
					return fmt.Errorf("accessor %d: %w", i, err)
				}
			}
		} else {
			array = make([]float64, wa.Count*n)
		}

		if sp := wa.Sparse; sp != nil && resolved {
			if err := r.applySparse(a, wa, array, n, i); err != nil {
				return err
			}
		}
		if resolved {
			a.SetArray(array)
		}
		r.c.Accessors = append(r.c.Accessors, a)
	}
	return nil
}

func (r *reader) applySparse(a *model.Accessor, wa *wire.Accessor, array []float64, n, i int) error {
	sp := wa.Sparse
	iv, err := r.view(sp.Indices.BufferView)
	if err != nil {
		return fmt.Errorf("accessor %d sparse indices: %w", i, err)
	}
	vv, err := r.view(sp.Values.BufferView)
	if err != nil {
		return fmt.Errorf("accessor %d sparse values: %w", i, err)
	}
	ivd, vvd := r.viewData(iv), r.viewData(vv)
	if ivd == nil || vvd == nil {
		return r.missing(fmt.Errorf("%w: accessor %d sparse data unresolved", wire.ErrResource, i))
	}
	indices, err := bin.Decode(ivd, sp.Indices.ByteOffset, 0, sp.Count, sp.Indices.ComponentType, wire.Scalar, false)
	if err != nil {
		return fmt.Errorf("accessor %d sparse indices: %w", i, err)
	}
	values, err := bin.Decode(vvd, sp.Values.ByteOffset, 0, sp.Count, wa.ComponentType, wa.Type, wa.Normalized)
	if err != nil {
		return fmt.Errorf("accessor %d sparse values: %w", i, err)
	}
	if err := bin.ApplySparse(array, n, indices, values); err != nil {
		return fmt.Errorf("accessor %d: %w", i, err)
	}
	a.SetSparse(true)
	if wa.BufferView == nil {
		if err := a.SetBuffer(r.c.Buffers[vv.Buffer]); err != nil {
			return err
		}
	}
	return nil
}

func (r *reader) textures() error {
	for i := range r.jd.JSON.Images {
		wi := &r.jd.JSON.Images[i]
		t := r.doc.CreateTexture(wi.Name)
		t.SetExtras(wi.Extras)
		t.SetMimeType(wi.MimeType)

		var data []byte
		switch {
		case isDataURI(wi.URI):
			d, err := decodeDataURI(wi.URI)
			if err != nil {
				return err
			}
			data = d
		case wi.URI != "":
			t.SetURI(wi.URI)
			d, err := r.opts.resolve(wi.URI, r.jd.Resources)
			if err != nil {
				if err := r.missing(err); err != nil {
					return err
				}
			}
			data = d
		case wi.BufferView != nil:
			v, err := r.view(*wi.BufferView)
			if err != nil {
				return fmt.Errorf("image %d: %w", i, err)
			}
			data = r.viewData(v)
		}
		t.SetImage(data)
		if t.MimeType() == "" && data != nil {
			if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
				t.SetMimeType(kind.MIME.Value)
			}
		}
		r.c.Textures = append(r.c.Textures, t)
	}
	return nil
}

func (r *reader) preread() error {
	for _, x := range r.exts {
		if len(x.PrereadTypes()) == 0 {
			continue
		}
		if debug.Ext() {
			debug.Logf("ext: preread %s", x.ExtensionName())
		}
		if err := x.PreRead(r.c); err != nil {
			return fmt.Errorf("extension %s preread: %w", x.ExtensionName(), err)
		}
	}
	return nil
}

func (r *reader) materials() error {
	for i := range r.jd.JSON.Materials {
		wm := &r.jd.JSON.Materials[i]
		m := r.doc.CreateMaterial(wm.Name)
		m.SetExtras(wm.Extras)
		if wm.AlphaMode != "" {
			m.SetAlphaMode(wm.AlphaMode)
		}
		if wm.AlphaCutoff != nil {
			m.SetAlphaCutoff(*wm.AlphaCutoff)
		}
		m.SetDoubleSided(wm.DoubleSided)
		if wm.EmissiveFactor != nil {
			m.SetEmissiveFactor(*wm.EmissiveFactor)
		}
		if pbr := wm.PBRMetallicRoughness; pbr != nil {
			if pbr.BaseColorFactor != nil {
				m.SetBaseColorFactor(*pbr.BaseColorFactor)
			}
			if pbr.MetallicFactor != nil {
				m.SetMetallicFactor(*pbr.MetallicFactor)
			}
			if pbr.RoughnessFactor != nil {
				m.SetRoughnessFactor(*pbr.RoughnessFactor)
			}
			if pbr.BaseColorTexture != nil {
				if err := r.bindTexture(m.SetBaseColorTexture, m.BaseColorTextureInfo(), pbr.BaseColorTexture); err != nil {
					return fmt.Errorf("material %d: %w", i, err)
				}
			}
			if pbr.MetallicRoughnessTexture != nil {
				if err := r.bindTexture(m.SetMetallicRoughnessTexture, m.MetallicRoughnessTextureInfo(), pbr.MetallicRoughnessTexture); err != nil {
					return fmt.Errorf("material %d: %w", i, err)
				}
			}
		}
		if wm.NormalTexture != nil {
			if err := r.bindTexture(m.SetNormalTexture, m.NormalTextureInfo(), &wm.NormalTexture.TextureInfo); err != nil {
				return fmt.Errorf("material %d: %w", i, err)
			}
			if wm.NormalTexture.Scale != nil {
				m.SetNormalScale(*wm.NormalTexture.Scale)
			}
		}
		if wm.OcclusionTexture != nil {
			if err := r.bindTexture(m.SetOcclusionTexture, m.OcclusionTextureInfo(), &wm.OcclusionTexture.TextureInfo); err != nil {
				return fmt.Errorf("material %d: %w", i, err)
			}
			if wm.OcclusionTexture.Strength != nil {
				m.SetOcclusionStrength(*wm.OcclusionTexture.Strength)
			}
		}
		if wm.EmissiveTexture != nil {
			if err := r.bindTexture(m.SetEmissiveTexture, m.EmissiveTextureInfo(), wm.EmissiveTexture); err != nil {
				return fmt.Errorf("material %d: %w", i, err)
			}
		}
		r.c.Materials = append(r.c.Materials, m)
	}
	return nil
}

// bindTexture resolves a textureInfo through the texture and sampler
// tables onto a material slot.
func (r *reader) bindTexture(set func(*model.Texture) error, info *model.TextureInfo, wi *wire.TextureInfo) error {
	wt, err := at(r.jd.JSON.Textures, wi.Index, "texture")
	if err != nil {
		return err
	}
	if wt.Source == nil {
		return nil
	}
	tex, err := pick(r.c.Textures, *wt.Source, "image")
	if err != nil {
		return err
	}
	if err := set(tex); err != nil {
		return err
	}
	info.TexCoord = wi.TexCoord
	if wt.Sampler != nil {
		ws, err := at(r.jd.JSON.Samplers, *wt.Sampler, "sampler")
		if err != nil {
			return err
		}
		info.MagFilter = ws.MagFilter
		info.MinFilter = ws.MinFilter
		if ws.WrapS != nil {
			info.WrapS = *ws.WrapS
		}
		if ws.WrapT != nil {
			info.WrapT = *ws.WrapT
		}
	}
	return nil
}

func (r *reader) meshes() error {
	for i := range r.jd.JSON.Meshes {
		wm := &r.jd.JSON.Meshes[i]
		m := r.doc.CreateMesh(wm.Name)
		m.SetExtras(wm.Extras)
		m.SetWeights(wm.Weights)
		for pi := range wm.Primitives {
			wp := &wm.Primitives[pi]
			p := r.doc.CreatePrimitive()
			p.SetExtras(wp.Extras)
			if wp.Mode != nil {
				p.SetMode(*wp.Mode)
			}
			if err := r.bindAttribs(wp.Attributes, p.SetAttribute); err != nil {
				return fmt.Errorf("mesh %d primitive %d: %w", i, pi, err)
			}
			if wp.Indices != nil {
				a, err := pick(r.c.Accessors, *wp.Indices, "accessor")
				if err != nil {
					return fmt.Errorf("mesh %d primitive %d indices: %w", i, pi, err)
				}
				if err := p.SetIndices(a); err != nil {
					return err
				}
			}
			if wp.Material != nil {
				mat, err := pick(r.c.Materials, *wp.Material, "material")
				if err != nil {
					return fmt.Errorf("mesh %d primitive %d: %w", i, pi, err)
				}
				if err := p.SetMaterial(mat); err != nil {
					return err
				}
			}
			for _, wt := range wp.Targets {
				t := r.doc.CreatePrimitiveTarget("")
				if err := r.bindAttribs(wt, t.SetAttribute); err != nil {
					return fmt.Errorf("mesh %d primitive %d target: %w", i, pi, err)
				}
				if err := p.AddTarget(t); err != nil {
					return err
				}
			}
			if err := m.AddPrimitive(p); err != nil {
				return err
			}
		}
		r.c.Meshes = append(r.c.Meshes, m)
	}
	return nil
}

// bindAttribs binds attributes in sorted-semantic order, matching the
// deterministic order the writer emits.
func (r *reader) bindAttribs(attrs map[string]int, set func(string, *model.Accessor) error) error {
	for _, semantic := range slices.Sorted(maps.Keys(attrs)) {
		a, err := pick(r.c.Accessors, attrs[semantic], "accessor")
		if err != nil {
			return fmt.Errorf("attribute %s: %w", semantic, err)
		}
		if err := set(semantic, a); err != nil {
			return err
		}
	}
	return nil
}

func (r *reader) cameras() error {
	for i := range r.jd.JSON.Cameras {
		wc := &r.jd.JSON.Cameras[i]
		c := r.doc.CreateCamera(wc.Name)
		c.SetExtras(wc.Extras)
		switch wc.Type {
		case "perspective":
			if wc.Perspective == nil {
				return fmt.Errorf("%w: camera %d: perspective camera without projection", wire.ErrFormat, i)
			}
			p := *wc.Perspective
			c.SetPerspective(&p)
		case "orthographic":
			if wc.Orthographic == nil {
				return fmt.Errorf("%w: camera %d: orthographic camera without projection", wire.ErrFormat, i)
			}
			o := *wc.Orthographic
			c.SetOrthographic(&o)
		default:
			return fmt.Errorf("%w: camera %d: unknown type %q", wire.ErrFormat, i, wc.Type)
		}
		r.c.Cameras = append(r.c.Cameras, c)
	}
	return nil
}

func (r *reader) nodes() error {
	for i := range r.jd.JSON.Nodes {
		wn := &r.jd.JSON.Nodes[i]
		n := r.doc.CreateNode(wn.Name)
		n.SetExtras(wn.Extras)
		if wn.Matrix != nil {
			m := *wn.Matrix
			n.SetMatrix(&m)
		}
		if wn.Translation != nil {
			n.SetTranslation(*wn.Translation)
		}
		if wn.Rotation != nil {
			n.SetRotation(*wn.Rotation)
		}
		if wn.Scale != nil {
			n.SetScale(*wn.Scale)
		}
		n.SetWeights(wn.Weights)
		if wn.Mesh != nil {
			m, err := pick(r.c.Meshes, *wn.Mesh, "mesh")
			if err != nil {
				return fmt.Errorf("node %d: %w", i, err)
			}
			if err := n.SetMesh(m); err != nil {
				return err
			}
		}
		if wn.Camera != nil {
			c, err := pick(r.c.Cameras, *wn.Camera, "camera")
			if err != nil {
				return fmt.Errorf("node %d: %w", i, err)
			}
			if err := n.SetCamera(c); err != nil {
				return err
			}
		}
		r.c.Nodes = append(r.c.Nodes, n)
	}
	// children resolve after every node exists
	for i := range r.jd.JSON.Nodes {
		for _, ci := range r.jd.JSON.Nodes[i].Children {
			c, err := pick(r.c.Nodes, ci, "node")
			if err != nil {
				return fmt.Errorf("node %d children: %w", i, err)
			}
			if err := r.c.Nodes[i].AddChild(c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *reader) skins() error {
	for i := range r.jd.JSON.Skins {
		ws := &r.jd.JSON.Skins[i]
		s := r.doc.CreateSkin(ws.Name)
		s.SetExtras(ws.Extras)
		for _, ji := range ws.Joints {
			j, err := pick(r.c.Nodes, ji, "node")
			if err != nil {
				return fmt.Errorf("skin %d joints: %w", i, err)
			}
			if err := s.AddJoint(j); err != nil {
				return err
			}
		}
		if ws.Skeleton != nil {
			n, err := pick(r.c.Nodes, *ws.Skeleton, "node")
			if err != nil {
				return fmt.Errorf("skin %d skeleton: %w", i, err)
			}
			if err := s.SetSkeleton(n); err != nil {
				return err
			}
		}
		if ws.InverseBindMatrices != nil {
			a, err := pick(r.c.Accessors, *ws.InverseBindMatrices, "accessor")
			if err != nil {
				return fmt.Errorf("skin %d inverseBindMatrices: %w", i, err)
			}
			if err := s.SetInverseBindMatrices(a); err != nil {
				return err
			}
		}
		r.c.Skins = append(r.c.Skins, s)
	}
	// node skin refs resolve after every skin exists
	for i := range r.jd.JSON.Nodes {
		if si := r.jd.JSON.Nodes[i].Skin; si != nil {
			s, err := pick(r.c.Skins, *si, "skin")
			if err != nil {
				return fmt.Errorf("node %d skin: %w", i, err)
			}
			if err := r.c.Nodes[i].SetSkin(s); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *reader) scenes() error {
	for i := range r.jd.JSON.Scenes {
		ws := &r.jd.JSON.Scenes[i]
		s := r.doc.CreateScene(ws.Name)
		s.SetExtras(ws.Extras)
		for _, ni := range ws.Nodes {
			n, err := pick(r.c.Nodes, ni, "node")
			if err != nil {
				return fmt.Errorf("scene %d nodes: %w", i, err)
			}
			if err := s.AddChild(n); err != nil {
				return err
			}
		}
		r.c.Scenes = append(r.c.Scenes, s)
	}
	if si := r.jd.JSON.Scene; si != nil {
		s, err := pick(r.c.Scenes, *si, "scene")
		if err != nil {
			return err
		}
		if err := r.doc.Root().SetDefaultScene(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *reader) animations() error {
	for i := range r.jd.JSON.Animations {
		wa := &r.jd.JSON.Animations[i]
		anim := r.doc.CreateAnimation(wa.Name)
		anim.SetExtras(wa.Extras)
		samplers := make([]*model.AnimationSampler, 0, len(wa.Samplers))
		for si := range wa.Samplers {
			ws := &wa.Samplers[si]
			s := r.doc.CreateAnimationSampler()
			s.SetExtras(ws.Extras)
			if ws.Interpolation != "" {
				s.SetInterpolation(ws.Interpolation)
			}
			in, err := pick(r.c.Accessors, ws.Input, "accessor")
			if err != nil {
				return fmt.Errorf("animation %d sampler %d input: %w", i, si, err)
			}
			if err := s.SetInput(in); err != nil {
				return err
			}
			out, err := pick(r.c.Accessors, ws.Output, "accessor")
			if err != nil {
				return fmt.Errorf("animation %d sampler %d output: %w", i, si, err)
			}
			if err := s.SetOutput(out); err != nil {
				return err
			}
			if err := anim.AddSampler(s); err != nil {
				return err
			}
			samplers = append(samplers, s)
		}
		for ci := range wa.Channels {
			wc := &wa.Channels[ci]
			c := r.doc.CreateAnimationChannel()
			c.SetExtras(wc.Extras)
			c.SetTargetPath(wc.Target.Path)
			if wc.Target.Node != nil {
				n, err := pick(r.c.Nodes, *wc.Target.Node, "node")
				if err != nil {
					return fmt.Errorf("animation %d channel %d: %w", i, ci, err)
				}
				if err := c.SetTargetNode(n); err != nil {
					return err
				}
			}
			if wc.Sampler < 0 || wc.Sampler >= len(samplers) {
				return fmt.Errorf("%w: animation %d channel %d: sampler index %d out of range", wire.ErrFormat, i, ci, wc.Sampler)
			}
			if err := c.SetSampler(samplers[wc.Sampler]); err != nil {
				return err
			}
			if err := anim.AddChannel(c); err != nil {
				return err
			}
		}
		r.c.Animations = append(r.c.Animations, anim)
	}
	return nil
}

func (r *reader) readHooks() error {
	for _, x := range r.exts {
		if debug.Ext() {
			debug.Logf("ext: read %s", x.ExtensionName())
		}
		if err := x.Read(r.c); err != nil {
			return fmt.Errorf("extension %s read: %w", x.ExtensionName(), err)
		}
	}
	return nil
}

func (r *reader) rootProps() error {
	root := r.doc.Root()
	root.SetGenerator(r.jd.JSON.Asset.Generator)
	root.SetCopyright(r.jd.JSON.Asset.Copyright)
	root.SetExtras(r.jd.JSON.Extras)
	return nil
}

func at[T any](s []T, i int, what string) (*T, error) {
	if i < 0 || i >= len(s) {
		return nil, fmt.Errorf("%w: %s index %d out of range [0,%d)", wire.ErrFormat, what, i, len(s))
	}
	return &s[i], nil
}

func pick[T any](s []T, i int, what string) (T, error) {
	var zero T
	if i < 0 || i >= len(s) {
		return zero, fmt.Errorf("%w: %s index %d out of range [0,%d)", wire.ErrFormat, what, i, len(s))
	}
	return s[i], nil
}

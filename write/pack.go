package write

import (
	"encoding/base64"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/h2non/filetype"

	"github.com/sceneform/gltf/bin"
	"github.com/sceneform/gltf/model"
	"github.com/sceneform/gltf/wire"
)

// placement records where an accessor's elements landed inside an
// already-emitted interleaved view.
type placement struct {
	view   int
	offset int
}

// target returns the buffer an accessor's bytes go to: its bound buffer,
// or the document's first (created on demand) buffer.
func (w *writer) target(a *model.Accessor) *model.Buffer {
	if b := a.Buffer(); b != nil {
		return b
	}
	return w.fallbackBuffer()
}

func (w *writer) fallbackBuffer() *model.Buffer {
	if w.defaultBuf == nil {
		if bufs := w.root.ListBuffers(); len(bufs) > 0 {
			w.defaultBuf = bufs[0]
		} else {
			w.defaultBuf = w.doc.CreateBuffer("")
		}
	}
	return w.defaultBuf
}

// emitView appends data to b's payload on a 4-byte boundary and records a
// bufferView for it. The view's buffer index is provisional until the
// buffers stage assigns final indices.
func (w *writer) emitView(b *model.Buffer, data []byte, stride, target *int) int {
	buf := w.bufBytes[b]
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}
	off := len(buf)
	w.bufBytes[b] = append(buf, data...)
	vi := len(w.json.BufferViews)
	w.json.BufferViews = append(w.json.BufferViews, wire.BufferView{
		ByteOffset: off,
		ByteLength: len(data),
		ByteStride: stride,
		Target:     target,
	})
	w.viewOwner = append(w.viewOwner, b)
	return vi
}

// accessorUsage maps accessors to the GL buffer target implied by how the
// meshes use them. Accessors used only by skins or animations get none.
func (w *writer) accessorUsage() map[*model.Accessor]int {
	usage := map[*model.Accessor]int{}
	for _, m := range w.root.ListMeshes() {
		for _, p := range m.ListPrimitives() {
			for _, sem := range p.Semantics() {
				usage[p.Attribute(sem)] = wire.TargetArrayBuffer
			}
			for _, t := range p.ListTargets() {
				for _, sem := range t.Semantics() {
					usage[t.Attribute(sem)] = wire.TargetArrayBuffer
				}
			}
			if a := p.Indices(); a != nil {
				usage[a] = wire.TargetElementArrayBuffer
			}
		}
	}
	return usage
}

func (w *writer) accessors() error {
	accs := w.accOrder
	for _, a := range accs {
		if a.Array() == nil {
			return fmt.Errorf("%w: accessor %q has no element data", wire.ErrUsage, a.Name())
		}
	}
	usage := w.accessorUsage()
	w.placements = map[*model.Accessor]placement{}
	if w.opts.layout == Interleaved {
		if err := w.planInterleaved(); err != nil {
			return err
		}
	}

	for _, a := range accs {
		comps := a.Components()
		wa := wire.Accessor{
			Name:          a.Name(),
			ComponentType: a.ComponentType(),
			Normalized:    a.Normalized(),
			Count:         a.Count(),
			Type:          a.ElementType(),
			Extras:        a.Extras(),
		}
		wa.Min, wa.Max = bin.Bounds(a.Array(), comps)

		if pl, ok := w.placements[a]; ok {
			v := pl.view
			wa.BufferView = &v
			wa.ByteOffset = pl.offset
		} else if done, err := w.emitSparse(a, &wa); err != nil {
			return err
		} else if !done {
			sz, err := bin.ElementSize(a.ComponentType(), a.ElementType())
			if err != nil {
				return fmt.Errorf("accessor %q: %w", a.Name(), err)
			}
			data := make([]byte, sz*a.Count())
			if err := bin.Encode(data, 0, 0, a.Array(), a.ComponentType(), a.ElementType(), a.Normalized()); err != nil {
				return fmt.Errorf("accessor %q: %w", a.Name(), err)
			}
			var tgt, stride *int
			if u := usage[a]; u != 0 {
				tgt = &u
			}
			// separate layout states the element size as the stride on
			// vertex views; GL wants strides in multiples of four
			if w.opts.layout == Separate && usage[a] == wire.TargetArrayBuffer && sz%4 == 0 {
				s := sz
				stride = &s
			}
			vi := w.emitView(w.target(a), data, stride, tgt)
			wa.BufferView = &vi
		}
		w.json.Accessors = append(w.json.Accessors, wa)
	}
	return nil
}

// planInterleaved packs each primitive's vertex attributes into one
// stride-addressed view. Attributes that differ in count or buffer from
// the primitive's first, or that are sparse, fall back to separate views.
func (w *writer) planInterleaved() error {
	for _, m := range w.root.ListMeshes() {
		for _, p := range m.ListPrimitives() {
			var group []*model.Accessor
			var b *model.Buffer
			count := -1
			// sorted-semantic order keeps member offsets stable across
			// a write/read/write cycle
			sems := slices.Clone(p.Semantics())
			slices.Sort(sems)
			for _, sem := range sems {
				a := p.Attribute(sem)
				if _, done := w.placements[a]; done || a.Sparse() {
					continue
				}
				if count == -1 {
					count = a.Count()
					b = w.target(a)
				}
				if a.Count() != count || w.target(a) != b {
					continue
				}
				group = append(group, a)
			}
			if len(group) < 2 {
				continue
			}
			if err := w.emitInterleaved(b, group, count); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *writer) emitInterleaved(b *model.Buffer, group []*model.Accessor, count int) error {
	offsets := make([]int, len(group))
	stride := 0
	for i, a := range group {
		sz, err := bin.ElementSize(a.ComponentType(), a.ElementType())
		if err != nil {
			return fmt.Errorf("accessor %q: %w", a.Name(), err)
		}
		offsets[i] = stride
		// element slots stay 4-byte aligned within the stride
		stride += (sz + 3) &^ 3
	}
	data := make([]byte, stride*count)
	for i, a := range group {
		if err := bin.Encode(data, offsets[i], stride, a.Array(), a.ComponentType(), a.ElementType(), a.Normalized()); err != nil {
			return fmt.Errorf("accessor %q: %w", a.Name(), err)
		}
	}
	st := stride
	tgt := wire.TargetArrayBuffer
	vi := w.emitView(b, data, &st, &tgt)
	for i, a := range group {
		w.placements[a] = placement{view: vi, offset: offsets[i]}
	}
	return nil
}

// emitSparse writes an accessor flagged sparse as index/value views over
// an implicit all-zero base. An all-zero array has no entries to encode
// and falls back to dense output.
func (w *writer) emitSparse(a *model.Accessor, wa *wire.Accessor) (bool, error) {
	if !a.Sparse() {
		return false, nil
	}
	idxs, vals := bin.SparseEntries(a.Array(), a.Components())
	if len(idxs) == 0 {
		return false, nil
	}
	ict := bin.SparseIndexType(idxs[len(idxs)-1])
	isz, err := ict.Size()
	if err != nil {
		return false, err
	}
	fidx := make([]float64, len(idxs))
	for i, v := range idxs {
		fidx[i] = float64(v)
	}
	idata := make([]byte, isz*len(idxs))
	if err := bin.Encode(idata, 0, 0, fidx, ict, wire.Scalar, false); err != nil {
		return false, fmt.Errorf("accessor %q sparse indices: %w", a.Name(), err)
	}
	esz, err := bin.ElementSize(a.ComponentType(), a.ElementType())
	if err != nil {
		return false, fmt.Errorf("accessor %q: %w", a.Name(), err)
	}
	vdata := make([]byte, esz*len(idxs))
	if err := bin.Encode(vdata, 0, 0, vals, a.ComponentType(), a.ElementType(), a.Normalized()); err != nil {
		return false, fmt.Errorf("accessor %q sparse values: %w", a.Name(), err)
	}
	b := w.target(a)
	iv := w.emitView(b, idata, nil, nil)
	vv := w.emitView(b, vdata, nil, nil)
	wa.Sparse = &wire.AccessorSparse{
		Count:   len(idxs),
		Indices: wire.AccessorSparseIndices{BufferView: iv, ComponentType: ict},
		Values:  wire.AccessorSparseValues{BufferView: vv},
	}
	return true, nil
}

func (w *writer) images() error {
	for i, t := range w.root.ListTextures() {
		img := wire.Image{Name: t.Name(), MimeType: t.MimeType(), Extras: t.Extras()}
		data := t.Image()
		switch {
		case data == nil:
			if t.URI() == "" {
				return fmt.Errorf("%w: texture %q has no image payload and no URI", wire.ErrUsage, t.Name())
			}
			img.URI = t.URI()
		case w.glb:
			vi := w.emitView(w.fallbackBuffer(), data, nil, nil)
			img.BufferView = &vi
		case w.opts.embed:
			img.URI = dataURI(imageMIME(t, data), data)
		default:
			uri := t.URI()
			if uri == "" {
				uri = fmt.Sprintf("%s_%d%s", w.opts.basename, i, imageExt(t, data))
			}
			uri = w.claimURI(uri)
			img.URI = uri
			w.resources[uri] = data
		}
		w.json.Images = append(w.json.Images, img)
	}
	return nil
}

// textureInfo resolves a material slot into a wire textureInfo, creating
// (or reusing) the texture and sampler entries its state implies.
func (w *writer) textureInfo(t *model.Texture, info *model.TextureInfo) (*wire.TextureInfo, error) {
	src, ok := w.c.TextureIndex[t]
	if !ok {
		return nil, fmt.Errorf("%w: texture %q is not part of this document", wire.ErrUsage, t.Name())
	}

	sk := samplerKey{mag: -1, min: -1, wrapS: info.WrapS, wrapT: info.WrapT}
	if info.MagFilter != nil {
		sk.mag = *info.MagFilter
	}
	if info.MinFilter != nil {
		sk.min = *info.MinFilter
	}
	samplerIdx := -1
	if sk != (samplerKey{mag: -1, min: -1, wrapS: wire.WrapRepeat, wrapT: wire.WrapRepeat}) {
		if w.samplerCache == nil {
			w.samplerCache = map[samplerKey]int{}
		}
		si, ok := w.samplerCache[sk]
		if !ok {
			si = len(w.json.Samplers)
			ws := wire.Sampler{}
			if sk.mag != -1 {
				v := sk.mag
				ws.MagFilter = &v
			}
			if sk.min != -1 {
				v := sk.min
				ws.MinFilter = &v
			}
			if sk.wrapS != wire.WrapRepeat {
				v := sk.wrapS
				ws.WrapS = &v
			}
			if sk.wrapT != wire.WrapRepeat {
				v := sk.wrapT
				ws.WrapT = &v
			}
			w.json.Samplers = append(w.json.Samplers, ws)
			w.samplerCache[sk] = si
		}
		samplerIdx = si
	}

	tk := texKey{src: src, sampler: samplerIdx}
	if w.texCache == nil {
		w.texCache = map[texKey]int{}
	}
	ti, ok := w.texCache[tk]
	if !ok {
		ti = len(w.json.Textures)
		s := src
		wt := wire.Texture{Source: &s}
		if samplerIdx != -1 {
			si := samplerIdx
			wt.Sampler = &si
		}
		w.json.Textures = append(w.json.Textures, wt)
		w.texCache[tk] = ti
	}
	return &wire.TextureInfo{Index: ti, TexCoord: info.TexCoord}, nil
}

type samplerKey struct {
	mag, min, wrapS, wrapT int
}

type texKey struct {
	src, sampler int
}

// buffers finalizes buffer payloads: buffers that accumulated no bytes
// are dropped, the rest get final indices, URIs, and resource entries.
func (w *writer) buffers() error {
	finalIdx := map[*model.Buffer]int{}
	var nonEmpty int
	for _, b := range w.root.ListBuffers() {
		data := w.bufBytes[b]
		if len(data) == 0 {
			w.logger().Debug("dropping buffer with no views", "name", b.Name())
			continue
		}
		nonEmpty++
		idx := len(w.json.Buffers)
		finalIdx[b] = idx
		w.c.BufferIndex[b] = idx
		wb := wire.Buffer{Name: b.Name(), ByteLength: len(data), Extras: b.Extras()}
		switch {
		case w.glb:
			w.resources[wire.GLBResourceKey] = data
		case w.opts.embed:
			wb.URI = dataURI("application/octet-stream", data)
		default:
			uri := b.URI()
			if uri == "" {
				uri = fmt.Sprintf("%s_%d.bin", w.opts.basename, idx)
			}
			uri = w.claimURI(uri)
			wb.URI = uri
			w.resources[uri] = data
		}
		w.json.Buffers = append(w.json.Buffers, wb)
	}
	if w.glb && nonEmpty > 1 {
		return fmt.Errorf("%w: GLB output requires a single buffer, document packs %d", wire.ErrUsage, nonEmpty)
	}
	for i := range w.json.BufferViews {
		w.json.BufferViews[i].Buffer = finalIdx[w.viewOwner[i]]
	}
	return nil
}

// claimURI reserves uri among the emitted resources, suffixing the stem
// on collision.
func (w *writer) claimURI(uri string) string {
	if _, taken := w.resources[uri]; !taken {
		return uri
	}
	ext := path.Ext(uri)
	stem := strings.TrimSuffix(uri, ext)
	for n := 1; ; n++ {
		c := fmt.Sprintf("%s_%d%s", stem, n, ext)
		if _, taken := w.resources[c]; !taken {
			return c
		}
	}
}

func dataURI(mime string, data []byte) string {
	if mime == "" {
		mime = "application/octet-stream"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// imageMIME prefers the texture's declared MIME type, then sniffs.
func imageMIME(t *model.Texture, data []byte) string {
	if t.MimeType() != "" {
		return t.MimeType()
	}
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	return ""
}

// imageExt picks a file extension for a generated image URI.
func imageExt(t *model.Texture, data []byte) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return "." + kind.Extension
	}
	switch t.MimeType() {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/ktx2":
		return ".ktx2"
	}
	return ".bin"
}

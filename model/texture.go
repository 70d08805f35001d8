package model

import "github.com/sceneform/gltf/wire"

// Texture holds an image payload (or a URI pointing at one) plus its MIME
// type. Per-slot sampling state lives in TextureInfo on the material that
// references the texture.
type Texture struct {
	propBase
	uri      string
	mimeType string
	image    []byte
}

// URI returns the explicit resource name, or "" when the writer should
// generate one.
func (t *Texture) URI() string { return t.uri }

func (t *Texture) SetURI(uri string) { t.uri = uri }

func (t *Texture) MimeType() string { return t.mimeType }

func (t *Texture) SetMimeType(v string) { t.mimeType = v }

// Image returns the raw encoded image bytes. Nil on a referenced texture
// means the backing resource could not be resolved under non-strict
// reading.
func (t *Texture) Image() []byte { return t.image }

func (t *Texture) SetImage(d []byte) { t.image = d }

// TextureInfo carries the UV set selection and sampler state of one
// material texture slot. Each (material, slot) pair owns its own value;
// infos are never shared across slots.
type TextureInfo struct {
	TexCoord  int
	MagFilter *int
	MinFilter *int
	WrapS     int
	WrapT     int
}

func defaultTextureInfo() TextureInfo {
	return TextureInfo{WrapS: wire.WrapRepeat, WrapT: wire.WrapRepeat}
}

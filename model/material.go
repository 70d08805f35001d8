package model

import "github.com/sceneform/gltf/graph"

// Material is a PBR metallic-roughness material with the standard five
// texture slots. Factors default to the glTF schema defaults.
type Material struct {
	propBase
	alphaMode   string
	alphaCutoff float64
	doubleSided bool

	baseColorFactor [4]float64
	emissiveFactor  [3]float64
	metallicFactor  float64
	roughnessFactor float64

	normalScale       float64
	occlusionStrength float64

	baseColorTexture         ref[*Texture]
	metallicRoughnessTexture ref[*Texture]
	normalTexture            ref[*Texture]
	occlusionTexture         ref[*Texture]
	emissiveTexture          ref[*Texture]

	baseColorInfo         TextureInfo
	metallicRoughnessInfo TextureInfo
	normalInfo            TextureInfo
	occlusionInfo         TextureInfo
	emissiveInfo          TextureInfo
}

type texSlot struct {
	name string
	ref  *ref[*Texture]
	info *TextureInfo
}

// slots returns the texture slots in write order.
func (m *Material) slots() []texSlot {
	return []texSlot{
		{"baseColorTexture", &m.baseColorTexture, &m.baseColorInfo},
		{"metallicRoughnessTexture", &m.metallicRoughnessTexture, &m.metallicRoughnessInfo},
		{"normalTexture", &m.normalTexture, &m.normalInfo},
		{"occlusionTexture", &m.occlusionTexture, &m.occlusionInfo},
		{"emissiveTexture", &m.emissiveTexture, &m.emissiveInfo},
	}
}

func (m *Material) AlphaMode() string { return m.alphaMode }

func (m *Material) SetAlphaMode(v string) { m.alphaMode = v }

func (m *Material) AlphaCutoff() float64 { return m.alphaCutoff }

func (m *Material) SetAlphaCutoff(v float64) { m.alphaCutoff = v }

func (m *Material) DoubleSided() bool { return m.doubleSided }

func (m *Material) SetDoubleSided(v bool) { m.doubleSided = v }

func (m *Material) BaseColorFactor() [4]float64 { return m.baseColorFactor }

func (m *Material) SetBaseColorFactor(v [4]float64) { m.baseColorFactor = v }

func (m *Material) EmissiveFactor() [3]float64 { return m.emissiveFactor }

func (m *Material) SetEmissiveFactor(v [3]float64) { m.emissiveFactor = v }

func (m *Material) MetallicFactor() float64 { return m.metallicFactor }

func (m *Material) SetMetallicFactor(v float64) { m.metallicFactor = v }

func (m *Material) RoughnessFactor() float64 { return m.roughnessFactor }

func (m *Material) SetRoughnessFactor(v float64) { m.roughnessFactor = v }

func (m *Material) NormalScale() float64 { return m.normalScale }

func (m *Material) SetNormalScale(v float64) { m.normalScale = v }

func (m *Material) OcclusionStrength() float64 { return m.occlusionStrength }

func (m *Material) SetOcclusionStrength(v float64) { m.occlusionStrength = v }

func (m *Material) BaseColorTexture() *Texture { return m.baseColorTexture.get() }

func (m *Material) SetBaseColorTexture(t *Texture) error {
	return setRef(m, "baseColorTexture", &m.baseColorTexture, t, graph.Shared)
}

// BaseColorTextureInfo returns the slot-owned sampling state for the base
// color slot. The pointer stays valid for the material's lifetime.
func (m *Material) BaseColorTextureInfo() *TextureInfo { return &m.baseColorInfo }

func (m *Material) MetallicRoughnessTexture() *Texture { return m.metallicRoughnessTexture.get() }

func (m *Material) SetMetallicRoughnessTexture(t *Texture) error {
	return setRef(m, "metallicRoughnessTexture", &m.metallicRoughnessTexture, t, graph.Shared)
}

func (m *Material) MetallicRoughnessTextureInfo() *TextureInfo { return &m.metallicRoughnessInfo }

func (m *Material) NormalTexture() *Texture { return m.normalTexture.get() }

func (m *Material) SetNormalTexture(t *Texture) error {
	return setRef(m, "normalTexture", &m.normalTexture, t, graph.Shared)
}

func (m *Material) NormalTextureInfo() *TextureInfo { return &m.normalInfo }

func (m *Material) OcclusionTexture() *Texture { return m.occlusionTexture.get() }

func (m *Material) SetOcclusionTexture(t *Texture) error {
	return setRef(m, "occlusionTexture", &m.occlusionTexture, t, graph.Shared)
}

func (m *Material) OcclusionTextureInfo() *TextureInfo { return &m.occlusionInfo }

func (m *Material) EmissiveTexture() *Texture { return m.emissiveTexture.get() }

func (m *Material) SetEmissiveTexture(t *Texture) error {
	return setRef(m, "emissiveTexture", &m.emissiveTexture, t, graph.Shared)
}

func (m *Material) EmissiveTextureInfo() *TextureInfo { return &m.emissiveInfo }

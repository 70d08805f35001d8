package wire

import "encoding/json"

// Extensions carries the raw JSON of a property's extension objects, keyed
// by extension name. The core never interprets the payloads; the ext
// package routes them to registered extensions.
type Extensions map[string]json.RawMessage

// Document is the root of a glTF JSON tree.
type Document struct {
	Asset              Asset           `json:"asset"`
	ExtensionsUsed     []string        `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string        `json:"extensionsRequired,omitempty"`
	Scene              *int            `json:"scene,omitempty"`
	Scenes             []Scene         `json:"scenes,omitempty"`
	Nodes              []Node          `json:"nodes,omitempty"`
	Cameras            []Camera        `json:"cameras,omitempty"`
	Meshes             []Mesh          `json:"meshes,omitempty"`
	Materials          []Material      `json:"materials,omitempty"`
	Textures           []Texture       `json:"textures,omitempty"`
	Images             []Image         `json:"images,omitempty"`
	Samplers           []Sampler       `json:"samplers,omitempty"`
	Accessors          []Accessor      `json:"accessors,omitempty"`
	BufferViews        []BufferView    `json:"bufferViews,omitempty"`
	Buffers            []Buffer        `json:"buffers,omitempty"`
	Skins              []Skin          `json:"skins,omitempty"`
	Animations         []Animation     `json:"animations,omitempty"`
	Extensions         Extensions      `json:"extensions,omitempty"`
	Extras             json.RawMessage `json:"extras,omitempty"`
}

type Asset struct {
	Version    string `json:"version"`
	MinVersion string `json:"minVersion,omitempty"`
	Generator  string `json:"generator,omitempty"`
	Copyright  string `json:"copyright,omitempty"`
}

type Scene struct {
	Name       string          `json:"name,omitempty"`
	Nodes      []int           `json:"nodes,omitempty"`
	Extensions Extensions      `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type Node struct {
	Name        string          `json:"name,omitempty"`
	Children    []int           `json:"children,omitempty"`
	Mesh        *int            `json:"mesh,omitempty"`
	Camera      *int            `json:"camera,omitempty"`
	Skin        *int            `json:"skin,omitempty"`
	Matrix      *[16]float64    `json:"matrix,omitempty"`
	Translation *[3]float64     `json:"translation,omitempty"`
	Rotation    *[4]float64     `json:"rotation,omitempty"`
	Scale       *[3]float64     `json:"scale,omitempty"`
	Weights     []float64       `json:"weights,omitempty"`
	Extensions  Extensions      `json:"extensions,omitempty"`
	Extras      json.RawMessage `json:"extras,omitempty"`
}

type Camera struct {
	Name         string              `json:"name,omitempty"`
	Type         string              `json:"type"`
	Perspective  *CameraPerspective  `json:"perspective,omitempty"`
	Orthographic *CameraOrthographic `json:"orthographic,omitempty"`
	Extensions   Extensions          `json:"extensions,omitempty"`
	Extras       json.RawMessage     `json:"extras,omitempty"`
}

type CameraPerspective struct {
	AspectRatio *float64 `json:"aspectRatio,omitempty"`
	YFov        float64  `json:"yfov"`
	ZFar        *float64 `json:"zfar,omitempty"`
	ZNear       float64  `json:"znear"`
}

type CameraOrthographic struct {
	XMag  float64 `json:"xmag"`
	YMag  float64 `json:"ymag"`
	ZFar  float64 `json:"zfar"`
	ZNear float64 `json:"znear"`
}

type Mesh struct {
	Name       string          `json:"name,omitempty"`
	Primitives []Primitive     `json:"primitives"`
	Weights    []float64       `json:"weights,omitempty"`
	Extensions Extensions      `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type Primitive struct {
	Attributes map[string]int   `json:"attributes"`
	Indices    *int             `json:"indices,omitempty"`
	Material   *int             `json:"material,omitempty"`
	Mode       *int             `json:"mode,omitempty"`
	Targets    []map[string]int `json:"targets,omitempty"`
	Extensions Extensions       `json:"extensions,omitempty"`
	Extras     json.RawMessage  `json:"extras,omitempty"`
}

type Material struct {
	Name                 string                `json:"name,omitempty"`
	PBRMetallicRoughness *PBRMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
	NormalTexture        *NormalTextureInfo    `json:"normalTexture,omitempty"`
	OcclusionTexture     *OcclusionTextureInfo `json:"occlusionTexture,omitempty"`
	EmissiveTexture      *TextureInfo          `json:"emissiveTexture,omitempty"`
	EmissiveFactor       *[3]float64           `json:"emissiveFactor,omitempty"`
	AlphaMode            string                `json:"alphaMode,omitempty"`
	AlphaCutoff          *float64              `json:"alphaCutoff,omitempty"`
	DoubleSided          bool                  `json:"doubleSided,omitempty"`
	Extensions           Extensions            `json:"extensions,omitempty"`
	Extras               json.RawMessage       `json:"extras,omitempty"`
}

type PBRMetallicRoughness struct {
	BaseColorFactor          *[4]float64     `json:"baseColorFactor,omitempty"`
	BaseColorTexture         *TextureInfo    `json:"baseColorTexture,omitempty"`
	MetallicFactor           *float64        `json:"metallicFactor,omitempty"`
	RoughnessFactor          *float64        `json:"roughnessFactor,omitempty"`
	MetallicRoughnessTexture *TextureInfo    `json:"metallicRoughnessTexture,omitempty"`
	Extensions               Extensions      `json:"extensions,omitempty"`
	Extras                   json.RawMessage `json:"extras,omitempty"`
}

type TextureInfo struct {
	Index      int             `json:"index"`
	TexCoord   int             `json:"texCoord,omitempty"`
	Extensions Extensions      `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type NormalTextureInfo struct {
	TextureInfo
	Scale *float64 `json:"scale,omitempty"`
}

type OcclusionTextureInfo struct {
	TextureInfo
	Strength *float64 `json:"strength,omitempty"`
}

type Texture struct {
	Name       string          `json:"name,omitempty"`
	Sampler    *int            `json:"sampler,omitempty"`
	Source     *int            `json:"source,omitempty"`
	Extensions Extensions      `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type Image struct {
	Name       string          `json:"name,omitempty"`
	URI        string          `json:"uri,omitempty"`
	MimeType   string          `json:"mimeType,omitempty"`
	BufferView *int            `json:"bufferView,omitempty"`
	Extensions Extensions      `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type Sampler struct {
	Name       string          `json:"name,omitempty"`
	MagFilter  *int            `json:"magFilter,omitempty"`
	MinFilter  *int            `json:"minFilter,omitempty"`
	WrapS      *int            `json:"wrapS,omitempty"`
	WrapT      *int            `json:"wrapT,omitempty"`
	Extensions Extensions      `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type Accessor struct {
	Name          string          `json:"name,omitempty"`
	BufferView    *int            `json:"bufferView,omitempty"`
	ByteOffset    int             `json:"byteOffset,omitempty"`
	ComponentType ComponentType   `json:"componentType"`
	Normalized    bool            `json:"normalized,omitempty"`
	Count         int             `json:"count"`
	Type          ElementType     `json:"type"`
	Max           []float64       `json:"max,omitempty"`
	Min           []float64       `json:"min,omitempty"`
	Sparse        *AccessorSparse `json:"sparse,omitempty"`
	Extensions    Extensions      `json:"extensions,omitempty"`
	Extras        json.RawMessage `json:"extras,omitempty"`
}

type AccessorSparse struct {
	Count   int                   `json:"count"`
	Indices AccessorSparseIndices `json:"indices"`
	Values  AccessorSparseValues  `json:"values"`
}

type AccessorSparseIndices struct {
	BufferView    int           `json:"bufferView"`
	ByteOffset    int           `json:"byteOffset,omitempty"`
	ComponentType ComponentType `json:"componentType"`
}

type AccessorSparseValues struct {
	BufferView int `json:"bufferView"`
	ByteOffset int `json:"byteOffset,omitempty"`
}

type BufferView struct {
	Name       string          `json:"name,omitempty"`
	Buffer     int             `json:"buffer"`
	ByteOffset int             `json:"byteOffset,omitempty"`
	ByteLength int             `json:"byteLength"`
	ByteStride *int            `json:"byteStride,omitempty"`
	Target     *int            `json:"target,omitempty"`
	Extensions Extensions      `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type Buffer struct {
	Name       string          `json:"name,omitempty"`
	URI        string          `json:"uri,omitempty"`
	ByteLength int             `json:"byteLength"`
	Extensions Extensions      `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type Skin struct {
	Name                string          `json:"name,omitempty"`
	InverseBindMatrices *int            `json:"inverseBindMatrices,omitempty"`
	Skeleton            *int            `json:"skeleton,omitempty"`
	Joints              []int           `json:"joints"`
	Extensions          Extensions      `json:"extensions,omitempty"`
	Extras              json.RawMessage `json:"extras,omitempty"`
}

type Animation struct {
	Name       string             `json:"name,omitempty"`
	Channels   []AnimationChannel `json:"channels"`
	Samplers   []AnimationSampler `json:"samplers"`
	Extensions Extensions         `json:"extensions,omitempty"`
	Extras     json.RawMessage    `json:"extras,omitempty"`
}

type AnimationChannel struct {
	Sampler    int             `json:"sampler"`
	Target     AnimationTarget `json:"target"`
	Extensions Extensions      `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type AnimationTarget struct {
	Node       *int            `json:"node,omitempty"`
	Path       string          `json:"path"`
	Extensions Extensions      `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type AnimationSampler struct {
	Input         int             `json:"input"`
	Output        int             `json:"output"`
	Interpolation string          `json:"interpolation,omitempty"`
	Extensions    Extensions      `json:"extensions,omitempty"`
	Extras        json.RawMessage `json:"extras,omitempty"`
}

package model

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sceneform/gltf/graph"
	"github.com/sceneform/gltf/wire"
)

// Extension identifies an extension implementation registered with a
// Document. The read/write hook surface lives in the ext package; the
// Document only needs the schema name and the required flag.
type Extension interface {
	ExtensionName() string
	Required() bool
}

// Transform is a post-construction edit applied to a Document by
// [Document.Transform]. Transforms run strictly in order; they are not part
// of the read or write pipelines.
type Transform func(ctx context.Context, d *Document) error

// Document owns one property graph, a logger, a registry of extension
// implementations, and the single live Root.
type Document struct {
	g      *graph.Arena
	logger *slog.Logger
	root   *Root

	exts     map[string]Extension
	extOrder []Extension
}

func NewDocument() *Document {
	d := &Document{
		g:      graph.New(),
		logger: slog.Default(),
		exts:   map[string]Extension{},
	}
	d.root = newRoot(d)
	return d
}

// Graph returns the property graph arena owned by this document.
func (d *Document) Graph() *graph.Arena { return d.g }

// Root returns the one live Root of this document.
func (d *Document) Root() *Root { return d.root }

func (d *Document) Logger() *slog.Logger { return d.logger }

func (d *Document) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	d.logger = l
}

// RegisterExtension adds an extension implementation keyed by its schema
// name. Registration order is preserved; registering the same name twice is
// an error.
func (d *Document) RegisterExtension(x Extension) error {
	name := x.ExtensionName()
	if name == "" {
		return fmt.Errorf("%w: extension with empty name", wire.ErrUsage)
	}
	if _, ok := d.exts[name]; ok {
		return fmt.Errorf("%w: extension %q already registered", wire.ErrUsage, name)
	}
	d.exts[name] = x
	d.extOrder = append(d.extOrder, x)
	return nil
}

// Extension returns the registered implementation for name, or nil.
func (d *Document) Extension(name string) Extension { return d.exts[name] }

// Extensions returns registered extensions in registration order.
func (d *Document) Extensions() []Extension {
	return append([]Extension(nil), d.extOrder...)
}

// Transform applies each fn to the document strictly in order, stopping at
// the first error.
func (d *Document) Transform(ctx context.Context, fns ...Transform) error {
	for _, fn := range fns {
		if err := fn(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// Dispose disposes the Root and, through ownership cascades, every live
// property of the document.
func (d *Document) Dispose() {
	d.g.Dispose(d.root.node)
}

func (d *Document) CreateBuffer(name string) *Buffer {
	b := &Buffer{}
	b.init(d, TypeBuffer, name)
	mustAdd(addRef(d.root, "buffers", &d.root.buffers, b, graph.OwnedList))
	return b
}

func (d *Document) CreateAccessor(name string) *Accessor {
	a := &Accessor{
		componentType: wire.Float,
		elementType:   wire.Scalar,
	}
	a.init(d, TypeAccessor, name)
	mustAdd(addRef(d.root, "accessors", &d.root.accessors, a, graph.OwnedList))
	return a
}

func (d *Document) CreateTexture(name string) *Texture {
	t := &Texture{}
	t.init(d, TypeTexture, name)
	mustAdd(addRef(d.root, "textures", &d.root.textures, t, graph.OwnedList))
	return t
}

func (d *Document) CreateMaterial(name string) *Material {
	m := &Material{
		alphaMode:         wire.AlphaOpaque,
		alphaCutoff:       0.5,
		baseColorFactor:   [4]float64{1, 1, 1, 1},
		metallicFactor:    1,
		roughnessFactor:   1,
		normalScale:       1,
		occlusionStrength: 1,
	}
	m.init(d, TypeMaterial, name)
	for _, slot := range m.slots() {
		*slot.info = defaultTextureInfo()
	}
	mustAdd(addRef(d.root, "materials", &d.root.materials, m, graph.OwnedList))
	return m
}

func (d *Document) CreateMesh(name string) *Mesh {
	m := &Mesh{}
	m.init(d, TypeMesh, name)
	mustAdd(addRef(d.root, "meshes", &d.root.meshes, m, graph.OwnedList))
	return m
}

// CreatePrimitive creates a detached primitive; attach it with
// [Mesh.AddPrimitive].
func (d *Document) CreatePrimitive() *Primitive {
	p := &Primitive{mode: wire.ModeTriangles}
	p.init(d, TypePrimitive, "")
	return p
}

// CreatePrimitiveTarget creates a detached morph target; attach it with
// [Primitive.AddTarget].
func (d *Document) CreatePrimitiveTarget(name string) *PrimitiveTarget {
	t := &PrimitiveTarget{}
	t.init(d, TypePrimitiveTarget, name)
	return t
}

func (d *Document) CreateNode(name string) *Node {
	n := &Node{
		rotation: [4]float64{0, 0, 0, 1},
		scale:    [3]float64{1, 1, 1},
	}
	n.init(d, TypeNode, name)
	mustAdd(addRef(d.root, "nodes", &d.root.nodes, n, graph.OwnedList))
	return n
}

func (d *Document) CreateCamera(name string) *Camera {
	c := &Camera{}
	c.init(d, TypeCamera, name)
	mustAdd(addRef(d.root, "cameras", &d.root.cameras, c, graph.OwnedList))
	return c
}

func (d *Document) CreateScene(name string) *Scene {
	s := &Scene{}
	s.init(d, TypeScene, name)
	mustAdd(addRef(d.root, "scenes", &d.root.scenes, s, graph.OwnedList))
	return s
}

func (d *Document) CreateSkin(name string) *Skin {
	s := &Skin{}
	s.init(d, TypeSkin, name)
	mustAdd(addRef(d.root, "skins", &d.root.skins, s, graph.OwnedList))
	return s
}

func (d *Document) CreateAnimation(name string) *Animation {
	a := &Animation{}
	a.init(d, TypeAnimation, name)
	mustAdd(addRef(d.root, "animations", &d.root.animations, a, graph.OwnedList))
	return a
}

// CreateAnimationChannel creates a detached channel; attach it with
// [Animation.AddChannel].
func (d *Document) CreateAnimationChannel() *AnimationChannel {
	c := &AnimationChannel{}
	c.init(d, TypeAnimationChannel, "")
	return c
}

// CreateAnimationSampler creates a detached sampler; attach it with
// [Animation.AddSampler].
func (d *Document) CreateAnimationSampler() *AnimationSampler {
	s := &AnimationSampler{interpolation: wire.InterpolationLinear}
	s.init(d, TypeAnimationSampler, "")
	return s
}

// InitExtensionProperty registers a freshly constructed extension property
// with the document's graph. Extension packages call this from their own
// constructors.
func (d *Document) InitExtensionProperty(p ExtensionProperty) {
	p.base().init(d, TypeExtension, "")
}

// mustAdd guards root-list attachment of a freshly created property, which
// cannot fail unless the model itself is broken.
func mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}

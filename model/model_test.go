package model

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sceneform/gltf/wire"
)

func TestCreateOrder(t *testing.T) {
	d := NewDocument()
	a := d.CreateNode("a")
	b := d.CreateNode("b")
	c := d.CreateNode("c")
	var got []string
	for _, n := range d.Root().ListNodes() {
		got = append(got, n.Name())
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("node order (-want +got):\n%s", diff)
	}
	_ = a
	_ = b
	_ = c
}

func TestCrossDocumentRef(t *testing.T) {
	d1 := NewDocument()
	d2 := NewDocument()
	n := d1.CreateNode("n")
	m := d2.CreateMesh("m")
	if err := n.SetMesh(m); !errors.Is(err, wire.ErrUsage) {
		t.Fatalf("cross-document SetMesh: got %v, want ErrUsage", err)
	}
	if n.Mesh() != nil {
		t.Fatal("failed SetMesh left a dangling reference")
	}
}

func TestRefToDisposed(t *testing.T) {
	d := NewDocument()
	n := d.CreateNode("n")
	m := d.CreateMesh("m")
	m.Dispose()
	if err := n.SetMesh(m); !errors.Is(err, wire.ErrUsage) {
		t.Fatalf("SetMesh on disposed mesh: got %v, want ErrUsage", err)
	}
}

func TestDisposeCascadesOwnedOnly(t *testing.T) {
	d := NewDocument()
	m := d.CreateMesh("m")
	p := d.CreatePrimitive()
	if err := m.AddPrimitive(p); err != nil {
		t.Fatal(err)
	}
	mat := d.CreateMaterial("mat")
	if err := p.SetMaterial(mat); err != nil {
		t.Fatal(err)
	}
	a := d.CreateAccessor("pos")
	if err := p.SetAttribute("POSITION", a); err != nil {
		t.Fatal(err)
	}

	m.Dispose()

	if m.Alive() || p.Alive() {
		t.Fatal("mesh cascade did not dispose owned primitive")
	}
	if !mat.Alive() || !a.Alive() {
		t.Fatal("mesh cascade disposed shared properties")
	}
	if len(d.Root().ListMeshes()) != 0 {
		t.Fatal("disposed mesh still listed")
	}
	// the shared accessor and material are still reachable from root
	if len(d.Root().ListAccessors()) != 1 || len(d.Root().ListMaterials()) != 1 {
		t.Fatal("shared properties dropped from root")
	}
}

func TestDisposeClearsInboundRefs(t *testing.T) {
	d := NewDocument()
	m := d.CreateMaterial("m")
	tex := d.CreateTexture("t")
	if err := m.SetBaseColorTexture(tex); err != nil {
		t.Fatal(err)
	}
	tex.Dispose()
	if got := m.BaseColorTexture(); got != nil {
		t.Fatalf("BaseColorTexture after dispose = %v, want nil", got)
	}
}

func TestDetachKeepsAlive(t *testing.T) {
	d := NewDocument()
	n := d.CreateNode("n")
	n.Detach()
	if !n.Alive() {
		t.Fatal("detach disposed the node")
	}
	if len(d.Root().ListNodes()) != 0 {
		t.Fatal("detached node still listed")
	}
}

func TestNodeChildren(t *testing.T) {
	d := NewDocument()
	p := d.CreateNode("p")
	c1 := d.CreateNode("c1")
	c2 := d.CreateNode("c2")
	if err := p.AddChild(c1); err != nil {
		t.Fatal(err)
	}
	if err := p.AddChild(c2); err != nil {
		t.Fatal(err)
	}
	if got := len(p.ListChildren()); got != 2 {
		t.Fatalf("children = %d, want 2", got)
	}
	p.RemoveChild(c1)
	kids := p.ListChildren()
	if len(kids) != 1 || kids[0] != c2 {
		t.Fatalf("after remove: %v", kids)
	}
	// children are shared: disposing the parent keeps them alive
	p.Dispose()
	if !c2.Alive() {
		t.Fatal("disposing parent disposed child node")
	}
}

func TestAccessorElements(t *testing.T) {
	d := NewDocument()
	a := d.CreateAccessor("a").
		SetElementType(wire.Vec3).
		SetArray([]float64{1, 2, 3, 4, 5, 6})
	if got := a.Count(); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}
	if diff := cmp.Diff([]float64{4, 5, 6}, a.GetElement(1)); diff != "" {
		t.Fatalf("GetElement(1) (-want +got):\n%s", diff)
	}
	if err := a.SetElement(0, []float64{9, 9}); !errors.Is(err, wire.ErrUsage) {
		t.Fatalf("SetElement wrong arity: got %v, want ErrUsage", err)
	}
	if err := a.SetElement(0, []float64{7, 8, 9}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{7, 8, 9, 4, 5, 6}, a.Array()); diff != "" {
		t.Fatalf("Array (-want +got):\n%s", diff)
	}
}

func TestPrimitiveAttributes(t *testing.T) {
	d := NewDocument()
	p := d.CreatePrimitive()
	pos := d.CreateAccessor("pos")
	nrm := d.CreateAccessor("nrm")
	if err := p.SetAttribute("POSITION", pos); err != nil {
		t.Fatal(err)
	}
	if err := p.SetAttribute("NORMAL", nrm); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"POSITION", "NORMAL"}, p.Semantics()); diff != "" {
		t.Fatalf("semantics (-want +got):\n%s", diff)
	}
	if p.Attribute("POSITION") != pos {
		t.Fatal("POSITION lookup failed")
	}
	// replacing a semantic keeps a single entry
	if err := p.SetAttribute("POSITION", nrm); err != nil {
		t.Fatal(err)
	}
	if got := len(p.Semantics()); got != 2 {
		t.Fatalf("semantics after replace = %d, want 2", got)
	}
	if p.Attribute("POSITION") != nrm {
		t.Fatal("replace did not take")
	}
	// clearing with nil removes the semantic
	if err := p.SetAttribute("NORMAL", nil); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"POSITION"}, p.Semantics()); diff != "" {
		t.Fatalf("semantics after clear (-want +got):\n%s", diff)
	}
}

func TestTextureSlotsIndependent(t *testing.T) {
	d := NewDocument()
	m := d.CreateMaterial("m")
	if m.BaseColorTextureInfo().WrapS != wire.WrapRepeat {
		t.Fatal("slot default wrap is not REPEAT")
	}
	m.BaseColorTextureInfo().TexCoord = 1
	if m.EmissiveTextureInfo().TexCoord != 0 {
		t.Fatal("slot infos are shared")
	}
}

func TestMaterialDefaults(t *testing.T) {
	d := NewDocument()
	m := d.CreateMaterial("m")
	if m.AlphaMode() != wire.AlphaOpaque || m.AlphaCutoff() != 0.5 {
		t.Fatalf("alpha defaults: %s %v", m.AlphaMode(), m.AlphaCutoff())
	}
	if m.BaseColorFactor() != ([4]float64{1, 1, 1, 1}) || m.MetallicFactor() != 1 || m.RoughnessFactor() != 1 {
		t.Fatal("pbr factor defaults wrong")
	}
}

func TestNodeDefaults(t *testing.T) {
	d := NewDocument()
	n := d.CreateNode("n")
	if n.Rotation() != ([4]float64{0, 0, 0, 1}) {
		t.Fatalf("rotation default = %v", n.Rotation())
	}
	if n.Scale() != ([3]float64{1, 1, 1}) {
		t.Fatalf("scale default = %v", n.Scale())
	}
	if n.Matrix() != nil {
		t.Fatal("matrix default not nil")
	}
}

type testExtProp struct {
	ExtensionPropertyBase
	v int
}

func (*testExtProp) ExtensionName() string { return "TEST_ext" }

func TestExtensionPropertyLifecycle(t *testing.T) {
	d := NewDocument()
	m := d.CreateMaterial("m")
	ep := &testExtProp{v: 7}
	d.InitExtensionProperty(ep)
	if err := m.SetExtension("TEST_ext", ep); err != nil {
		t.Fatal(err)
	}
	got, ok := m.GetExtension("TEST_ext").(*testExtProp)
	if !ok || got.v != 7 {
		t.Fatalf("GetExtension = %v", m.GetExtension("TEST_ext"))
	}
	if n := len(m.ListExtensions()); n != 1 {
		t.Fatalf("ListExtensions = %d, want 1", n)
	}
	// extension properties are owned: disposing the host disposes them
	m.Dispose()
	if ep.Alive() {
		t.Fatal("extension property survived host dispose")
	}
}

func TestSetExtensionNilRemoves(t *testing.T) {
	d := NewDocument()
	m := d.CreateMaterial("m")
	ep := &testExtProp{}
	d.InitExtensionProperty(ep)
	if err := m.SetExtension("TEST_ext", ep); err != nil {
		t.Fatal(err)
	}
	if err := m.SetExtension("TEST_ext", nil); err != nil {
		t.Fatal(err)
	}
	if m.GetExtension("TEST_ext") != nil {
		t.Fatal("extension still attached after removal")
	}
	if n := len(m.ListExtensions()); n != 0 {
		t.Fatalf("ListExtensions = %d, want 0", n)
	}
}

func TestDocumentTransform(t *testing.T) {
	d := NewDocument()
	var order []int
	err := d.Transform(context.Background(),
		func(ctx context.Context, d *Document) error {
			order = append(order, 1)
			d.CreateScene("s")
			return nil
		},
		func(ctx context.Context, d *Document) error {
			order = append(order, 2)
			return fmt.Errorf("stop")
		},
		func(ctx context.Context, d *Document) error {
			order = append(order, 3)
			return nil
		})
	if err == nil || err.Error() != "stop" {
		t.Fatalf("Transform error = %v", err)
	}
	if diff := cmp.Diff([]int{1, 2}, order); diff != "" {
		t.Fatalf("transform order (-want +got):\n%s", diff)
	}
	if len(d.Root().ListScenes()) != 1 {
		t.Fatal("transform side effect lost")
	}
}

func TestRegisterExtensionConflicts(t *testing.T) {
	d := NewDocument()
	if err := d.RegisterExtension(fakeExt{"KHR_a"}); err != nil {
		t.Fatal(err)
	}
	if err := d.RegisterExtension(fakeExt{"KHR_a"}); !errors.Is(err, wire.ErrUsage) {
		t.Fatalf("duplicate registration: got %v, want ErrUsage", err)
	}
	if x := d.Extension("KHR_a"); x == nil {
		t.Fatal("lookup failed")
	}
}

type fakeExt struct{ name string }

func (f fakeExt) ExtensionName() string { return f.name }
func (fakeExt) Required() bool { return false }

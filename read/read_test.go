package read

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sceneform/gltf/glb"
	"github.com/sceneform/gltf/wire"
)

func intp(v int) *int { return &v }

func marshal(doc *wire.Document) ([]byte, error) { return json.Marshal(doc) }

func TestRejectsUnsupportedVersion(t *testing.T) {
	doc := &wire.Document{Asset: wire.Asset{Version: "1.0"}}
	_, err := Read(&wire.JSONDocument{JSON: doc})
	if !errors.Is(err, wire.ErrFormat) {
		t.Fatalf("version 1.0: got %v, want ErrFormat", err)
	}
}

func TestMinimalAsset(t *testing.T) {
	doc, err := Read(&wire.JSONDocument{JSON: &wire.Document{
		Asset: wire.Asset{Version: "2.0", Generator: "gen"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Root().Asset().Generator; got != "gen" {
		t.Fatalf("generator = %q", got)
	}
}

func TestMalformedJSON(t *testing.T) {
	if _, err := JSON([]byte(`{"asset":`), nil); !errors.Is(err, wire.ErrFormat) {
		t.Fatalf("malformed JSON: got %v, want ErrFormat", err)
	}
}

// scalarTree builds a one-accessor document whose buffer holds the u8
// scalars 1 2 3 4 6.
func scalarTree(uri string) *wire.Document {
	return &wire.Document{
		Asset:     wire.Asset{Version: "2.0"},
		Buffers:   []wire.Buffer{{URI: uri, ByteLength: 5}},
		BufferViews: []wire.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 5},
		},
		Accessors: []wire.Accessor{{
			BufferView:    intp(0),
			ComponentType: wire.UnsignedByte,
			Count:         5,
			Type:          wire.Scalar,
		}},
	}
}

func TestDataURIBuffer(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 6}
	uri := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(payload)
	doc, err := Read(&wire.JSONDocument{JSON: scalarTree(uri)})
	if err != nil {
		t.Fatal(err)
	}
	a := doc.Root().ListAccessors()[0]
	if diff := cmp.Diff([]float64{1, 2, 3, 4, 6}, a.Array()); diff != "" {
		t.Fatalf("decoded array (-want +got):\n%s", diff)
	}
	// data URIs do not survive as explicit resource names
	if a.Buffer().URI() != "" {
		t.Fatalf("buffer URI = %q, want empty", a.Buffer().URI())
	}
}

func TestResourceMapBuffer(t *testing.T) {
	doc, err := Read(&wire.JSONDocument{
		JSON:      scalarTree("data.bin"),
		Resources: map[string][]byte{"data.bin": {1, 2, 3, 4, 6}},
	})
	if err != nil {
		t.Fatal(err)
	}
	a := doc.Root().ListAccessors()[0]
	if got := a.GetScalar(4); got != 6 {
		t.Fatalf("scalar 4 = %v, want 6", got)
	}
	if got := a.Buffer().URI(); got != "data.bin" {
		t.Fatalf("buffer URI = %q, want data.bin", got)
	}
}

func TestStrictUnresolvedResourceFails(t *testing.T) {
	_, err := Read(&wire.JSONDocument{JSON: scalarTree("missing.bin")})
	if !errors.Is(err, wire.ErrResource) {
		t.Fatalf("strict unresolved: got %v, want ErrResource", err)
	}
}

func TestLaxUnresolvedResourceWarns(t *testing.T) {
	doc, err := Read(&wire.JSONDocument{JSON: scalarTree("missing.bin")}, Strict(false))
	if err != nil {
		t.Fatal(err)
	}
	a := doc.Root().ListAccessors()[0]
	if a.Array() != nil {
		t.Fatalf("unresolved accessor array = %v, want nil", a.Array())
	}
	// the reference structure survives
	if a.Buffer() == nil || a.Buffer().URI() != "missing.bin" {
		t.Fatal("unresolved buffer reference dropped")
	}
}

func TestNetworkURIRequiresOptIn(t *testing.T) {
	_, err := Read(&wire.JSONDocument{JSON: scalarTree("https://example.com/data.bin")})
	if !errors.Is(err, wire.ErrResource) {
		t.Fatalf("network without opt-in: got %v, want ErrResource", err)
	}
}

func TestGLBRead(t *testing.T) {
	tree := scalarTree("")
	jsonBytes, err := marshal(tree)
	if err != nil {
		t.Fatal(err)
	}
	data := glb.Encode(jsonBytes, []byte{1, 2, 3, 4, 6})
	doc, err := GLB(data)
	if err != nil {
		t.Fatal(err)
	}
	a := doc.Root().ListAccessors()[0]
	if diff := cmp.Diff([]float64{1, 2, 3, 4, 6}, a.Array()); diff != "" {
		t.Fatalf("GLB array (-want +got):\n%s", diff)
	}
}

func TestAccessorViewOutOfRange(t *testing.T) {
	tree := scalarTree("data.bin")
	tree.Accessors[0].BufferView = intp(3)
	_, err := Read(&wire.JSONDocument{
		JSON:      tree,
		Resources: map[string][]byte{"data.bin": {1, 2, 3, 4, 6}},
	})
	if !errors.Is(err, wire.ErrFormat) {
		t.Fatalf("bad view index: got %v, want ErrFormat", err)
	}
}

func TestViewExtentOverflow(t *testing.T) {
	tree := scalarTree("data.bin")
	tree.BufferViews[0].ByteLength = 64
	_, err := Read(&wire.JSONDocument{
		JSON:      tree,
		Resources: map[string][]byte{"data.bin": {1, 2, 3, 4, 6}},
	})
	if !errors.Is(err, wire.ErrFormat) {
		t.Fatalf("view overflow: got %v, want ErrFormat", err)
	}
}

func TestPrimitiveAttributesSorted(t *testing.T) {
	tree := scalarTree("data.bin")
	tree.Accessors = append(tree.Accessors, tree.Accessors[0], tree.Accessors[0])
	tree.Meshes = []wire.Mesh{{
		Primitives: []wire.Primitive{{
			Attributes: map[string]int{"TEXCOORD_0": 2, "POSITION": 0, "NORMAL": 1},
		}},
	}}
	doc, err := Read(&wire.JSONDocument{
		JSON:      tree,
		Resources: map[string][]byte{"data.bin": {1, 2, 3, 4, 6}},
	})
	if err != nil {
		t.Fatal(err)
	}
	p := doc.Root().ListMeshes()[0].ListPrimitives()[0]
	want := []string{"NORMAL", "POSITION", "TEXCOORD_0"}
	if diff := cmp.Diff(want, p.Semantics()); diff != "" {
		t.Fatalf("semantics (-want +got):\n%s", diff)
	}
}

func TestSamplerStateLandsInSlot(t *testing.T) {
	clamp := wire.WrapClampToEdge
	mag := wire.FilterNearest
	tree := &wire.Document{
		Asset:  wire.Asset{Version: "2.0"},
		Images: []wire.Image{{URI: "data:image/png;base64,"}},
		Samplers: []wire.Sampler{{
			MagFilter: &mag,
			WrapS:     &clamp,
		}},
		Textures: []wire.Texture{{Source: intp(0), Sampler: intp(0)}},
		Materials: []wire.Material{{
			Name: "m",
			PBRMetallicRoughness: &wire.PBRMetallicRoughness{
				BaseColorTexture: &wire.TextureInfo{Index: 0, TexCoord: 1},
			},
		}},
	}
	doc, err := Read(&wire.JSONDocument{JSON: tree})
	if err != nil {
		t.Fatal(err)
	}
	m := doc.Root().ListMaterials()[0]
	if m.BaseColorTexture() == nil {
		t.Fatal("base color texture not bound")
	}
	info := m.BaseColorTextureInfo()
	if info.TexCoord != 1 || info.WrapS != wire.WrapClampToEdge || info.WrapT != wire.WrapRepeat {
		t.Fatalf("info = %+v", info)
	}
	if info.MagFilter == nil || *info.MagFilter != wire.FilterNearest {
		t.Fatalf("magFilter = %v", info.MagFilter)
	}
}

func TestSparseOverlay(t *testing.T) {
	// dense base 0..4 as u8, sparse overlay sets index 1 -> 9, 3 -> 7
	tree := &wire.Document{
		Asset: wire.Asset{Version: "2.0"},
		Buffers: []wire.Buffer{{URI: "data.bin", ByteLength: 9}},
		BufferViews: []wire.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 5},
			{Buffer: 0, ByteOffset: 5, ByteLength: 2},
			{Buffer: 0, ByteOffset: 7, ByteLength: 2},
		},
		Accessors: []wire.Accessor{{
			BufferView:    intp(0),
			ComponentType: wire.UnsignedByte,
			Count:         5,
			Type:          wire.Scalar,
			Sparse: &wire.AccessorSparse{
				Count:   2,
				Indices: wire.AccessorSparseIndices{BufferView: 1, ComponentType: wire.UnsignedByte},
				Values:  wire.AccessorSparseValues{BufferView: 2},
			},
		}},
	}
	doc, err := Read(&wire.JSONDocument{
		JSON:      tree,
		Resources: map[string][]byte{"data.bin": {0, 1, 2, 3, 4, 1, 3, 9, 7}},
	})
	if err != nil {
		t.Fatal(err)
	}
	a := doc.Root().ListAccessors()[0]
	if !a.Sparse() {
		t.Fatal("sparse flag not set")
	}
	if diff := cmp.Diff([]float64{0, 9, 2, 7, 4}, a.Array()); diff != "" {
		t.Fatalf("overlay (-want +got):\n%s", diff)
	}
}

func TestNodeGraph(t *testing.T) {
	tree := &wire.Document{
		Asset: wire.Asset{Version: "2.0"},
		Nodes: []wire.Node{
			{Name: "parent", Children: []int{1}},
			{Name: "child", Translation: &[3]float64{1, 2, 3}},
		},
		Scenes: []wire.Scene{{Name: "s", Nodes: []int{0}}},
		Scene:  intp(0),
	}
	doc, err := Read(&wire.JSONDocument{JSON: tree})
	if err != nil {
		t.Fatal(err)
	}
	root := doc.Root()
	if root.DefaultScene() == nil || root.DefaultScene().Name() != "s" {
		t.Fatal("default scene not set")
	}
	parent := root.ListNodes()[0]
	kids := parent.ListChildren()
	if len(kids) != 1 || kids[0].Name() != "child" {
		t.Fatalf("children = %v", kids)
	}
	if kids[0].Translation() != ([3]float64{1, 2, 3}) {
		t.Fatalf("translation = %v", kids[0].Translation())
	}
}

func TestNegativeStrideRejected(t *testing.T) {
	tree := scalarTree("data.bin")
	tree.BufferViews[0].ByteStride = intp(-16)
	_, err := Read(&wire.JSONDocument{
		JSON:      tree,
		Resources: map[string][]byte{"data.bin": {1, 2, 3, 4, 6}},
	})
	if !errors.Is(err, wire.ErrFormat) {
		t.Fatalf("negative stride: got %v, want ErrFormat", err)
	}
}

func TestNegativeViewOffsetRejected(t *testing.T) {
	tree := scalarTree("data.bin")
	tree.BufferViews[0].ByteOffset = -3
	_, err := Read(&wire.JSONDocument{
		JSON:      tree,
		Resources: map[string][]byte{"data.bin": {1, 2, 3, 4, 6}},
	})
	if !errors.Is(err, wire.ErrFormat) {
		t.Fatalf("negative view offset: got %v, want ErrFormat", err)
	}
}

func TestNegativeAccessorCountRejected(t *testing.T) {
	tree := &wire.Document{
		Asset: wire.Asset{Version: "2.0"},
		Accessors: []wire.Accessor{{
			ComponentType: wire.UnsignedByte,
			Count:         -2,
			Type:          wire.Scalar,
		}},
	}
	_, err := Read(&wire.JSONDocument{JSON: tree})
	if !errors.Is(err, wire.ErrFormat) {
		t.Fatalf("negative count: got %v, want ErrFormat", err)
	}
}

func TestGLBChunkBindsOnlyFirstBuffer(t *testing.T) {
	tree := scalarTree("")
	tree.Buffers = append(tree.Buffers, wire.Buffer{ByteLength: 5})
	_, err := Read(&wire.JSONDocument{
		JSON:      tree,
		Resources: map[string][]byte{wire.GLBResourceKey: {1, 2, 3, 4, 6}},
	})
	if !errors.Is(err, wire.ErrResource) {
		t.Fatalf("second URI-less buffer: got %v, want ErrResource", err)
	}
}

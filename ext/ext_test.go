package ext

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sceneform/gltf/model"
	"github.com/sceneform/gltf/wire"
)

type stubExt struct {
	name string
	req  bool
}

func (s stubExt) ExtensionName() string { return s.name }
func (s stubExt) Required() bool { return s.req }
func (stubExt) PrereadTypes() []model.Type { return nil }
func (stubExt) PrewriteTypes() []model.Type { return nil }
func (stubExt) PreRead(*ReadContext) error { return nil }
func (stubExt) Read(*ReadContext) error { return nil }
func (stubExt) PreWrite(*WriteContext) error { return nil }
func (stubExt) Write(*WriteContext) error { return nil }

func TestRegistryOrderAndLookup(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"KHR_b", "KHR_a", "KHR_c"} {
		if err := r.Register(stubExt{name: name}); err != nil {
			t.Fatal(err)
		}
	}
	var got []string
	for _, x := range r.All() {
		got = append(got, x.ExtensionName())
	}
	// registration order, not lexical order
	if diff := cmp.Diff([]string{"KHR_b", "KHR_a", "KHR_c"}, got); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
	if _, ok := r.Get("KHR_a"); !ok {
		t.Fatal("lookup failed")
	}
	if _, ok := r.Get("KHR_x"); ok {
		t.Fatal("phantom lookup")
	}
}

func TestRegistryConflicts(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(stubExt{name: ""}); !errors.Is(err, wire.ErrUsage) {
		t.Fatalf("empty name: got %v, want ErrUsage", err)
	}
	if err := r.Register(stubExt{name: "KHR_a"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(stubExt{name: "KHR_a"}); !errors.Is(err, wire.ErrUsage) {
		t.Fatalf("duplicate: got %v, want ErrUsage", err)
	}
}

func TestMarkUsedOrder(t *testing.T) {
	order := []Extension{
		stubExt{name: "KHR_b"},
		stubExt{name: "KHR_a"},
		stubExt{name: "KHR_c"},
	}
	c := &WriteContext{}
	c.MarkUsed("KHR_c", true)
	c.MarkUsed("KHR_b", false)
	used, required := c.Used(order)
	if diff := cmp.Diff([]string{"KHR_b", "KHR_c"}, used); diff != "" {
		t.Fatalf("used (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"KHR_c"}, required); diff != "" {
		t.Fatalf("required (-want +got):\n%s", diff)
	}
}

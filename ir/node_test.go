package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInsertPromotesRepeatedSiblings(t *testing.T) {
	obj := NewObject()
	obj.Insert("a", FromInt(1))
	if got := obj.Get("a"); got.Type != NumberType {
		t.Fatalf("single insert: got type %s", got.Type)
	}
	obj.Insert("a", FromInt(2))
	obj.Insert("a", FromInt(3))
	got := obj.Get("a")
	if got.Type != ArrayType {
		t.Fatalf("after repeat: got type %s", got.Type)
	}
	if len(got.Values) != 3 {
		t.Fatalf("array len = %d, want 3", len(got.Values))
	}
	for i, want := range []int64{1, 2, 3} {
		if *got.Values[i].Int64 != want {
			t.Errorf("values[%d] = %d, want %d", i, *got.Values[i].Int64, want)
		}
	}
}

func TestInsertKeepsInterleavedOrder(t *testing.T) {
	obj := NewObject()
	obj.Insert("a", FromString("a1"))
	obj.Insert("b", FromString("b1"))
	obj.Insert("a", FromString("a2"))
	if d := cmp.Diff([]string{"a", "b"}, obj.Keys()); d != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", d)
	}
	if got := obj.Get("a"); got.Type != ArrayType || len(got.Values) != 2 {
		t.Errorf("a = %+v, want 2-element array", got)
	}
}

func TestSetReplacesInPlace(t *testing.T) {
	obj := NewObject()
	obj.Set("a", FromInt(1))
	obj.Set("b", FromInt(2))
	obj.Set("a", FromInt(9))
	if d := cmp.Diff([]string{"a", "b"}, obj.Keys()); d != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", d)
	}
	if got := *obj.Get("a").Int64; got != 9 {
		t.Errorf("a = %d, want 9", got)
	}
}

func TestDeletePreservesOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("a", FromInt(1))
	obj.Set("b", FromInt(2))
	obj.Set("c", FromInt(3))
	obj.Delete("b")
	if d := cmp.Diff([]string{"a", "c"}, obj.Keys()); d != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", d)
	}
}

func TestRootKeySkipsDecl(t *testing.T) {
	doc := NewObject()
	doc.Set(DeclKey, DefaultDecl())
	doc.Set("Profile", NewObject())
	if got := doc.RootKey(); got != "Profile" {
		t.Errorf("RootKey() = %q, want Profile", got)
	}
	if got := NewObject().RootKey(); got != "" {
		t.Errorf("empty RootKey() = %q, want \"\"", got)
	}
}

func TestIsNested(t *testing.T) {
	leaf := NewObject()
	leaf.Set("@name", FromString("x"))
	leaf.Set(TextKey, FromString("v"))
	if leaf.IsNested() {
		t.Error("attr+text element reported nested")
	}
	nested := NewObject()
	nested.Set("child", NewObject())
	if !nested.IsNested() {
		t.Error("element with child element not reported nested")
	}
	if !FromSlice(nil).IsNested() {
		t.Error("array not reported nested")
	}
	if FromString("x").IsNested() {
		t.Error("scalar reported nested")
	}
}

func TestMarshalJSONKeyOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("b", FromInt(1))
	obj.Set("a", FromString("x"))
	inner := NewObject()
	inner.Set("z", FromBool(true))
	inner.Set("y", Null())
	obj.Set("m", inner)
	d, err := obj.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"b":1,"a":"x","m":{"z":true,"y":null}}`
	if string(d) != want {
		t.Errorf("MarshalJSON() = %s, want %s", d, want)
	}
}

func TestShortHash(t *testing.T) {
	obj := NewObject()
	obj.Set("fullName", FromString("Get_Info"))
	h := obj.ShortHash()
	if !LooksLikeShortHash(h) {
		t.Errorf("ShortHash() = %q, not hash-shaped", h)
	}
	if h2 := obj.Clone().ShortHash(); h2 != h {
		t.Errorf("hash not stable across clone: %q vs %q", h, h2)
	}
	other := NewObject()
	other.Set("fullName", FromString("Get_Other"))
	if other.ShortHash() == h {
		t.Error("distinct content produced equal hashes")
	}
}

func TestLooksLikeShortHash(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0a1b2c3d", true},
		{"deadbeef", true},
		{"DEADBEEF", false},
		{"0a1b2c3", false},
		{"0a1b2c3de", false},
		{"0a1b2g3d", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := LooksLikeShortHash(tt.in); got != tt.want {
			t.Errorf("LooksLikeShortHash(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGoConversionRoundTrip(t *testing.T) {
	in := map[string]any{
		"b": int64(2),
		"a": "x",
		"l": []any{true, nil, 1.5},
	}
	node, err := FromGo(in)
	if err != nil {
		t.Fatal(err)
	}
	// map keys sort for determinism
	if d := cmp.Diff([]string{"a", "b", "l"}, node.Keys()); d != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", d)
	}
	out := ToGo(node)
	want := map[string]any{
		"a": "x",
		"b": int64(2),
		"l": []any{true, nil, 1.5},
	}
	if d := cmp.Diff(want, out); d != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", d)
	}
}

func TestVisit(t *testing.T) {
	inner := NewObject()
	inner.Set("leaf", FromInt(1))
	root := NewObject()
	root.Set("a", inner)
	root.Set("b", FromString("x"))

	var pre, post int
	err := root.Visit(func(n *Node, isPost bool) (bool, error) {
		if isPost {
			post++
		} else {
			pre++
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if pre != 4 || post != 4 {
		t.Errorf("visited pre=%d post=%d, want 4 and 4", pre, post)
	}

	// returning false prunes the subtree but still post-visits the node
	pre = 0
	err = root.Visit(func(n *Node, isPost bool) (bool, error) {
		if !isPost {
			pre++
		}
		return n == root, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if pre != 3 {
		t.Errorf("pruned visit saw %d nodes, want 3", pre)
	}
}

func TestCloneIsDeep(t *testing.T) {
	obj := NewObject()
	inner := NewObject()
	inner.Set("k", FromString("v"))
	obj.Set("m", inner)
	cp := obj.Clone()
	cp.Get("m").Set("k", FromString("changed"))
	if got := obj.Get("m").Get("k").String; got != "v" {
		t.Errorf("clone shares nodes with original: %q", got)
	}
}

package disassemble

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
)

func docWithRoot(rootKey string, root *ir.Node) *ir.Node {
	doc := ir.NewObject()
	doc.Set(ir.DeclKey, ir.DefaultDecl())
	doc.Set(rootKey, root)
	return doc
}

func TestStripElementChild(t *testing.T) {
	inner := ir.NewObject()
	inner.Set("fullName", ir.FromString("v1"))
	inner.Set("status", ir.FromString("Active"))
	root := ir.NewObject()
	root.Set("@xmlns", ir.FromString("ns"))
	root.Set("botVersions", inner)
	doc := docWithRoot("Bot", root)

	out := stripElement(doc, "botVersions")
	if out == nil {
		t.Fatal("stripElement returned nil")
	}
	got := out.Get("Bot").Keys()
	want := []string{"@xmlns", "fullName", "status"}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("spliced keys mismatch (-want +got):\n%s", d)
	}
	if !out.Has(ir.DeclKey) {
		t.Error("declaration dropped")
	}
}

func TestStripElementRoot(t *testing.T) {
	root := ir.NewObject()
	root.Set("@xmlns", ir.FromString("ns"))
	root.Set("status", ir.FromString("Active"))
	doc := docWithRoot("botVersion", root)

	out := stripElement(doc, "botVersion")
	if out == nil {
		t.Fatal("stripElement returned nil")
	}
	if out.Has("@xmlns") {
		t.Error("stripped root's attribute kept")
	}
	if got := out.Get("status"); got == nil || got.String != "Active" {
		t.Errorf("status = %+v", got)
	}
}

func TestStripElementMissing(t *testing.T) {
	root := ir.NewObject()
	root.Set("other", ir.FromString("x"))
	doc := docWithRoot("Bot", root)
	if out := stripElement(doc, "botVersions"); out != nil {
		t.Errorf("stripElement on absent child = %+v, want nil", out)
	}
}

package encode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/signadot/xmlsplit/go-xmlsplit/format"
	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
)

func sampleDoc() *ir.Node {
	fp := ir.NewObject()
	fp.Set("editable", ir.FromBool(true))
	fp.Set("field", ir.FromString("Account.One"))
	root := ir.NewObject()
	root.Set(ir.XMLNSAttrKey, ir.FromString("http://example.com/ns"))
	root.Set("fieldPermissions", fp)
	root.Set("custom", ir.FromBool(false))
	doc := ir.NewObject()
	doc.Set("Profile", root)
	return doc
}

func TestEncodeJSONKeepsKeyOrder(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(sampleDoc(), buf, EncodeFormat(format.JSONFormat)); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	xmlns := strings.Index(got, "@xmlns")
	fp := strings.Index(got, "fieldPermissions")
	custom := strings.Index(got, "custom")
	if xmlns < 0 || fp < 0 || custom < 0 || !(xmlns < fp && fp < custom) {
		t.Errorf("key order lost:\n%s", got)
	}
}

func TestEncodeYAMLKeepsKeyOrder(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(sampleDoc(), buf, EncodeFormat(format.YAMLFormat)); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	fp := strings.Index(got, "fieldPermissions")
	custom := strings.Index(got, "custom")
	if fp < 0 || custom < 0 || fp > custom {
		t.Errorf("key order lost:\n%s", got)
	}
	if !strings.Contains(got, "editable: true") {
		t.Errorf("missing scalar:\n%s", got)
	}
}

func TestEncodeTOML(t *testing.T) {
	doc := ir.NewObject()
	doc.Set("name", ir.FromString("app"))
	section := ir.NewObject()
	section.Set("k", ir.FromInt(3))
	doc.Set("settings", section)
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc, buf, EncodeFormat(format.TOMLFormat)); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.Contains(got, `name = "app"`) || !strings.Contains(got, "[settings]") {
		t.Errorf("unexpected toml:\n%s", got)
	}
}

func TestEncodeINI(t *testing.T) {
	doc := ir.NewObject()
	doc.Set("top", ir.FromString("v"))
	sec := ir.NewObject()
	sec.Set("k", ir.FromInt(1))
	doc.Set("section", sec)
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc, buf, EncodeFormat(format.INIFormat)); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.Contains(got, "top") || !strings.Contains(got, "[section]") {
		t.Errorf("unexpected ini:\n%s", got)
	}
}

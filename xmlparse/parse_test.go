package xmlparse

import (
	"errors"
	"testing"

	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
)

func TestParseSiblingPromotion(t *testing.T) {
	doc, err := Parse([]byte(`<root><item><a>1</a></item><item><a>2</a></item></root>`))
	if err != nil {
		t.Fatal(err)
	}
	items := doc.Get("root").Get("item")
	if items.Type != ir.ArrayType {
		t.Fatalf("item type = %s, want Array", items.Type)
	}
	if len(items.Values) != 2 {
		t.Fatalf("len(item) = %d, want 2", len(items.Values))
	}
	a := items.Values[1].Get("a").Get(ir.TextKey)
	if a.Type != ir.NumberType || *a.Int64 != 2 {
		t.Errorf("item[1].a = %+v, want 2", a)
	}
}

func TestParseAttributes(t *testing.T) {
	doc, err := Parse([]byte(`<r id="x" count="3"/>`))
	if err != nil {
		t.Fatal(err)
	}
	r := doc.Get("r")
	if got := r.Get("@id"); got == nil || got.String != "x" {
		t.Errorf("@id = %+v, want x", got)
	}
	// attribute values are never coerced
	if got := r.Get("@count"); got == nil || got.Type != ir.StringType || got.String != "3" {
		t.Errorf("@count = %+v, want string 3", got)
	}
}

func TestParseCData(t *testing.T) {
	doc, err := Parse([]byte(`<v><![CDATA[a < b]]><![CDATA[ & c]]></v>`))
	if err != nil {
		t.Fatal(err)
	}
	cd := doc.Get("v").Get(ir.CDataKey)
	if cd == nil || cd.String != "a < b & c" {
		t.Errorf("#cdata = %+v, want concatenated sections", cd)
	}
}

func TestParseCommentAndTail(t *testing.T) {
	doc, err := Parse([]byte(`<d>pre<!--note-->post</d>`))
	if err != nil {
		t.Fatal(err)
	}
	d := doc.Get("d")
	if got := d.Get(ir.TextKey); got == nil || got.String != "pre" {
		t.Errorf("#text = %+v, want pre", got)
	}
	if got := d.Get(ir.CommentKey); got == nil || got.String != "note" {
		t.Errorf("#comment = %+v, want note", got)
	}
	if got := d.Get(ir.TextTailKey); got == nil || got.String != "post" {
		t.Errorf("#text-tail = %+v, want post", got)
	}
}

func TestParseCommentLastWins(t *testing.T) {
	doc, err := Parse([]byte(`<d><!--one--><!--two--><b>1</b></d>`))
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Get("d").Get(ir.CommentKey); got == nil || got.String != "two" {
		t.Errorf("#comment = %+v, want two", got)
	}
}

func TestParseDecl(t *testing.T) {
	doc, err := Parse([]byte(`<?xml version="1.0" encoding="UTF-8"?><r/>`))
	if err != nil {
		t.Fatal(err)
	}
	decl := doc.Get(ir.DeclKey)
	if decl == nil {
		t.Fatal("no declaration captured")
	}
	if got := decl.Get("@version"); got == nil || got.String != "1.0" {
		t.Errorf("@version = %+v", got)
	}
	if got := decl.Get("@encoding"); got == nil || got.String != "UTF-8" {
		t.Errorf("@encoding = %+v", got)
	}
}

func TestParseTextCoercionGuard(t *testing.T) {
	// "007" must stay a string, the zero padding is content
	doc, err := Parse([]byte(`<r><id>007</id><n>42</n></r>`))
	if err != nil {
		t.Fatal(err)
	}
	r := doc.Get("r")
	if got := r.Get("id").Get(ir.TextKey); got.Type != ir.StringType || got.String != "007" {
		t.Errorf("id = %+v, want string 007", got)
	}
	if got := r.Get("n").Get(ir.TextKey); got.Type != ir.NumberType || *got.Int64 != 42 {
		t.Errorf("n = %+v, want 42", got)
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		`<a><b></a>`,
		`<a>`,
		`</a><a/>`,
		`<<a/>`,
	}
	for _, in := range bad {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrParse) {
			t.Errorf("Parse(%q) err = %v, want ErrParse", in, err)
		}
	}
}

func TestCoerceScalar(t *testing.T) {
	tests := []struct {
		in   string
		want *ir.Node
	}{
		{"42", ir.FromInt(42)},
		{" 42 ", ir.FromInt(42)},
		{"0", ir.FromString("0")},
		{"007", ir.FromString("007")},
		{"0.5", ir.FromString("0.5")},
		{"3.5", ir.FromFloat(3.5)},
		{"-5", ir.FromFloat(-5)},
		{"true", ir.FromBool(true)},
		{"false", ir.FromBool(false)},
		{"True", ir.FromString("True")},
		{"", ir.FromString("")},
		{"Standard User", ir.FromString("Standard User")},
	}
	for _, tt := range tests {
		got := CoerceScalar(tt.in)
		if got.Type != tt.want.Type || got.ScalarString() != tt.want.ScalarString() {
			t.Errorf("CoerceScalar(%q) = %s %q, want %s %q",
				tt.in, got.Type, got.ScalarString(), tt.want.Type, tt.want.ScalarString())
		}
	}
}

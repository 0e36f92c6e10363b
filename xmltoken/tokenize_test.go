package xmltoken

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestTokenize(t *testing.T) {
	in := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<r a="1" b='two'>hi<!--c--><![CDATA[x < y]]><e/></r>`
	want := []Token{
		{Type: TDecl, Name: "xml", Attrs: []Attr{{Key: "version", Value: "1.0"}, {Key: "encoding", Value: "UTF-8"}}},
		{Type: TText, Text: "\n"},
		{Type: TStart, Name: "r", Attrs: []Attr{{Key: "a", Value: "1"}, {Key: "b", Value: "two"}}},
		{Type: TText, Text: "hi"},
		{Type: TComment, Text: "c"},
		{Type: TCData, Text: "x < y"},
		{Type: TEmpty, Name: "e"},
		{Type: TEnd, Name: "r"},
	}
	got, err := Tokenize([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(want, got, cmpopts.IgnoreFields(Token{}, "Pos")); d != "" {
		t.Errorf("token stream mismatch (-want +got):\n%s", d)
	}
}

func TestTokenizeUnescapesText(t *testing.T) {
	got, err := Tokenize([]byte(`<a>x &amp; y &lt; z &#65; &#x42;</a>`))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[1].Type != TText {
		t.Fatalf("unexpected stream: %+v", got)
	}
	if want := "x & y < z A B"; got[1].Text != want {
		t.Errorf("text = %q, want %q", got[1].Text, want)
	}
}

func TestTokenizeDoctype(t *testing.T) {
	got, err := Tokenize([]byte(`<!DOCTYPE note [<!ENTITY e "v">]><note/>`))
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Type != TDoctype {
		t.Errorf("first token is %s, want Doctype", got[0].Type)
	}
	if got[1].Type != TEmpty || got[1].Name != "note" {
		t.Errorf("second token = %+v", got[1])
	}
}

func TestTokenizeQuotedGTInAttr(t *testing.T) {
	got, err := Tokenize([]byte(`<a cond="x > y"/>`))
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Type != TEmpty || got[0].Attrs[0].Value != "x > y" {
		t.Errorf("token = %+v", got[0])
	}
}

func TestTokenizeErrors(t *testing.T) {
	bad := []string{
		`<r`,
		`<r a=1>`,
		`<r a>`,
		`<r a="1></r>`,
		`<a>&bogus;</a>`,
		`<a>&unterminated</a>`,
		`<!-- never closed`,
		`<![CDATA[never closed`,
		`<?pi never closed`,
	}
	for _, in := range bad {
		if _, err := Tokenize([]byte(in)); !errors.Is(err, ErrMalformed) {
			t.Errorf("Tokenize(%q) err = %v, want ErrMalformed", in, err)
		}
	}
}

func TestEscape(t *testing.T) {
	if got := EscapeText(`a & b < c > d "q"`); got != `a &amp; b &lt; c &gt; d "q"` {
		t.Errorf("EscapeText = %q", got)
	}
	if got := EscapeAttr(`a & "b"`); got != `a &amp; &quot;b&quot;` {
		t.Errorf("EscapeAttr = %q", got)
	}
}

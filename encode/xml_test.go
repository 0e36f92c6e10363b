package encode

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/signadot/xmlsplit/go-xmlsplit/format"
	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
	"github.com/signadot/xmlsplit/go-xmlsplit/xmlparse"
)

// roundTrip parses, normalizes and reserializes in, which must reproduce
// the input minus trailing whitespace.
func roundTrip(t *testing.T, in string) {
	t.Helper()
	doc, err := xmlparse.Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	doc = xmlparse.Normalize(doc)
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc, buf, EncodeFormat(format.XMLFormat)); err != nil {
		t.Fatal(err)
	}
	want := strings.TrimRight(in, " \t\r\n")
	if got := buf.String(); got != want {
		t.Errorf("round trip mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestRoundTripNested(t *testing.T) {
	roundTrip(t, `<?xml version="1.0" encoding="UTF-8"?>
<Profile xmlns="http://example.com/ns">
    <fieldPermissions>
        <editable>true</editable>
        <field>Account.One</field>
    </fieldPermissions>
    <fieldPermissions>
        <editable>false</editable>
        <field>Account.Two</field>
    </fieldPermissions>
    <custom>false</custom>
    <userLicense>Standard User</userLicense>
</Profile>
`)
}

func TestRoundTripSelfClosingAndAttrs(t *testing.T) {
	roundTrip(t, `<?xml version="1.0"?>
<config>
    <entry name="a" value="1"/>
    <flag/>
</config>
`)
}

func TestRoundTripCDataAndComment(t *testing.T) {
	roundTrip(t, `<?xml version="1.0" encoding="UTF-8"?>
<notes>
    <note>before<!--marker-->after</note>
    <script><![CDATA[if (a < b) { go(); }]]></script>
</notes>
`)
}

func TestRoundTripEntities(t *testing.T) {
	roundTrip(t, `<?xml version="1.0" encoding="UTF-8"?>
<doc>
    <t>a &amp; b &lt; c</t>
    <u label="say &quot;hi&quot;">ok</u>
</doc>
`)
}

func TestRoundTripNoDecl(t *testing.T) {
	roundTrip(t, `<root>
    <a>1</a>
    <b>007</b>
</root>
`)
}

func TestRoundTripDeepNesting(t *testing.T) {
	roundTrip(t, `<?xml version="1.0" encoding="UTF-8"?>
<layoutSections>
    <layoutColumns>
        <layoutItems>
            <behavior>Edit</behavior>
            <field>Name</field>
        </layoutItems>
        <layoutItems>
            <behavior>Required</behavior>
            <field>Owner</field>
        </layoutItems>
    </layoutColumns>
    <style>TwoColumns</style>
</layoutSections>
`)
}

func TestEncodeIndentOption(t *testing.T) {
	doc, err := xmlparse.Parse([]byte(`<a><b>1</b></a>`))
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc, buf, EncodeFormat(format.XMLFormat), Indent(2)); err != nil {
		t.Fatal(err)
	}
	want := "<a>\n  <b>1</b>\n</a>"
	if got := buf.String(); got != want {
		t.Errorf("indented output = %q, want %q", got, want)
	}
}

func TestEncodeRejectsScalarDocument(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	err := Encode(ir.FromString("x"), buf, EncodeFormat(format.XMLFormat))
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("err = %v, want ErrEncoding", err)
	}
}

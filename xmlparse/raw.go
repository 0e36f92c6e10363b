package xmlparse

import (
	"regexp"

	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
)

// Some generic converters drop the declaration and the default xmlns
// attribute. These helpers recover both by direct text search over the
// raw source so the disassembler can restore them on every fragment.

var (
	declRe       = regexp.MustCompile(`<\?xml\s+([^?]+)\?>`)
	versionRe    = regexp.MustCompile(`version="([^"]*)"`)
	encodingRe   = regexp.MustCompile(`encoding="([^"]*)"`)
	standaloneRe = regexp.MustCompile(`standalone="([^"]*)"`)
	xmlnsRe      = regexp.MustCompile(`xmlns="([^"]*)"`)
)

// ExtractDecl pulls the document declaration out of raw markup text.
// Returns nil if there is no declaration or it lacks a version.
func ExtractDecl(content []byte) *ir.Node {
	m := declRe.FindSubmatch(content)
	if m == nil {
		return nil
	}
	body := m[1]
	v := versionRe.FindSubmatch(body)
	if v == nil {
		return nil
	}
	decl := ir.NewObject()
	decl.Set(ir.AttrPrefix+"version", ir.FromString(string(v[1])))
	if e := encodingRe.FindSubmatch(body); e != nil {
		decl.Set(ir.AttrPrefix+"encoding", ir.FromString(string(e[1])))
	}
	if s := standaloneRe.FindSubmatch(body); s != nil {
		decl.Set(ir.AttrPrefix+"standalone", ir.FromString(string(s[1])))
	}
	return decl
}

// ExtractXMLNS pulls the first default namespace value out of raw
// markup text, or "" when there is none.
func ExtractXMLNS(content []byte) string {
	m := xmlnsRe.FindSubmatch(content)
	if m == nil {
		return ""
	}
	return string(m[1])
}

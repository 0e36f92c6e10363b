// Package decode reads fragment files in any supported format back into
// the document tree.
package decode

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	gojson "github.com/goccy/go-json"
	goyaml "github.com/goccy/go-yaml"
	"github.com/tidwall/jsonc"
	"gopkg.in/ini.v1"

	"github.com/signadot/xmlsplit/go-xmlsplit/format"
	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
	"github.com/signadot/xmlsplit/go-xmlsplit/xmlparse"
)

// File reads path and decodes it according to its extension. For markup
// the declaration and the default namespace attribute are recovered from
// the raw text when the parsed tree dropped them.
func File(path string) (*ir.Node, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := format.ParseSuffix(filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return Bytes(d, f)
}

// Bytes decodes data in format f into a document node.
func Bytes(data []byte, f format.Format) (*ir.Node, error) {
	switch f {
	case format.XMLFormat:
		return decodeXML(data)
	case format.JSONFormat:
		return decodeGo(data, gojson.Unmarshal)
	case format.JSON5Format:
		return decodeGo(jsonc.ToJSON(data), gojson.Unmarshal)
	case format.YAMLFormat:
		return decodeGo(data, goyaml.Unmarshal)
	case format.TOMLFormat:
		return decodeGo(data, toml.Unmarshal)
	case format.INIFormat:
		return decodeINI(data)
	default:
		return nil, fmt.Errorf("%w: %s", format.ErrBadFormat, f)
	}
}

func decodeXML(data []byte) (*ir.Node, error) {
	parsed, err := xmlparse.Parse(data)
	if err != nil {
		return nil, err
	}
	doc := xmlparse.Normalize(parsed)
	if !doc.Has(ir.DeclKey) {
		if decl := xmlparse.ExtractDecl(data); decl != nil {
			// reinsert ahead of the root key
			withDecl := ir.NewObject()
			withDecl.Set(ir.DeclKey, decl)
			for i, f := range doc.Fields {
				withDecl.Set(f, doc.Values[i])
			}
			doc = withDecl
		}
	}
	if xmlns := xmlparse.ExtractXMLNS(data); xmlns != "" {
		if root := doc.Get(doc.RootKey()); root != nil && root.Type == ir.ObjectType {
			if !root.Has(ir.XMLNSAttrKey) {
				root.Set(ir.XMLNSAttrKey, ir.FromString(xmlns))
			}
		}
	}
	return doc, nil
}

func decodeGo(data []byte, unmarshal func([]byte, any) error) (*ir.Node, error) {
	var v any
	if err := unmarshal(data, &v); err != nil {
		return nil, err
	}
	return ir.FromGo(v)
}

// decodeINI reads one section level: each section becomes an object of
// string values, default-section keys sit at the document top level.
func decodeINI(data []byte) (*ir.Node, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, err
	}
	doc := ir.NewObject()
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			for _, k := range sec.Keys() {
				doc.Set(k.Name(), ir.FromString(k.Value()))
			}
			continue
		}
		obj := ir.NewObject()
		for _, k := range sec.Keys() {
			obj.Set(k.Name(), ir.FromString(k.Value()))
		}
		doc.Set(sec.Name(), obj)
	}
	return doc, nil
}

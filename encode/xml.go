package encode

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
	"github.com/signadot/xmlsplit/go-xmlsplit/xmltoken"
)

// encodeXML renders the document as markup. The layout is fixed: one
// declaration line, four-space indent per nesting level, child elements
// one per line, childless content inline in the order text, comment,
// trailing text, CDATA. Trailing whitespace is trimmed at the very end
// only.
func encodeXML(doc *ir.Node, w io.Writer, es *EncState) error {
	if doc.Type != ir.ObjectType {
		return fmt.Errorf("%w: document is %s, not an object", ErrEncoding, doc.Type)
	}
	buf := bytes.NewBuffer(nil)
	if decl := doc.Get(ir.DeclKey); decl != nil {
		writeDecl(buf, decl)
	}
	if rootKey := doc.RootKey(); rootKey != "" {
		writeElement(buf, rootKey, doc.Get(rootKey), 0, es)
	}
	_, err := w.Write([]byte(strings.TrimRight(buf.String(), " \t\r\n")))
	return err
}

func writeDecl(buf *bytes.Buffer, decl *ir.Node) {
	version := "1.0"
	if v := decl.Get(ir.AttrPrefix + "version"); v != nil {
		version = v.ScalarString()
	}
	buf.WriteString(`<?xml version="` + version + `"`)
	if e := decl.Get(ir.AttrPrefix + "encoding"); e != nil {
		buf.WriteString(` encoding="` + e.ScalarString() + `"`)
	}
	if s := decl.Get(ir.AttrPrefix + "standalone"); s != nil {
		buf.WriteString(` standalone="` + s.ScalarString() + `"`)
	}
	buf.WriteString("?>\n")
}

func writeElement(buf *bytes.Buffer, name string, node *ir.Node, depth int, es *EncState) {
	ind := strings.Repeat(" ", es.indent*depth)
	switch node.Type {
	case ir.ArrayType:
		// consecutive same-tag siblings, no extra nesting
		for _, v := range node.Values {
			writeElement(buf, name, v, depth, es)
		}
		return
	case ir.ObjectType:
	default:
		buf.WriteString(ind + "<" + name + ">")
		buf.WriteString(xmltoken.EscapeText(node.ScalarString()))
		buf.WriteString("</" + name + ">\n")
		return
	}

	var (
		text, cdata   *ir.Node
		comment, tail *ir.Node
		childKeys     []string
		childVals     []*ir.Node
	)
	open := ind + "<" + name
	for i, key := range node.Fields {
		val := node.Values[i]
		switch {
		case ir.IsAttrKey(key):
			open += " " + key[len(ir.AttrPrefix):] + `="` + xmltoken.EscapeAttr(val.ScalarString()) + `"`
		case key == ir.TextKey:
			text = val
		case key == ir.CDataKey:
			cdata = val
		case key == ir.CommentKey:
			comment = val
		case key == ir.TextTailKey:
			tail = val
		default:
			childKeys = append(childKeys, key)
			childVals = append(childVals, val)
		}
	}

	switch {
	case len(childKeys) > 0:
		buf.WriteString(open + ">\n")
		for i, key := range childKeys {
			writeElement(buf, key, childVals[i], depth+1, es)
		}
		buf.WriteString(ind + "</" + name + ">\n")
	case text != nil || cdata != nil || comment != nil || tail != nil:
		buf.WriteString(open + ">")
		if text != nil {
			buf.WriteString(xmltoken.EscapeText(text.ScalarString()))
		}
		if comment != nil {
			buf.WriteString("<!--" + comment.ScalarString() + "-->")
		}
		if tail != nil {
			buf.WriteString(xmltoken.EscapeText(tail.ScalarString()))
		}
		if cdata != nil {
			buf.WriteString("<![CDATA[" + cdata.ScalarString() + "]]>")
		}
		buf.WriteString("</" + name + ">\n")
	default:
		buf.WriteString(open + "/>\n")
	}
}

package xmlparse

import (
	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
)

// Normalize returns a copy of node with insignificant whitespace-only
// text values removed. A whitespace-only text value is kept when its
// element also carries CDATA (the whitespace is a formatting-sensitive
// preamble) or a comment (spacing around the comment and its tail).
// Array entries that normalize to an empty object are dropped.
// Structural keys with an explicitly absent value are preserved: their
// presence distinguishes "no text" from "never had text".
func Normalize(node *ir.Node) *ir.Node {
	switch node.Type {
	case ir.ArrayType:
		res := ir.NewArray()
		for _, v := range node.Values {
			cleaned := Normalize(v)
			if cleaned.Type == ir.ObjectType && cleaned.Len() == 0 {
				continue
			}
			res.Append(cleaned)
		}
		return res
	case ir.ObjectType:
		return normalizeObject(node)
	default:
		return node.Clone()
	}
}

func normalizeObject(node *ir.Node) *ir.Node {
	hasCData := node.Has(ir.CDataKey)
	hasComment := node.Has(ir.CommentKey)
	res := ir.NewObject()
	for i, key := range node.Fields {
		val := node.Values[i]
		if isEmptyTextNode(key, val) &&
			!(key == ir.TextKey && (hasCData || hasComment)) &&
			!(key == ir.TextTailKey && hasComment) {
			continue
		}
		cleaned := Normalize(val)
		if cleaned.Type != ir.NullType || isStructuralKey(key) {
			res.Set(key, cleaned)
		}
	}
	return res
}

func isEmptyTextNode(key string, val *ir.Node) bool {
	switch key {
	case ir.TextKey, ir.CDataKey, ir.TextTailKey:
	default:
		return false
	}
	return val.Type == ir.StringType && val.TrimmedString() == ""
}

func isStructuralKey(key string) bool {
	switch key {
	case ir.TextKey, ir.CDataKey, ir.CommentKey, ir.TextTailKey:
		return true
	}
	return false
}

// Package xmlparse builds the document tree from XML text, preserving
// CDATA sections, comments and text tails that generic converters erase.
package xmlparse

import (
	"fmt"

	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
	"github.com/signadot/xmlsplit/go-xmlsplit/xmltoken"
)

type frame struct {
	name string
	elem *ir.Node
}

// Parse converts XML text into a document node: an object holding the
// declaration (if present) under ir.DeclKey and the root element under
// its tag name. Repeated sibling tags are promoted to arrays in order of
// appearance.
func Parse(d []byte) (*ir.Node, error) {
	toks, err := xmltoken.Tokenize(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	var (
		stack    []frame
		decl     *ir.Node
		rootName string
		rootVal  *ir.Node
	)
	closeElement := func(name string, elem *ir.Node) {
		finishText(elem)
		if n := len(stack); n > 0 {
			stack[n-1].elem.Insert(name, elem)
			return
		}
		if rootVal == nil {
			rootName, rootVal = name, elem
		}
	}

	for _, tok := range toks {
		switch tok.Type {
		case xmltoken.TStart:
			elem := ir.NewObject()
			for _, a := range tok.Attrs {
				elem.Set(ir.AttrPrefix+a.Key, ir.FromString(a.Value))
			}
			stack = append(stack, frame{name: tok.Name, elem: elem})

		case xmltoken.TEnd:
			n := len(stack)
			if n == 0 {
				return nil, fmt.Errorf("%w: unexpected </%s> at line %d", ErrParse, tok.Name, tok.Pos.Line)
			}
			top := stack[n-1]
			stack = stack[:n-1]
			if top.name != tok.Name {
				return nil, fmt.Errorf("%w: <%s> closed by </%s> at line %d",
					ErrParse, top.name, tok.Name, tok.Pos.Line)
			}
			closeElement(top.name, top.elem)

		case xmltoken.TEmpty:
			elem := ir.NewObject()
			for _, a := range tok.Attrs {
				elem.Set(ir.AttrPrefix+a.Key, ir.FromString(a.Value))
			}
			closeElement(tok.Name, elem)

		case xmltoken.TText:
			if len(stack) == 0 {
				continue
			}
			addText(stack[len(stack)-1].elem, tok.Text)

		case xmltoken.TComment:
			if len(stack) == 0 {
				continue
			}
			// One comment slot per element; a later comment replaces an
			// earlier one, an upstream limitation kept as-is.
			stack[len(stack)-1].elem.Set(ir.CommentKey, ir.FromString(tok.Text))

		case xmltoken.TCData:
			if len(stack) == 0 {
				continue
			}
			elem := stack[len(stack)-1].elem
			if prev := elem.Get(ir.CDataKey); prev != nil && prev.Type == ir.StringType {
				prev.String += tok.Text
			} else {
				elem.Set(ir.CDataKey, ir.FromString(tok.Text))
			}

		case xmltoken.TDecl:
			d := ir.NewObject()
			for _, a := range tok.Attrs {
				d.Set(ir.AttrPrefix+a.Key, ir.FromString(a.Value))
			}
			decl = d

		case xmltoken.TProcInst, xmltoken.TDoctype:
			// passthrough content with no slot in the tree model
		}
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: unclosed <%s>", ErrParse, stack[len(stack)-1].name)
	}

	doc := ir.NewObject()
	if decl != nil {
		doc.Set(ir.DeclKey, decl)
	}
	if rootVal != nil {
		doc.Set(rootName, rootVal)
	}
	return doc, nil
}

// addText routes a text run into the element per the mixed-content
// rules: after a comment it accumulates as the text tail; alongside
// CDATA it stays separate under the text key; otherwise consecutive runs
// concatenate under the text key.
func addText(elem *ir.Node, text string) {
	if elem.Has(ir.CommentKey) {
		if prev := elem.Get(ir.TextTailKey); prev != nil && prev.Type == ir.StringType {
			prev.String += text
			return
		}
		elem.Set(ir.TextTailKey, ir.FromString(text))
		return
	}
	if elem.Has(ir.CDataKey) {
		elem.Set(ir.TextKey, ir.FromString(text))
		return
	}
	if prev := elem.Get(ir.TextKey); prev != nil {
		coerced := CoerceScalar(text)
		if prev.Type == ir.StringType && coerced.Type == ir.StringType {
			prev.String += coerced.String
		}
		return
	}
	elem.Set(ir.TextKey, ir.FromString(text))
}

// finishText applies the scalar coercion rule to a completed element's
// text. Coercion only fires when the element has no CDATA or comment and
// the coerced value renders back to the identical raw text, so the
// round-trip stays byte-faithful.
func finishText(elem *ir.Node) {
	if elem.Has(ir.CDataKey) || elem.Has(ir.CommentKey) {
		return
	}
	text := elem.Get(ir.TextKey)
	if text == nil || text.Type != ir.StringType {
		return
	}
	coerced := CoerceScalar(text.String)
	if coerced.Type == ir.StringType {
		return
	}
	if coerced.ScalarString() != text.String {
		return
	}
	elem.Set(ir.TextKey, coerced)
}

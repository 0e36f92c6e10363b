package encode

import (
	"fmt"
	"io"

	"github.com/signadot/xmlsplit/go-xmlsplit/format"
	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
)

type EncState struct {
	indent int

	format format.Format
}

// Encode writes node to w in the format selected by opts. The node is a
// document object: declaration under ir.DeclKey (optional) plus one root
// element. Markup output is the canonical, round-trippable form; the
// remaining formats are lossy projections for review and tooling.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 4,
	}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case format.XMLFormat:
		return encodeXML(node, w, es)
	case format.JSONFormat, format.JSON5Format:
		return encodeJSON(node, w)
	case format.YAMLFormat:
		return encodeYAML(node, w)
	case format.TOMLFormat:
		return encodeTOML(node, w)
	case format.INIFormat:
		return encodeINI(node, w)
	default:
		return fmt.Errorf("%w: %d", format.ErrBadFormat, es.format)
	}
}

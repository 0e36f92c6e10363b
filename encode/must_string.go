package encode

import (
	"bytes"

	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
)

// MustString renders node as markup text, panicking on encoder errors.
// Intended for nodes the caller built itself.
func MustString(node *ir.Node) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf); err != nil {
		panic(err)
	}
	return buf.String()
}

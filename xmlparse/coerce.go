package xmlparse

import (
	"strconv"
	"strings"

	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
)

// CoerceScalar applies the legacy converter's text typing rule: trim,
// empty stays an empty string, leading-zero runs stay strings so
// zero-padded identifiers survive, then unsigned integer, float and
// boolean parses are tried in that order before falling back to string.
func CoerceScalar(text string) *ir.Node {
	text = strings.TrimSpace(text)
	if text == "" {
		return ir.FromString("")
	}
	if text[0] == '0' && (text == "0" || len(text) > 1) {
		return ir.FromString(text)
	}
	if u, err := strconv.ParseUint(text, 10, 64); err == nil {
		return ir.FromInt(int64(u))
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return ir.FromFloat(f)
	}
	if b, err := strconv.ParseBool(text); err == nil && (text == "true" || text == "false") {
		return ir.FromBool(b)
	}
	return ir.FromString(text)
}

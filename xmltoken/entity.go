package xmltoken

import (
	"fmt"
	"strconv"
	"strings"
)

var namedEntities = map[string]rune{
	"lt":   '<',
	"gt":   '>',
	"amp":  '&',
	"apos": '\'',
	"quot": '"',
}

// Unescape resolves the predefined entities and numeric character
// references in s. Unknown entities are an error; the caller treats the
// whole document as unprocessable.
func Unescape(s string) (string, error) {
	amp := strings.IndexByte(s, '&')
	if amp < 0 {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for amp >= 0 {
		b.WriteString(s[:amp])
		s = s[amp:]
		semi := strings.IndexByte(s, ';')
		if semi < 0 {
			return "", fmt.Errorf("%w: unterminated entity", ErrMalformed)
		}
		name := s[1:semi]
		r, err := resolveEntity(name)
		if err != nil {
			return "", err
		}
		b.WriteRune(r)
		s = s[semi+1:]
		amp = strings.IndexByte(s, '&')
	}
	b.WriteString(s)
	return b.String(), nil
}

func resolveEntity(name string) (rune, error) {
	if r, ok := namedEntities[name]; ok {
		return r, nil
	}
	if strings.HasPrefix(name, "#x") || strings.HasPrefix(name, "#X") {
		n, err := strconv.ParseUint(name[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: bad character reference &%s;", ErrMalformed, name)
		}
		return rune(n), nil
	}
	if strings.HasPrefix(name, "#") {
		n, err := strconv.ParseUint(name[1:], 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: bad character reference &%s;", ErrMalformed, name)
		}
		return rune(n), nil
	}
	return 0, fmt.Errorf("%w: unknown entity &%s;", ErrMalformed, name)
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeText escapes s for element content. Quotes are left alone so
// that text containing them round-trips byte for byte.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes s for a double-quoted attribute value.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

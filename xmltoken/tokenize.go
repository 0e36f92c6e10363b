package xmltoken

import (
	"bytes"
	"fmt"
	"strings"
)

type tkState struct {
	src  []byte
	i    int
	line int
}

// Tokenize scans src into a flat token stream. It performs no balance
// checking; the parser's stack handles mismatched tags.
func Tokenize(src []byte) ([]Token, error) {
	ts := &tkState{src: src, line: 1}
	var toks []Token
	for ts.i < len(ts.src) {
		pos := ts.pos()
		if ts.src[ts.i] != '<' {
			text, err := ts.readText()
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Type: TText, Text: text, Pos: pos})
			continue
		}
		tok, err := ts.readMarkup()
		if err != nil {
			return nil, err
		}
		tok.Pos = pos
		toks = append(toks, tok)
	}
	return toks, nil
}

func (ts *tkState) pos() Pos {
	return Pos{Offset: ts.i, Line: ts.line}
}

func (ts *tkState) errf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s at line %d (offset %d)", ErrMalformed, msg, ts.line, ts.i)
}

func (ts *tkState) advance(n int) {
	ts.line += bytes.Count(ts.src[ts.i:ts.i+n], []byte{'\n'})
	ts.i += n
}

func (ts *tkState) readText() (string, error) {
	start := ts.i
	for ts.i < len(ts.src) && ts.src[ts.i] != '<' {
		if ts.src[ts.i] == '\n' {
			ts.line++
		}
		ts.i++
	}
	return Unescape(string(ts.src[start:ts.i]))
}

func (ts *tkState) readMarkup() (Token, error) {
	rest := ts.src[ts.i:]
	switch {
	case bytes.HasPrefix(rest, []byte("<!--")):
		return ts.readDelimited(TComment, "<!--", "-->")
	case bytes.HasPrefix(rest, []byte("<![CDATA[")):
		return ts.readDelimited(TCData, "<![CDATA[", "]]>")
	case bytes.HasPrefix(rest, []byte("<!")):
		return ts.readDoctype()
	case bytes.HasPrefix(rest, []byte("<?")):
		return ts.readProcInst()
	case bytes.HasPrefix(rest, []byte("</")):
		return ts.readEndTag()
	default:
		return ts.readStartTag()
	}
}

func (ts *tkState) readDelimited(tt Type, open, close string) (Token, error) {
	body := ts.src[ts.i+len(open):]
	end := bytes.Index(body, []byte(close))
	if end < 0 {
		return Token{}, ts.errf("unterminated %q", open)
	}
	content := string(body[:end])
	ts.advance(len(open) + end + len(close))
	return Token{Type: tt, Text: content}, nil
}

// readDoctype consumes <!DOCTYPE ...> including a bracketed internal
// subset. The token carries the raw body; the parser ignores it.
func (ts *tkState) readDoctype() (Token, error) {
	depth := 0
	for j := ts.i; j < len(ts.src); j++ {
		switch ts.src[j] {
		case '[':
			depth++
		case ']':
			depth--
		case '>':
			if depth <= 0 {
				content := string(ts.src[ts.i+2 : j])
				ts.advance(j + 1 - ts.i)
				return Token{Type: TDoctype, Text: content}, nil
			}
		}
	}
	return Token{}, ts.errf("unterminated doctype")
}

func (ts *tkState) readProcInst() (Token, error) {
	body := ts.src[ts.i+2:]
	end := bytes.Index(body, []byte("?>"))
	if end < 0 {
		return Token{}, ts.errf("unterminated processing instruction")
	}
	content := string(body[:end])
	ts.advance(2 + end + 2)

	name := content
	rest := ""
	if sp := strings.IndexAny(content, " \t\r\n"); sp >= 0 {
		name, rest = content[:sp], content[sp:]
	}
	if name != "xml" {
		return Token{Type: TProcInst, Name: name, Text: strings.TrimSpace(rest)}, nil
	}
	attrs, err := parseAttrs([]byte(rest))
	if err != nil {
		return Token{}, err
	}
	return Token{Type: TDecl, Name: name, Attrs: attrs}, nil
}

func (ts *tkState) readEndTag() (Token, error) {
	body := ts.src[ts.i+2:]
	end := bytes.IndexByte(body, '>')
	if end < 0 {
		return Token{}, ts.errf("unterminated end tag")
	}
	name := strings.TrimSpace(string(body[:end]))
	if name == "" || strings.ContainsAny(name, "<& \t\r\n") {
		return Token{}, ts.errf("invalid end tag name %q", name)
	}
	ts.advance(2 + end + 1)
	return Token{Type: TEnd, Name: name}, nil
}

func (ts *tkState) readStartTag() (Token, error) {
	end := ts.findTagEnd()
	if end < 0 {
		return Token{}, ts.errf("unterminated start tag")
	}
	body := ts.src[ts.i+1 : end]
	tt := TStart
	if n := len(body); n > 0 && body[n-1] == '/' {
		tt = TEmpty
		body = body[:n-1]
	}
	j := 0
	for j < len(body) && !isSpace(body[j]) {
		j++
	}
	name := string(body[:j])
	if name == "" || name[0] == '=' || name[0] == '"' || name[0] == '\'' {
		return Token{}, ts.errf("invalid start tag name %q", name)
	}
	attrs, err := parseAttrs(body[j:])
	if err != nil {
		return Token{}, fmt.Errorf("%w in <%s>", err, name)
	}
	ts.advance(end + 1 - ts.i)
	return Token{Type: tt, Name: name, Attrs: attrs}, nil
}

// findTagEnd locates the '>' closing the tag at ts.i, skipping any '>'
// inside quoted attribute values.
func (ts *tkState) findTagEnd() int {
	var quote byte
	for j := ts.i + 1; j < len(ts.src); j++ {
		c := ts.src[j]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '>':
			return j
		case '<':
			return -1
		}
	}
	return -1
}

func parseAttrs(d []byte) ([]Attr, error) {
	var attrs []Attr
	i := 0
	for {
		for i < len(d) && isSpace(d[i]) {
			i++
		}
		if i >= len(d) {
			return attrs, nil
		}
		start := i
		for i < len(d) && d[i] != '=' && !isSpace(d[i]) {
			i++
		}
		key := string(d[start:i])
		for i < len(d) && isSpace(d[i]) {
			i++
		}
		if i >= len(d) || d[i] != '=' {
			return nil, fmt.Errorf("%w: attribute %q has no value", ErrMalformed, key)
		}
		i++
		for i < len(d) && isSpace(d[i]) {
			i++
		}
		if i >= len(d) || (d[i] != '"' && d[i] != '\'') {
			return nil, fmt.Errorf("%w: unquoted value for attribute %q", ErrMalformed, key)
		}
		quote := d[i]
		i++
		vStart := i
		for i < len(d) && d[i] != quote {
			i++
		}
		if i >= len(d) {
			return nil, fmt.Errorf("%w: unterminated value for attribute %q", ErrMalformed, key)
		}
		val, err := Unescape(string(d[vStart:i]))
		if err != nil {
			return nil, err
		}
		i++
		attrs = append(attrs, Attr{Key: key, Value: val})
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

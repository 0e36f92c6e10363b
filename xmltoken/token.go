// Package xmltoken provides a small event tokenizer for XML documents.
//
// The standard library decoder folds CDATA sections into character data,
// which destroys a distinction the document round-trip depends on, so the
// scanner here keeps CDATA, comments and text as separate token types.
package xmltoken

type Type int

const (
	TStart Type = iota
	TEnd
	TEmpty
	TText
	TComment
	TCData
	TDecl
	TProcInst
	TDoctype
)

func (t Type) String() string {
	s, ok := map[Type]string{
		TStart:    "Start",
		TEnd:      "End",
		TEmpty:    "Empty",
		TText:     "Text",
		TComment:  "Comment",
		TCData:    "CData",
		TDecl:     "Decl",
		TProcInst: "ProcInst",
		TDoctype:  "Doctype",
	}[t]
	if ok {
		return s
	}
	return "<unknown token type>"
}

type Attr struct {
	Key   string
	Value string
}

// Token is one event in the document stream. Name is set for element
// tokens, Attrs for start/empty/declaration tokens, Text for text,
// comment and CDATA tokens (text is entity-unescaped, CDATA is raw).
type Token struct {
	Type  Type
	Name  string
	Attrs []Attr
	Text  string
	Pos   Pos
}

// Pos is a byte offset with its line, for error reporting.
type Pos struct {
	Offset int
	Line   int
}

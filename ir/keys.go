package ir

import "strings"

// Reserved structural keys. Attribute keys carry the AttrPrefix sigil,
// structural keys the '#' sigil (plus the declaration key), so ordinary
// element names can never collide with either.
const (
	AttrPrefix = "@"

	TextKey     = "#text"
	CDataKey    = "#cdata"
	CommentKey  = "#comment"
	TextTailKey = "#text-tail"
	DeclKey     = "?xml"

	XMLNSAttrKey = AttrPrefix + "xmlns"
)

// IsAttrKey reports whether key names an attribute of its element.
func IsAttrKey(key string) bool {
	return strings.HasPrefix(key, AttrPrefix)
}

// IsReservedKey reports whether key is one of the structural keys
// (text, CDATA, comment, text tail) or the document declaration.
func IsReservedKey(key string) bool {
	return strings.HasPrefix(key, "#") || key == DeclKey
}

// IsElementKey reports whether key names a child element.
func IsElementKey(key string) bool {
	return !IsAttrKey(key) && !IsReservedKey(key)
}

// DefaultDecl returns the declaration substituted for documents that
// never carried one: version 1.0, UTF-8.
func DefaultDecl() *Node {
	decl := NewObject()
	decl.Set(AttrPrefix+"version", FromString("1.0"))
	decl.Set(AttrPrefix+"encoding", FromString("UTF-8"))
	return decl
}

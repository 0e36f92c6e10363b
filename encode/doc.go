// Package encode renders document trees to text.
//
// # Usage
//
//	// Canonical markup, byte-faithful against parse+normalize
//	err := encode.Encode(doc, w, encode.EncodeFormat(format.XMLFormat))
//
//	// Lossy review formats
//	err := encode.Encode(doc, w, encode.EncodeFormat(format.YAMLFormat))
//
// # Related Packages
//
//   - github.com/signadot/xmlsplit/go-xmlsplit/ir - tree representation
//   - github.com/signadot/xmlsplit/go-xmlsplit/xmlparse - parse markup to the tree
package encode

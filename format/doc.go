// Package format names the file formats fragments can be written in and
// read from.
//
// # Usage
//
//	f, err := format.ParseFormat("json5")
//	name := base + f.Suffix()
//
// Markup (xml) is the canonical format: only it round-trips a document
// byte for byte. The others are conveniences for review and tooling.
//
// # Related Packages
//
//   - github.com/signadot/xmlsplit/go-xmlsplit/xmlparse - Parse markup to the tree
//   - github.com/signadot/xmlsplit/go-xmlsplit/encode - Encode the tree to text
package format

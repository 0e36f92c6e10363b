// Package xmlsplit breaks large XML documents into trees of small
// fragment files and recomposes them. The fragment layout is stable
// across runs so the results diff and merge well under version control.
//
// # Usage
//
//	err := xmlsplit.Disassemble(ctx, "app/perms.xml", disassemble.Options{
//		UniqueIDElements: "fullName,name",
//	})
//	...
//	err = xmlsplit.Reassemble(ctx, "app/perms", "xml", false)
//
// # Related Packages
//
// Package disassemble and package reassemble implement the two
// directions. Package xmlparse parses markup into the ir tree, package
// encode renders the tree in any supported fragment format.
package xmlsplit

import (
	"context"

	"github.com/signadot/xmlsplit/go-xmlsplit/disassemble"
	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
	"github.com/signadot/xmlsplit/go-xmlsplit/reassemble"
	"github.com/signadot/xmlsplit/go-xmlsplit/xmlparse"
)

// Disassemble splits the XML file at path, or every XML file directly
// under the directory at path, into a fragment directory per file.
func Disassemble(ctx context.Context, path string, opts disassemble.Options) error {
	return disassemble.NewHandler().Disassemble(ctx, path, opts)
}

// Reassemble recomposes the fragment directory at dirPath into the
// single file <dirPath>.<ext>. The content is always XML; ext only
// names the output file.
func Reassemble(ctx context.Context, dirPath, ext string, postPurge bool) error {
	return reassemble.NewHandler().Reassemble(ctx, dirPath, ext, postPurge)
}

// Parse reads markup into its normalized tree form: whitespace-only
// text entries are dropped, so serializing the result reproduces the
// input's content byte for byte modulo insignificant whitespace.
func Parse(data []byte) (*ir.Node, error) {
	doc, err := xmlparse.Parse(data)
	if err != nil {
		return nil, err
	}
	return xmlparse.Normalize(doc), nil
}

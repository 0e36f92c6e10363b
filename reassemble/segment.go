package reassemble

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/signadot/xmlsplit/go-xmlsplit/debug"
	"github.com/signadot/xmlsplit/go-xmlsplit/decode"
	"github.com/signadot/xmlsplit/go-xmlsplit/encode"
	"github.com/signadot/xmlsplit/go-xmlsplit/format"
	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
)

// ensureSegmentFilesStructure rewrites every markup file in the segment
// directory into the shape document-root (carrying the namespace) >
// inner wrapper (without it) > content, the form the merge step expects
// after a multi-level reassembly.
func ensureSegmentFilesStructure(dirPath, documentRoot, innerWrapper, xmlns string) error {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".xml") {
			continue
		}
		path := filepath.Join(dirPath, e.Name())
		doc, err := decode.File(path)
		if err != nil {
			debug.Warnf("skipping unparsable fragment %s: %v", path, err)
			continue
		}
		rootKey := doc.RootKey()
		if rootKey == "" {
			continue
		}
		rootVal := doc.Get(rootKey)
		if !rootVal.IsObject() {
			continue
		}
		decl := doc.Get(ir.DeclKey)
		if decl == nil {
			decl = ir.DefaultDecl()
		}

		var nonNSKeys []string
		for _, key := range rootVal.Fields {
			if key != ir.XMLNSAttrKey {
				nonNSKeys = append(nonNSKeys, key)
			}
		}
		singleInner := len(nonNSKeys) == 1 && nonNSKeys[0] == innerWrapper

		innerContent := rootVal
		if rootKey == documentRoot && singleInner {
			obj := rootVal.Get(innerWrapper)
			if !obj.IsObject() {
				obj = ir.NewObject()
			}
			innerContent = stripXMLNS(obj)
		}

		wrapped := rootVal.Get(innerWrapper)
		alreadyCorrect := rootKey == documentRoot &&
			rootVal.Has(ir.XMLNSAttrKey) &&
			singleInner &&
			(!wrapped.IsObject() || !wrapped.Has(ir.XMLNSAttrKey))
		if alreadyCorrect {
			continue
		}

		newRoot := ir.NewObject()
		if xmlns != "" {
			newRoot.Set(ir.XMLNSAttrKey, ir.FromString(xmlns))
		}
		newRoot.Set(innerWrapper, innerContent)
		top := ir.NewObject()
		top.Set(ir.DeclKey, decl)
		top.Set(documentRoot, newRoot)

		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(top, buf, encode.EncodeFormat(format.XMLFormat)); err != nil {
			return err
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return err
		}
	}
	return nil
}

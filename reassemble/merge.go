package reassemble

import (
	"github.com/signadot/xmlsplit/go-xmlsplit/debug"
	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
)

// mergeDocs folds the fragment documents into one. The first fragment
// picks the root key and declaration; the root contents merge under
// three rules: arrays concatenate, a repeated object promotes the
// existing value to an array, and scalars are first-write-wins (every
// fragment repeats the root attributes, one copy suffices).
func mergeDocs(docs []*ir.Node) *ir.Node {
	if len(docs) == 0 {
		debug.Errorf("no elements to merge")
		return nil
	}
	rootKey := docs[0].RootKey()
	if rootKey == "" {
		return nil
	}
	merged := ir.NewObject()
	for _, doc := range docs {
		if content := doc.Get(rootKey); content.IsObject() {
			mergeContent(merged, content)
		}
	}
	decl := docs[0].Get(ir.DeclKey)
	if decl == nil {
		decl = ir.DefaultDecl()
	}
	out := ir.NewObject()
	out.Set(ir.DeclKey, decl)
	out.Set(rootKey, merged)
	return out
}

func mergeContent(target, source *ir.Node) {
	for i, key := range source.Fields {
		val := source.Values[i]
		switch val.Type {
		case ir.ArrayType:
			mergeArray(target, key, val)
		case ir.ObjectType:
			mergeObject(target, key, val)
		default:
			if !target.Has(key) {
				target.Set(key, val)
			}
		}
	}
}

func mergeArray(target *ir.Node, key string, val *ir.Node) {
	existing := target.Get(key)
	switch {
	case existing == nil:
		target.Set(key, ir.FromSlice(append([]*ir.Node(nil), val.Values...)))
	case existing.Type == ir.ArrayType:
		existing.Values = append(existing.Values, val.Values...)
	default:
		target.Set(key, ir.FromSlice(append([]*ir.Node{existing}, val.Values...)))
	}
}

func mergeObject(target *ir.Node, key string, val *ir.Node) {
	existing := target.Get(key)
	switch {
	case existing == nil:
		target.Set(key, val)
	case existing.Type == ir.ArrayType:
		existing.Values = append(existing.Values, val)
	default:
		target.Set(key, ir.FromSlice([]*ir.Node{existing, val}))
	}
}

// reorderRootKeys rebuilds the root content in manifest order; keys the
// manifest does not name keep their merged order at the end.
func reorderRootKeys(doc *ir.Node, keyOrder []string) *ir.Node {
	rootKey := doc.RootKey()
	if rootKey == "" {
		return nil
	}
	content := doc.Get(rootKey)
	if !content.IsObject() {
		return nil
	}
	reordered := ir.NewObject()
	for _, key := range keyOrder {
		if v := content.Get(key); v != nil {
			reordered.Set(key, v)
		}
	}
	for i, key := range content.Fields {
		if !reordered.Has(key) {
			reordered.Set(key, content.Values[i])
		}
	}
	out := ir.NewObject()
	if decl := doc.Get(ir.DeclKey); decl != nil {
		out.Set(ir.DeclKey, decl)
	}
	out.Set(rootKey, reordered)
	return out
}

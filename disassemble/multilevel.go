package disassemble

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/signadot/xmlsplit/go-xmlsplit/debug"
	"github.com/signadot/xmlsplit/go-xmlsplit/decode"
	"github.com/signadot/xmlsplit/go-xmlsplit/encode"
	"github.com/signadot/xmlsplit/go-xmlsplit/format"
	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
	"github.com/signadot/xmlsplit/go-xmlsplit/manifest"
)

// multiLevel walks the just-produced fragment tree and re-disassembles
// every markup fragment matching the rule's file pattern: the configured
// element is stripped out of the fragment, the fragment is rewritten and
// then split again with the rule's own identifying fields. The applied
// rule is persisted so reassembly can reverse the transformation.
func (h *Handler) multiLevel(ctx context.Context, outDir string, rule *manifest.Rule, opts Options) error {
	cfg, err := manifest.LoadConfig(outDir)
	if err != nil {
		return err
	}
	if cfg == nil {
		cfg = &manifest.Config{}
	}

	stack := []string{outDir}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		entries, err := os.ReadDir(current)
		if err != nil {
			return err
		}
		for _, e := range entries {
			path := filepath.Join(current, e.Name())
			if e.IsDir() {
				stack = append(stack, path)
				continue
			}
			name := e.Name()
			if f, err := format.ParseSuffix(filepath.Ext(name)); err != nil || !f.IsXML() {
				continue
			}
			if !strings.Contains(name, rule.FilePattern) && !strings.Contains(path, rule.FilePattern) {
				continue
			}
			doc, err := decode.File(path)
			if err != nil {
				if debug.Disassemble() {
					debug.Logf("skipping %s: %v\n", path, err)
				}
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
			if rootKey != rule.RootToStrip && !rootVal.Has(rule.RootToStrip) {
				continue
			}
			wrapXMLNS := rootVal.Get(ir.XMLNSAttrKey).ScalarString()

			stripped := stripElement(doc, rule.RootToStrip)
			if stripped == nil {
				continue
			}
			buf := bytes.NewBuffer(nil)
			if err := encode.Encode(stripped, buf, encode.EncodeFormat(format.XMLFormat)); err != nil {
				return err
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return err
			}

			stem := strings.TrimSuffix(name, filepath.Ext(name))
			dirName, _, _ := strings.Cut(stem, ".")
			secondOut := filepath.Join(filepath.Dir(path), dirName)
			subOpts := Options{
				UniqueIDElements: rule.UniqueIDElements,
				Strategy:         StrategyUniqueID,
				PostPurge:        true,
				Format:           opts.Format,
			}
			if err := buildFragments(ctx, path, secondOut, dirName, subOpts); err != nil {
				return err
			}

			if len(cfg.Rules) == 0 {
				applied := *rule
				if applied.PathSegment == "" {
					applied.PathSegment = manifest.PathSegmentFromFilePattern(applied.FilePattern)
				}
				// reassembly wraps pieces back under the fragment's own
				// document root, not the configured strip target
				applied.WrapRootElement = rootKey
				if applied.WrapXMLNS == "" {
					applied.WrapXMLNS = wrapXMLNS
				}
				cfg.Rules = append(cfg.Rules, applied)
			} else if cfg.Rules[0].WrapXMLNS == "" {
				cfg.Rules[0].WrapXMLNS = wrapXMLNS
			}
		}
	}

	if len(cfg.Rules) > 0 {
		return manifest.SaveConfig(outDir, cfg)
	}
	return nil
}

// stripElement removes the named element from the document. When it is
// the root, its inner content becomes the new document; when it is a
// direct child of the root, its content is spliced in as siblings of the
// root's other children.
func stripElement(doc *ir.Node, name string) *ir.Node {
	rootKey := doc.RootKey()
	if rootKey == "" {
		return nil
	}
	rootVal := doc.Get(rootKey)
	if !rootVal.IsObject() {
		return nil
	}
	decl := doc.Get(ir.DeclKey)
	if decl == nil {
		decl = ir.DefaultDecl()
	}
	out := ir.NewObject()
	out.Set(ir.DeclKey, decl)

	if rootKey == name {
		// the stripped root's attributes have no home in the new document
		for i, key := range rootVal.Fields {
			if !ir.IsAttrKey(key) {
				out.Set(key, rootVal.Values[i])
			}
		}
		return out
	}

	inner := rootVal.Get(name)
	if !inner.IsObject() {
		return nil
	}
	newRoot := ir.NewObject()
	for i, key := range rootVal.Fields {
		if key != name {
			newRoot.Set(key, rootVal.Values[i])
		}
	}
	for i, key := range inner.Fields {
		newRoot.Set(key, inner.Values[i])
	}
	out.Set(rootKey, newRoot)
	return out
}

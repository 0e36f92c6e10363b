package disassemble

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/signadot/xmlsplit/go-xmlsplit/debug"
	"github.com/signadot/xmlsplit/go-xmlsplit/encode"
	"github.com/signadot/xmlsplit/go-xmlsplit/format"
	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
	"github.com/signadot/xmlsplit/go-xmlsplit/manifest"
	"github.com/signadot/xmlsplit/go-xmlsplit/uniqueid"
	"github.com/signadot/xmlsplit/go-xmlsplit/xmlparse"
)

// batchSize bounds concurrent fragment writes for one source file.
const batchSize = 20

// builder carries the per-source state every fragment needs: the root
// element's name and attributes plus the document declaration, so each
// fragment is independently a valid document.
type builder struct {
	outDir    string
	rootName  string
	rootAttrs *ir.Node
	decl      *ir.Node
	format    format.Format
	idFields  []string
}

type fragment struct {
	content  *ir.Node
	fileName string
	subdir   string
	wrapKey  string
	grouped  bool
}

// buildFragments disassembles the markup file at path into outDir. A
// document with only leaf children is reported and left untouched.
func buildFragments(ctx context.Context, path, outDir, baseName string, opts Options) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	parsed, err := xmlparse.Parse(raw)
	if err != nil {
		debug.Errorf("%s was unable to be parsed and will not be processed, confirm formatting and try again", path)
		if debug.Parse() {
			debug.Logf("parse error: %v\n", err)
		}
		return nil
	}
	doc := xmlparse.Normalize(parsed)

	rootName := doc.RootKey()
	if rootName == "" {
		return nil
	}
	rootElem := doc.Get(rootName)

	decl := doc.Get(ir.DeclKey)
	if decl == nil {
		decl = xmlparse.ExtractDecl(raw)
	}
	rootAttrs := ir.NewObject()
	for _, key := range rootElem.Keys() {
		if ir.IsAttrKey(key) {
			rootAttrs.Set(key, rootElem.Get(key))
		}
	}
	if !rootAttrs.Has(ir.XMLNSAttrKey) {
		if xmlns := xmlparse.ExtractXMLNS(raw); xmlns != "" {
			rootAttrs.Set(ir.XMLNSAttrKey, ir.FromString(xmlns))
		}
	}
	var keyOrder []string
	for _, key := range rootElem.Keys() {
		if !ir.IsAttrKey(key) {
			keyOrder = append(keyOrder, key)
		}
	}

	b := &builder{
		outDir:    outDir,
		rootName:  rootName,
		rootAttrs: rootAttrs,
		decl:      decl,
		format:    opts.Format,
		idFields:  uniqueid.ParseFields(opts.UniqueIDElements),
	}

	var (
		leafContent = ir.NewObject()
		leafCount   int
		hasNested   bool
		groupTags   []string
		groups      = map[string][]*ir.Node{}
	)
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(batchSize)
	for _, key := range keyOrder {
		val := rootElem.Get(key)
		elements := []*ir.Node{val}
		if val.Type == ir.ArrayType {
			elements = val.Values
		}
		for _, elem := range elements {
			if !elem.IsNested() {
				arr := leafContent.Get(key)
				if arr == nil {
					arr = ir.NewArray()
					leafContent.Set(key, arr)
				}
				arr.Append(elem)
				leafCount++
				continue
			}
			hasNested = true
			if opts.Strategy == StrategyGroupedByTag {
				if _, seen := groups[key]; !seen {
					groupTags = append(groupTags, key)
				}
				groups[key] = append(groups[key], elem)
				continue
			}
			frag := fragment{content: elem, subdir: key, wrapKey: key}
			grp.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return b.writeFragment(frag)
			})
		}
	}
	if err := grp.Wait(); err != nil {
		return err
	}

	if !hasNested {
		if leafCount > 0 {
			debug.Errorf("the XML file %s only has leaf elements and will not be disassembled", path)
		}
		return nil
	}

	for _, tag := range groupTags {
		if err := b.writeGroup(tag, groups[tag], opts.DecomposeRules); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	if err := manifest.SaveKeyOrder(outDir, keyOrder); err != nil {
		return err
	}

	if leafCount > 0 {
		frag := fragment{content: leafContent, fileName: baseName + b.format.Suffix()}
		if err := b.writeFragment(frag); err != nil {
			return err
		}
	}

	if opts.PostPurge {
		return os.Remove(path)
	}
	return nil
}

// writeGroup writes the buffered elements of one tag under the
// grouped-by-tag strategy, applying the tag's decompose rule if any.
func (b *builder) writeGroup(tag string, elems []*ir.Node, rules []DecomposeRule) error {
	var rule *DecomposeRule
	for i := range rules {
		if rules[i].Tag == tag {
			rule = &rules[i]
			break
		}
	}
	if rule == nil {
		return b.writeFragment(fragment{
			content:  ir.FromSlice(elems),
			fileName: tag + b.format.Suffix(),
			wrapKey:  tag,
			grouped:  true,
		})
	}
	switch rule.Mode {
	case "split":
		for _, elem := range elems {
			id := uniqueid.Resolve(elem, []string{rule.Field})
			err := b.writeFragment(fragment{
				content:  elem,
				fileName: id + "." + tag + "-meta" + b.format.Suffix(),
				subdir:   rule.PathSegment,
				wrapKey:  tag,
			})
			if err != nil {
				return err
			}
		}
		return nil
	case "group":
		var order []string
		buckets := map[string][]*ir.Node{}
		for _, elem := range elems {
			id := uniqueid.Resolve(elem, []string{rule.Field})
			if _, seen := buckets[id]; !seen {
				order = append(order, id)
			}
			buckets[id] = append(buckets[id], elem)
		}
		for _, id := range order {
			err := b.writeFragment(fragment{
				content:  ir.FromSlice(buckets[id]),
				fileName: id + "." + tag + b.format.Suffix(),
				subdir:   rule.PathSegment,
				wrapKey:  tag,
				grouped:  true,
			})
			if err != nil {
				return err
			}
		}
		return nil
	default:
		debug.Warnf("unsupported decompose mode %q for tag %q, writing one grouped file", rule.Mode, tag)
		return b.writeFragment(fragment{
			content:  ir.FromSlice(elems),
			fileName: tag + b.format.Suffix(),
			wrapKey:  tag,
			grouped:  true,
		})
	}
}

// writeFragment wraps content as a standalone document carrying the
// source root's name and attributes, then writes it in the configured
// format. Unnamed object fragments are named by the unique-id resolver.
func (b *builder) writeFragment(frag fragment) error {
	dir := b.outDir
	if frag.subdir != "" {
		dir = filepath.Join(dir, frag.subdir)
	}
	name := frag.fileName
	if name == "" {
		if frag.wrapKey != "" && !frag.grouped && frag.content.IsObject() {
			id := uniqueid.Resolve(frag.content, b.idFields)
			name = id + "." + frag.wrapKey + "-meta" + b.format.Suffix()
		} else {
			name = "output"
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	inner := b.rootAttrs.Clone()
	if frag.wrapKey != "" {
		inner.Set(frag.wrapKey, frag.content)
	} else if frag.content.IsObject() {
		for i, key := range frag.content.Fields {
			inner.Set(key, frag.content.Values[i])
		}
	}
	docNode := ir.NewObject()
	if b.decl != nil {
		docNode.Set(ir.DeclKey, b.decl)
	}
	docNode.Set(b.rootName, inner)

	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(docNode, buf, encode.EncodeFormat(b.format)); err != nil {
		return err
	}
	outPath := filepath.Join(dir, name)
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return err
	}
	if debug.Disassemble() {
		debug.Logf("created disassembled file: %s\n", outPath)
	}
	return nil
}

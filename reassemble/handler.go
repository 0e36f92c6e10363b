// Package reassemble walks a fragment directory, merges the fragments
// back into one document tree, restores the original sibling order from
// the key-order manifest and serializes the result next to the
// directory. Multi-level fragment trees are folded bottom-up first,
// guided by the persisted configuration record.
package reassemble

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

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// segmentSpec marks one directory level as a multi-level segment: its
// subdirectory is read as a single key whose value is the array of each
// file's inner content.
type segmentSpec struct {
	base         string
	name         string
	extractInner bool
}

// Reassemble recomposes the fragment directory at dirPath into a single
// file <dirPath>.<ext>. The content is always markup; ext only names
// the output file. With postPurge the fragment directory is removed
// afterwards; a multi-level directory is always purged since its
// intermediate form cannot be reassembled twice.
func (h *Handler) Reassemble(ctx context.Context, dirPath, ext string, postPurge bool) error {
	if ext == "" {
		ext = "xml"
	}
	fi, err := os.Stat(dirPath)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		debug.Errorf("the provided path to reassemble is not a directory: %s", dirPath)
		return nil
	}

	cfg, err := manifest.LoadConfig(dirPath)
	if err != nil {
		return err
	}
	if cfg != nil {
		if err := h.reassembleSegments(ctx, dirPath, cfg); err != nil {
			return err
		}
	}

	var seg *segmentSpec
	if cfg != nil && len(cfg.Rules) > 0 {
		seg = &segmentSpec{
			base:         dirPath,
			name:         cfg.Rules[0].PathSegment,
			extractInner: true,
		}
	}
	return h.reassemblePlain(ctx, dirPath, ext, postPurge || cfg != nil, seg)
}

// reassembleSegments folds the second decomposition level back into
// per-element markup files: for every rule segment, each element
// directory is reassembled innermost-first, then the segment files are
// rewrapped into the document-root > segment > content shape.
func (h *Handler) reassembleSegments(ctx context.Context, dirPath string, cfg *manifest.Config) error {
	for _, rule := range cfg.Rules {
		if rule.PathSegment == "" {
			continue
		}
		segmentPath := filepath.Join(dirPath, rule.PathSegment)
		fi, err := os.Stat(segmentPath)
		if err != nil || !fi.IsDir() {
			continue
		}
		entries, err := os.ReadDir(segmentPath)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			elemDir := filepath.Join(segmentPath, e.Name())
			subEntries, err := os.ReadDir(elemDir)
			if err != nil {
				return err
			}
			for _, sub := range subEntries {
				if !sub.IsDir() {
					continue
				}
				err := h.reassemblePlain(ctx, filepath.Join(elemDir, sub.Name()), "xml", true, nil)
				if err != nil {
					return err
				}
			}
			if err := h.reassemblePlain(ctx, elemDir, "xml", true, nil); err != nil {
				return err
			}
		}
		err = ensureSegmentFilesStructure(segmentPath, rule.WrapRootElement, rule.PathSegment, rule.WrapXMLNS)
		if err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) reassemblePlain(ctx context.Context, dirPath, ext string, postPurge bool, seg *segmentSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if debug.Reassemble() {
		debug.Logf("parsing directory to reassemble: %s\n", dirPath)
	}
	docs, err := h.collectDir(dirPath, seg)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		debug.Errorf("no files under %s were parsed successfully, a reassembled XML file was not created", dirPath)
		return nil
	}

	merged := mergeDocs(docs)
	if merged == nil {
		return nil
	}
	keyOrder, err := manifest.LoadKeyOrder(dirPath)
	if err != nil {
		return err
	}
	if keyOrder != nil {
		if reordered := reorderRootKeys(merged, keyOrder); reordered != nil {
			merged = reordered
		}
	}

	if debug.Merge() {
		debug.Logf("merged document for %s:\n%s\n", dirPath, encode.MustString(merged))
	}

	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(merged, buf, encode.EncodeFormat(format.XMLFormat)); err != nil {
		return err
	}
	outPath := dirPath + "." + ext
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return err
	}
	if debug.Reassemble() {
		debug.Logf("created reassembled file: %s\n", outPath)
	}

	if postPurge {
		return os.RemoveAll(dirPath)
	}
	return nil
}

// collectDir gathers the parsed fragments under dirPath in lexical
// filename order, recursing into subdirectories. Dotfiles (the
// manifests) are skipped; unparsable files are logged and skipped.
func (h *Handler) collectDir(dirPath string, seg *segmentSpec) ([]*ir.Node, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}
	var docs []*ir.Node
	for _, e := range entries {
		path := filepath.Join(dirPath, e.Name())
		if e.IsDir() {
			if seg != nil && seg.base == dirPath && seg.name == e.Name() {
				segDoc, err := h.collectSegment(path, seg.name, seg.extractInner)
				if err != nil {
					return nil, err
				}
				if segDoc != nil {
					docs = append(docs, segDoc)
				}
				continue
			}
			sub, err := h.collectDir(path, seg)
			if err != nil {
				return nil, err
			}
			docs = append(docs, sub...)
			continue
		}
		if !isParsableFile(e.Name()) {
			continue
		}
		doc, err := decode.File(path)
		if err != nil {
			debug.Warnf("skipping unparsable fragment %s: %v", path, err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// collectSegment reads the segment directory as one synthetic document:
// the first file's root and declaration wrap an array of every file's
// content under the segment key.
func (h *Handler) collectSegment(segmentDir, segmentName string, extractInner bool) (*ir.Node, error) {
	entries, err := os.ReadDir(segmentDir)
	if err != nil {
		return nil, err
	}
	var (
		contents  []*ir.Node
		rootKey   string
		firstDecl *ir.Node
	)
	for _, e := range entries {
		if e.IsDir() || !isParsableFile(e.Name()) {
			continue
		}
		path := filepath.Join(segmentDir, e.Name())
		doc, err := decode.File(path)
		if err != nil {
			debug.Warnf("skipping unparsable fragment %s: %v", path, err)
			continue
		}
		key := doc.RootKey()
		if key == "" {
			continue
		}
		rootVal := doc.Get(key)
		content := rootVal
		if extractInner {
			content = rootVal.Get(segmentName)
			if content == nil {
				content = ir.NewObject()
			}
			content = stripXMLNS(content)
		}
		contents = append(contents, content)
		if rootKey == "" {
			rootKey = key
			firstDecl = doc.Get(ir.DeclKey)
		}
	}
	if len(contents) == 0 {
		return nil, nil
	}
	if firstDecl == nil {
		firstDecl = ir.DefaultDecl()
	}
	inner := ir.NewObject()
	inner.Set(segmentName, ir.FromSlice(contents))
	doc := ir.NewObject()
	doc.Set(ir.DeclKey, firstDecl)
	doc.Set(rootKey, inner)
	return doc, nil
}

func stripXMLNS(v *ir.Node) *ir.Node {
	if !v.IsObject() {
		return v
	}
	out := ir.NewObject()
	for i, key := range v.Fields {
		if key != ir.XMLNSAttrKey {
			out.Set(key, v.Values[i])
		}
	}
	return out
}

func isParsableFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	_, err := format.ParseSuffix(filepath.Ext(name))
	return err == nil
}


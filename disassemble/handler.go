// Package disassemble splits a markup document into fragment files: one
// per nested element (unique-id strategy) or one per tag (grouped-by-tag
// strategy), plus a single fragment for the leaf elements and manifests
// that let the reassembler restore the original byte for byte.
package disassemble

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/signadot/xmlsplit/go-xmlsplit/debug"
)

type Handler struct {
	ign *gitignore.GitIgnore
}

func NewHandler() *Handler {
	return &Handler{}
}

// Disassemble splits the markup file at path, or every markup file
// directly inside it when path is a directory. Fragments for a file
// land in a sibling directory named after the file's base name.
func (h *Handler) Disassemble(ctx context.Context, path string, opts Options) error {
	opts = opts.withDefaults()
	h.loadIgnoreRules(opts.IgnorePath)

	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return h.disassembleDir(ctx, path, opts)
	}
	return h.disassembleFile(ctx, path, opts)
}

func (h *Handler) loadIgnoreRules(ignorePath string) {
	if _, err := os.Stat(ignorePath); err != nil {
		return
	}
	ign, err := gitignore.CompileIgnoreFile(ignorePath)
	if err != nil {
		debug.Warnf("could not read ignore file %s: %v", ignorePath, err)
		return
	}
	h.ign = ign
}

func (h *Handler) isIgnored(path string) bool {
	return h.ign != nil && h.ign.MatchesPath(filepath.ToSlash(path))
}

func isMarkupFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xml")
}

func (h *Handler) disassembleFile(ctx context.Context, path string, opts Options) error {
	if !isMarkupFile(path) {
		debug.Errorf("the file path provided is not an XML file: %s", path)
		return nil
	}
	if h.isIgnored(path) {
		debug.Warnf("file ignored by ignore rules: %s", path)
		return nil
	}
	return h.processFile(ctx, path, opts)
}

func (h *Handler) disassembleDir(ctx context.Context, dir string, opts Options) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(opts.Concurrency)
	for _, e := range entries {
		sub := filepath.Join(dir, e.Name())
		if e.IsDir() || !isMarkupFile(sub) {
			continue
		}
		if h.isIgnored(sub) {
			debug.Warnf("file ignored by ignore rules: %s", sub)
			continue
		}
		grp.Go(func() error {
			return h.processFile(ctx, sub, opts)
		})
	}
	return grp.Wait()
}

// processFile derives the output directory from the file name (the stem
// before the first dot), purges it when asked, builds the fragments and
// runs the optional multi-level pass.
func (h *Handler) processFile(ctx context.Context, path string, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if debug.Disassemble() {
		debug.Logf("parsing file to disassemble: %s\n", path)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	baseName, _, _ := strings.Cut(stem, ".")
	outDir := filepath.Join(filepath.Dir(path), baseName)

	if opts.PrePurge {
		if err := os.RemoveAll(outDir); err != nil {
			return err
		}
	}

	if err := buildFragments(ctx, path, outDir, stem, opts); err != nil {
		return err
	}
	if opts.MultiLevel != nil {
		return h.multiLevel(ctx, outDir, opts.MultiLevel, opts)
	}
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/xmlsplit/go-xmlsplit/disassemble"
)

func runDisassemble(cfg *DisassembleConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Disassemble.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: no paths to disassemble", cli.ErrUsage)
	}
	opts := disassemble.Options{
		UniqueIDElements: cfg.UniqueIDElements,
		Strategy:         cfg.Strategy,
		PrePurge:         cfg.PrePurge,
		PostPurge:        cfg.PostPurge,
		IgnorePath:       cfg.IgnorePath,
		Format:           cfg.Format,
		Concurrency:      cfg.Concurrency,
	}
	if cfg.SplitTags != "" {
		opts.DecomposeRules = disassemble.ParseDecomposeRules(cfg.SplitTags)
		if len(opts.DecomposeRules) == 0 {
			return fmt.Errorf("%w: no valid rules in -split-tags %q", cli.ErrUsage, cfg.SplitTags)
		}
	}
	if cfg.MultiLevel != "" {
		opts.MultiLevel = disassemble.ParseMultiLevelRule(cfg.MultiLevel)
		if opts.MultiLevel == nil {
			return fmt.Errorf("%w: malformed -multi-level %q", cli.ErrUsage, cfg.MultiLevel)
		}
	}
	h := disassemble.NewHandler()
	ctx := context.Background()
	for _, path := range args {
		if err := h.Disassemble(ctx, path, opts); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/xmlsplit/go-xmlsplit/reassemble"
)

func runReassemble(cfg *ReassembleConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Reassemble.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: no directories to reassemble", cli.ErrUsage)
	}
	h := reassemble.NewHandler()
	ctx := context.Background()
	for _, dir := range args {
		if err := h.Reassemble(ctx, dir, cfg.Extension, cfg.PostPurge); err != nil {
			return err
		}
	}
	return nil
}

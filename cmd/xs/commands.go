package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/xmlsplit/go-xmlsplit/format"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "xs").
		WithSynopsis("xs [opts] command [opts]").
		WithDescription("xs splits large XML files into fragment trees and puts them back together.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return xsMain(cfg, cc, args)
		}).
		WithSubs(
			DisassembleCommand(cfg),
			ReassembleCommand(cfg),
			ParseCommand(cfg))
}

func DisassembleCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DisassembleConfig{MainConfig: mainCfg, Format: format.XMLFormat}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "format",
		Aliases:     []string{"f"},
		Description: "fragment file format: xml/x, json/j, json5, yaml/y, toml, ini",
		Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.Format), "(format)"),
	})
	cmd := cli.NewCommand("disassemble").
		WithAliases("d", "dis").
		WithSynopsis("disassemble [opts] <file-or-dir> [<file-or-dir> ...]").
		WithDescription(disassembleDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runDisassemble(cfg, cc, args)
		})
	cfg.Disassemble = cmd
	return cmd
}

const disassembleDescription = `disassemble breaks an XML file into a directory of fragment files.

Each nested child of the document root becomes its own fragment, named by
the strategy in effect:

  unique-id       one file per element, named by the element's identifying
                  field (falling back to a content hash)
  grouped-by-tag  one file per tag, holding every element of that tag

Non-nested children stay together in a single leaf fragment. The original
sibling order is recorded in a manifest so reassembly can restore it.

With -split-tags, grouped-by-tag output is refined per tag:

  -split-tags 'member:split:fullName'
      one file per member element, named by its fullName
  -split-tags 'member:members:group:region'
      elements bucketed by region, one file per bucket, under members/

With -multi-level 'pattern:element:fields', every fragment whose name
matches pattern is split a second time: element is stripped out of the
fragment and the remainder is re-disassembled using fields as the
identifying fields. The applied rule is persisted alongside the fragments
so reassemble can reverse it.`

func ReassembleCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ReassembleConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("reassemble").
		WithAliases("r", "re").
		WithSynopsis("reassemble [opts] <dir> [<dir> ...]").
		WithDescription("reassemble recomposes a fragment directory into a single XML file next to it.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runReassemble(cfg, cc, args)
		})
	cfg.Reassemble = cmd
	return cmd
}

func ParseCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ParseConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("parse").
		WithAliases("p").
		WithSynopsis("parse [-verify] [files]").
		WithDescription("parse XML files, normalize them and print the serialized form; -verify diffs the result against the input instead").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runParse(cfg, cc, args)
		})
	cfg.Parse = cmd
	return cmd
}

func (cfg *MainConfig) fmtFunc(fp *format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = f
		return f, nil
	})
}

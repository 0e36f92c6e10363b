package main

import (
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/xmlsplit/go-xmlsplit/format"
)

type MainConfig struct {
	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

type DisassembleConfig struct {
	*MainConfig

	UniqueIDElements string `cli:"name=unique-id-elements aliases=ids desc='comma-separated identifying field names for fragment naming'"`
	Strategy         string `cli:"name=strategy aliases=s desc='unique-id or grouped-by-tag'"`
	PrePurge         bool   `cli:"name=prepurge desc='remove existing disassembly output before running'"`
	PostPurge        bool   `cli:"name=postpurge desc='delete the source file after disassembling'"`
	IgnorePath       string `cli:"name=ignore-path desc='gitignore-style file of sources to skip'"`
	SplitTags        string `cli:"name=split-tags desc='per-tag rules tag:mode:field or tag:path:mode:field, comma-separated'"`
	MultiLevel       string `cli:"name=multi-level desc='second-level rule file_pattern:root_to_strip:unique_id_elements'"`
	Concurrency      int    `cli:"name=concurrency desc='bound on parallel fragment writes'"`

	Format format.Format

	Disassemble *cli.Command
}

type ReassembleConfig struct {
	*MainConfig

	Extension string `cli:"name=ext aliases=extension desc='extension of the reassembled file (content is always XML)'"`
	PostPurge bool   `cli:"name=postpurge desc='remove the fragment directory after reassembling'"`

	Reassemble *cli.Command
}

type ParseConfig struct {
	*MainConfig

	Verify bool `cli:"name=verify desc='diff the reserialized form against the input instead of printing it'"`

	Parse *cli.Command
}

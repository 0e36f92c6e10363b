package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/signadot/xmlsplit/go-xmlsplit/encode"
	"github.com/signadot/xmlsplit/go-xmlsplit/format"
	"github.com/signadot/xmlsplit/go-xmlsplit/linediff"
	"github.com/signadot/xmlsplit/go-xmlsplit/xmlparse"
)

func runParse(cfg *ParseConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := parseArg(cfg, cc.Out, arg); err != nil {
			return err
		}
	}
	return nil
}

func parseArg(cfg *ParseConfig, w io.Writer, arg string) error {
	var rd io.Reader
	if arg == "-" {
		rd = os.Stdin
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return fmt.Errorf("error opening %s: %w", arg, err)
		}
		defer f.Close()
		rd = f
	}
	data, err := io.ReadAll(rd)
	if err != nil {
		return err
	}
	doc, err := xmlparse.Parse(data)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", arg, err)
	}
	doc = xmlparse.Normalize(doc)
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(doc, buf, encode.EncodeFormat(format.XMLFormat)); err != nil {
		return fmt.Errorf("error encoding %s: %w", arg, err)
	}
	if !cfg.Verify {
		_, err := w.Write(buf.Bytes())
		return err
	}

	// the serializer trims trailing whitespace, compare like with like
	want := strings.TrimRight(string(data), " \t\r\n")
	if d := linediff.Unified(want, buf.String()); d != "" {
		fmt.Fprint(w, d)
		return fmt.Errorf("%s: round trip differs", arg)
	}
	fmt.Fprintf(w, "%s: round trip ok\n", arg)
	return nil
}

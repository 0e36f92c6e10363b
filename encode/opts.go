package encode

import "github.com/signadot/xmlsplit/go-xmlsplit/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// Indent overrides the markup writer's four-space indent step.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

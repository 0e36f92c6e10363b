package debug

import (
	"os"
	"strconv"
)

type debug struct {
	All         bool
	Parse       bool
	Disassemble bool
	Reassemble  bool
	Merge       bool
}

var d *debug

func init() {
	d = &debug{}
	d.All = boolEnv("XMLSPLIT_DEBUG")
	d.Parse = d.All || boolEnv("XMLSPLIT_DEBUG_PARSE")
	d.Disassemble = d.All || boolEnv("XMLSPLIT_DEBUG_DISASSEMBLE")
	d.Reassemble = d.All || boolEnv("XMLSPLIT_DEBUG_REASSEMBLE")
	d.Merge = d.All || boolEnv("XMLSPLIT_DEBUG_MERGE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Disassemble() bool {
	return d.Disassemble
}
func Reassemble() bool {
	return d.Reassemble
}
func Merge() bool {
	return d.Merge
}

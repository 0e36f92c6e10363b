package debug

import (
	"os"
	"testing"
)

func TestBoolEnv(t *testing.T) {
	tests := map[string]bool{
		"":      false,
		"0":     false,
		"false": false,
		"junk":  false,
		"1":     true,
		"true":  true,
	}
	for val, want := range tests {
		t.Setenv("XMLSPLIT_DEBUG_TESTGATE", val)
		if got := boolEnv("XMLSPLIT_DEBUG_TESTGATE"); got != want {
			t.Errorf("boolEnv(%q) = %v, want %v", val, got, want)
		}
	}
}

func TestGatesDefaultOff(t *testing.T) {
	for _, v := range []string{
		"XMLSPLIT_DEBUG",
		"XMLSPLIT_DEBUG_PARSE",
		"XMLSPLIT_DEBUG_DISASSEMBLE",
		"XMLSPLIT_DEBUG_REASSEMBLE",
		"XMLSPLIT_DEBUG_MERGE",
	} {
		if os.Getenv(v) != "" {
			t.Skipf("%s set in environment", v)
		}
	}
	if Parse() || Disassemble() || Reassemble() || Merge() {
		t.Error("debug gates on without any XMLSPLIT_DEBUG env var")
	}
}

package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"xml":   XMLFormat,
		"x":     XMLFormat,
		"json":  JSONFormat,
		"j":     JSONFormat,
		"json5": JSON5Format,
		"yaml":  YAMLFormat,
		"yml":   YAMLFormat,
		"y":     YAMLFormat,
		"toml":  TOMLFormat,
		"ini":   INIFormat,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseFormat("tsv"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("ParseFormat(tsv) err = %v, want ErrBadFormat", err)
	}
}

func TestParseSuffix(t *testing.T) {
	got, err := ParseSuffix(".json5")
	if err != nil || got != JSON5Format {
		t.Errorf("ParseSuffix(.json5) = %s, %v", got, err)
	}
	if _, err := ParseSuffix(".txt"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("ParseSuffix(.txt) err = %v, want ErrBadFormat", err)
	}
}

func TestSuffixRoundTrip(t *testing.T) {
	for _, f := range AllFormats() {
		got, err := ParseSuffix(f.Suffix())
		if err != nil {
			t.Errorf("ParseSuffix(%q): %v", f.Suffix(), err)
			continue
		}
		if got != f {
			t.Errorf("ParseSuffix(%q) = %s, want %s", f.Suffix(), got, f)
		}
	}
}

func TestTextMarshalling(t *testing.T) {
	d, err := YAMLFormat.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var f Format
	if err := f.UnmarshalText(d); err != nil {
		t.Fatal(err)
	}
	if f != YAMLFormat {
		t.Errorf("round trip = %s", f)
	}
}

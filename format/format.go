package format

import (
	"errors"
	"fmt"
)

type Format int

const (
	XMLFormat Format = iota
	JSONFormat
	JSON5Format
	YAMLFormat
	TOMLFormat
	INIFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"x":     XMLFormat,
		"xml":   XMLFormat,
		"j":     JSONFormat,
		"json":  JSONFormat,
		"json5": JSON5Format,
		"y":     YAMLFormat,
		"yaml":  YAMLFormat,
		"yml":   YAMLFormat,
		"toml":  TOMLFormat,
		"ini":   INIFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// ParseSuffix maps a file extension (with or without the dot) to its
// format.
func ParseSuffix(ext string) (Format, error) {
	if len(ext) > 0 && ext[0] == '.' {
		ext = ext[1:]
	}
	return ParseFormat(ext)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case XMLFormat:
		return []byte("xml"), nil
	case JSONFormat:
		return []byte("json"), nil
	case JSON5Format:
		return []byte("json5"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case TOMLFormat:
		return []byte("toml"), nil
	case INIFormat:
		return []byte("ini"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsXML() bool { return f == XMLFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case XMLFormat:
		return ".xml"
	case JSONFormat:
		return ".json"
	case JSON5Format:
		return ".json5"
	case YAMLFormat:
		return ".yaml"
	case TOMLFormat:
		return ".toml"
	case INIFormat:
		return ".ini"
	default:
		return ""
	}
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{XMLFormat, JSONFormat, JSON5Format, YAMLFormat, TOMLFormat, INIFormat}
}

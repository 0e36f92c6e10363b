package encode

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	gojson "github.com/goccy/go-json"
	goyaml "github.com/goccy/go-yaml"
	"gopkg.in/ini.v1"

	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
)

// The alternate formats carry the same tree but give up byte fidelity.
// JSON keeps insertion order through the node's own marshaller; YAML
// keeps it through an ordered map slice; TOML and INI sort keys, which
// the key-order manifest compensates for on reassembly.

func encodeJSON(node *ir.Node, w io.Writer) error {
	d, err := gojson.MarshalIndent(node, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

func encodeYAML(node *ir.Node, w io.Writer) error {
	d, err := goyaml.Marshal(yamlValue(node))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

func yamlValue(node *ir.Node) any {
	switch node.Type {
	case ir.ObjectType:
		ms := make(goyaml.MapSlice, 0, len(node.Fields))
		for i, f := range node.Fields {
			ms = append(ms, goyaml.MapItem{Key: f, Value: yamlValue(node.Values[i])})
		}
		return ms
	case ir.ArrayType:
		vs := make([]any, 0, len(node.Values))
		for _, v := range node.Values {
			vs = append(vs, yamlValue(v))
		}
		return vs
	default:
		return ir.ToGo(node)
	}
}

func encodeTOML(node *ir.Node, w io.Writer) error {
	v := ir.ToGo(node)
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: toml output needs an object document", ErrEncoding)
	}
	if err := toml.NewEncoder(w).Encode(m); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return nil
}

// encodeINI flattens one level: object-valued document keys become
// sections of scalar entries, anything deeper is stored as its canonical
// JSON text so no content is silently dropped.
func encodeINI(node *ir.Node, w io.Writer) error {
	if node.Type != ir.ObjectType {
		return fmt.Errorf("%w: ini output needs an object document", ErrEncoding)
	}
	f := ini.Empty()
	for i, key := range node.Fields {
		val := node.Values[i]
		if val.Type != ir.ObjectType {
			f.Section("").Key(key).SetValue(iniScalar(val))
			continue
		}
		sec, err := f.NewSection(key)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		for j, subKey := range val.Fields {
			sec.Key(subKey).SetValue(iniScalar(val.Values[j]))
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return nil
}

func iniScalar(v *ir.Node) string {
	switch v.Type {
	case ir.ObjectType, ir.ArrayType:
		d, err := gojson.Marshal(v)
		if err != nil {
			return ""
		}
		return string(d)
	default:
		return v.ScalarString()
	}
}

package ir

import (
	"fmt"
	"sort"
)

// FromGo converts a decoded Go value (as produced by the JSON, YAML, TOML
// and INI decoders) into a Node. Map keys are sorted for determinism since
// Go maps carry no order; the key-order manifest restores document order
// at reassembly.
func FromGo(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint64:
		return FromInt(int64(x)), nil
	case float64:
		if x == float64(int64(x)) {
			return FromInt(int64(x)), nil
		}
		return FromFloat(x), nil
	case []any:
		res := NewArray()
		for _, e := range x {
			y, err := FromGo(e)
			if err != nil {
				return nil, err
			}
			res.Append(y)
		}
		return res, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		res := NewObject()
		for _, k := range keys {
			y, err := FromGo(x[k])
			if err != nil {
				return nil, err
			}
			res.Set(k, y)
		}
		return res, nil
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[fmt.Sprint(k)] = val
		}
		return FromGo(m)
	default:
		return nil, fmt.Errorf("%w: cannot convert %T", ErrBadNode, v)
	}
}

// ToGo converts a Node into plain Go values for the one-shot format
// encoders. Object order is lost; the alternate formats carry no
// round-trip obligation.
func ToGo(y *Node) any {
	if y == nil {
		return nil
	}
	switch y.Type {
	case NullType:
		return nil
	case BoolType:
		return y.Bool
	case StringType:
		return y.String
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return int64(0)
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = ToGo(v)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i, f := range y.Fields {
			res[f] = ToGo(y.Values[i])
		}
		return res
	default:
		return nil
	}
}

package ir

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// MarshalJSON renders the node as compact JSON with object keys in
// insertion order. This is the canonical form hashed by ShortHash and
// the base form for JSON fragment output.
func (y *Node) MarshalJSON() ([]byte, error) {
	return y.appendJSON(nil)
}

func (y *Node) appendJSON(dst []byte) ([]byte, error) {
	if y == nil {
		return append(dst, "null"...), nil
	}
	var err error
	switch y.Type {
	case NullType:
		return append(dst, "null"...), nil
	case BoolType:
		return strconv.AppendBool(dst, y.Bool), nil
	case NumberType:
		if y.Int64 != nil {
			return strconv.AppendInt(dst, *y.Int64, 10), nil
		}
		if y.Float64 != nil {
			return strconv.AppendFloat(dst, *y.Float64, 'f', -1, 64), nil
		}
		return append(dst, '0'), nil
	case StringType:
		return appendJSONString(dst, y.String)
	case ArrayType:
		dst = append(dst, '[')
		for i, v := range y.Values {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst, err = v.appendJSON(dst)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case ObjectType:
		dst = append(dst, '{')
		for i, f := range y.Fields {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst, err = appendJSONString(dst, f)
			if err != nil {
				return nil, err
			}
			dst = append(dst, ':')
			dst, err = y.Values[i].appendJSON(dst)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	default:
		return nil, fmt.Errorf("%w: cannot marshal type %s", ErrBadNode, y.Type)
	}
}

func appendJSONString(dst []byte, s string) ([]byte, error) {
	d, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return append(dst, d...), nil
}

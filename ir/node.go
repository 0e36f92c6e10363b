package ir

import (
	"strconv"
	"strings"
)

// Node is the tagged-union tree value. Objects keep their keys in
// insertion order via the parallel Fields/Values slices; arrays use
// Values alone. Scalars use the remaining fields according to Type.
type Node struct {
	Type   Type
	Fields []string
	Values []*Node

	String  string
	Bool    bool
	Int64   *int64
	Float64 *float64
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

func NewArray() *Node {
	return &Node{Type: ArrayType}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(v float64) *Node {
	return &Node{Type: NumberType, Float64: &v}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromSlice(vs []*Node) *Node {
	return &Node{Type: ArrayType, Values: vs}
}

func (y *Node) IsObject() bool { return y != nil && y.Type == ObjectType }
func (y *Node) IsArray() bool  { return y != nil && y.Type == ArrayType }

// Get returns the value under key, or nil.
func (y *Node) Get(key string) *Node {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	for i, f := range y.Fields {
		if f == key {
			return y.Values[i]
		}
	}
	return nil
}

func (y *Node) Has(key string) bool {
	return y.Get(key) != nil
}

// Set inserts key at the end of the object, or replaces its value if the
// key is already present.
func (y *Node) Set(key string, v *Node) {
	for i, f := range y.Fields {
		if f == key {
			y.Values[i] = v
			return
		}
	}
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, v)
}

// Insert adds v under key with repeated-sibling promotion: a second value
// for the same key promotes the existing value to an Array in place, and
// subsequent values append to it.
func (y *Node) Insert(key string, v *Node) {
	for i, f := range y.Fields {
		if f != key {
			continue
		}
		prev := y.Values[i]
		if prev.Type == ArrayType {
			prev.Values = append(prev.Values, v)
			return
		}
		y.Values[i] = FromSlice([]*Node{prev, v})
		return
	}
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, v)
}

// Delete removes key from the object, preserving the order of the rest.
func (y *Node) Delete(key string) {
	for i, f := range y.Fields {
		if f == key {
			y.Fields = append(y.Fields[:i], y.Fields[i+1:]...)
			y.Values = append(y.Values[:i], y.Values[i+1:]...)
			return
		}
	}
}

// Append adds v to an array node.
func (y *Node) Append(v *Node) {
	y.Values = append(y.Values, v)
}

func (y *Node) Len() int {
	if y == nil {
		return 0
	}
	switch y.Type {
	case ObjectType:
		return len(y.Fields)
	case ArrayType:
		return len(y.Values)
	}
	return 0
}

// Keys returns the object's keys in insertion order.
func (y *Node) Keys() []string {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	return append([]string(nil), y.Fields...)
}

// ElementKeys returns the keys naming child elements, in insertion order,
// skipping attribute and reserved structural keys.
func (y *Node) ElementKeys() []string {
	var res []string
	for _, f := range y.Keys() {
		if IsElementKey(f) {
			res = append(res, f)
		}
	}
	return res
}

// IsNested reports whether the node branches: it is an array, or an
// object with at least one child-element key. Leaf elements carry only
// attributes, structural keys and scalar content.
func (y *Node) IsNested() bool {
	if y == nil {
		return false
	}
	if y.Type == ArrayType {
		return true
	}
	if y.Type != ObjectType {
		return false
	}
	for _, f := range y.Fields {
		if IsElementKey(f) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy sharing no nodes with y.
func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	dst := &Node{
		Type:   y.Type,
		String: y.String,
		Bool:   y.Bool,
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Fields != nil {
		dst.Fields = append([]string(nil), y.Fields...)
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			dst.Values[i] = v.Clone()
		}
	}
	return dst
}

// ScalarString renders a scalar node the way it appears in markup text.
// Objects and arrays render as their canonical JSON, matching the legacy
// converter's attribute stringification.
func (y *Node) ScalarString() string {
	if y == nil {
		return ""
	}
	switch y.Type {
	case StringType:
		return y.String
	case NumberType:
		if y.Int64 != nil {
			return strconv.FormatInt(*y.Int64, 10)
		}
		if y.Float64 != nil {
			return strconv.FormatFloat(*y.Float64, 'f', -1, 64)
		}
		return ""
	case BoolType:
		return strconv.FormatBool(y.Bool)
	case NullType:
		return ""
	default:
		d, err := y.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(d)
	}
}

// RootKey returns the document's single non-declaration top-level key,
// or "" when the document has none.
func (y *Node) RootKey() string {
	for _, f := range y.Keys() {
		if f != DeclKey {
			return f
		}
	}
	return ""
}

// Visit walks the tree pre- and post-order; returning false from the
// pre-order call skips the subtree.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	_, err = f(y, true)
	return err
}

// TrimmedString returns the node's string value with surrounding
// whitespace removed, for whitespace-significance checks.
func (y *Node) TrimmedString() string {
	return strings.TrimSpace(y.String)
}

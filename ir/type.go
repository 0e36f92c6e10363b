package ir

type Type int

const (
	NullType Type = iota
	StringType
	NumberType
	BoolType
	ObjectType
	ArrayType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:   "Null",
		StringType: "String",
		NumberType: "Number",
		BoolType:   "Bool",
		ObjectType: "Object",
		ArrayType:  "Array",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

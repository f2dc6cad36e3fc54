package vm

type Type string

const (
	TypeInt    Type = "int"
	TypeBool   Type = "bool"
	TypeString Type = "string"
	TypeVoid   Type = "void"
	TypeNil    Type = "nil"
	TypeThunk  Type = "thunk"
)

func (t Type) IsPrimitive() bool {
	switch t {
	case TypeInt, TypeBool, TypeString:
		return true
	}
	return false
}

// DefaultValue is the initial value of a variable or field of type t.
// Struct typed and untyped slots start out as nil.
func DefaultValue(t Type) Value {
	switch t {
	case TypeInt:
		return IntValue(0)
	case TypeBool:
		return BoolFalse
	case TypeString:
		return StrValue("")
	case TypeVoid:
		return Void
	}
	return Nil
}

// Compatible reports whether v may be stored in a slot of type target.
// Struct types are nominal: only nil or an object of exactly that struct
// fits. An int fits a bool slot through coercion.
func Compatible(target Type, v Value) bool {
	if target == "" {
		return true
	}
	switch val := v.(type) {
	case NilValue:
		return !target.IsPrimitive() && target != TypeVoid
	case *StructValue:
		return val.Name == target
	case IntValue:
		return target == TypeInt || target == TypeBool
	case BoolValue:
		return target == TypeBool
	case StrValue:
		return target == TypeString
	}
	return false
}

// Coerce converts an int to a bool when the target is bool and leaves
// every other value unchanged.
func Coerce(target Type, v Value) Value {
	if target != TypeBool {
		return v
	}
	if i, ok := v.(IntValue); ok {
		return BoolValue(i != 0)
	}
	return v
}

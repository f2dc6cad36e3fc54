package vm

import (
	"fmt"

	"github.com/brewin-lang/brewin/ast"
)

type Value interface {
	isValue()
	Type() Type
}

type BoolValue bool

func (BoolValue) isValue() {}

var (
	BoolTrue  = BoolValue(true)
	BoolFalse = BoolValue(false)
)

func (BoolValue) Type() Type { return TypeBool }

type StrValue string

func (StrValue) isValue()   {}
func (StrValue) Type() Type { return TypeString }

type IntValue int64

func (IntValue) isValue()   {}
func (IntValue) Type() Type { return TypeInt }

type NilValue struct{}

func (NilValue) isValue()   {}
func (NilValue) Type() Type { return TypeNil }

var Nil = NilValue{}

// VoidValue is what a void function produces in the typed language.
type VoidValue struct{}

func (VoidValue) isValue()   {}
func (VoidValue) Type() Type { return TypeVoid }

var Void = VoidValue{}

// StructValue is a heap object. Values holding the same pointer alias the
// same object, and equality on objects is pointer identity.
type StructValue struct {
	Name   Type
	Fields Block
}

func (*StructValue) isValue()     {}
func (s *StructValue) Type() Type { return s.Name }

// Field returns the cell for name.
func (s *StructValue) Field(name string) (*Cell, bool) {
	c, ok := s.Fields[name]
	return c, ok
}

// Exception is the signal raised by `raise` or by division by zero. It is
// a result, never stored in a variable.
type Exception struct {
	Tag  string
	Line int
}

func (e *Exception) String() string {
	return fmt.Sprintf("exception %q", e.Tag)
}

// Thunk is a deferred expression together with a copy of the scope blocks
// that were visible when it was created. A thunk is evaluated at most
// once; both normal results and raised exceptions are memoized.
type Thunk struct {
	Expr ast.Expr
	Env  []Block

	forced    bool
	value     Value
	exception *Exception
}

func (*Thunk) isValue()   {}
func (*Thunk) Type() Type { return TypeThunk }

func NewThunk(e ast.Expr, env []Block) *Thunk {
	return &Thunk{Expr: e, Env: env}
}

func (t *Thunk) Forced() bool {
	return t.forced
}

func (t *Thunk) Result() (Value, *Exception) {
	return t.value, t.exception
}

// Memoize records the outcome of forcing the thunk and drops the captured
// environment.
func (t *Thunk) Memoize(v Value, exc *Exception) {
	t.forced = true
	t.value = v
	t.exception = exc
	t.Env = nil
}

// Cell is a named slot in a scope block or a struct. Type is empty for
// untyped variables.
type Cell struct {
	Type  Type
	Value Value
}

type Block map[string]*Cell

// Copy returns a block with fresh cells holding the same values.
func (b Block) Copy() Block {
	out := make(Block, len(b))
	for k, c := range b {
		out[k] = &Cell{Type: c.Type, Value: c.Value}
	}
	return out
}

func FormatValue(v Value) string {
	switch val := v.(type) {
	case IntValue:
		return fmt.Sprintf("%d", val)
	case BoolValue:
		if val {
			return "true"
		}
		return "false"
	case StrValue:
		return string(val)
	case NilValue:
		return "nil"
	case VoidValue:
		return "void"
	case *StructValue:
		return fmt.Sprintf("<%s object>", val.Name)
	case *Thunk:
		if val.forced && val.exception == nil {
			return FormatValue(val.value)
		}
		return "<thunk>"
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%v", val)
	}
}

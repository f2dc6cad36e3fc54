package interp

import (
	"fmt"
	"strings"

	"github.com/brewin-lang/brewin/ast"
	"github.com/brewin-lang/brewin/vm"
)

// eval computes an expression. The returned value is never a thunk.
// A non-nil exception means the expression raised and the value is unset.
func (in *Interpreter) eval(e ast.Expr) (vm.Value, *vm.Exception, error) {
	switch e := e.(type) {
	case *ast.IntLit:
		return vm.IntValue(e.Value), nil, nil
	case *ast.StringLit:
		return vm.StrValue(e.Value), nil, nil
	case *ast.BoolLit:
		return vm.BoolValue(e.Value), nil, nil
	case *ast.NilLit:
		return vm.Nil, nil, nil
	case *ast.VarRef:
		return in.lookup(e.Path, e.Line)
	case *ast.Call:
		return in.call(e, false)
	case *ast.New:
		v, err := in.newStruct(vm.Type(e.Type), e.Line)
		return v, nil, err
	case *ast.Unary:
		return in.evalUnary(e)
	case *ast.Binary:
		if e.Op == "&&" || e.Op == "||" {
			return in.evalLogical(e)
		}
		l, exc, err := in.eval(e.Left)
		if err != nil || exc != nil {
			return nil, exc, err
		}
		r, exc, err := in.eval(e.Right)
		if err != nil || exc != nil {
			return nil, exc, err
		}
		return in.binaryOp(e.Op, l, r, e.Line)
	}
	return nil, nil, fmt.Errorf("Unknown expression type %T", e)
}

// lookup reads a variable, following dotted field paths.
func (in *Interpreter) lookup(path []string, line int) (vm.Value, *vm.Exception, error) {
	cell, ok := in.frame().Find(path[0])
	if !ok {
		return nil, nil, vm.NameErrorf(line, "Variable %s not found", path[0])
	}
	v, exc, err := in.force(cell.Value)
	if err != nil || exc != nil {
		return nil, exc, err
	}
	for i := 1; i < len(path); i++ {
		field, err := in.fieldCell(v, path[:i], path[i], line)
		if err != nil {
			return nil, nil, err
		}
		v = field.Value
	}
	return v, nil, nil
}

// resolveTarget finds the cell an assignment writes to.
func (in *Interpreter) resolveTarget(path []string, line int) (*vm.Cell, error) {
	cell, ok := in.frame().Find(path[0])
	if !ok {
		return nil, vm.NameErrorf(line, "Variable %s not found", path[0])
	}
	for i := 1; i < len(path); i++ {
		var err error
		cell, err = in.fieldCell(cell.Value, path[:i], path[i], line)
		if err != nil {
			return nil, err
		}
	}
	return cell, nil
}

// fieldCell dereferences one dot. The checks run in a fixed order: a nil
// object is a fault, a non-object is a type error, and a missing field is
// a name error.
func (in *Interpreter) fieldCell(v vm.Value, prefix []string, field string, line int) (*vm.Cell, error) {
	owner := strings.Join(prefix, ".")
	switch obj := v.(type) {
	case vm.NilValue:
		return nil, vm.FaultErrorf(line, "Cannot access field %s of nil reference %s", field, owner)
	case *vm.StructValue:
		c, ok := obj.Field(field)
		if !ok {
			return nil, vm.NameErrorf(line, "Struct %s has no field %s", obj.Name, field)
		}
		return c, nil
	}
	return nil, vm.TypeErrorf(line, "%s is not a struct", owner)
}

func (in *Interpreter) newStruct(t vm.Type, line int) (vm.Value, error) {
	def, ok := in.Program.Struct(t)
	if !ok {
		return nil, vm.TypeErrorf(line, "Unknown struct type %s", t)
	}
	obj := &vm.StructValue{Name: t, Fields: make(vm.Block, len(def.Fields))}
	for _, f := range def.Fields {
		ft := vm.Type(f.Type)
		if !in.Program.ValidType(ft, false) {
			return nil, vm.TypeErrorf(line, "Invalid type %s for field %s of struct %s", f.Type, f.Name, t)
		}
		obj.Fields[f.Name] = &vm.Cell{Type: ft, Value: vm.DefaultValue(ft)}
	}
	return obj, nil
}

func (in *Interpreter) evalUnary(e *ast.Unary) (vm.Value, *vm.Exception, error) {
	x, exc, err := in.eval(e.X)
	if err != nil || exc != nil {
		return nil, exc, err
	}
	switch e.Op {
	case "neg":
		if i, ok := x.(vm.IntValue); ok {
			return -i, nil, nil
		}
		return nil, nil, vm.TypeErrorf(e.Line, "Incompatible type for negation: %s", x.Type())
	case "!":
		if b, ok := in.asBool(x); ok {
			return vm.BoolValue(!b), nil, nil
		}
		return nil, nil, vm.TypeErrorf(e.Line, "Incompatible type for ! operation: %s", x.Type())
	}
	return nil, nil, fmt.Errorf("Unknown unary operator %s", e.Op)
}

// evalLogical handles && and ||. Only lazy versions short circuit.
func (in *Interpreter) evalLogical(e *ast.Binary) (vm.Value, *vm.Exception, error) {
	l, exc, err := in.eval(e.Left)
	if err != nil || exc != nil {
		return nil, exc, err
	}
	lb, ok := in.asBool(l)
	if !ok {
		return nil, nil, vm.TypeErrorf(e.Line, "Incompatible types for %s operation: %s", e.Op, l.Type())
	}
	if in.features.ShortCircuit {
		if e.Op == "&&" && !lb {
			return vm.BoolFalse, nil, nil
		}
		if e.Op == "||" && lb {
			return vm.BoolTrue, nil, nil
		}
	}
	r, exc, err := in.eval(e.Right)
	if err != nil || exc != nil {
		return nil, exc, err
	}
	rb, ok := in.asBool(r)
	if !ok {
		return nil, nil, vm.TypeErrorf(e.Line, "Incompatible types for %s operation: %s", e.Op, r.Type())
	}
	if e.Op == "&&" {
		return vm.BoolValue(lb && rb), nil, nil
	}
	return vm.BoolValue(lb || rb), nil, nil
}

// condition evaluates the test of an if or for statement.
func (in *Interpreter) condition(e ast.Expr, stmt string) (bool, *vm.Exception, error) {
	v, exc, err := in.eval(e)
	if err != nil || exc != nil {
		return false, exc, err
	}
	b, ok := in.asBool(v)
	if !ok {
		return false, nil, vm.TypeErrorf(e.Pos(), "Condition of %s statement must be a bool, got %s", stmt, v.Type())
	}
	return b, nil, nil
}

// asBool unwraps a boolean, coercing ints where the version allows it.
func (in *Interpreter) asBool(v vm.Value) (bool, bool) {
	if in.features.CoerceIntToBool {
		v = vm.Coerce(vm.TypeBool, v)
	}
	b, ok := v.(vm.BoolValue)
	return bool(b), ok
}

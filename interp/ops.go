package interp

import (
	"fmt"

	"github.com/brewin-lang/brewin/vm"
)

const divZeroTag = "div0"

func (in *Interpreter) binaryOp(op string, l, r vm.Value, line int) (vm.Value, *vm.Exception, error) {
	switch op {
	case "+", "-", "*", "/":
		return in.arith(op, l, r, line)
	case "<", "<=", ">", ">=":
		v, err := compare(op, l, r, line)
		return v, nil, err
	case "==", "!=":
		eq, err := in.equal(l, r, line)
		if err != nil {
			return nil, nil, err
		}
		if op == "!=" {
			eq = !eq
		}
		return vm.BoolValue(eq), nil, nil
	}
	return nil, nil, fmt.Errorf("Unknown binary operator %s", op)
}

func (in *Interpreter) arith(op string, l, r vm.Value, line int) (vm.Value, *vm.Exception, error) {
	if ls, ok := l.(vm.StrValue); ok && op == "+" {
		if rs, ok := r.(vm.StrValue); ok {
			return ls + rs, nil, nil
		}
	}
	li, lok := l.(vm.IntValue)
	ri, rok := r.(vm.IntValue)
	if !lok || !rok {
		return nil, nil, vm.TypeErrorf(line, "Incompatible types for %s operation: %s and %s", op, l.Type(), r.Type())
	}
	switch op {
	case "+":
		return li + ri, nil, nil
	case "-":
		return li - ri, nil, nil
	case "*":
		return li * ri, nil, nil
	}
	if ri == 0 {
		if in.features.DivZeroRaises {
			in.log.Trace().Int("line", line).Msg("arith: division by zero raises div0")
			return nil, &vm.Exception{Tag: divZeroTag, Line: line}, nil
		}
		return nil, nil, vm.FaultErrorf(line, "Division by zero")
	}
	return li / ri, nil, nil
}

func compare(op string, l, r vm.Value, line int) (vm.Value, error) {
	li, lok := l.(vm.IntValue)
	ri, rok := r.(vm.IntValue)
	if !lok || !rok {
		return nil, vm.TypeErrorf(line, "Incompatible types for %s operation: %s and %s", op, l.Type(), r.Type())
	}
	switch op {
	case "<":
		return vm.BoolValue(li < ri), nil
	case "<=":
		return vm.BoolValue(li <= ri), nil
	case ">":
		return vm.BoolValue(li > ri), nil
	default:
		return vm.BoolValue(li >= ri), nil
	}
}

func (in *Interpreter) equal(l, r vm.Value, line int) (bool, error) {
	if in.features.StaticTypes {
		return typedEqual(l, r, line)
	}
	// Values of different kinds are never equal; objects compare by
	// identity.
	return l == r, nil
}

// typedEqual applies the typed language's equality rules: nil only
// compares against objects, objects only against objects of the same
// struct, and an int against a bool is coerced to bool.
func typedEqual(l, r vm.Value, line int) (bool, error) {
	_, lvoid := l.(vm.VoidValue)
	_, rvoid := r.(vm.VoidValue)
	if lvoid || rvoid {
		return false, vm.TypeErrorf(line, "Cannot compare void values")
	}
	_, lnil := l.(vm.NilValue)
	_, rnil := r.(vm.NilValue)
	ls, lobj := l.(*vm.StructValue)
	rs, robj := r.(*vm.StructValue)
	switch {
	case lnil && rnil:
		return true, nil
	case lnil && robj, rnil && lobj:
		return false, nil
	case lnil || rnil:
		return false, vm.TypeErrorf(line, "Cannot compare nil with %s", nonNilType(l, r))
	case lobj && robj:
		if ls.Name != rs.Name {
			return false, vm.TypeErrorf(line, "Cannot compare %s with %s", ls.Name, rs.Name)
		}
		return ls == rs, nil
	case lobj || robj:
		return false, vm.TypeErrorf(line, "Cannot compare %s with %s", l.Type(), r.Type())
	}
	if l.Type() != r.Type() {
		if isIntOrBool(l) && isIntOrBool(r) {
			return vm.Coerce(vm.TypeBool, l) == vm.Coerce(vm.TypeBool, r), nil
		}
		return false, vm.TypeErrorf(line, "Cannot compare %s with %s", l.Type(), r.Type())
	}
	return l == r, nil
}

func isIntOrBool(v vm.Value) bool {
	switch v.(type) {
	case vm.IntValue, vm.BoolValue:
		return true
	}
	return false
}

func nonNilType(l, r vm.Value) vm.Type {
	if _, ok := l.(vm.NilValue); ok {
		return r.Type()
	}
	return l.Type()
}

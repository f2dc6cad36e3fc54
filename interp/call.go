package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brewin-lang/brewin/ast"
	"github.com/brewin-lang/brewin/vm"
)

// call resolves and invokes a builtin or user function. asStatement is
// true when the call's value is discarded.
func (in *Interpreter) call(c *ast.Call, asStatement bool) (vm.Value, *vm.Exception, error) {
	switch c.Name {
	case "print":
		return in.callPrint(c)
	case "inputi", "inputs":
		return in.callInput(c)
	}
	if !in.features.UserFunctions {
		return nil, nil, vm.NameErrorf(c.Line, "Function %s not found", c.Name)
	}
	fn, ok := in.Program.Function(c.Name, len(c.Args))
	if !ok {
		return nil, nil, vm.NameErrorf(c.Line, "Function %s taking %d parameters not found", c.Name, len(c.Args))
	}
	if in.features.StaticTypes && !asStatement && vm.Type(fn.ReturnType) == vm.TypeVoid {
		return nil, nil, vm.TypeErrorf(c.Line, "Function %s returns void and cannot be used as a value", c.Name)
	}
	args, exc, err := in.bindArgs(fn, c)
	if err != nil || exc != nil {
		return nil, exc, err
	}
	return in.callFunction(fn, args)
}

// bindArgs builds the parameter cells for a call. Lazy versions capture
// each argument as a thunk over a snapshot of the caller's scopes; the
// others evaluate left to right in the caller.
func (in *Interpreter) bindArgs(fn *ast.FuncDef, c *ast.Call) ([]*vm.Cell, *vm.Exception, error) {
	cells := make([]*vm.Cell, len(c.Args))
	if in.features.Lazy {
		env := in.frame().Snapshot()
		for i, a := range c.Args {
			cells[i] = &vm.Cell{Value: vm.NewThunk(a, env)}
		}
		return cells, nil, nil
	}
	for i, a := range c.Args {
		v, exc, err := in.eval(a)
		if err != nil || exc != nil {
			return nil, exc, err
		}
		param := fn.Params[i]
		t := vm.Type(param.Type)
		if in.features.StaticTypes {
			if !vm.Compatible(t, v) {
				return nil, nil, vm.TypeErrorf(c.Line, "Type mismatch for parameter %s of %s: expected %s, got %s", param.Name, fn.Name, t, v.Type())
			}
			v = vm.Coerce(t, v)
		}
		cells[i] = &vm.Cell{Type: t, Value: v}
	}
	return cells, nil, nil
}

// callFunction pushes a frame for fn, runs its body and pops the frame.
func (in *Interpreter) callFunction(fn *ast.FuncDef, args []*vm.Cell) (vm.Value, *vm.Exception, error) {
	frame := NewStackFrame(fn)
	for i, p := range fn.Params {
		frame.Blocks[0][p.Name] = args[i]
	}
	in.stack.Append(frame)
	in.log.Trace().Str("function", fn.Name).Int("arity", fn.Arity()).Int("depth", len(in.stack)).Msg("call: push frame")
	out, err := in.execBlock(fn.Body)
	in.stack.PopStack()
	in.log.Trace().Str("function", fn.Name).Str("result", out.Step.String()).Msg("call: pop frame")
	if err != nil {
		return nil, nil, err
	}
	switch out.Step {
	case ReturnStep:
		return out.Value, nil, nil
	case RaiseStep:
		return nil, out.Exception, nil
	}
	if in.features.StaticTypes {
		return vm.DefaultValue(vm.Type(fn.ReturnType)), nil, nil
	}
	return vm.Nil, nil, nil
}

func (in *Interpreter) callPrint(c *ast.Call) (vm.Value, *vm.Exception, error) {
	var b strings.Builder
	for _, a := range c.Args {
		v, exc, err := in.eval(a)
		if err != nil || exc != nil {
			return nil, exc, err
		}
		b.WriteString(vm.FormatValue(v))
	}
	in.Console.Output(b.String())
	if in.features.StaticTypes {
		return vm.Void, nil, nil
	}
	return vm.Nil, nil, nil
}

func (in *Interpreter) callInput(c *ast.Call) (vm.Value, *vm.Exception, error) {
	if len(c.Args) > 1 {
		return nil, nil, vm.NameErrorf(c.Line, "No %s() function that takes > 1 parameter", c.Name)
	}
	if len(c.Args) == 1 {
		prompt, exc, err := in.eval(c.Args[0])
		if err != nil || exc != nil {
			return nil, exc, err
		}
		in.Console.Output(vm.FormatValue(prompt))
	}
	line, err := in.Console.GetInput()
	if err != nil {
		return nil, nil, fmt.Errorf("Reading input on line %d: %w", c.Line, err)
	}
	if c.Name == "inputs" {
		return vm.StrValue(line), nil, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return nil, nil, vm.TypeErrorf(c.Line, "Input %q is not an integer", line)
	}
	return vm.IntValue(n), nil, nil
}

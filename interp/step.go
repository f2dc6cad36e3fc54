package interp

import (
	"fmt"
	"strings"

	"github.com/brewin-lang/brewin/ast"
	"github.com/brewin-lang/brewin/vm"
)

// execBlock runs statements in order in the current scope, stopping at the
// first return or raise.
func (in *Interpreter) execBlock(stmts []ast.Stmt) (Outcome, error) {
	for _, s := range stmts {
		out, err := in.exec(s)
		if err != nil {
			return Outcome{}, err
		}
		if out.Step != ContinueStep {
			return out, nil
		}
	}
	return continueOutcome, nil
}

// execScoped runs statements inside a fresh block scope.
func (in *Interpreter) execScoped(stmts []ast.Stmt) (Outcome, error) {
	f := in.frame()
	f.PushBlock()
	defer f.PopBlock()
	return in.execBlock(stmts)
}

func (in *Interpreter) exec(s ast.Stmt) (Outcome, error) {
	if in.OnStep != nil {
		in.OnStep(in.frame(), s)
	}
	in.log.Trace().
		Str("stmt", fmt.Sprintf("%T", s)).
		Int("line", s.Pos()).
		Int("depth", len(in.stack)).
		Msg("exec")

	switch s := s.(type) {
	case *ast.VarDef:
		return continueOutcome, in.defineVar(s)
	case *ast.Assign:
		return in.assign(s)
	case *ast.CallStmt:
		_, exc, err := in.call(s.Call, true)
		if err != nil {
			return Outcome{}, err
		}
		if exc != nil {
			return raised(exc), nil
		}
		return continueOutcome, nil
	case *ast.If:
		ok, exc, err := in.condition(s.Cond, "if")
		if err != nil {
			return Outcome{}, err
		}
		if exc != nil {
			return raised(exc), nil
		}
		if ok {
			return in.execScoped(s.Then)
		}
		if s.Else != nil {
			return in.execScoped(s.Else)
		}
		return continueOutcome, nil
	case *ast.For:
		return in.execFor(s)
	case *ast.Return:
		return in.execReturn(s)
	case *ast.Raise:
		v, exc, err := in.eval(s.Value)
		if err != nil {
			return Outcome{}, err
		}
		if exc != nil {
			return raised(exc), nil
		}
		tag, ok := v.(vm.StrValue)
		if !ok {
			return Outcome{}, vm.TypeErrorf(s.Line, "raise requires a string, got %s", v.Type())
		}
		in.log.Trace().Str("exception", string(tag)).Int("line", s.Line).Msg("raise")
		return raised(&vm.Exception{Tag: string(tag), Line: s.Line}), nil
	case *ast.Try:
		return in.execTry(s)
	}
	return Outcome{}, fmt.Errorf("Unknown statement type %T", s)
}

func (in *Interpreter) defineVar(s *ast.VarDef) error {
	t := vm.Type(s.Type)
	if in.features.StaticTypes && !in.Program.ValidType(t, false) {
		return vm.TypeErrorf(s.Line, "Invalid type %s for variable %s", s.Type, s.Name)
	}
	cell := &vm.Cell{Type: t, Value: vm.DefaultValue(t)}
	if !in.frame().Define(s.Name, cell) {
		return vm.NameErrorf(s.Line, "Variable %s defined more than once", s.Name)
	}
	return nil
}

// assign resolves the target before evaluating the right hand side.
func (in *Interpreter) assign(s *ast.Assign) (Outcome, error) {
	cell, err := in.resolveTarget(s.Target, s.Line)
	if err != nil {
		return Outcome{}, err
	}
	if in.features.Lazy {
		cell.Value = vm.NewThunk(s.Value, in.frame().Snapshot())
		return continueOutcome, nil
	}
	v, exc, err := in.eval(s.Value)
	if err != nil {
		return Outcome{}, err
	}
	if exc != nil {
		return raised(exc), nil
	}
	if in.features.StaticTypes {
		if !vm.Compatible(cell.Type, v) {
			return Outcome{}, vm.TypeErrorf(s.Line, "Type mismatch: cannot assign %s to %s of type %s", v.Type(), strings.Join(s.Target, "."), cell.Type)
		}
		v = vm.Coerce(cell.Type, v)
	}
	cell.Value = v
	return continueOutcome, nil
}

func (in *Interpreter) execFor(s *ast.For) (Outcome, error) {
	out, err := in.assign(s.Init)
	if err != nil || out.Step != ContinueStep {
		return out, err
	}
	for {
		ok, exc, err := in.condition(s.Cond, "for")
		if err != nil {
			return Outcome{}, err
		}
		if exc != nil {
			return raised(exc), nil
		}
		if !ok {
			return continueOutcome, nil
		}
		out, err := in.execScoped(s.Body)
		if err != nil || out.Step != ContinueStep {
			return out, err
		}
		out, err = in.assign(s.Update)
		if err != nil || out.Step != ContinueStep {
			return out, err
		}
	}
}

func (in *Interpreter) execReturn(s *ast.Return) (Outcome, error) {
	fn := in.frame().Function
	rt := vm.Type(fn.ReturnType)
	if s.Value == nil {
		if in.features.StaticTypes {
			return Outcome{Step: ReturnStep, Value: vm.DefaultValue(rt)}, nil
		}
		return Outcome{Step: ReturnStep, Value: vm.Nil}, nil
	}
	if in.features.StaticTypes && rt == vm.TypeVoid {
		return Outcome{}, vm.TypeErrorf(s.Line, "Function %s returns void and cannot return a value", fn.Name)
	}
	v, exc, err := in.eval(s.Value)
	if err != nil {
		return Outcome{}, err
	}
	if exc != nil {
		return raised(exc), nil
	}
	if in.features.StaticTypes {
		if !vm.Compatible(rt, v) {
			return Outcome{}, vm.TypeErrorf(s.Line, "Function %s must return %s, got %s", fn.Name, rt, v.Type())
		}
		v = vm.Coerce(rt, v)
	}
	return Outcome{Step: ReturnStep, Value: v}, nil
}

// execTry runs the body in its own scope. A raised exception is matched
// against the catchers in order; unmatched exceptions propagate.
func (in *Interpreter) execTry(s *ast.Try) (Outcome, error) {
	out, err := in.execScoped(s.Body)
	if err != nil || out.Step != RaiseStep {
		return out, err
	}
	for _, c := range s.Catchers {
		if c.Tag == out.Exception.Tag {
			in.log.Trace().Str("exception", c.Tag).Int("line", c.Line).Msg("try: caught")
			return in.execScoped(c.Body)
		}
	}
	return out, nil
}

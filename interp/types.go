package interp

import (
	"fmt"

	"github.com/brewin-lang/brewin/ast"
	"github.com/brewin-lang/brewin/vm"
)

type StepResult int

const (
	ContinueStep StepResult = iota
	ReturnStep
	RaiseStep
)

func (s StepResult) String() string {
	switch s {
	case ContinueStep:
		return "Continue"
	case ReturnStep:
		return "Return"
	case RaiseStep:
		return "Raise"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Outcome is the result of executing a statement or a statement list.
// Value is set for ReturnStep and Exception for RaiseStep.
type Outcome struct {
	Step      StepResult
	Value     vm.Value
	Exception *vm.Exception
}

var continueOutcome = Outcome{Step: ContinueStep}

func raised(exc *vm.Exception) Outcome {
	return Outcome{Step: RaiseStep, Exception: exc}
}

// StackFrame is one function activation: a list of scope blocks, the
// innermost last.
type StackFrame struct {
	Function *ast.FuncDef
	Blocks   []vm.Block
}

func NewStackFrame(fn *ast.FuncDef) *StackFrame {
	return &StackFrame{Function: fn, Blocks: []vm.Block{{}}}
}

type StackFrames []*StackFrame

func (s *StackFrames) PopStack() *StackFrame {
	f := s.CurrentStack()
	*s = (*s)[:len(*s)-1]
	return f
}

func (s *StackFrames) Append(f *StackFrame) {
	*s = append(*s, f)
}

func (s StackFrames) CurrentStack() *StackFrame {
	return s[len(s)-1]
}

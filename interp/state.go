package interp

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/brewin-lang/brewin/ast"
	"github.com/brewin-lang/brewin/vm"
)

// Interpreter holds all state for one run of a program. Separate
// interpreters share nothing and may run concurrently.
type Interpreter struct {
	ID      uuid.UUID
	Program *vm.Program
	Console Console

	// OnStep, when set, is called before each statement executes.
	OnStep func(frame *StackFrame, s ast.Stmt)

	features vm.Features
	stack    StackFrames
	log      zerolog.Logger
}

func New(prog *vm.Program, console Console) *Interpreter {
	id := uuid.New()
	return &Interpreter{
		ID:       id,
		Program:  prog,
		Console:  console,
		features: prog.Features,
		log:      log.With().Str("run", id.String()).Logger(),
	}
}

func (in *Interpreter) frame() *StackFrame {
	return in.stack.CurrentStack()
}

// Stack returns the live call stack, outermost frame first.
func (in *Interpreter) Stack() StackFrames {
	return in.stack
}

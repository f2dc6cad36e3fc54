package interp

import (
	"github.com/brewin-lang/brewin/vm"
)

// Run executes main() to completion. Fatal errors are returned as
// *vm.Error; an exception that escapes main becomes a FaultError.
func (in *Interpreter) Run() error {
	main, ok := in.Program.Function("main", 0)
	if !ok {
		return vm.NameErrorf(0, "No main() function was found")
	}
	in.log.Trace().Str("version", in.Program.Version.String()).Msg("Run: calling main")
	_, exc, err := in.callFunction(main, nil)
	if err != nil {
		in.log.Trace().Err(err).Msg("Run: fatal error")
		return err
	}
	if exc != nil {
		return vm.FaultErrorf(exc.Line, "Uncaught exception %q", exc.Tag)
	}
	in.log.Trace().Msg("Run: main finished")
	return nil
}

// Run is a convenience wrapper that runs prog on a fresh interpreter.
func Run(prog *vm.Program, console Console) error {
	return New(prog, console).Run()
}

package interp

import (
	"github.com/brewin-lang/brewin/vm"
)

// force evaluates a thunk in the environment it captured and memoizes the
// outcome. Other values are returned unchanged.
func (in *Interpreter) force(v vm.Value) (vm.Value, *vm.Exception, error) {
	t, ok := v.(*vm.Thunk)
	if !ok {
		return v, nil, nil
	}
	if t.Forced() {
		val, exc := t.Result()
		return val, exc, nil
	}
	in.log.Trace().Int("line", t.Expr.Pos()).Int("depth", len(in.stack)).Msg("force: evaluating thunk")
	in.stack.Append(&StackFrame{Blocks: t.Env})
	val, exc, err := in.eval(t.Expr)
	in.stack.PopStack()
	if err != nil {
		return nil, nil, err
	}
	t.Memoize(val, exc)
	if exc != nil {
		in.log.Trace().Str("exception", exc.Tag).Msg("force: thunk raised")
	}
	return val, exc, nil
}

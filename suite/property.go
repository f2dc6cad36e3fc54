package suite

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// evalProperty evaluates a Starlark expression over a finished run.
// `output` is the list of printed lines and `error` is the error category
// string, or None when the program finished cleanly.
func evalProperty(expr string, output []string, runErr error) (bool, error) {
	lines := make([]starlark.Value, len(output))
	for i, s := range output {
		lines[i] = starlark.String(s)
	}
	var errVal starlark.Value = starlark.None
	if runErr != nil {
		errVal = starlark.String(errorCategory(runErr))
	}
	env := starlark.StringDict{
		"output": starlark.NewList(lines),
		"error":  errVal,
	}
	thread := &starlark.Thread{Name: "property"}
	v, err := starlark.EvalOptions(&syntax.FileOptions{}, thread, "property", expr, env)
	if err != nil {
		return false, err
	}
	b, ok := v.(starlark.Bool)
	if !ok {
		return false, fmt.Errorf("property evaluated to %s, not bool", v.Type())
	}
	return bool(b), nil
}

package interp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewin-lang/brewin/ast"
	"github.com/brewin-lang/brewin/brewparse"
	"github.com/brewin-lang/brewin/vm"
)

// runProgram parses, loads and runs src, returning every output line.
// Load errors are returned like runtime errors.
func runProgram(t *testing.T, v vm.Version, src string, inputs ...string) ([]string, error) {
	t.Helper()
	node, err := brewparse.Parse(src, brewparse.Options{Typed: v == vm.V3})
	require.NoError(t, err)
	tree, err := ast.Build(node)
	require.NoError(t, err)
	prog, err := vm.Compile(tree, v)
	if err != nil {
		return nil, err
	}
	rec := &Recorder{Inputs: inputs}
	err = New(prog, rec).Run()
	return rec.Outputs, err
}

func requireErrorType(t *testing.T, err error, want vm.ErrorType) {
	t.Helper()
	require.Error(t, err)
	var e *vm.Error
	require.True(t, errors.As(err, &e), "expected *vm.Error, got %T: %v", err, err)
	assert.Equal(t, want, e.Type, e.Message)
}

type programCase struct {
	name   string
	src    string
	inputs []string
	want   []string
}

func runCases(t *testing.T, v vm.Version, cases []programCase) {
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runProgram(t, v, tt.src, tt.inputs...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

type errorCase struct {
	name   string
	src    string
	inputs []string
	want   vm.ErrorType
}

func runErrorCases(t *testing.T, v vm.Version, cases []errorCase) {
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runProgram(t, v, tt.src, tt.inputs...)
			requireErrorType(t, err, tt.want)
		})
	}
}

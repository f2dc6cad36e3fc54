package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewin-lang/brewin/ast"
	"github.com/brewin-lang/brewin/vm"
)

func TestStackFrameScopes(t *testing.T) {
	f := NewStackFrame(&ast.FuncDef{Name: "main"})
	require.True(t, f.Define("x", &vm.Cell{Value: vm.IntValue(1)}))
	assert.False(t, f.Define("x", &vm.Cell{Value: vm.IntValue(2)}), "redefinition in the same block")

	f.PushBlock()
	require.True(t, f.Define("x", &vm.Cell{Value: vm.IntValue(3)}), "shadowing an outer block")
	c, ok := f.Find("x")
	require.True(t, ok)
	assert.Equal(t, vm.IntValue(3), c.Value)

	f.PopBlock()
	c, ok = f.Find("x")
	require.True(t, ok)
	assert.Equal(t, vm.IntValue(1), c.Value)

	_, ok = f.Find("y")
	assert.False(t, ok)
}

func TestSnapshotCopiesCells(t *testing.T) {
	f := NewStackFrame(nil)
	f.Define("x", &vm.Cell{Value: vm.IntValue(1)})
	f.PushBlock()
	f.Define("y", &vm.Cell{Value: vm.StrValue("a")})

	snap := f.Snapshot()
	require.Len(t, snap, 2)

	c, _ := f.Find("x")
	c.Value = vm.IntValue(99)
	assert.Equal(t, vm.IntValue(1), snap[0]["x"].Value)
	assert.Equal(t, vm.StrValue("a"), snap[1]["y"].Value)
	assert.Contains(t, f.String(), "x=99")
}

func TestStackFrames(t *testing.T) {
	var s StackFrames
	a := NewStackFrame(&ast.FuncDef{Name: "a"})
	b := NewStackFrame(&ast.FuncDef{Name: "b"})
	s.Append(a)
	s.Append(b)
	assert.Same(t, b, s.CurrentStack())
	assert.Same(t, b, s.PopStack())
	assert.Same(t, a, s.CurrentStack())
	assert.Len(t, s, 1)
}

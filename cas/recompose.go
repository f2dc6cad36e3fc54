package cas

import (
	"fmt"

	"github.com/brewin-lang/brewin/ast"
)

// recomposeProgram rebuilds a program node from its ProgramRef.
func recomposeProgram(s directStore, hash Hash) (*ast.Node, error) {
	ref, err := getDirect[*ProgramRef](s, hash)
	if err != nil {
		return nil, fmt.Errorf("retrieving ProgramRef: %w", err)
	}
	structs := make([]*ast.Node, 0, len(ref.StructHashes))
	for i, h := range ref.StructHashes {
		n, err := getDirect[*ast.Node](s, h)
		if err != nil {
			return nil, fmt.Errorf("recomposing struct %d: %w", i, err)
		}
		structs = append(structs, n)
	}
	funcs := make([]*ast.Node, 0, len(ref.FunctionHashes))
	for i, h := range ref.FunctionHashes {
		n, err := getDirect[*ast.Node](s, h)
		if err != nil {
			return nil, fmt.Errorf("recomposing function %d: %w", i, err)
		}
		funcs = append(funcs, n)
	}
	return ast.NewNode("program", 1).
		SetList("structs", structs).
		SetList("functions", funcs), nil
}

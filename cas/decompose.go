package cas

import (
	"fmt"

	"github.com/brewin-lang/brewin/ast"
)

// decomposeProgram stores each definition of a program node on its own and
// returns the hash of the ProgramRef tying them together.
func decomposeProgram(s directStore, n *ast.Node) (Hash, error) {
	if n == nil {
		return 0, fmt.Errorf("cannot decompose nil program")
	}
	ref := &ProgramRef{}
	for i, st := range n.List("structs") {
		h, err := putDirect(s, st)
		if err != nil {
			return 0, fmt.Errorf("decomposing struct %d: %w", i, err)
		}
		ref.StructHashes = append(ref.StructHashes, h)
	}
	for i, f := range n.List("functions") {
		h, err := putDirect(s, f)
		if err != nil {
			return 0, fmt.Errorf("decomposing function %d (%s): %w", i, f.Attr("name"), err)
		}
		ref.FunctionHashes = append(ref.FunctionHashes, h)
	}
	return putDirect(s, ref)
}

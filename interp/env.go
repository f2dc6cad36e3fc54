package interp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brewin-lang/brewin/vm"
)

func (f *StackFrame) PushBlock() {
	f.Blocks = append(f.Blocks, vm.Block{})
}

func (f *StackFrame) PopBlock() {
	f.Blocks = f.Blocks[:len(f.Blocks)-1]
}

func (f *StackFrame) innermost() vm.Block {
	return f.Blocks[len(f.Blocks)-1]
}

// Define adds name to the innermost block. Names may shadow outer blocks
// but not be redefined in the same block.
func (f *StackFrame) Define(name string, cell *vm.Cell) bool {
	b := f.innermost()
	if _, ok := b[name]; ok {
		return false
	}
	b[name] = cell
	return true
}

// Find walks the blocks from innermost to outermost.
func (f *StackFrame) Find(name string) (*vm.Cell, bool) {
	for i := len(f.Blocks) - 1; i >= 0; i-- {
		if c, ok := f.Blocks[i][name]; ok {
			return c, true
		}
	}
	return nil, false
}

// Snapshot copies the block chain so later assignments in this frame are
// not seen through the copy.
func (f *StackFrame) Snapshot() []vm.Block {
	out := make([]vm.Block, len(f.Blocks))
	for i, b := range f.Blocks {
		out[i] = b.Copy()
	}
	return out
}

func (f *StackFrame) String() string {
	var b strings.Builder
	name := "<thunk>"
	if f.Function != nil {
		name = f.Function.Name
	}
	fmt.Fprintf(&b, "frame %s\n", name)
	for i, block := range f.Blocks {
		names := make([]string, 0, len(block))
		for k := range block {
			names = append(names, k)
		}
		sort.Strings(names)
		fmt.Fprintf(&b, "  block %d:", i)
		for _, k := range names {
			fmt.Fprintf(&b, " %s=%s", k, vm.FormatValue(block[k].Value))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Package brewin wires the parser, the program loader and the interpreter
// together for the four Brewin language versions.
package brewin

import (
	"fmt"
	"io"
	"os"

	"github.com/brewin-lang/brewin/ast"
	"github.com/brewin-lang/brewin/brewparse"
	"github.com/brewin-lang/brewin/cas"
	"github.com/brewin-lang/brewin/interp"
	"github.com/brewin-lang/brewin/vm"
)

// Loader parses and compiles programs. A nil Cache parses every time.
type Loader struct {
	Cache *cas.ParseCache
}

func dialect(v vm.Version) (string, brewparse.Options) {
	if v.Features().StaticTypes {
		return "typed", brewparse.Options{Typed: true}
	}
	return "untyped", brewparse.Options{}
}

// Parse returns the generic tree for src in the grammar of version v.
func (l *Loader) Parse(src string, v vm.Version) (*ast.Node, error) {
	name, opts := dialect(v)
	parse := func(s string) (*ast.Node, error) {
		return brewparse.Parse(s, opts)
	}
	if l == nil || l.Cache == nil {
		return parse(src)
	}
	return l.Cache.Load(name, src, parse)
}

func (l *Loader) Load(src string, v vm.Version) (*vm.Program, error) {
	n, err := l.Parse(src, v)
	if err != nil {
		return nil, err
	}
	tree, err := ast.Build(n)
	if err != nil {
		return nil, fmt.Errorf("Malformed program tree: %w", err)
	}
	return vm.Compile(tree, v)
}

func (l *Loader) LoadFile(path string, v vm.Version) (*vm.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return l.Load(string(src), v)
}

// Compile parses and validates src without a cache.
func Compile(src string, v vm.Version) (*vm.Program, error) {
	var l Loader
	return l.Load(src, v)
}

// Run compiles src and runs it with input lines from in and output lines
// written to out.
func Run(src string, v vm.Version, in io.Reader, out io.Writer) error {
	prog, err := Compile(src, v)
	if err != nil {
		return err
	}
	return interp.Run(prog, interp.NewStreamConsole(in, out))
}

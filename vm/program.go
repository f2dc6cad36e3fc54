package vm

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/brewin-lang/brewin/ast"
)

// FuncKey identifies a function. Functions are overloaded by arity.
type FuncKey struct {
	Name  string
	Arity int
}

func (k FuncKey) String() string {
	return fmt.Sprintf("%s/%d", k.Name, k.Arity)
}

type Program struct {
	Version   Version
	Features  Features
	Functions map[FuncKey]*ast.FuncDef
	Structs   map[Type]*ast.StructDef
}

// Compile builds the function and struct tables for a parsed program and
// rejects constructs the selected version does not support.
func Compile(tree *ast.Program, v Version) (*Program, error) {
	p := &Program{
		Version:   v,
		Features:  v.Features(),
		Functions: make(map[FuncKey]*ast.FuncDef),
		Structs:   make(map[Type]*ast.StructDef),
	}
	for _, s := range tree.Structs {
		if !p.Features.StaticTypes {
			return nil, TypeErrorf(s.Line, "Structs are not supported in %s", v)
		}
		name := Type(s.Name)
		if name.IsPrimitive() || name == TypeVoid {
			return nil, NameErrorf(s.Line, "Struct name %s is reserved", s.Name)
		}
		if _, ok := p.Structs[name]; ok {
			return nil, NameErrorf(s.Line, "Duplicate definition of struct %s", s.Name)
		}
		p.Structs[name] = s
	}
	for _, f := range tree.Functions {
		key := FuncKey{Name: f.Name, Arity: f.Arity()}
		if _, ok := p.Functions[key]; ok {
			return nil, NameErrorf(f.Line, "Duplicate definition of function %s with %d parameters", f.Name, f.Arity())
		}
		p.Functions[key] = f
		if err := p.checkFunction(f); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Program) checkFunction(f *ast.FuncDef) error {
	if p.Features.StaticTypes {
		for _, param := range f.Params {
			if !p.ValidType(Type(param.Type), false) {
				return TypeErrorf(f.Line, "Invalid type %s for parameter %s of function %s", param.Type, param.Name, f.Name)
			}
		}
		if !p.ValidType(Type(f.ReturnType), true) {
			return TypeErrorf(f.Line, "Invalid return type %s for function %s", f.ReturnType, f.Name)
		}
	}
	var err error
	ast.Inspect(f.Body, func(n any) bool {
		if err != nil {
			return false
		}
		err = p.checkNode(n)
		return err == nil
	})
	return err
}

func (p *Program) checkNode(n any) error {
	f := p.Features
	switch n := n.(type) {
	case *ast.Assign:
		if len(n.Target) > 1 && !f.StaticTypes {
			return NameErrorf(n.Line, "Variable %s not found", strings.Join(n.Target, "."))
		}
		return nil
	case *ast.VarDef, *ast.CallStmt:
		return nil
	case *ast.Raise:
		if !f.Exceptions {
			return TypeErrorf(n.Line, "raise is not supported in %s", p.Version)
		}
	case *ast.Try:
		if !f.Exceptions {
			return TypeErrorf(n.Line, "try is not supported in %s", p.Version)
		}
	case *ast.New:
		if !f.StaticTypes {
			return TypeErrorf(n.Line, "new is not supported in %s", p.Version)
		}
	case *ast.VarRef:
		if len(n.Path) > 1 && !f.StaticTypes {
			return NameErrorf(n.Line, "Variable %s not found", strings.Join(n.Path, "."))
		}
	}
	if stmt, ok := n.(ast.Stmt); ok && !f.UserFunctions {
		return TypeErrorf(stmt.Pos(), "Unsupported statement in %s", p.Version)
	}
	return nil
}

func (p *Program) Function(name string, arity int) (*ast.FuncDef, bool) {
	f, ok := p.Functions[FuncKey{Name: name, Arity: arity}]
	return f, ok
}

func (p *Program) Struct(name Type) (*ast.StructDef, bool) {
	s, ok := p.Structs[name]
	return s, ok
}

// ValidType reports whether t names a primitive or a defined struct.
func (p *Program) ValidType(t Type, allowVoid bool) bool {
	if t.IsPrimitive() {
		return true
	}
	if t == TypeVoid {
		return allowVoid
	}
	_, ok := p.Structs[t]
	return ok
}

func (p *Program) DebugPrint(w io.Writer) {
	fmt.Fprintf(w, "Version: %s\n", p.Version)
	names := make([]string, 0, len(p.Structs))
	for name := range p.Structs {
		names = append(names, string(name))
	}
	sort.Strings(names)
	for _, name := range names {
		s := p.Structs[Type(name)]
		fmt.Fprintf(w, "struct %s %v\n", name, s.Fields)
	}
	keys := make([]FuncKey, 0, len(p.Functions))
	for k := range p.Functions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Name != keys[j].Name {
			return keys[i].Name < keys[j].Name
		}
		return keys[i].Arity < keys[j].Arity
	})
	for _, k := range keys {
		f := p.Functions[k]
		fmt.Fprintf(w, "func %s params=%v returns=%q statements=%d\n", k, f.Params, f.ReturnType, len(f.Body))
	}
}

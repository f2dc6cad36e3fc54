package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Build lowers a generic program node into the typed tree.
func Build(n *Node) (*Program, error) {
	if n == nil || n.Kind != "program" {
		return nil, fmt.Errorf("Expected program node")
	}
	out := &Program{}
	for _, s := range n.List("structs") {
		def, err := buildStruct(s)
		if err != nil {
			return nil, err
		}
		out.Structs = append(out.Structs, def)
	}
	for _, f := range n.List("functions") {
		def, err := buildFunc(f)
		if err != nil {
			return nil, err
		}
		out.Functions = append(out.Functions, def)
	}
	return out, nil
}

func buildStruct(n *Node) (*StructDef, error) {
	if n.Kind != "struct" {
		return nil, kindError(n, "struct")
	}
	def := &StructDef{Loc: Loc{n.Line}, Name: n.Attr("name")}
	for _, f := range n.List("fields") {
		def.Fields = append(def.Fields, Field{Name: f.Attr("name"), Type: f.Attr("var_type")})
	}
	return def, nil
}

func buildFunc(n *Node) (*FuncDef, error) {
	if n.Kind != "func" {
		return nil, kindError(n, "func")
	}
	def := &FuncDef{
		Loc:        Loc{n.Line},
		Name:       n.Attr("name"),
		ReturnType: n.Attr("return_type"),
	}
	for _, a := range n.List("args") {
		def.Params = append(def.Params, Field{Name: a.Attr("name"), Type: a.Attr("var_type")})
	}
	body, err := buildStmts(n.List("statements"))
	if err != nil {
		return nil, fmt.Errorf("function %s: %w", def.Name, err)
	}
	def.Body = body
	return def, nil
}

func buildStmts(nodes []*Node) ([]Stmt, error) {
	out := make([]Stmt, 0, len(nodes))
	for _, n := range nodes {
		s, err := buildStmt(n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func buildStmt(n *Node) (Stmt, error) {
	loc := Loc{n.Line}
	switch n.Kind {
	case "vardef":
		return &VarDef{Loc: loc, Name: n.Attr("name"), Type: n.Attr("var_type")}, nil
	case "=":
		return buildAssign(n)
	case "fcall":
		c, err := buildCall(n)
		if err != nil {
			return nil, err
		}
		return &CallStmt{Loc: loc, Call: c}, nil
	case "if":
		cond, err := buildExpr(n.Child("condition"))
		if err != nil {
			return nil, err
		}
		then, err := buildStmts(n.List("statements"))
		if err != nil {
			return nil, err
		}
		var els []Stmt
		if n.HasList("else_statements") {
			els, err = buildStmts(n.List("else_statements"))
			if err != nil {
				return nil, err
			}
		}
		return &If{Loc: loc, Cond: cond, Then: then, Else: els}, nil
	case "for":
		init, err := buildAssign(n.Child("init"))
		if err != nil {
			return nil, err
		}
		cond, err := buildExpr(n.Child("condition"))
		if err != nil {
			return nil, err
		}
		update, err := buildAssign(n.Child("update"))
		if err != nil {
			return nil, err
		}
		body, err := buildStmts(n.List("statements"))
		if err != nil {
			return nil, err
		}
		return &For{Loc: loc, Init: init, Cond: cond, Update: update, Body: body}, nil
	case "return":
		r := &Return{Loc: loc}
		if c := n.Child("expression"); c != nil {
			v, err := buildExpr(c)
			if err != nil {
				return nil, err
			}
			r.Value = v
		}
		return r, nil
	case "raise":
		v, err := buildExpr(n.Child("exception_type"))
		if err != nil {
			return nil, err
		}
		return &Raise{Loc: loc, Value: v}, nil
	case "try":
		body, err := buildStmts(n.List("statements"))
		if err != nil {
			return nil, err
		}
		t := &Try{Loc: loc, Body: body}
		for _, c := range n.List("catchers") {
			if c.Kind != "catch" {
				return nil, kindError(c, "catch")
			}
			cb, err := buildStmts(c.List("statements"))
			if err != nil {
				return nil, err
			}
			t.Catchers = append(t.Catchers, &Catch{Loc: Loc{c.Line}, Tag: c.Attr("exception_type"), Body: cb})
		}
		return t, nil
	}
	return nil, fmt.Errorf("Line %d: unknown statement kind %q", n.Line, n.Kind)
}

func buildAssign(n *Node) (*Assign, error) {
	if n == nil {
		return nil, fmt.Errorf("Missing assignment")
	}
	if n.Kind != "=" {
		return nil, kindError(n, "=")
	}
	v, err := buildExpr(n.Child("expression"))
	if err != nil {
		return nil, err
	}
	return &Assign{Loc: Loc{n.Line}, Target: SplitPath(n.Attr("name")), Value: v}, nil
}

func buildCall(n *Node) (*Call, error) {
	c := &Call{Loc: Loc{n.Line}, Name: n.Attr("name")}
	for _, a := range n.List("args") {
		e, err := buildExpr(a)
		if err != nil {
			return nil, err
		}
		c.Args = append(c.Args, e)
	}
	return c, nil
}

var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
	"&&": true, "||": true,
}

func buildExpr(n *Node) (Expr, error) {
	if n == nil {
		return nil, fmt.Errorf("Missing expression")
	}
	loc := Loc{n.Line}
	switch n.Kind {
	case "int":
		v, err := strconv.ParseInt(n.Attr("val"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("Line %d: bad integer literal %q: %w", n.Line, n.Attr("val"), err)
		}
		return &IntLit{Loc: loc, Value: v}, nil
	case "string":
		return &StringLit{Loc: loc, Value: n.Attr("val")}, nil
	case "bool":
		return &BoolLit{Loc: loc, Value: n.Attr("val") == "true"}, nil
	case "nil":
		return &NilLit{Loc: loc}, nil
	case "var":
		return &VarRef{Loc: loc, Path: SplitPath(n.Attr("name"))}, nil
	case "fcall":
		return buildCall(n)
	case "new":
		return &New{Loc: loc, Type: n.Attr("var_type")}, nil
	case "neg", "!":
		x, err := buildExpr(n.Child("op1"))
		if err != nil {
			return nil, err
		}
		return &Unary{Loc: loc, Op: n.Kind, X: x}, nil
	}
	if binaryOps[n.Kind] {
		l, err := buildExpr(n.Child("op1"))
		if err != nil {
			return nil, err
		}
		r, err := buildExpr(n.Child("op2"))
		if err != nil {
			return nil, err
		}
		return &Binary{Loc: loc, Op: n.Kind, Left: l, Right: r}, nil
	}
	return nil, fmt.Errorf("Line %d: unknown expression kind %q", n.Line, n.Kind)
}

// SplitPath splits a dotted name such as "a.b.c" into its segments.
func SplitPath(name string) []string {
	return strings.Split(name, ".")
}

func kindError(n *Node, want string) error {
	return fmt.Errorf("Line %d: expected %s node, got %q", n.Line, want, n.Kind)
}

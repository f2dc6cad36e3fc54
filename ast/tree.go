package ast

// Loc carries the source line of a statement or expression.
type Loc struct {
	Line int
}

func (l Loc) Pos() int { return l.Line }

type Program struct {
	Structs   []*StructDef
	Functions []*FuncDef
}

// Field is a typed name: a struct field or a function parameter. Type is
// empty in the untyped language versions.
type Field struct {
	Name string
	Type string
}

type StructDef struct {
	Loc
	Name   string
	Fields []Field
}

type FuncDef struct {
	Loc
	Name       string
	Params     []Field
	ReturnType string
	Body       []Stmt
}

func (f *FuncDef) Arity() int { return len(f.Params) }

type Stmt interface {
	stmtNode()
	Pos() int
}

type Expr interface {
	exprNode()
	Pos() int
}

type VarDef struct {
	Loc
	Name string
	Type string
}

// Assign stores Value into the variable or field named by Target. Target
// has more than one element for dotted field assignment.
type Assign struct {
	Loc
	Target []string
	Value  Expr
}

type CallStmt struct {
	Loc
	Call *Call
}

type If struct {
	Loc
	Cond Expr
	Then []Stmt
	Else []Stmt
}

type For struct {
	Loc
	Init   *Assign
	Cond   Expr
	Update *Assign
	Body   []Stmt
}

// Return holds a nil Value for a bare `return;`.
type Return struct {
	Loc
	Value Expr
}

type Raise struct {
	Loc
	Value Expr
}

type Try struct {
	Loc
	Body     []Stmt
	Catchers []*Catch
}

type Catch struct {
	Loc
	Tag  string
	Body []Stmt
}

func (*VarDef) stmtNode()   {}
func (*Assign) stmtNode()   {}
func (*CallStmt) stmtNode() {}
func (*If) stmtNode()       {}
func (*For) stmtNode()      {}
func (*Return) stmtNode()   {}
func (*Raise) stmtNode()    {}
func (*Try) stmtNode()      {}

type IntLit struct {
	Loc
	Value int64
}

type StringLit struct {
	Loc
	Value string
}

type BoolLit struct {
	Loc
	Value bool
}

type NilLit struct {
	Loc
}

// VarRef reads a variable. Path has one element per dotted segment.
type VarRef struct {
	Loc
	Path []string
}

type Call struct {
	Loc
	Name string
	Args []Expr
}

type New struct {
	Loc
	Type string
}

type Unary struct {
	Loc
	Op string
	X  Expr
}

type Binary struct {
	Loc
	Op    string
	Left  Expr
	Right Expr
}

func (*IntLit) exprNode()    {}
func (*StringLit) exprNode() {}
func (*BoolLit) exprNode()   {}
func (*NilLit) exprNode()    {}
func (*VarRef) exprNode()    {}
func (*Call) exprNode()      {}
func (*New) exprNode()       {}
func (*Unary) exprNode()     {}
func (*Binary) exprNode()    {}

// Inspect walks statements depth first, calling fn for every statement and
// expression. Children are skipped when fn returns false.
func Inspect(stmts []Stmt, fn func(n any) bool) {
	for _, s := range stmts {
		inspectStmt(s, fn)
	}
}

func inspectStmt(s Stmt, fn func(n any) bool) {
	if s == nil || !fn(s) {
		return
	}
	switch s := s.(type) {
	case *Assign:
		inspectExpr(s.Value, fn)
	case *CallStmt:
		inspectExpr(s.Call, fn)
	case *If:
		inspectExpr(s.Cond, fn)
		Inspect(s.Then, fn)
		Inspect(s.Else, fn)
	case *For:
		if s.Init != nil {
			inspectStmt(s.Init, fn)
		}
		inspectExpr(s.Cond, fn)
		if s.Update != nil {
			inspectStmt(s.Update, fn)
		}
		Inspect(s.Body, fn)
	case *Return:
		inspectExpr(s.Value, fn)
	case *Raise:
		inspectExpr(s.Value, fn)
	case *Try:
		Inspect(s.Body, fn)
		for _, c := range s.Catchers {
			Inspect(c.Body, fn)
		}
	}
}

func inspectExpr(e Expr, fn func(n any) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch e := e.(type) {
	case *Call:
		for _, a := range e.Args {
			inspectExpr(a, fn)
		}
	case *Unary:
		inspectExpr(e.X, fn)
	case *Binary:
		inspectExpr(e.Left, fn)
		inspectExpr(e.Right, fn)
	}
}

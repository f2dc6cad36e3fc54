package brewparse

import (
	"fmt"
	"strings"

	"github.com/brewin-lang/brewin/ast"
)

// Options selects the grammar dialect.
type Options struct {
	// Typed enables type annotations on variables, parameters and return
	// values, and top level struct definitions.
	Typed bool
}

type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax error on line %d: %s", e.Line, e.Msg)
}

// Parse reads a whole program and returns its generic node tree.
func Parse(src string, opts Options) (*ast.Node, error) {
	p := newParser(src, opts)
	return p.parseProgram()
}

const (
	_ int = iota
	LOWEST
	OR_PREC
	AND_PREC
	COMPARE_PREC
	SUM_PREC
	PRODUCT_PREC
)

var precedences = map[TokenType]int{
	OR:       OR_PREC,
	AND:      AND_PREC,
	EQ:       COMPARE_PREC,
	NOT_EQ:   COMPARE_PREC,
	LT:       COMPARE_PREC,
	LT_EQ:    COMPARE_PREC,
	GT:       COMPARE_PREC,
	GT_EQ:    COMPARE_PREC,
	PLUS:     SUM_PREC,
	MINUS:    SUM_PREC,
	ASTERISK: PRODUCT_PREC,
	SLASH:    PRODUCT_PREC,
}

type parser struct {
	l    *Lexer
	opts Options

	cur  Token
	peek Token
}

func newParser(src string, opts Options) *parser {
	p := &parser{l: NewLexer(src), opts: opts}
	p.next()
	p.next()
	return p
}

func (p *parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.cur.Line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(t TokenType) (Token, error) {
	tok := p.cur
	if tok.Type == ILLEGAL {
		return tok, p.errorf("unexpected %q", tok.Literal)
	}
	if tok.Type != t {
		return tok, p.errorf("expected %s, got %s", t, tok)
	}
	p.next()
	return tok, nil
}

func (p *parser) expectName() (Token, error) {
	tok, err := p.expect(IDENT)
	if err != nil {
		return tok, err
	}
	if strings.Contains(tok.Literal, ".") {
		return tok, &SyntaxError{Line: tok.Line, Msg: fmt.Sprintf("unexpected dotted name %q", tok.Literal)}
	}
	return tok, nil
}

func (p *parser) parseProgram() (*ast.Node, error) {
	prog := ast.NewNode("program", 1)
	structs := []*ast.Node{}
	funcs := []*ast.Node{}
	for p.cur.Type != EOF {
		switch {
		case p.cur.Type == FUNC:
			f, err := p.parseFunc()
			if err != nil {
				return nil, err
			}
			funcs = append(funcs, f)
		case p.cur.Type == STRUCT && p.opts.Typed:
			s, err := p.parseStruct()
			if err != nil {
				return nil, err
			}
			structs = append(structs, s)
		default:
			return nil, p.errorf("unexpected %s at top level", p.cur)
		}
	}
	prog.SetList("structs", structs)
	prog.SetList("functions", funcs)
	return prog, nil
}

func (p *parser) parseStruct() (*ast.Node, error) {
	n := ast.NewNode("struct", p.cur.Line)
	p.next()
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	n.SetAttr("name", name.Literal)
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	var fields []*ast.Node
	for p.cur.Type != RBRACE {
		f, err := p.parseTypedName("field_def")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	p.next()
	n.SetList("fields", fields)
	return n, nil
}

// parseTypedName reads `name` or, in typed mode, `name: type`.
func (p *parser) parseTypedName(kind string) (*ast.Node, error) {
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(kind, name.Line).SetAttr("name", name.Literal)
	if !p.opts.Typed {
		return n, nil
	}
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	typ, err := p.expectName()
	if err != nil {
		return nil, err
	}
	n.SetAttr("var_type", typ.Literal)
	return n, nil
}

func (p *parser) parseFunc() (*ast.Node, error) {
	n := ast.NewNode("func", p.cur.Line)
	p.next()
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	n.SetAttr("name", name.Literal)
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	var args []*ast.Node
	for p.cur.Type != RPAREN {
		if len(args) > 0 {
			if _, err := p.expect(COMMA); err != nil {
				return nil, err
			}
		}
		a, err := p.parseTypedName("arg")
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	p.next()
	n.SetList("args", args)
	if p.opts.Typed {
		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}
		rt, err := p.expectName()
		if err != nil {
			return nil, err
		}
		n.SetAttr("return_type", rt.Literal)
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n.SetList("statements", body)
	return n, nil
}

func (p *parser) parseBlock() ([]*ast.Node, error) {
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	stmts := []*ast.Node{}
	for p.cur.Type != RBRACE {
		if p.cur.Type == EOF {
			return nil, p.errorf("unexpected end of file, expected }")
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	p.next()
	return stmts, nil
}

func (p *parser) parseStatement() (*ast.Node, error) {
	switch p.cur.Type {
	case VAR:
		p.next()
		n, err := p.parseTypedName("vardef")
		if err != nil {
			return nil, err
		}
		return n, p.endStatement()
	case IF:
		return p.parseIf()
	case FOR:
		return p.parseFor()
	case RETURN:
		n := ast.NewNode("return", p.cur.Line)
		p.next()
		if p.cur.Type != SEMICOLON {
			e, err := p.parseExpression(LOWEST)
			if err != nil {
				return nil, err
			}
			n.SetChild("expression", e)
		}
		return n, p.endStatement()
	case RAISE:
		n := ast.NewNode("raise", p.cur.Line)
		p.next()
		e, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		n.SetChild("exception_type", e)
		return n, p.endStatement()
	case TRY:
		return p.parseTry()
	case IDENT:
		if p.peek.Type == LPAREN {
			n, err := p.parseCall()
			if err != nil {
				return nil, err
			}
			return n, p.endStatement()
		}
		n, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return n, p.endStatement()
	}
	if p.cur.Type == ILLEGAL {
		return nil, p.errorf("unexpected %q", p.cur.Literal)
	}
	return nil, p.errorf("unexpected %s at start of statement", p.cur)
}

func (p *parser) endStatement() error {
	_, err := p.expect(SEMICOLON)
	return err
}

func (p *parser) parseAssign() (*ast.Node, error) {
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}
	e, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	return ast.NewNode("=", name.Line).SetAttr("name", name.Literal).SetChild("expression", e), nil
}

func (p *parser) parseIf() (*ast.Node, error) {
	n := ast.NewNode("if", p.cur.Line)
	p.next()
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n.SetChild("condition", cond).SetList("statements", body)
	if p.cur.Type == ELSE {
		p.next()
		els, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		n.SetList("else_statements", els)
	}
	return n, nil
}

func (p *parser) parseFor() (*ast.Node, error) {
	n := ast.NewNode("for", p.cur.Line)
	p.next()
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	init, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	update, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n.SetChild("init", init).SetChild("condition", cond).SetChild("update", update)
	n.SetList("statements", body)
	return n, nil
}

func (p *parser) parseTry() (*ast.Node, error) {
	n := ast.NewNode("try", p.cur.Line)
	p.next()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var catchers []*ast.Node
	for p.cur.Type == CATCH {
		c := ast.NewNode("catch", p.cur.Line)
		p.next()
		tag, err := p.expect(STRING)
		if err != nil {
			return nil, err
		}
		cb, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		c.SetAttr("exception_type", tag.Literal).SetList("statements", cb)
		catchers = append(catchers, c)
	}
	if len(catchers) == 0 {
		return nil, p.errorf("try without catch")
	}
	n.SetList("statements", body).SetList("catchers", catchers)
	return n, nil
}

func (p *parser) parseCall() (*ast.Node, error) {
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	args := []*ast.Node{}
	for p.cur.Type != RPAREN {
		if len(args) > 0 {
			if _, err := p.expect(COMMA); err != nil {
				return nil, err
			}
		}
		a, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	p.next()
	return ast.NewNode("fcall", name.Line).SetAttr("name", name.Literal).SetList("args", args), nil
}

// parseExpression is a precedence climbing parser; all binary operators
// are left associative.
func (p *parser) parseExpression(prec int) (*ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		next, ok := precedences[p.cur.Type]
		if !ok || next <= prec {
			return left, nil
		}
		op := p.cur
		p.next()
		right, err := p.parseExpression(next)
		if err != nil {
			return nil, err
		}
		left = ast.NewNode(op.Literal, op.Line).SetChild("op1", left).SetChild("op2", right)
	}
}

func (p *parser) parseUnary() (*ast.Node, error) {
	switch p.cur.Type {
	case MINUS, BANG:
		kind := "neg"
		if p.cur.Type == BANG {
			kind = "!"
		}
		n := ast.NewNode(kind, p.cur.Line)
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return n.SetChild("op1", x), nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (*ast.Node, error) {
	tok := p.cur
	switch tok.Type {
	case INT:
		p.next()
		return ast.NewNode("int", tok.Line).SetAttr("val", tok.Literal), nil
	case STRING:
		p.next()
		return ast.NewNode("string", tok.Line).SetAttr("val", tok.Literal), nil
	case TRUE, FALSE:
		p.next()
		return ast.NewNode("bool", tok.Line).SetAttr("val", tok.Literal), nil
	case NIL:
		p.next()
		return ast.NewNode("nil", tok.Line), nil
	case NEW:
		p.next()
		typ, err := p.expectName()
		if err != nil {
			return nil, err
		}
		return ast.NewNode("new", tok.Line).SetAttr("var_type", typ.Literal), nil
	case IDENT:
		if p.peek.Type == LPAREN {
			return p.parseCall()
		}
		p.next()
		return ast.NewNode("var", tok.Line).SetAttr("name", tok.Literal), nil
	case LPAREN:
		p.next()
		e, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	case ILLEGAL:
		return nil, p.errorf("unexpected %q", tok.Literal)
	}
	return nil, p.errorf("unexpected %s in expression", tok)
}

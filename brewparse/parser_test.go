package brewparse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewin-lang/brewin/ast"
)

func TestLexerTokens(t *testing.T) {
	l := NewLexer("var p.next.value; x <= 10 && !y // trailing\n\"hi\"")
	want := []struct {
		typ TokenType
		lit string
	}{
		{VAR, "var"},
		{IDENT, "p.next.value"},
		{SEMICOLON, ";"},
		{IDENT, "x"},
		{LT_EQ, "<="},
		{INT, "10"},
		{AND, "&&"},
		{BANG, "!"},
		{IDENT, "y"},
		{STRING, "hi"},
		{EOF, ""},
	}
	for i, w := range want {
		tok := l.NextToken()
		assert.Equal(t, w.typ, tok.Type, "token %d", i)
		assert.Equal(t, w.lit, tok.Literal, "token %d", i)
	}
}

func TestLexerTracksLines(t *testing.T) {
	l := NewLexer("a\n/* multi\nline */\nb")
	assert.Equal(t, 1, l.NextToken().Line)
	assert.Equal(t, 4, l.NextToken().Line)
}

func TestParseUntypedProgram(t *testing.T) {
	src := `
func main() {
  var x;
  x = 5 + 6 * 2;
  print("The sum is: ", x);
}
`
	n, err := Parse(src, Options{})
	require.NoError(t, err)
	require.Len(t, n.List("functions"), 1)

	main := n.List("functions")[0]
	assert.Equal(t, "main", main.Attr("name"))
	stmts := main.List("statements")
	require.Len(t, stmts, 3)
	assert.Equal(t, "vardef", stmts[0].Kind)

	sum := stmts[1].Child("expression")
	assert.Equal(t, "+", sum.Kind)
	assert.Equal(t, "*", sum.Child("op2").Kind)
	assert.Equal(t, 4, stmts[1].Line)

	call := stmts[2]
	assert.Equal(t, "fcall", call.Kind)
	assert.Len(t, call.List("args"), 2)
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a || b && c", "||"},
		{"a && b == c", "&&"},
		{"a == b + c", "=="},
		{"a - b - c", "-"},
		{"-a * b", "*"},
		{"!(a || b)", "!"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p := newParser(tt.src, Options{})
			e, err := p.parseExpression(LOWEST)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Kind)
		})
	}

	p := newParser("a - b - c", Options{})
	e, err := p.parseExpression(LOWEST)
	require.NoError(t, err)
	assert.Equal(t, "-", e.Child("op1").Kind, "subtraction is left associative")
	assert.Equal(t, "var", e.Child("op2").Kind)
}

func TestParseControlFlow(t *testing.T) {
	src := `
func main() {
  for (i = 3; i > 0; i = i - 1) {
    if (i == 2) { print(i); } else { return; }
  }
  if (true) { }
  try {
    raise "boom";
  } catch "boom" {
    print("caught");
  } catch "other" {
  }
}
`
	n, err := Parse(src, Options{})
	require.NoError(t, err)
	stmts := n.List("functions")[0].List("statements")
	require.Len(t, stmts, 3)

	loop := stmts[0]
	assert.Equal(t, "for", loop.Kind)
	assert.Equal(t, "i", loop.Child("init").Attr("name"))
	inner := loop.List("statements")[0]
	assert.True(t, inner.HasList("else_statements"))
	assert.Nil(t, inner.List("else_statements")[0].Child("expression"))

	assert.False(t, stmts[1].HasList("else_statements"))

	try := stmts[2]
	require.Len(t, try.List("catchers"), 2)
	assert.Equal(t, "boom", try.List("catchers")[0].Attr("exception_type"))
	assert.Equal(t, "raise", try.List("statements")[0].Kind)
}

func TestParseTypedProgram(t *testing.T) {
	src := `
struct node {
  value: int;
  next: node;
}

func make(v: int, n: node): node {
  var x: node;
  x = new node;
  x.value = v;
  x.next = n;
  return x;
}

func main(): void {
  print(make(1, nil).value);
}
`
	n, err := Parse(src, Options{Typed: true})
	require.NoError(t, err)
	require.Len(t, n.List("structs"), 1)

	s := n.List("structs")[0]
	assert.Equal(t, "node", s.Attr("name"))
	require.Len(t, s.List("fields"), 2)
	assert.Equal(t, "int", s.List("fields")[0].Attr("var_type"))

	mk := n.List("functions")[0]
	assert.Equal(t, "node", mk.Attr("return_type"))
	assert.Equal(t, "int", mk.List("args")[0].Attr("var_type"))
	body := mk.List("statements")
	assert.Equal(t, "node", body[0].Attr("var_type"))
	assert.Equal(t, "new", body[1].Child("expression").Kind)
	assert.Equal(t, "x.value", body[2].Attr("name"))

	arg := n.List("functions")[1].List("statements")[0].List("args")[0]
	assert.Equal(t, "var", arg.Kind)

	prog, err := ast.Build(n)
	require.NoError(t, err)
	assert.Equal(t, "node", prog.Structs[0].Fields[1].Type)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts Options
		line int
	}{
		{"missing semicolon", "func main() {\n  var x\n}", Options{}, 3},
		{"unterminated string", "func main() {\n  print(\"oops);\n}", Options{}, 2},
		{"typed annotation in untyped mode", "func main() { var x: int; }", Options{}, 1},
		{"missing type in typed mode", "func main(): void { var x; }", Options{Typed: true}, 1},
		{"struct in untyped mode", "struct a { }", Options{}, 1},
		{"try without catch", "func main() {\n try { }\n}", Options{}, 3},
		{"dotted function name", "func a.b() { }", Options{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src, tt.opts)
			require.Error(t, err)
			var se *SyntaxError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.line, se.Line)
		})
	}
}

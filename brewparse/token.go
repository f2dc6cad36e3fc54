package brewparse

import "fmt"

type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	IDENT
	INT
	STRING

	ASSIGN   // =
	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /
	BANG     // !
	EQ       // ==
	NOT_EQ   // !=
	LT       // <
	LT_EQ    // <=
	GT       // >
	GT_EQ    // >=
	AND      // &&
	OR       // ||

	COMMA
	SEMICOLON
	COLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE

	FUNC
	VAR
	IF
	ELSE
	FOR
	RETURN
	TRUE
	FALSE
	NIL
	NEW
	STRUCT
	RAISE
	TRY
	CATCH
)

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL", EOF: "end of file",
	IDENT: "identifier", INT: "integer", STRING: "string",
	ASSIGN: "=", PLUS: "+", MINUS: "-", ASTERISK: "*", SLASH: "/", BANG: "!",
	EQ: "==", NOT_EQ: "!=", LT: "<", LT_EQ: "<=", GT: ">", GT_EQ: ">=",
	AND: "&&", OR: "||",
	COMMA: ",", SEMICOLON: ";", COLON: ":",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}",
	FUNC: "func", VAR: "var", IF: "if", ELSE: "else", FOR: "for", RETURN: "return",
	TRUE: "true", FALSE: "false", NIL: "nil", NEW: "new", STRUCT: "struct",
	RAISE: "raise", TRY: "try", CATCH: "catch",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Token(%d)", int(t))
}

var keywords = map[string]TokenType{
	"func":   FUNC,
	"var":    VAR,
	"if":     IF,
	"else":   ELSE,
	"for":    FOR,
	"return": RETURN,
	"true":   TRUE,
	"false":  FALSE,
	"nil":    NIL,
	"new":    NEW,
	"struct": STRUCT,
	"raise":  RAISE,
	"try":    TRY,
	"catch":  CATCH,
}

type Token struct {
	Type    TokenType
	Literal string
	Line    int
}

func (t Token) String() string {
	switch t.Type {
	case IDENT, INT:
		return fmt.Sprintf("%s %q", t.Type, t.Literal)
	case STRING:
		return fmt.Sprintf("string \"%s\"", t.Literal)
	}
	return fmt.Sprintf("%q", t.Type.String())
}

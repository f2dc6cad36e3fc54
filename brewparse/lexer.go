package brewparse

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// NextToken returns the next token. Dotted names such as `p.next.value`
// are returned as a single IDENT.
func (l *Lexer) NextToken() Token {
	if err := l.skipWhitespaceAndComments(); err != "" {
		return Token{Type: ILLEGAL, Literal: err, Line: l.line}
	}

	line := l.line
	two := func(t TokenType, lit string) Token {
		l.readChar()
		l.readChar()
		return Token{Type: t, Literal: lit, Line: line}
	}
	one := func(t TokenType) Token {
		lit := string(l.ch)
		l.readChar()
		return Token{Type: t, Literal: lit, Line: line}
	}

	switch l.ch {
	case 0:
		return Token{Type: EOF, Line: line}
	case '=':
		if l.peekChar() == '=' {
			return two(EQ, "==")
		}
		return one(ASSIGN)
	case '!':
		if l.peekChar() == '=' {
			return two(NOT_EQ, "!=")
		}
		return one(BANG)
	case '<':
		if l.peekChar() == '=' {
			return two(LT_EQ, "<=")
		}
		return one(LT)
	case '>':
		if l.peekChar() == '=' {
			return two(GT_EQ, ">=")
		}
		return one(GT)
	case '&':
		if l.peekChar() == '&' {
			return two(AND, "&&")
		}
	case '|':
		if l.peekChar() == '|' {
			return two(OR, "||")
		}
	case '+':
		return one(PLUS)
	case '-':
		return one(MINUS)
	case '*':
		return one(ASTERISK)
	case '/':
		return one(SLASH)
	case ',':
		return one(COMMA)
	case ';':
		return one(SEMICOLON)
	case ':':
		return one(COLON)
	case '(':
		return one(LPAREN)
	case ')':
		return one(RPAREN)
	case '{':
		return one(LBRACE)
	case '}':
		return one(RBRACE)
	case '"':
		return l.readString()
	default:
		if isLetter(l.ch) {
			lit := l.readIdentifier()
			if t, ok := keywords[lit]; ok {
				return Token{Type: t, Literal: lit, Line: line}
			}
			return Token{Type: IDENT, Literal: lit, Line: line}
		}
		if isDigit(l.ch) {
			start := l.position
			for isDigit(l.ch) {
				l.readChar()
			}
			return Token{Type: INT, Literal: l.input[start:l.position], Line: line}
		}
	}
	return one(ILLEGAL)
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for {
		for isLetter(l.ch) || isDigit(l.ch) {
			l.readChar()
		}
		if l.ch == '.' && isLetter(l.peekChar()) {
			l.readChar()
			continue
		}
		break
	}
	return l.input[start:l.position]
}

func (l *Lexer) readString() Token {
	line := l.line
	l.readChar()
	start := l.position
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return Token{Type: ILLEGAL, Literal: "unterminated string", Line: line}
		}
		l.readChar()
	}
	lit := l.input[start:l.position]
	l.readChar()
	return Token{Type: STRING, Literal: lit, Line: line}
}

func (l *Lexer) skipWhitespaceAndComments() string {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for !(l.ch == '*' && l.peekChar() == '/') {
				if l.ch == 0 {
					return "unterminated comment"
				}
				l.readChar()
			}
			l.readChar()
			l.readChar()
		default:
			return ""
		}
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

package format

type tokenKind int

const (
	tokIllegal tokenKind = iota
	tokLBrace
	tokRBrace
	tokComma
	tokSemicolon
	tokNumber
	tokEOL
)

func (k tokenKind) String() string {
	switch k {
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokComma:
		return "','"
	case tokSemicolon:
		return "';'"
	case tokNumber:
		return "number"
	case tokEOL:
		return "end of line"
	default:
		return "illegal"
	}
}

type token struct {
	kind tokenKind
	text string
	line int
	col  int // 1-based byte column
}

// lexer splits one line of a data section into tokens.
type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string, line int) *lexer {
	return &lexer{src: src, line: line}
}

func (l *lexer) next() token {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOL, line: l.line, col: l.pos + 1}
	}

	start := l.pos
	c := l.src[l.pos]
	l.pos++

	kind := tokIllegal
	switch {
	case c == '{':
		kind = tokLBrace
	case c == '}':
		kind = tokRBrace
	case c == ',':
		kind = tokComma
	case c == ';':
		kind = tokSemicolon
	case isDigit(c):
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		kind = tokNumber
	default:
		// swallow the rest of the word so the error shows something readable
		for l.pos < len(l.src) && !isSpace(l.src[l.pos]) && !isPunct(l.src[l.pos]) {
			l.pos++
		}
	}
	return token{kind: kind, text: l.src[start:l.pos], line: l.line, col: start + 1}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isPunct(c byte) bool {
	return c == '{' || c == '}' || c == ',' || c == ';'
}

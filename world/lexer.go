package world

import (
	"strings"
	"unicode/utf8"
)

// Lexer splits a single world-file line on a record-specific delimiter set.
// Tokens are produced lazily; every maximal run of non-delimiter runes is one token.
type Lexer struct {
	input  []byte
	delims string
	pos    int // current position in input
	line   int
	col    int
}

func NewLexer(input []byte, line int, delims string) *Lexer {
	return &Lexer{
		input:  input,
		delims: delims,
		line:   line,
	}
}

// NextToken returns the next token in the line
func (l *Lexer) NextToken() Token {
	l.skipDelims()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Line: l.line, Col: l.col}
	}

	startCol := l.col
	start := l.pos
	for l.pos < len(l.input) && !l.isDelim(l.peek()) {
		if l.peek() == utf8.RuneError {
			l.advance()
			return Token{Type: TokenError, Literal: "invalid utf-8", Line: l.line, Col: startCol}
		}
		l.advance()
	}
	lit := string(l.input[start:l.pos])

	return Token{Type: classify(lit), Literal: lit, Line: l.line, Col: startCol}
}

// Tokens drains the lexer
func (l *Lexer) Tokens() []Token {
	var toks []Token
	for {
		t := l.NextToken()
		if t.Type == TokenEOF {
			return toks
		}
		toks = append(toks, t)
	}
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, w := utf8.DecodeRune(l.input[l.pos:])
	l.pos += w
	l.col++
	return r
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return r
}

func (l *Lexer) isDelim(r rune) bool {
	// Trailing CR from CRLF files and tabs separate like spaces
	if r == '\r' || r == '\t' || r == '\n' {
		return true
	}
	return strings.ContainsRune(l.delims, r)
}

func (l *Lexer) skipDelims() {
	for l.pos < len(l.input) && l.isDelim(l.peek()) {
		l.advance()
	}
}

// classify mirrors the bare-or-number heuristic: anything with a letter other
// than an exponent marker is a word
func classify(lit string) TokenType {
	body := lit
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		body = body[1:]
	}
	if body == "" || !(isDigit(rune(body[0])) || body[0] == '.') {
		return TokenIdent
	}

	for _, r := range body {
		if isAlpha(r) && r != 'e' && r != 'E' {
			return TokenIdent
		}
		if !isAlpha(r) && !isDigit(r) && r != '.' && r != '+' && r != '-' {
			return TokenIdent
		}
	}

	if strings.ContainsAny(body, ".eE") {
		return TokenFloat
	}
	return TokenInteger
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

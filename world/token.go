package world

import (
	"fmt"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	TokenError TokenType = iota
	TokenEOF

	// Literals
	TokenIdent   // bare word: tag, keyword or directive name
	TokenInteger // 12
	TokenFloat   // -0.5
)

// Delimiter sets used by the different record shapes
const (
	DelimRecord    = "| "  // dot| position: 0.1 0.2 | color: ...
	DelimHeader    = ":"   // no_dots:12
	DelimCircle    = ":| " // circle: position: 0.1 0.2 color: ...
	DelimDirective = ": "  // function: pulse_circle_2: speed: 0.01: 0.0
	DelimName      = "_ "  // pulse_circle_2
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return fmt.Sprintf("Error(%s)", t.Literal)
	}
	if len(t.Literal) > 20 {
		return fmt.Sprintf("%q...", t.Literal[:20])
	}
	return fmt.Sprintf("%q", t.Literal)
}

// IsNumber reports whether the token can be read as a numeric field value
func (t Token) IsNumber() bool {
	return t.Type == TokenInteger || t.Type == TokenFloat
}

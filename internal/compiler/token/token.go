package token

import "fmt"

type TokenType string

const (
	// Operators and punctuation
	TokenPlus     TokenType = "PLUS"        // +
	TokenMinus    TokenType = "MINUS"       // -
	TokenMultiply TokenType = "MUL"         // *
	TokenIntDiv   TokenType = "INTEGER_DIV" // DIV
	TokenFloatDiv TokenType = "FLOAT_DIV"   // /
	TokenLParen   TokenType = "LPAREN"      // (
	TokenRParen   TokenType = "RPAREN"      // )
	TokenDot      TokenType = "DOT"         // .
	TokenSemi     TokenType = "SEMI"        // ;
	TokenColon    TokenType = "COLON"       // :
	TokenComma    TokenType = "COMMA"       // ,
	TokenAssign   TokenType = "ASSIGN"      // :=

	// Keywords
	TokenBegin     TokenType = "BEGIN"
	TokenEnd       TokenType = "END"
	TokenProgram   TokenType = "PROGRAM"
	TokenVar       TokenType = "VAR"
	TokenProcedure TokenType = "PROCEDURE"
	TokenInteger   TokenType = "INTEGER" // type name
	TokenReal      TokenType = "REAL"    // type name

	// Literals & Identifiers
	TokenIdent     TokenType = "ID"
	TokenIntConst  TokenType = "INTEGER_CONST"
	TokenRealConst TokenType = "REAL_CONST"

	// Special
	TokenEOF TokenType = "EOF"
)

// Position is a 1-indexed line/column location in source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

func (t Token) Pos() Position {
	return Position{Line: t.Line, Column: t.Column}
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", t.Type, t.Literal)
}

// IsTypeKeyword reports whether the token names a builtin type.
func (t Token) IsTypeKeyword() bool {
	return t.Type == TokenInteger || t.Type == TokenReal
}

// keywords is the reserved-word table. Matching is case-sensitive.
var keywords = map[string]TokenType{
	"PROGRAM":   TokenProgram,
	"VAR":       TokenVar,
	"DIV":       TokenIntDiv,
	"INTEGER":   TokenInteger,
	"REAL":      TokenReal,
	"BEGIN":     TokenBegin,
	"END":       TokenEnd,
	"PROCEDURE": TokenProcedure,
}

// LookupIdent returns the keyword's token type, or TokenIdent if ident is
// not reserved.
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return TokenIdent
}

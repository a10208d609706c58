package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/arnavsurve/minipas/internal/compiler/token"
)

const eof rune = -1

// Lexer produces tokens on demand. Once it has returned EOF or an error it
// keeps returning the same result.
type Lexer struct {
	input        string
	position     int  // byte offset of ch
	readPosition int  // byte offset of the next rune
	ch           rune // current rune, eof at end of input

	line   int // current line number (1-indexed)
	column int // current column number (1-indexed)

	done *token.Token
	err  error

	comments []Comment
}

// Comment is a { ... } comment as written in the source, braces included.
type Comment struct {
	Text string
	Pos  token.Position
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// readChar advances to the next rune and keeps line/column in step.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.position = len(l.input)
		l.ch = eof
		l.column++
		return
	}

	r, width := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += width
	l.column++
}

// peekChar returns the rune after ch without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() (token.Token, error) {
	if l.err != nil {
		return token.Token{}, l.err
	}
	if l.done != nil {
		return *l.done, nil
	}

	tok, err := l.scan()
	if err != nil {
		l.err = err
		return token.Token{}, err
	}
	if tok.Type == token.TokenEOF {
		l.done = &tok
	}
	return tok, nil
}

func (l *Lexer) scan() (token.Token, error) {
	for {
		l.skipWhitespace()
		if l.ch != '{' {
			break
		}
		if err := l.skipComment(); err != nil {
			return token.Token{}, err
		}
	}

	startLine := l.line
	startCol := l.column

	switch l.ch {
	case eof:
		return l.newToken(token.TokenEOF, "", startLine, startCol), nil
	case ':':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.TokenAssign, ":=", startLine, startCol), nil
		}
		return l.single(token.TokenColon, startLine, startCol), nil
	case ',':
		return l.single(token.TokenComma, startLine, startCol), nil
	case ';':
		return l.single(token.TokenSemi, startLine, startCol), nil
	case '.':
		return l.single(token.TokenDot, startLine, startCol), nil
	case '+':
		return l.single(token.TokenPlus, startLine, startCol), nil
	case '-':
		return l.single(token.TokenMinus, startLine, startCol), nil
	case '*':
		return l.single(token.TokenMultiply, startLine, startCol), nil
	case '/':
		return l.single(token.TokenFloatDiv, startLine, startCol), nil
	case '(':
		return l.single(token.TokenLParen, startLine, startCol), nil
	case ')':
		return l.single(token.TokenRParen, startLine, startCol), nil
	}

	if isLetter(l.ch) {
		ident := l.readIdentifier()
		return l.newToken(token.LookupIdent(ident), ident, startLine, startCol), nil
	}
	if isDigit(l.ch) {
		return l.readNumber(startLine, startCol), nil
	}

	return token.Token{}, &Error{
		Kind: InvalidCharacter,
		Char: l.ch,
		Pos:  token.Position{Line: startLine, Column: startCol},
	}
}

// newToken is a helper to create a token.Token struct
func (l *Lexer) newToken(tokenType token.TokenType, literal string, line, col int) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Line: line, Column: col}
}

// single emits a one-rune token for ch and consumes it.
func (l *Lexer) single(tokenType token.TokenType, line, col int) token.Token {
	tok := l.newToken(tokenType, string(l.ch), line, col)
	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch != eof && unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// skipComment consumes a { ... } comment including the closing brace.
// Comments do not nest.
func (l *Lexer) skipComment() error {
	start := token.Position{Line: l.line, Column: l.column}
	offset := l.position
	l.readChar() // Consume '{'

	for l.ch != '}' {
		if l.ch == eof {
			return &Error{Kind: UnterminatedComment, Pos: start}
		}
		l.readChar()
	}
	l.readChar() // Consume '}'
	l.comments = append(l.comments, Comment{Text: l.input[offset:l.position], Pos: start})
	return nil
}

// Comments returns the comments skipped so far, in source order.
func (l *Lexer) Comments() []Comment {
	return l.comments
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber scans a digit run, continuing into a real literal only when the
// '.' is followed by at least one digit. "3." is INTEGER_CONST then DOT.
func (l *Lexer) readNumber(startLine, startCol int) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // Consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
		return l.newToken(token.TokenRealConst, l.input[start:l.position], startLine, startCol)
	}

	return l.newToken(token.TokenIntConst, l.input[start:l.position], startLine, startCol)
}

// Tokenize drains a fresh lexer over input, EOF token included.
func Tokenize(input string) ([]token.Token, error) {
	l := NewLexer(input)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Type == token.TokenEOF {
			return toks, nil
		}
	}
}

// ScanComments drains a fresh lexer over input and returns its comments.
func ScanComments(input string) ([]Comment, error) {
	l := NewLexer(input)
	for {
		tok, err := l.NextToken()
		if err != nil {
			return l.comments, err
		}
		if tok.Type == token.TokenEOF {
			return l.comments, nil
		}
	}
}

func isLetter(ch rune) bool {
	return ch != eof && unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

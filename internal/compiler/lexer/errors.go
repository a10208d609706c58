package lexer

import (
	"fmt"

	"github.com/arnavsurve/minipas/internal/compiler/token"
)

type ErrorKind int

const (
	InvalidCharacter ErrorKind = iota
	UnterminatedComment
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidCharacter:
		return "InvalidCharacter"
	case UnterminatedComment:
		return "UnterminatedComment"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a lexical failure. Char is set for InvalidCharacter; Pos points at
// the offending character or, for UnterminatedComment, at the opening brace.
type Error struct {
	Kind ErrorKind
	Char rune
	Pos  token.Position
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case InvalidCharacter:
		msg = fmt.Sprintf("invalid character %q", e.Char)
	case UnterminatedComment:
		msg = "comment opened here is never closed"
	default:
		msg = e.Kind.String()
	}
	return fmt.Sprintf("%s: Lexical Error: %s", e.Pos, msg)
}

func (e *Error) Stage() string { return "lexical" }

func (e *Error) Position() token.Position { return e.Pos }

package parser

import (
	"fmt"
	"strings"

	"github.com/arnavsurve/minipas/internal/compiler/token"
)

type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	TrailingInput
	InvalidNumber
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case TrailingInput:
		return "TrailingInput"
	case InvalidNumber:
		return "InvalidNumber"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a syntax failure at Found.
type Error struct {
	Kind     ErrorKind
	Expected []token.TokenType // alternatives accepted at this point, UnexpectedToken only
	Found    token.Token
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case UnexpectedToken:
		names := make([]string, len(e.Expected))
		for i, t := range e.Expected {
			names[i] = string(t)
		}
		msg = fmt.Sprintf("expected %s, found %s", strings.Join(names, " or "), e.Found)
	case TrailingInput:
		msg = fmt.Sprintf("unexpected %s after end of program", e.Found)
	case InvalidNumber:
		msg = fmt.Sprintf("number %s is out of range", e.Found.Literal)
	default:
		msg = e.Kind.String()
	}
	return fmt.Sprintf("%s: Syntax Error: %s", e.Found.Pos(), msg)
}

func (e *Error) Stage() string { return "syntax" }

func (e *Error) Position() token.Position { return e.Found.Pos() }

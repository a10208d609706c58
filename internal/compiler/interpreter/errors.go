package interpreter

import (
	"fmt"

	"github.com/arnavsurve/minipas/internal/compiler/token"
)

type ErrorKind int

const (
	DivisionByZero ErrorKind = iota
	// UnboundVariable means a name passed analysis but holds no value, e.g.
	// it is read before its first assignment.
	UnboundVariable
)

func (k ErrorKind) String() string {
	switch k {
	case DivisionByZero:
		return "DivisionByZero"
	case UnboundVariable:
		return "UnboundVariable"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

type Error struct {
	Kind ErrorKind
	Name string // variable name for UnboundVariable
	Pos  token.Position
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case DivisionByZero:
		msg = "division by zero"
	case UnboundVariable:
		msg = fmt.Sprintf("variable '%s' has no value", e.Name)
	default:
		msg = e.Kind.String()
	}
	return fmt.Sprintf("%s: Runtime Error: %s", e.Pos, msg)
}

func (e *Error) Stage() string { return "runtime" }

func (e *Error) Position() token.Position { return e.Pos }

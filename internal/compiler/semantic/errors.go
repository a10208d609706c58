package semantic

import (
	"fmt"

	"github.com/arnavsurve/minipas/internal/compiler/token"
)

type ErrorKind int

const (
	DuplicateDeclaration ErrorKind = iota
	UnknownType
	UndeclaredIdentifier
	NotAVariable
)

func (k ErrorKind) String() string {
	switch k {
	case DuplicateDeclaration:
		return "DuplicateDeclaration"
	case UnknownType:
		return "UnknownType"
	case UndeclaredIdentifier:
		return "UndeclaredIdentifier"
	case NotAVariable:
		return "NotAVariable"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

type Error struct {
	Kind  ErrorKind
	Name  string
	Scope string // name of the scope being analyzed
	Pos   token.Position
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case DuplicateDeclaration:
		msg = fmt.Sprintf("duplicate identifier '%s' in scope %s", e.Name, e.Scope)
	case UnknownType:
		msg = fmt.Sprintf("unknown type '%s'", e.Name)
	case UndeclaredIdentifier:
		msg = fmt.Sprintf("identifier '%s' is not declared", e.Name)
	case NotAVariable:
		msg = fmt.Sprintf("'%s' is not a variable", e.Name)
	default:
		msg = e.Kind.String()
	}
	return fmt.Sprintf("%s: Semantic Error: %s", e.Pos, msg)
}

func (e *Error) Stage() string { return "semantic" }

func (e *Error) Position() token.Position { return e.Pos }

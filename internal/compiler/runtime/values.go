package runtime

import (
	"strconv"

	"github.com/arnavsurve/minipas/internal/compiler/lib"
)

type Kind int

const (
	IntegerKind Kind = iota
	RealKind
)

func (k Kind) String() string {
	if k == RealKind {
		return "REAL"
	}
	return "INTEGER"
}

// Value is a runtime number: Integer or Real.
type Value interface {
	Kind() Kind
	String() string
	value()
}

type Integer int64

func (Integer) value()           {}
func (Integer) Kind() Kind       { return IntegerKind }
func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }

type Real float64

func (Real) value()           {}
func (Real) Kind() Kind       { return RealKind }
func (r Real) String() string { return lib.FormatReal(float64(r)) }

// AsReal widens v to a float64.
func AsReal(v Value) float64 {
	switch n := v.(type) {
	case Integer:
		return float64(n)
	case Real:
		return float64(n)
	default:
		panic("runtime: unknown value type")
	}
}

// IsZero reports whether v is a zero divisor.
func IsZero(v Value) bool {
	return AsReal(v) == 0
}

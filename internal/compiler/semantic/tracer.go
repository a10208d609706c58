package semantic

import (
	"github.com/arnavsurve/minipas/internal/compiler/scope"
	"github.com/arnavsurve/minipas/internal/compiler/symbols"
)

// Tracer observes scope activity during analysis. Scopes passed to a Tracer
// are only valid for the duration of the call.
type Tracer interface {
	EnterScope(sc *scope.Scope)
	LeaveScope(sc *scope.Scope)
	Insert(sc *scope.Scope, sym symbols.Symbol)
	Lookup(sc *scope.Scope, name string, found bool)
}

type nopTracer struct{}

func (nopTracer) EnterScope(*scope.Scope)             {}
func (nopTracer) LeaveScope(*scope.Scope)             {}
func (nopTracer) Insert(*scope.Scope, symbols.Symbol) {}
func (nopTracer) Lookup(*scope.Scope, string, bool)   {}

package cmd

import (
	"io"
	"log"

	"github.com/fatih/color"

	"github.com/arnavsurve/minipas/internal/compiler/scope"
	"github.com/arnavsurve/minipas/internal/compiler/symbols"
)

// logTracer prints scope activity, one event per line.
type logTracer struct {
	log    *log.Logger
	header *color.Color
	miss   *color.Color
}

func newLogTracer(w io.Writer, withColor bool) *logTracer {
	t := &logTracer{
		log:    log.New(w, "trace: ", 0),
		header: color.New(color.FgCyan, color.Bold),
		miss:   color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{t.header, t.miss} {
		if withColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return t
}

func (t *logTracer) EnterScope(sc *scope.Scope) {
	t.log.Printf("%s %s (level %d)", t.header.Sprint("ENTER scope:"), sc.Name, sc.Level)
}

func (t *logTracer) LeaveScope(sc *scope.Scope) {
	t.log.Printf("%s %s", t.header.Sprint("LEAVE scope:"), sc.Name)
	t.log.Printf("  %s", sc)
}

func (t *logTracer) Insert(sc *scope.Scope, sym symbols.Symbol) {
	t.log.Printf("Insert: %s into %s", sym, sc.Name)
}

func (t *logTracer) Lookup(sc *scope.Scope, name string, found bool) {
	if found {
		t.log.Printf("Lookup: %s (scope: %s)", name, sc.Name)
		return
	}
	t.log.Printf("Lookup: %s (scope: %s) %s", name, sc.Name, t.miss.Sprint("not found"))
}

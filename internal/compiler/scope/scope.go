package scope

import (
	"errors"
	"fmt"

	"github.com/arnavsurve/minipas/internal/compiler/symbols"
)

var (
	ErrDuplicate  = errors.New("symbol already declared in this scope")
	ErrStaleScope = errors.New("scope has been released")
)

// ID names a scope in a Table. A released slot is reused with a bumped
// generation, so IDs held past Release stop resolving.
type ID struct {
	index      uint32
	generation uint32
}

// None is the ID of no scope; the global scope's enclosing ID.
var None = ID{}

func (id ID) IsNone() bool { return id == None }

// --- Scope ---
type Scope struct {
	Name      string
	Level     int
	Enclosing ID
	symbols   map[string]symbols.Symbol
	order     []string
}

// Symbols returns the scope's symbols in insertion order.
func (s *Scope) Symbols() []symbols.Symbol {
	out := make([]symbols.Symbol, len(s.order))
	for i, name := range s.order {
		out[i] = s.symbols[name]
	}
	return out
}

func (s *Scope) String() string {
	return fmt.Sprintf("%s (level %d): %v", s.Name, s.Level, s.Symbols())
}

type slot struct {
	scope      Scope
	generation uint32
	live       bool
}

// Table is an arena of scopes. Scopes refer to their enclosing scope by ID,
// never by pointer.
type Table struct {
	slots []slot
	free  []uint32
}

func NewTable() *Table {
	return &Table{}
}

// NewScope creates a scope pre-populated with the builtin types. Slot 0 is
// never handed out so the zero ID stays None.
func (t *Table) NewScope(name string, level int, enclosing ID) ID {
	if len(t.slots) == 0 {
		t.slots = append(t.slots, slot{})
	}

	sc := Scope{
		Name:      name,
		Level:     level,
		Enclosing: enclosing,
		symbols:   make(map[string]symbols.Symbol),
	}
	for _, b := range symbols.Builtins() {
		sc.symbols[b.SymbolName()] = b
		sc.order = append(sc.order, b.SymbolName())
	}

	var index uint32
	if n := len(t.free); n > 0 {
		index = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		index = uint32(len(t.slots))
		t.slots = append(t.slots, slot{})
	}

	s := &t.slots[index]
	s.generation++
	s.scope = sc
	s.live = true
	return ID{index: index, generation: s.generation}
}

// Get returns the scope for id, or false if id is None or stale.
func (t *Table) Get(id ID) (*Scope, bool) {
	if id.IsNone() || int(id.index) >= len(t.slots) {
		return nil, false
	}
	s := &t.slots[id.index]
	if !s.live || s.generation != id.generation {
		return nil, false
	}
	return &s.scope, true
}

// Release ends a scope's lifetime and frees its slot for reuse.
func (t *Table) Release(id ID) error {
	if _, ok := t.Get(id); !ok {
		return ErrStaleScope
	}
	s := &t.slots[id.index]
	s.live = false
	s.scope = Scope{}
	t.free = append(t.free, id.index)
	return nil
}

// Insert adds sym to the scope id ONLY. It returns ErrDuplicate if the name
// already exists at this level; outer scopes are not consulted.
func (t *Table) Insert(id ID, sym symbols.Symbol) error {
	sc, ok := t.Get(id)
	if !ok {
		return ErrStaleScope
	}
	name := sym.SymbolName()
	if _, exists := sc.symbols[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	sc.symbols[name] = sym
	sc.order = append(sc.order, name)
	return nil
}

// Lookup searches for name starting at id and walking enclosing scopes
// outwards. It returns the symbol and the ID of the scope that declared it.
func (t *Table) Lookup(id ID, name string) (symbols.Symbol, ID, bool) {
	for cur := id; !cur.IsNone(); {
		sc, ok := t.Get(cur)
		if !ok {
			return nil, None, false
		}
		if sym, ok := sc.symbols[name]; ok {
			return sym, cur, true
		}
		cur = sc.Enclosing
	}
	return nil, None, false
}

// LookupLocal checks ONLY the scope id.
func (t *Table) LookupLocal(id ID, name string) (symbols.Symbol, bool) {
	sc, ok := t.Get(id)
	if !ok {
		return nil, false
	}
	sym, ok := sc.symbols[name]
	return sym, ok
}

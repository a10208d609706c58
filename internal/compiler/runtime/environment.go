package runtime

import "sort"

// Store maps variable names to values. The interpreter runs every program
// in a single root Store; Frame opens a child for a procedure activation.
type Store struct {
	values map[string]Value
	parent *Store
}

func NewStore() *Store {
	return &Store{values: make(map[string]Value)}
}

// Frame creates a child store whose lookups fall back to s.
func (s *Store) Frame() *Store {
	return &Store{values: make(map[string]Value), parent: s}
}

// Parent exposes the enclosing frame (nil for the root).
func (s *Store) Parent() *Store {
	return s.parent
}

// Set binds name in this frame, overwriting any prior value.
func (s *Store) Set(name string, v Value) {
	s.values[name] = v
}

// Get retrieves a binding, searching outward through parent frames.
func (s *Store) Get(name string) (Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Snapshot returns a copy of this frame's bindings.
func (s *Store) Snapshot() map[string]Value {
	out := make(map[string]Value, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Keys returns this frame's names in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

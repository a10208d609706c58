package symbols

import (
	"fmt"
	"strings"
)

// Symbol is the static metadata for a declared name. The concrete types are
// BuiltinType, Variable and Procedure.
type Symbol interface {
	SymbolName() string
	String() string
	symbol()
}

type BuiltinType struct {
	Name string
}

func (b *BuiltinType) symbol()            {}
func (b *BuiltinType) SymbolName() string { return b.Name }
func (b *BuiltinType) String() string     { return b.Name }

var (
	Integer = &BuiltinType{Name: "INTEGER"}
	Real    = &BuiltinType{Name: "REAL"}
)

// Builtins are pre-declared in every new scope.
func Builtins() []Symbol {
	return []Symbol{Integer, Real}
}

type Variable struct {
	Name string
	Type *BuiltinType
}

func (v *Variable) symbol()            {}
func (v *Variable) SymbolName() string { return v.Name }
func (v *Variable) String() string     { return fmt.Sprintf("<%s:%s>", v.Name, v.Type) }

type Procedure struct {
	Name   string
	Params []*Variable
}

func (p *Procedure) symbol()            {}
func (p *Procedure) SymbolName() string { return p.Name }
func (p *Procedure) String() string {
	params := make([]string, len(p.Params))
	for i, param := range p.Params {
		params[i] = param.String()
	}
	return fmt.Sprintf("<%s(%s)>", p.Name, strings.Join(params, ", "))
}

package semantic

import (
	"errors"
	"fmt"

	"github.com/arnavsurve/minipas/internal/compiler/ast"
	"github.com/arnavsurve/minipas/internal/compiler/scope"
	"github.com/arnavsurve/minipas/internal/compiler/symbols"
	"github.com/arnavsurve/minipas/internal/compiler/token"
)

const globalScopeName = "global"

// Resolution records where a name use was bound.
type Resolution struct {
	Symbol symbols.Symbol
	Scope  string
	Level  int
}

// Analysis is the side table produced by a successful pass. The tree itself
// is not modified.
type Analysis struct {
	Resolutions map[*ast.Var]Resolution
	Procedures  []*symbols.Procedure
}

type Analyzer struct {
	table   *scope.Table
	current scope.ID
	tracer  Tracer
	result  *Analysis
}

// NewAnalyzer returns an Analyzer; tracer may be nil.
func NewAnalyzer(tracer Tracer) *Analyzer {
	if tracer == nil {
		tracer = nopTracer{}
	}
	return &Analyzer{tracer: tracer}
}

// Analyze checks prog in a single pre-order walk and stops at the first error.
func Analyze(prog *ast.Program, tracer Tracer) (*Analysis, error) {
	return NewAnalyzer(tracer).Analyze(prog)
}

func (a *Analyzer) Analyze(prog *ast.Program) (*Analysis, error) {
	a.table = scope.NewTable()
	a.current = scope.None
	a.result = &Analysis{Resolutions: make(map[*ast.Var]Resolution)}

	if err := a.visitProgram(prog); err != nil {
		return nil, err
	}
	return a.result, nil
}

// --- Scope Management ---

func (a *Analyzer) pushScope(name string) {
	level := 1
	if sc, ok := a.table.Get(a.current); ok {
		level = sc.Level + 1
	}
	a.current = a.table.NewScope(name, level, a.current)
	a.tracer.EnterScope(a.scope())
}

func (a *Analyzer) popScope() {
	sc := a.scope()
	a.tracer.LeaveScope(sc)
	id := a.current
	a.current = sc.Enclosing
	if err := a.table.Release(id); err != nil {
		panic(fmt.Sprintf("semantic: scope push/pop mismatch: %v", err))
	}
}

func (a *Analyzer) scope() *scope.Scope {
	sc, ok := a.table.Get(a.current)
	if !ok {
		panic("semantic: no current scope")
	}
	return sc
}

// declare inserts sym into the current scope only.
func (a *Analyzer) declare(sym symbols.Symbol, pos token.Position) error {
	err := a.table.Insert(a.current, sym)
	if errors.Is(err, scope.ErrDuplicate) {
		return &Error{Kind: DuplicateDeclaration, Name: sym.SymbolName(), Scope: a.scope().Name, Pos: pos}
	}
	if err != nil {
		panic(fmt.Sprintf("semantic: insert %s: %v", sym.SymbolName(), err))
	}
	a.tracer.Insert(a.scope(), sym)
	return nil
}

func (a *Analyzer) lookup(name string) (symbols.Symbol, scope.ID, bool) {
	sym, where, ok := a.table.Lookup(a.current, name)
	a.tracer.Lookup(a.scope(), name, ok)
	return sym, where, ok
}

// --- Traversal ---

func (a *Analyzer) visitProgram(prog *ast.Program) error {
	a.pushScope(globalScopeName)
	if err := a.visitBlock(prog.Block); err != nil {
		return err
	}
	a.popScope()
	return nil
}

func (a *Analyzer) visitBlock(block *ast.Block) error {
	for _, decl := range block.Declarations {
		if err := a.visitDeclaration(decl); err != nil {
			return err
		}
	}
	return a.visitStatement(block.Compound)
}

func (a *Analyzer) visitDeclaration(decl ast.Declaration) error {
	switch d := decl.(type) {
	case *ast.VarDecl:
		_, err := a.visitVarDecl(d)
		return err
	case *ast.ProcedureDecl:
		return a.visitProcedureDecl(d)
	default:
		panic(fmt.Sprintf("semantic: unhandled declaration %T", decl))
	}
}

func (a *Analyzer) visitVarDecl(d *ast.VarDecl) (*symbols.Variable, error) {
	typeName := d.TypeName.Literal
	sym, _, ok := a.lookup(typeName)
	typ, isType := sym.(*symbols.BuiltinType)
	if !ok || !isType {
		return nil, &Error{Kind: UnknownType, Name: typeName, Scope: a.scope().Name, Pos: d.TypeName.Pos()}
	}

	v := &symbols.Variable{Name: d.Name, Type: typ}
	if err := a.declare(v, d.Token.Pos()); err != nil {
		return nil, err
	}
	return v, nil
}

// visitProcedureDecl declares the procedure in the enclosing scope, then
// binds its parameters and body in a new scope one level deeper.
func (a *Analyzer) visitProcedureDecl(d *ast.ProcedureDecl) error {
	proc := &symbols.Procedure{Name: d.Name}
	if err := a.declare(proc, d.Token.Pos()); err != nil {
		return err
	}
	a.result.Procedures = append(a.result.Procedures, proc)

	a.pushScope(d.Name)
	for _, param := range d.Params {
		v, err := a.visitVarDecl(param)
		if err != nil {
			return err
		}
		proc.Params = append(proc.Params, v)
	}
	if err := a.visitBlock(d.Block); err != nil {
		return err
	}
	a.popScope()
	return nil
}

func (a *Analyzer) visitStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Compound:
		for _, child := range s.Statements {
			if err := a.visitStatement(child); err != nil {
				return err
			}
		}
		return nil
	case *ast.Assign:
		// Right-hand side first; the target gets no forward-reference pass.
		if err := a.visitExpression(s.Value); err != nil {
			return err
		}
		return a.resolveVar(s.Target)
	case *ast.NoOp:
		return nil
	default:
		panic(fmt.Sprintf("semantic: unhandled statement %T", stmt))
	}
}

func (a *Analyzer) visitExpression(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return nil
	case *ast.Var:
		return a.resolveVar(e)
	case *ast.UnaryOp:
		return a.visitExpression(e.Operand)
	case *ast.BinOp:
		if err := a.visitExpression(e.Left); err != nil {
			return err
		}
		return a.visitExpression(e.Right)
	default:
		panic(fmt.Sprintf("semantic: unhandled expression %T", expr))
	}
}

func (a *Analyzer) resolveVar(v *ast.Var) error {
	sym, where, ok := a.lookup(v.Name)
	if !ok {
		return &Error{Kind: UndeclaredIdentifier, Name: v.Name, Scope: a.scope().Name, Pos: v.Token.Pos()}
	}
	if _, isVar := sym.(*symbols.Variable); !isVar {
		return &Error{Kind: NotAVariable, Name: v.Name, Scope: a.scope().Name, Pos: v.Token.Pos()}
	}

	sc, _ := a.table.Get(where)
	a.result.Resolutions[v] = Resolution{Symbol: sym, Scope: sc.Name, Level: sc.Level}
	return nil
}

package interpreter

import (
	"fmt"

	"github.com/arnavsurve/minipas/internal/compiler/ast"
	"github.com/arnavsurve/minipas/internal/compiler/lib"
	"github.com/arnavsurve/minipas/internal/compiler/runtime"
	"github.com/arnavsurve/minipas/internal/compiler/token"
)

// Interpreter walks an analyzed tree against a Store.
type Interpreter struct {
	store *runtime.Store
}

// New returns an Interpreter writing into store; a nil store gets a fresh one.
func New(store *runtime.Store) *Interpreter {
	if store == nil {
		store = runtime.NewStore()
	}
	return &Interpreter{store: store}
}

func (in *Interpreter) Store() *runtime.Store {
	return in.store
}

// Evaluate runs prog and stops at the first runtime error. Bindings made
// before the error remain in the store.
func (in *Interpreter) Evaluate(prog *ast.Program) error {
	return in.execBlock(prog.Block)
}

// Run evaluates prog in a fresh store and returns the final bindings.
func Run(prog *ast.Program) (map[string]runtime.Value, error) {
	in := New(nil)
	if err := in.Evaluate(prog); err != nil {
		return nil, err
	}
	return in.store.Snapshot(), nil
}

// execBlock skips declarations: variables need no storage until assigned and
// procedures are never invoked.
func (in *Interpreter) execBlock(block *ast.Block) error {
	return in.execStatement(block.Compound)
}

func (in *Interpreter) execStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Compound:
		for _, child := range s.Statements {
			if err := in.execStatement(child); err != nil {
				return err
			}
		}
		return nil
	case *ast.Assign:
		val, err := in.eval(s.Value)
		if err != nil {
			return err
		}
		in.store.Set(s.Target.Name, val)
		return nil
	case *ast.NoOp:
		return nil
	default:
		panic(fmt.Sprintf("interpreter: unhandled statement %T", stmt))
	}
}

func (in *Interpreter) eval(expr ast.Expression) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		if e.Kind == ast.RealNumber {
			return runtime.Real(e.Real), nil
		}
		return runtime.Integer(e.Int), nil

	case *ast.Var:
		val, ok := in.store.Get(e.Name)
		if !ok {
			return nil, errorAt(UnboundVariable, e, e.Name)
		}
		return val, nil

	case *ast.UnaryOp:
		operand, err := in.eval(e.Operand)
		if err != nil {
			return nil, err
		}
		if e.Op == token.TokenPlus {
			return operand, nil
		}
		switch v := operand.(type) {
		case runtime.Integer:
			return -v, nil
		case runtime.Real:
			return -v, nil
		}
		panic(fmt.Sprintf("interpreter: unhandled value %T", operand))

	case *ast.BinOp:
		left, err := in.eval(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := in.eval(e.Right)
		if err != nil {
			return nil, err
		}
		return binaryOp(e, left, right)

	default:
		panic(fmt.Sprintf("interpreter: unhandled expression %T", expr))
	}
}

// errorAt reports kind at the token that produced expr.
func errorAt(kind ErrorKind, expr ast.Expression, name string) *Error {
	return &Error{Kind: kind, Name: name, Pos: expr.GetToken().Pos()}
}

// binaryOp applies e.Op. + - * stay integral only when both sides are
// Integer; / always yields a Real; DIV floors.
func binaryOp(e *ast.BinOp, left, right runtime.Value) (runtime.Value, error) {
	li, lInt := left.(runtime.Integer)
	ri, rInt := right.(runtime.Integer)
	bothInt := lInt && rInt
	lf, rf := runtime.AsReal(left), runtime.AsReal(right)

	switch e.Op {
	case token.TokenPlus:
		if bothInt {
			return li + ri, nil
		}
		return runtime.Real(lf + rf), nil
	case token.TokenMinus:
		if bothInt {
			return li - ri, nil
		}
		return runtime.Real(lf - rf), nil
	case token.TokenMultiply:
		if bothInt {
			return li * ri, nil
		}
		return runtime.Real(lf * rf), nil
	case token.TokenIntDiv:
		if runtime.IsZero(right) {
			return nil, errorAt(DivisionByZero, e, "")
		}
		if bothInt {
			return runtime.Integer(lib.FloorDiv(int64(li), int64(ri))), nil
		}
		return runtime.Real(lib.FloorDivReal(lf, rf)), nil
	case token.TokenFloatDiv:
		if runtime.IsZero(right) {
			return nil, errorAt(DivisionByZero, e, "")
		}
		return runtime.Real(lf / rf), nil
	default:
		panic(fmt.Sprintf("interpreter: unhandled operator %s", e.Op))
	}
}

package emitter

import (
	"fmt"
	"strings"

	"github.com/arnavsurve/minipas/internal/compiler/ast"
	"github.com/arnavsurve/minipas/internal/compiler/token"
)

const indentUnit = "  "

// Precedence levels for deciding where parentheses are required
const (
	_ int = iota
	precSum
	precProduct
	precUnary
	precPrimary
)

var precedences = map[token.TokenType]int{
	token.TokenPlus:     precSum,
	token.TokenMinus:    precSum,
	token.TokenMultiply: precProduct,
	token.TokenIntDiv:   precProduct,
	token.TokenFloatDiv: precProduct,
}

// Emitter renders a tree back into canonical source text.
type Emitter struct {
	builder strings.Builder
	indent  int
	pending string // written before the next line
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

// Emit is shorthand for NewEmitter().Emit(prog).
func Emit(prog *ast.Program) string {
	return NewEmitter().Emit(prog)
}

func (e *Emitter) Emit(prog *ast.Program) string {
	e.builder.Reset()
	e.indent = 0
	e.pending = ""

	e.line(fmt.Sprintf("PROGRAM %s;", prog.Name))
	e.emitBlock(prog.Block)
	e.terminate(".\n")
	e.builder.WriteString(e.pending)
	return e.builder.String()
}

// --- Emit Helpers ---

func (e *Emitter) line(s string) {
	e.builder.WriteString(e.pending)
	e.builder.WriteString(strings.Repeat(indentUnit, e.indent))
	e.builder.WriteString(s)
	e.pending = "\n"
}

// terminate sets what ends the last line in place of its newline.
func (e *Emitter) terminate(suffix string) {
	e.pending = suffix
}

// emitBlock writes declarations then the compound statement, leaving the
// final END unterminated so the caller can append '.' or ';'.
func (e *Emitter) emitBlock(block *ast.Block) {
	var vars []*ast.VarDecl
	var procs []*ast.ProcedureDecl
	for _, d := range block.Declarations {
		switch decl := d.(type) {
		case *ast.VarDecl:
			vars = append(vars, decl)
		case *ast.ProcedureDecl:
			procs = append(procs, decl)
		default:
			panic(fmt.Sprintf("emitter: unhandled declaration %T", d))
		}
	}

	if len(vars) > 0 {
		e.line("VAR")
		e.indent++
		for _, v := range vars {
			e.line(varDecl(v) + ";")
		}
		e.indent--
	}

	for _, p := range procs {
		e.emitProcedure(p)
	}

	e.emitCompound(block.Compound)
	e.terminate("")
}

func (e *Emitter) emitProcedure(p *ast.ProcedureDecl) {
	header := "PROCEDURE " + p.Name
	if len(p.Params) > 0 {
		params := make([]string, len(p.Params))
		for i, param := range p.Params {
			params[i] = varDecl(param)
		}
		header += "(" + strings.Join(params, "; ") + ")"
	}
	e.line(header + ";")
	e.indent++
	e.emitBlock(p.Block)
	e.indent--
	e.terminate(";\n")
}

func varDecl(v *ast.VarDecl) string {
	return v.Name + " : " + v.TypeName.Literal
}

// emitCompound writes BEGIN, the statements joined by ';', and END. Empty
// statements produce no line.
func (e *Emitter) emitCompound(c *ast.Compound) {
	e.line("BEGIN")
	e.indent++

	var stmts []ast.Statement
	for _, s := range c.Statements {
		if _, empty := s.(*ast.NoOp); !empty {
			stmts = append(stmts, s)
		}
	}
	for i, s := range stmts {
		e.emitStatement(s)
		if i < len(stmts)-1 {
			e.terminate(";\n")
		}
	}

	e.indent--
	e.line("END")
}

func (e *Emitter) emitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Compound:
		e.emitCompound(s)
	case *ast.Assign:
		e.line(s.Target.Name + " := " + Expression(s.Value))
	case *ast.NoOp:
	default:
		panic(fmt.Sprintf("emitter: unhandled statement %T", stmt))
	}
}

// Expression renders expr with only the parentheses its structure needs.
func Expression(expr ast.Expression) string {
	switch ex := expr.(type) {
	case *ast.NumberLiteral:
		return ex.Token.Literal
	case *ast.Var:
		return ex.Name
	case *ast.UnaryOp:
		operand := Expression(ex.Operand)
		if exprPrecedence(ex.Operand) < precUnary {
			operand = "(" + operand + ")"
		}
		return ex.Token.Literal + operand
	case *ast.BinOp:
		prec := precedences[ex.Op]
		left := Expression(ex.Left)
		if exprPrecedence(ex.Left) < prec {
			left = "(" + left + ")"
		}
		// Operators are left-associative: an equal-precedence right operand
		// was parenthesized in the source.
		right := Expression(ex.Right)
		if exprPrecedence(ex.Right) <= prec {
			right = "(" + right + ")"
		}
		return left + " " + ex.Token.Literal + " " + right
	default:
		panic(fmt.Sprintf("emitter: unhandled expression %T", expr))
	}
}

func exprPrecedence(expr ast.Expression) int {
	switch ex := expr.(type) {
	case *ast.BinOp:
		return precedences[ex.Op]
	case *ast.UnaryOp:
		return precUnary
	default:
		return precPrimary
	}
}

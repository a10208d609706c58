package ast

import (
	"bytes"
	"strings"

	"github.com/arnavsurve/minipas/internal/compiler/token"
)

// --- Interfaces ---

// Node is implemented by every tree node. The marker methods below close each
// category to the types in this file, so traversals can switch over them.
type Node interface {
	TokenLiteral() string
	String() string
}

type Declaration interface {
	Node
	declarationNode()
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// --- Program ---
type Program struct {
	Token token.Token // PROGRAM
	Name  string
	Block *Block
}

func (p *Program) TokenLiteral() string { return p.Token.Literal }
func (p *Program) String() string {
	var out bytes.Buffer
	out.WriteString("PROGRAM " + p.Name + ";\n")
	if p.Block != nil {
		out.WriteString(p.Block.String())
	}
	out.WriteString(".")
	return out.String()
}

// Block -> declarations compound_statement
type Block struct {
	Declarations []Declaration
	Compound     *Compound
}

func (b *Block) TokenLiteral() string {
	if b.Compound != nil {
		return b.Compound.TokenLiteral()
	}
	return ""
}
func (b *Block) String() string {
	var out bytes.Buffer
	for _, d := range b.Declarations {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	if b.Compound != nil {
		out.WriteString(b.Compound.String())
	}
	return out.String()
}

// --- Declarations ---

// VarDecl -> a : INTEGER. "a, b : REAL" parses into one VarDecl per name.
type VarDecl struct {
	Token    token.Token // the variable's identifier
	Name     string
	TypeName token.Token // INTEGER or REAL
}

func (vd *VarDecl) declarationNode()     {}
func (vd *VarDecl) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDecl) String() string {
	return "VarDecl(" + vd.Name + " : " + vd.TypeName.Literal + ")"
}

// ProcedureDecl -> PROCEDURE name (params); block;
type ProcedureDecl struct {
	Token  token.Token // the procedure's identifier
	Name   string
	Params []*VarDecl
	Block  *Block
}

func (pd *ProcedureDecl) declarationNode()     {}
func (pd *ProcedureDecl) TokenLiteral() string { return pd.Token.Literal }
func (pd *ProcedureDecl) String() string {
	var out bytes.Buffer
	params := make([]string, 0, len(pd.Params))
	for _, p := range pd.Params {
		params = append(params, p.String())
	}
	out.WriteString("ProcedureDecl(" + pd.Name + "[" + strings.Join(params, ", ") + "]\n")
	if pd.Block != nil {
		out.WriteString(pd.Block.String())
	}
	out.WriteString(")")
	return out.String()
}

// --- Statements ---

// Compound -> BEGIN statement; statement END
type Compound struct {
	Token      token.Token // BEGIN
	Statements []Statement
}

func (c *Compound) statementNode()       {}
func (c *Compound) TokenLiteral() string { return c.Token.Literal }
func (c *Compound) String() string {
	var out bytes.Buffer
	out.WriteString("Compound(\n")
	for _, s := range c.Statements {
		out.WriteString("\t" + strings.ReplaceAll(s.String(), "\n", "\n\t") + "\n")
	}
	out.WriteString(")")
	return out.String()
}

// Assign -> target := value
type Assign struct {
	Token  token.Token // :=
	Target *Var
	Value  Expression
}

func (a *Assign) statementNode()       {}
func (a *Assign) TokenLiteral() string { return a.Token.Literal }
func (a *Assign) String() string {
	var out bytes.Buffer
	out.WriteString("Assign(")
	if a.Target != nil {
		out.WriteString(a.Target.String())
	}
	out.WriteString(" := ")
	if a.Value != nil {
		out.WriteString(a.Value.String())
	}
	out.WriteString(")")
	return out.String()
}

// NoOp is the empty statement, e.g. after the last ';' in a statement list.
type NoOp struct {
	Token token.Token // the token that followed the empty statement
}

func (n *NoOp) statementNode()       {}
func (n *NoOp) TokenLiteral() string { return "" }
func (n *NoOp) String() string       { return "NoOp" }

// --- Expressions ---

// Var is a name reference, used both as an assignment target and a value.
type Var struct {
	Token token.Token // ID
	Name  string
}

func (v *Var) expressionNode()       {}
func (v *Var) TokenLiteral() string  { return v.Token.Literal }
func (v *Var) GetToken() token.Token { return v.Token }
func (v *Var) String() string        { return v.Name }

// BinOp -> left op right. Op is one of PLUS, MINUS, MUL, INTEGER_DIV, FLOAT_DIV.
type BinOp struct {
	Token token.Token // the operator token
	Op    token.TokenType
	Left  Expression
	Right Expression
}

func (b *BinOp) expressionNode()       {}
func (b *BinOp) TokenLiteral() string  { return b.Token.Literal }
func (b *BinOp) GetToken() token.Token { return b.Token }
func (b *BinOp) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	if b.Left != nil {
		out.WriteString(b.Left.String())
	}
	out.WriteString(" " + b.Token.Literal + " ")
	if b.Right != nil {
		out.WriteString(b.Right.String())
	}
	out.WriteString(")")
	return out.String()
}

// UnaryOp -> +operand or -operand
type UnaryOp struct {
	Token   token.Token // + or -
	Op      token.TokenType
	Operand Expression
}

func (u *UnaryOp) expressionNode()       {}
func (u *UnaryOp) TokenLiteral() string  { return u.Token.Literal }
func (u *UnaryOp) GetToken() token.Token { return u.Token }
func (u *UnaryOp) String() string {
	if u.Operand == nil {
		return "(" + u.Token.Literal + ")"
	}
	return "(" + u.Token.Literal + u.Operand.String() + ")"
}

type NumberKind int

const (
	IntegerNumber NumberKind = iota
	RealNumber
)

// NumberLiteral holds an already-converted literal. Int is set when Kind is
// IntegerNumber, Real when Kind is RealNumber.
type NumberLiteral struct {
	Token token.Token // INTEGER_CONST or REAL_CONST
	Kind  NumberKind
	Int   int64
	Real  float64
}

func (n *NumberLiteral) expressionNode()       {}
func (n *NumberLiteral) TokenLiteral() string  { return n.Token.Literal }
func (n *NumberLiteral) GetToken() token.Token { return n.Token }
func (n *NumberLiteral) String() string        { return n.Token.Literal }

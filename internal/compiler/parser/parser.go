package parser

import (
	"strconv"

	"github.com/arnavsurve/minipas/internal/compiler/ast"
	"github.com/arnavsurve/minipas/internal/compiler/lexer"
	"github.com/arnavsurve/minipas/internal/compiler/token"
)

// Parser is a recursive-descent parser holding one token of lookahead. It
// stops at the first lexical or syntax error.
type Parser struct {
	l      *lexer.Lexer
	curTok token.Token
}

func NewParser(l *lexer.Lexer) *Parser {
	return &Parser{l: l}
}

// Parse is shorthand for NewParser(lexer.NewLexer(src)).ParseProgram().
func Parse(src string) (*ast.Program, error) {
	return NewParser(lexer.NewLexer(src)).ParseProgram()
}

// --- Token Handling ---

// nextToken advances curTok. Lexer errors are returned unchanged.
func (p *Parser) nextToken() error {
	tok, err := p.l.NextToken()
	if err != nil {
		return err
	}
	p.curTok = tok
	return nil
}

// expect consumes curTok if it has type t and returns the consumed token.
func (p *Parser) expect(t token.TokenType) (token.Token, error) {
	tok := p.curTok
	if tok.Type != t {
		return tok, p.unexpected(t)
	}
	return tok, p.nextToken()
}

func (p *Parser) unexpected(expected ...token.TokenType) *Error {
	return &Error{Kind: UnexpectedToken, Expected: expected, Found: p.curTok}
}

// --- Program Parsing ---

// ParseProgram parses a whole program and requires end of input after the
// final '.'.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}

	if p.curTok.Type != token.TokenEOF {
		return nil, &Error{Kind: TrailingInput, Found: p.curTok}
	}
	return prog, nil
}

// program := PROGRAM Identifier SEMI block DOT
func (p *Parser) parseProgram() (*ast.Program, error) {
	progTok, err := p.expect(token.TokenProgram)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenSemi); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenDot); err != nil {
		return nil, err
	}
	return &ast.Program{Token: progTok, Name: nameTok.Literal, Block: block}, nil
}

// block := declarations compound_statement
func (p *Parser) parseBlock() (*ast.Block, error) {
	decls, err := p.parseDeclarations()
	if err != nil {
		return nil, err
	}
	compound, err := p.parseCompoundStatement()
	if err != nil {
		return nil, err
	}
	return &ast.Block{Declarations: decls, Compound: compound}, nil
}

// --- Declarations ---

// declarations := ( VAR (var_declaration SEMI)+ )?
//
//	( PROCEDURE Identifier (LPAREN formal_parameters RPAREN)? SEMI block SEMI )*
func (p *Parser) parseDeclarations() ([]ast.Declaration, error) {
	var decls []ast.Declaration

	if p.curTok.Type == token.TokenVar {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		for {
			vars, err := p.parseVarDeclaration()
			if err != nil {
				return nil, err
			}
			for _, v := range vars {
				decls = append(decls, v)
			}
			if _, err := p.expect(token.TokenSemi); err != nil {
				return nil, err
			}
			if p.curTok.Type != token.TokenIdent {
				break
			}
		}
	}

	for p.curTok.Type == token.TokenProcedure {
		proc, err := p.parseProcedureDeclaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, proc)
	}

	return decls, nil
}

func (p *Parser) parseProcedureDeclaration() (*ast.ProcedureDecl, error) {
	if _, err := p.expect(token.TokenProcedure); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.TokenIdent)
	if err != nil {
		return nil, err
	}

	proc := &ast.ProcedureDecl{Token: nameTok, Name: nameTok.Literal}

	if p.curTok.Type == token.TokenLParen {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		params, err := p.parseFormalParameters()
		if err != nil {
			return nil, err
		}
		proc.Params = params
		if _, err := p.expect(token.TokenRParen); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.TokenSemi); err != nil {
		return nil, err
	}
	if proc.Block, err = p.parseBlock(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenSemi); err != nil {
		return nil, err
	}
	return proc, nil
}

// formal_parameters := var_declaration (SEMI var_declaration)*
func (p *Parser) parseFormalParameters() ([]*ast.VarDecl, error) {
	params, err := p.parseVarDeclaration()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == token.TokenSemi {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		more, err := p.parseVarDeclaration()
		if err != nil {
			return nil, err
		}
		params = append(params, more...)
	}
	return params, nil
}

// var_declaration := Identifier (COMMA Identifier)* COLON type_spec
func (p *Parser) parseVarDeclaration() ([]*ast.VarDecl, error) {
	first, err := p.expect(token.TokenIdent)
	if err != nil {
		return nil, err
	}
	names := []token.Token{first}

	for p.curTok.Type == token.TokenComma {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		name, err := p.expect(token.TokenIdent)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	if _, err := p.expect(token.TokenColon); err != nil {
		return nil, err
	}
	typeTok, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}

	decls := make([]*ast.VarDecl, len(names))
	for i, name := range names {
		decls[i] = &ast.VarDecl{Token: name, Name: name.Literal, TypeName: typeTok}
	}
	return decls, nil
}

// type_spec := INTEGER | REAL
func (p *Parser) parseTypeSpec() (token.Token, error) {
	tok := p.curTok
	if !tok.IsTypeKeyword() {
		return tok, p.unexpected(token.TokenInteger, token.TokenReal)
	}
	return tok, p.nextToken()
}

// --- Statements ---

// compound_statement := BEGIN statement_list END
func (p *Parser) parseCompoundStatement() (*ast.Compound, error) {
	beginTok, err := p.expect(token.TokenBegin)
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseStatementList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenEnd); err != nil {
		return nil, err
	}
	return &ast.Compound{Token: beginTok, Statements: stmts}, nil
}

// statement_list := statement (SEMI statement)*
func (p *Parser) parseStatementList() ([]ast.Statement, error) {
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmts := []ast.Statement{stmt}

	for p.curTok.Type == token.TokenSemi {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	// "a := 1 b := 2" is missing a separator, not a missing END.
	if p.curTok.Type == token.TokenIdent {
		return nil, p.unexpected(token.TokenSemi)
	}
	return stmts, nil
}

// statement := compound_statement | assignment_statement | empty
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curTok.Type {
	case token.TokenBegin:
		return p.parseCompoundStatement()
	case token.TokenIdent:
		return p.parseAssignmentStatement()
	default:
		return &ast.NoOp{Token: p.curTok}, nil
	}
}

// assignment_statement := variable ASSIGN expr
func (p *Parser) parseAssignmentStatement() (*ast.Assign, error) {
	target, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	assignTok, err := p.expect(token.TokenAssign)
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Token: assignTok, Target: target, Value: value}, nil
}

// variable := Identifier
func (p *Parser) parseVariable() (*ast.Var, error) {
	tok, err := p.expect(token.TokenIdent)
	if err != nil {
		return nil, err
	}
	return &ast.Var{Token: tok, Name: tok.Literal}, nil
}

// --- Expressions ---

// expr := term ((PLUS|MINUS) term)*
func (p *Parser) parseExpr() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == token.TokenPlus || p.curTok.Type == token.TokenMinus {
		opTok := p.curTok
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Token: opTok, Op: opTok.Type, Left: left, Right: right}
	}
	return left, nil
}

// term := factor ((MUL|INTEGER_DIV|FLOAT_DIV) factor)*
func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for isMulOp(p.curTok.Type) {
		opTok := p.curTok
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Token: opTok, Op: opTok.Type, Left: left, Right: right}
	}
	return left, nil
}

func isMulOp(t token.TokenType) bool {
	return t == token.TokenMultiply || t == token.TokenIntDiv || t == token.TokenFloatDiv
}

// factor := PLUS factor | MINUS factor | IntegerLiteral | RealLiteral
//
//	| LPAREN expr RPAREN | variable
func (p *Parser) parseFactor() (ast.Expression, error) {
	tok := p.curTok
	switch tok.Type {
	case token.TokenPlus, token.TokenMinus:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Token: tok, Op: tok.Type, Operand: operand}, nil

	case token.TokenIntConst:
		val, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, &Error{Kind: InvalidNumber, Found: tok}
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return &ast.NumberLiteral{Token: tok, Kind: ast.IntegerNumber, Int: val}, nil

	case token.TokenRealConst:
		val, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, &Error{Kind: InvalidNumber, Found: tok}
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return &ast.NumberLiteral{Token: tok, Kind: ast.RealNumber, Real: val}, nil

	case token.TokenLParen:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.TokenRParen); err != nil {
			return nil, err
		}
		return inner, nil

	case token.TokenIdent:
		return p.parseVariable()

	default:
		return nil, p.unexpected(
			token.TokenPlus, token.TokenMinus, token.TokenIntConst,
			token.TokenRealConst, token.TokenLParen, token.TokenIdent,
		)
	}
}

package parser

import (
	"github.com/zhanghaoxvan/gobol/pkg/ast"
	"github.com/zhanghaoxvan/gobol/pkg/token"
)

// parseStatement dispatches on the current token's lexeme. Any failure
// inside a branch still returns a (possibly partial) statement and leaves
// recovery to the caller's surrounding skipEols/recover dance.
func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.curIsKeyword("import"):
		return p.parseImport()
	case p.curIsKeyword("module"):
		return p.parseModuleDecl()
	case p.curIsKeyword("func"):
		return p.parseFunction()
	case p.curIsKeyword("var") || p.curIsKeyword("val") || p.curIsKeyword("let") || p.curIsKeyword("const"):
		return p.parseDeclaration()
	case p.curIsKeyword("if"):
		return p.parseIf()
	case p.curIsKeyword("while"):
		return p.parseWhile()
	case p.curIsKeyword("for"):
		return p.parseFor()
	case p.curIsKeyword("return"):
		return p.parseReturn()
	case p.curIsKeyword("break"):
		pos := p.advance().Pos
		return &ast.Break{P: pos}
	case p.curIsKeyword("continue"):
		pos := p.advance().Pos
		return &ast.Continue{P: pos}
	case p.cur().Kind == token.Operator && p.cur().Lexeme == "}":
		// Stray close-brace at statement position: let the enclosing
		// block parser handle it instead of consuming it here.
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseImport() ast.Statement {
	pos := p.advance().Pos // "import"
	name, _, ok := p.expectIdentifier()
	if !ok {
		p.recover()
		return &ast.Import{Module: name, P: pos}
	}
	return &ast.Import{Module: name, P: pos}
}

func (p *Parser) parseModuleDecl() ast.Statement {
	pos := p.advance().Pos // "module"
	name, _, ok := p.expectIdentifier()
	if !ok {
		p.recover()
	}
	return &ast.ModuleDecl{Name: name, P: pos}
}

func (p *Parser) parseFunction() ast.Statement {
	pos := p.advance().Pos // "func"
	name, _, _ := p.expectIdentifier()

	p.expectOp("(")
	var params []ast.Parameter
	for !p.curIsOp(")") && !p.atEof() {
		pname, ppos, ok := p.expectIdentifier()
		if !ok {
			p.advance()
			continue
		}
		p.expectOp(":")
		ptype := p.parseType()
		params = append(params, ast.Parameter{Name: pname, Type: ptype})
		_ = ppos
		if p.curIsOp(",") {
			p.advance()
		} else {
			break
		}
	}
	p.expectOp(")")

	var retType ast.TypeExpr
	if p.curIsOp(":") {
		p.advance()
		retType = p.parseType()
	}

	body := p.parseBracedBlock()
	return &ast.Function{Name: name, Params: params, ReturnType: retType, Body: body, P: pos}
}

// parseBracedBlock consumes "{" (Statement)* "}", skipping Eols between
// statements and stopping at the matching close brace.
func (p *Parser) parseBracedBlock() *ast.Block {
	pos := p.cur().Pos
	p.expectOp("{")
	var stmts []ast.Statement
	for {
		p.skipEols()
		if p.curIsOp("}") || p.atEof() {
			break
		}
		stmt := p.parseStatement()
		if stmt == nil {
			if p.curIsOp("}") || p.atEof() {
				break
			}
			p.recover()
			continue
		}
		stmts = append(stmts, stmt)
	}
	p.expectOp("}")
	return &ast.Block{Stmts: stmts, P: pos}
}

func (p *Parser) parseDeclaration() ast.Statement {
	kwTok := p.advance() // var/val/let/const
	name, _, ok := p.expectIdentifier()
	if !ok {
		p.recover()
		return &ast.Declaration{Keyword: kwTok.Lexeme, Name: name, P: kwTok.Pos}
	}

	var declType ast.TypeExpr
	if p.curIsOp(":") {
		p.advance()
		declType = p.parseType()
	}

	var init ast.Expression
	if p.curIsOp("=") {
		p.advance()
		init = p.parseExpression()
	}

	return &ast.Declaration{Keyword: kwTok.Lexeme, Name: name, Type: declType, Init: init, P: kwTok.Pos}
}

func (p *Parser) parseIf() ast.Statement {
	pos := p.advance().Pos // "if"
	cond := p.parseExpression()
	then := p.parseBracedBlock()

	var elseStmt ast.Statement
	if p.curIsKeyword("else") {
		p.advance()
		if p.curIsKeyword("if") {
			elseStmt = p.parseIf()
		} else {
			elseStmt = p.parseBracedBlock()
		}
	}
	return &ast.If{Cond: cond, Then: then, Else: elseStmt, P: pos}
}

func (p *Parser) parseWhile() ast.Statement {
	pos := p.advance().Pos // "while"
	cond := p.parseExpression()
	body := p.parseBracedBlock()
	return &ast.While{Cond: cond, Body: body, P: pos}
}

// parseFor handles the `for name in Range { Block }` form
// The C-style for(init; cond; incr) form lexes fine but has no lowering
// rule, so it is recognized only to emit one diagnostic and skip cleanly
// past it instead of cascading unrelated errors through the rest of the
// file.
func (p *Parser) parseFor() ast.Statement {
	pos := p.advance().Pos // "for"
	if p.curIsOp("(") {
		p.bag.Errorf(pos, "C-style for(init; cond; incr) loops are not supported; use 'for name in range(...)'")
		p.skipBalanced("(", ")")
		if p.curIsOp("{") {
			p.parseBracedBlock()
		}
		return nil
	}

	name, _, ok := p.expectIdentifier()
	if !ok {
		p.recover()
		return nil
	}
	if !p.curWordIs("in") {
		p.bag.Errorf(p.cur().Pos, "expected 'in' after for-loop variable, found %q", p.cur().Lexeme)
	} else {
		p.advance()
	}
	iterable := p.parseExpression()
	body := p.parseBracedBlock()
	return &ast.For{VarName: name, Iterable: iterable, Body: body, P: pos}
}

func (p *Parser) parseReturn() ast.Statement {
	pos := p.advance().Pos // "return"
	if p.cur().Kind == token.Eol || p.curIsOp("}") || p.atEof() {
		return &ast.Return{P: pos}
	}
	val := p.parseExpression()
	return &ast.Return{Value: val, P: pos}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	pos := p.cur().Pos
	expr := p.parseExpression()
	return &ast.ExpressionStmt{Expr: expr, P: pos}
}

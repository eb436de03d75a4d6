package parser

import (
	"github.com/zhanghaoxvan/gobol/pkg/ast"
	"github.com/zhanghaoxvan/gobol/pkg/token"
)

// parseType reads a NamedType ("int", "float", "str", "bool", or a
// user-level name) optionally followed by "[" SizeExpr "]" for an
// ArrayType.
func (p *Parser) parseType() ast.TypeExpr {
	pos := p.cur().Pos
	var name string
	if p.cur().Kind == token.Keyword {
		name = p.advance().Lexeme
	} else if id, _, ok := p.expectIdentifier(); ok {
		name = id
	} else {
		return &ast.NamedType{Name: "int", P: pos}
	}

	if p.curIsOp("[") {
		p.advance()
		size := p.parseExpression()
		p.expectOp("]")
		return &ast.ArrayType{ElementName: name, SizeExpr: size, P: pos}
	}
	return &ast.NamedType{Name: name, P: pos}
}

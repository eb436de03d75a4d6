// Package parser turns a token.Token stream into an *ast.Program using a
// hand-rolled recursive-descent parser with one token of lookahead.
// Errors never abort the pass: the parser accumulates diagnostics in
// a diag.Bag and resynchronizes at the next statement boundary so later
// errors in the same file still get reported (best-effort
// contract).
package parser

import (
	"github.com/zhanghaoxvan/gobol/pkg/ast"
	"github.com/zhanghaoxvan/gobol/pkg/diag"
	"github.com/zhanghaoxvan/gobol/pkg/token"
)

// Parser holds the token buffer and cursor. It is not safe for concurrent
// use; callers should construct one per parse.
type Parser struct {
	toks []token.Token
	pos  int
	bag  diag.Bag
}

// New constructs a Parser over an already-tokenized source. toks must end
// with a token.Eof token, as lexer.Tokenize guarantees.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse tokenizes nothing further and returns the parsed Program along with
// whatever diagnostics accumulated. A non-nil Program is always returned,
// even when diagnostics report errors, so callers can keep inspecting the
// partial tree.
func Parse(toks []token.Token) (*ast.Program, []diag.Diagnostic) {
	p := New(toks)
	prog := p.ParseProgram()
	return prog, p.Diagnostics()
}

// Diagnostics returns every diagnostic recorded during the parse.
func (p *Parser) Diagnostics() []diag.Diagnostic { return p.bag.All() }

// HasError reports whether any Error-severity diagnostic was recorded.
func (p *Parser) HasError() bool { return p.bag.HasErrors() }

//-----------------------------------------------------------------------------
// Token buffer
//-----------------------------------------------------------------------------

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.Eof}
	}
	return p.toks[p.pos]
}

// peekNext is the parser's one token of lookahead beyond cur().
func (p *Parser) peekNext() token.Token {
	if p.pos+1 >= len(p.toks) {
		return token.Token{Kind: token.Eof}
	}
	return p.toks[p.pos+1]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) atEof() bool { return p.cur().Kind == token.Eof }

func (p *Parser) curIsOp(lexeme string) bool {
	t := p.cur()
	return t.Kind == token.Operator && t.Lexeme == lexeme
}

func (p *Parser) curIsKeyword(word string) bool {
	t := p.cur()
	return t.Kind == token.Keyword && t.Lexeme == word
}

// curWordIs matches by lexeme regardless of Kind, for contextual words like
// "in" that the lexer has no reason to treat as reserved.
func (p *Parser) curWordIs(word string) bool {
	t := p.cur()
	return (t.Kind == token.Identifier || t.Kind == token.Keyword) && t.Lexeme == word
}

func (p *Parser) skipEols() {
	for p.cur().Kind == token.Eol {
		p.advance()
	}
}

// expectOp consumes an operator token matching lexeme or records a
// diagnostic and leaves the cursor in place.
func (p *Parser) expectOp(lexeme string) bool {
	if p.curIsOp(lexeme) {
		p.advance()
		return true
	}
	p.bag.Errorf(p.cur().Pos, "expected '%s', found %q", lexeme, p.cur().Lexeme)
	return false
}

func (p *Parser) expectIdentifier() (string, token.Pos, bool) {
	if p.cur().Kind == token.Identifier {
		t := p.advance()
		return t.Lexeme, t.Pos, true
	}
	p.bag.Errorf(p.cur().Pos, "expected identifier, found %q", p.cur().Lexeme)
	return "", p.cur().Pos, false
}

//-----------------------------------------------------------------------------
// Program
//-----------------------------------------------------------------------------

// ParseProgram consumes the whole token stream: Program := (Statement)*,
// with blank Eol tokens skipped between statements.
func (p *Parser) ParseProgram() *ast.Program {
	var body []ast.Statement
	for {
		p.skipEols()
		if p.atEof() {
			break
		}
		if stmt := p.parseStatement(); stmt != nil {
			body = append(body, stmt)
		} else if p.curIsOp("}") {
			// No enclosing block at top level owns this brace.
			p.bag.Errorf(p.cur().Pos, "unexpected token %q", p.cur().Lexeme)
			p.advance()
		}
	}
	return &ast.Program{Body: body}
}

// recover discards tokens up to the next statement boundary (an Eol, a '}',
// or Eof) so a malformed statement costs at most one diagnostic instead of
// cascading into its neighbors.
func (p *Parser) recover() {
	for {
		t := p.cur()
		if t.Kind == token.Eof || t.Kind == token.Eol {
			return
		}
		if t.Kind == token.Operator && (t.Lexeme == "}" || t.Lexeme == "{") {
			return
		}
		p.advance()
	}
}

// skipBalanced consumes tokens from an already-open bracket up to and
// including its matching close, honoring nesting. The opener must already
// be the current token.
func (p *Parser) skipBalanced(open, close string) {
	if !p.curIsOp(open) {
		return
	}
	depth := 0
	for {
		t := p.cur()
		if t.Kind == token.Eof {
			return
		}
		if t.Kind == token.Operator && t.Lexeme == open {
			depth++
		} else if t.Kind == token.Operator && t.Lexeme == close {
			depth--
			p.advance()
			if depth == 0 {
				return
			}
			continue
		}
		p.advance()
	}
}

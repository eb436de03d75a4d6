// Package lexer implements Gobol's lexer: a straightforward
// character-classifier that turns source bytes into a token.Token stream.
// It is a collaborator of the core toolchain — this file fixes
// its behavior so the parser's token-stream contract (pkg/parser) has
// something concrete to consume, but the lexer itself carries none of the
// language's semantics.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zhanghaoxvan/gobol/pkg/token"
)

// Lexer scans UTF-8 source bytes into token.Tokens. Newlines are preserved
// as Eol tokens; all other whitespace and both comment forms are elided.
type Lexer struct {
	src  string
	pos  int
	line int
	col  int
}

// New constructs a Lexer over source.
func New(source []byte) *Lexer {
	return &Lexer{src: string(source), line: 1, col: 1}
}

// Tokenize scans the entire source and returns every token, terminated by
// a trailing Eof token.
func Tokenize(source []byte) []token.Token {
	l := New(source)
	var toks []token.Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.Kind == token.Eof {
			return toks
		}
	}
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) advance() byte {
	if l.atEnd() {
		return 0
	}
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) skipInsignificant() {
	for !l.atEnd() {
		c := l.peek()
		switch {
		case c == '\n':
			return
		case c == ' ' || c == '\t' || c == '\r':
			l.advance()
		case c == '/' && l.peekAt(1) == '/':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		case c == '/' && l.peekAt(1) == '*':
			l.advance()
			l.advance()
			for !l.atEnd() && !(l.peek() == '*' && l.peekAt(1) == '/') {
				l.advance()
			}
			if !l.atEnd() {
				l.advance()
				l.advance()
			}
		default:
			return
		}
	}
}

// Next returns the next token in the stream, skipping whitespace and
// comments first. Once the source is exhausted it returns an endless
// stream of Eof tokens.
func (l *Lexer) Next() token.Token {
	l.skipInsignificant()

	startLine, startCol := l.line, l.col
	pos := token.Pos{Line: startLine, Column: startCol}

	if l.atEnd() {
		return token.Token{Kind: token.Eof, Lexeme: "", Pos: pos}
	}

	c := l.peek()

	if c == '\n' {
		l.advance()
		return token.Token{Kind: token.Eol, Lexeme: "\n", Pos: pos}
	}

	if isIdentStart(c) {
		return l.lexIdentifier(pos)
	}
	if isDigit(c) {
		return l.lexNumber(pos)
	}
	if c == '"' {
		return l.lexString(pos, token.String)
	}
	if c == '@' && l.peekAt(1) == '"' {
		l.advance()
		tok := l.lexString(pos, token.FormatString)
		return tok
	}

	return l.lexOperator(pos)
}

func isIdentStart(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c)) || c >= utf8.RuneSelf
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *Lexer) lexIdentifier(pos token.Pos) token.Token {
	start := l.pos
	for !l.atEnd() && isIdentPart(l.peek()) {
		l.advance()
	}
	word := l.src[start:l.pos]
	if token.IsKeyword(word) {
		return token.Token{Kind: token.Keyword, Lexeme: word, Pos: pos}
	}
	return token.Token{Kind: token.Identifier, Lexeme: word, Pos: pos}
}

func (l *Lexer) lexNumber(pos token.Pos) token.Token {
	start := l.pos
	seenDot := false
	for !l.atEnd() {
		c := l.peek()
		if isDigit(c) {
			l.advance()
			continue
		}
		if c == '.' && !seenDot && isDigit(l.peekAt(1)) {
			seenDot = true
			l.advance()
			continue
		}
		break
	}
	return token.Token{Kind: token.Number, Lexeme: l.src[start:l.pos], Pos: pos}
}

// lexString scans the raw (un-decoded) content between a pair of double
// quotes. Escape decoding is the parser's responsibility, so
// string and format-string literals share one decoding helper.
func (l *Lexer) lexString(pos token.Pos, kind token.Kind) token.Token {
	l.advance() // opening quote
	var b strings.Builder
	closed := false
	for !l.atEnd() {
		c := l.peek()
		if c == '"' {
			closed = true
			break
		}
		if c == '\\' && l.peekAt(1) != 0 {
			b.WriteByte(l.advance())
			b.WriteByte(l.advance())
			continue
		}
		b.WriteByte(l.advance())
	}
	if closed {
		l.advance() // closing quote
		return token.Token{Kind: kind, Lexeme: b.String(), Pos: pos}
	}
	return token.Token{Kind: token.Unknown, Lexeme: b.String(), Pos: pos}
}

var multiCharOperators = []string{
	"==", "!=", "<=", ">=", "&&", "||", "+=", "-=", "*=", "/=",
}

func (l *Lexer) lexOperator(pos token.Pos) token.Token {
	for _, op := range multiCharOperators {
		if strings.HasPrefix(l.src[l.pos:], op) {
			for range op {
				l.advance()
			}
			return token.Token{Kind: token.Operator, Lexeme: op, Pos: pos}
		}
	}
	const singleCharOperators = "+-*/%=<>!(){}[]:.,@"
	c := l.advance()
	if strings.IndexByte(singleCharOperators, c) >= 0 {
		return token.Token{Kind: token.Operator, Lexeme: string(c), Pos: pos}
	}
	return token.Token{Kind: token.Unknown, Lexeme: string(c), Pos: pos}
}

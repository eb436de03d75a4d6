package parser

import (
	"strconv"
	"strings"

	"github.com/zhanghaoxvan/gobol/pkg/ast"
	"github.com/zhanghaoxvan/gobol/pkg/token"
)

// buildFormatString scans a FormatString token's raw lexeme for `{...}`
// placeholder spans while decoding escapes in the literal text around them
// (, invariant I3). The scan runs left to right over the original
// lexeme so byte offsets recorded for each placeholder point at the
// resulting decoded-plus-braces string the compiler later emits as a
// constant, not at the pre-decode source text.
func (p *Parser) buildFormatString(t token.Token) *ast.FormatString {
	raw := t.Lexeme
	var out strings.Builder
	var placeholders []ast.Placeholder

	i := 0
	for i < len(raw) {
		c := raw[i]
		if c == '\\' && i+1 < len(raw) {
			out.WriteString(decodeEscapes(raw[i : i+2]))
			i += 2
			continue
		}
		if c == '{' {
			j := strings.IndexByte(raw[i+1:], '}')
			if j < 0 {
				// Unclosed brace: the remainder is copied verbatim as
				// literal text (FormatString edge case).
				out.WriteString(decodeEscapes(raw[i:]))
				i = len(raw)
				break
			}
			inner := raw[i+1 : i+1+j]
			offset := out.Len()
			out.WriteByte('{')
			out.WriteString(inner)
			out.WriteByte('}')
			placeholders = append(placeholders, ast.Placeholder{
				ByteOffset: offset,
				Expr:       placeholderExpr(inner, t.Pos),
			})
			i = i + 1 + j + 1
			continue
		}
		out.WriteByte(c)
		i++
	}

	return &ast.FormatString{Raw: out.String(), Placeholders: placeholders, P: t.Pos}
}

// placeholderExpr reparses one placeholder's embedded text. Precedence is
// right-to-left, and each part is reparsed recursively by the same rule:
// a trailing "[...]" forms an Index, else a trailing ".name" forms
// a MemberAccess, else the whole text is either a number or an identifier.
// Whitespace inside the braces is significant and is never trimmed.
func placeholderExpr(text string, pos token.Pos) ast.Expression {
	if strings.HasSuffix(text, "]") {
		if open := matchingOpenBracket(text); open >= 0 {
			arrayPart := text[:open]
			indexPart := text[open+1 : len(text)-1]
			return &ast.Index{
				Array: placeholderExpr(arrayPart, pos),
				Idx:   placeholderExpr(indexPart, pos),
				P:     pos,
			}
		}
	}
	if dot := strings.LastIndexByte(text, '.'); dot >= 0 {
		objPart := text[:dot]
		member := text[dot+1:]
		return &ast.MemberAccess{Object: placeholderExpr(objPart, pos), Member: member, P: pos}
	}
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return &ast.NumberLit{Value: v, IsInt: v == float64(int64(v)), P: pos}
	}
	return &ast.Identifier{Name: text, P: pos}
}

// matchingOpenBracket finds the '[' that matches the final ']' in text,
// honoring nested brackets, and returns -1 if text does not end in a
// balanced bracket pair.
func matchingOpenBracket(text string) int {
	if len(text) == 0 || text[len(text)-1] != ']' {
		return -1
	}
	depth := 0
	for k := len(text) - 1; k >= 0; k-- {
		switch text[k] {
		case ']':
			depth++
		case '[':
			depth--
			if depth == 0 {
				return k
			}
		}
	}
	return -1
}

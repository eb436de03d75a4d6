package lexer

import (
	"testing"

	"github.com/zhanghaoxvan/gobol/pkg/token"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestTokenizeBasic(t *testing.T) {
	src := "var x: int = 42\n"
	toks := Tokenize([]byte(src))
	want := []token.Kind{
		token.Keyword, token.Identifier, token.Operator, token.Keyword,
		token.Operator, token.Number, token.Eol, token.Eof,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: got kind %v, want %v (%+v)", i, toks[i].Kind, k, toks[i])
		}
	}
}

func TestTokenizeStripsComments(t *testing.T) {
	src := "// comment\nvar x = 1 /* block */ + 2\n"
	toks := Tokenize([]byte(src))
	if toks[0].Kind != token.Eol {
		t.Fatalf("expected leading comment stripped to Eol, got %+v", toks[0])
	}
}

func TestLexemePreservationRoundTrip(t *testing.T) {
	// P1: every non-Eol/Eof token's lexeme re-lexes identically.
	src := `x123 if 3.14 "hi" @"hi {x}" + == && [ ] { } ( ) : . , += foo_bar`
	toks := Tokenize([]byte(src))
	for _, tk := range toks {
		if tk.Kind == token.Eol || tk.Kind == token.Eof {
			continue
		}
		re := New([]byte(tk.Lexeme))
		var got token.Token
		switch tk.Kind {
		case token.String, token.FormatString:
			// raw string/format-string lexemes don't carry their quotes;
			// re-lex the quoted form instead.
			quote := `"` + tk.Lexeme + `"`
			if tk.Kind == token.FormatString {
				quote = "@" + quote
			}
			re = New([]byte(quote))
			got = re.Next()
		default:
			got = re.Next()
		}
		if got.Kind != tk.Kind || got.Lexeme != tk.Lexeme {
			t.Fatalf("round trip failed for %+v: got %+v", tk, got)
		}
	}
}

func TestFormatStringToken(t *testing.T) {
	toks := Tokenize([]byte(`@"Hello {name}"`))
	if toks[0].Kind != token.FormatString {
		t.Fatalf("expected FormatString token, got %+v", toks[0])
	}
	if toks[0].Lexeme != "Hello {name}" {
		t.Fatalf("unexpected raw lexeme: %q", toks[0].Lexeme)
	}
}

func TestUnterminatedStringIsUnknown(t *testing.T) {
	toks := Tokenize([]byte(`"abc`))
	if toks[0].Kind != token.Unknown {
		t.Fatalf("expected Unknown for unterminated string, got %+v", toks[0])
	}
}

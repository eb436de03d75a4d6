package parser

import (
	"testing"

	"github.com/zhanghaoxvan/gobol/pkg/ast"
	"github.com/zhanghaoxvan/gobol/pkg/lexer"
)

func parse(t *testing.T, src string) (*ast.Program, *Parser) {
	t.Helper()
	toks := lexer.Tokenize([]byte(src))
	p := New(toks)
	prog := p.ParseProgram()
	return prog, p
}

func TestParseHelloWorldImportAndFormatString(t *testing.T) {
	src := `import io
func main() {
    var name: str = "world"
    io.print(@"Hello, {name}!")
}
`
	prog, p := parse(t, src)
	if p.HasError() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics())
	}
	if len(prog.Body) != 2 {
		t.Fatalf("got %d top-level statements, want 2", len(prog.Body))
	}
	imp, ok := prog.Body[0].(*ast.Import)
	if !ok || imp.Module != "io" {
		t.Fatalf("expected Import(io), got %#v", prog.Body[0])
	}
	fn, ok := prog.Body[1].(*ast.Function)
	if !ok || fn.Name != "main" {
		t.Fatalf("expected Function(main), got %#v", prog.Body[1])
	}
	if len(fn.Body.Stmts) != 2 {
		t.Fatalf("got %d body statements, want 2", len(fn.Body.Stmts))
	}

	exprStmt, ok := fn.Body.Stmts[1].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected ExpressionStmt, got %#v", fn.Body.Stmts[1])
	}
	call, ok := exprStmt.Expr.(*ast.Call)
	if !ok || len(call.Args) != 1 {
		t.Fatalf("expected a one-arg Call, got %#v", exprStmt.Expr)
	}
	fs, ok := call.Args[0].(*ast.FormatString)
	if !ok {
		t.Fatalf("expected FormatString arg, got %#v", call.Args[0])
	}
	if len(fs.Placeholders) != 1 {
		t.Fatalf("got %d placeholders, want 1", len(fs.Placeholders))
	}
	ph := fs.Placeholders[0]
	if fs.Raw[ph.ByteOffset] != '{' {
		t.Fatalf("invariant I3 violated: byte %d of %q is not '{'", ph.ByteOffset, fs.Raw)
	}
	id, ok := ph.Expr.(*ast.Identifier)
	if !ok || id.Name != "name" {
		t.Fatalf("expected placeholder Identifier(name), got %#v", ph.Expr)
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	prog, p := parse(t, "var x = 1 + 2 * 3\n")
	if p.HasError() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics())
	}
	decl := prog.Body[0].(*ast.Declaration)
	bin, ok := decl.Init.(*ast.Binary)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected top-level '+', got %#v", decl.Init)
	}
	rhs, ok := bin.Right.(*ast.Binary)
	if !ok || rhs.Op != "*" {
		t.Fatalf("expected '*' nested under '+', got %#v", bin.Right)
	}
}

func TestParseForLoopOverRange(t *testing.T) {
	src := `for i in range(0, 10) {
    var x = i
}
`
	prog, p := parse(t, src)
	if p.HasError() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics())
	}
	forStmt, ok := prog.Body[0].(*ast.For)
	if !ok || forStmt.VarName != "i" {
		t.Fatalf("expected For(i), got %#v", prog.Body[0])
	}
	rng, ok := forStmt.Iterable.(*ast.Range)
	if !ok || len(rng.Args) != 2 {
		t.Fatalf("expected a two-arg Range, got %#v", forStmt.Iterable)
	}
}

func TestParseArrayDeclarationAndIndexAssignment(t *testing.T) {
	src := `var a: int[3] = 0
a[0] = 5
`
	prog, p := parse(t, src)
	if p.HasError() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics())
	}
	decl := prog.Body[0].(*ast.Declaration)
	arrType, ok := decl.Type.(*ast.ArrayType)
	if !ok || arrType.ElementName != "int" {
		t.Fatalf("expected ArrayType(int), got %#v", decl.Type)
	}

	assign := prog.Body[1].(*ast.ExpressionStmt)
	bin, ok := assign.Expr.(*ast.Binary)
	if !ok || bin.Op != "=" {
		t.Fatalf("expected assignment, got %#v", assign.Expr)
	}
	if _, ok := bin.Left.(*ast.Index); !ok {
		t.Fatalf("expected Index on assignment lhs, got %#v", bin.Left)
	}
}

func TestParseCStyleForProducesDiagnosticAndRecovers(t *testing.T) {
	src := `for (var i = 0; i < 10; i = i + 1) {
    break
}
var after = 1
`
	prog, p := parse(t, src)
	if !p.HasError() {
		t.Fatal("expected a diagnostic for the unsupported C-style for loop")
	}
	if len(prog.Body) != 1 {
		t.Fatalf("expected parsing to recover and still see the trailing declaration, got %d stmts", len(prog.Body))
	}
	if _, ok := prog.Body[0].(*ast.Declaration); !ok {
		t.Fatalf("expected the statement after the bad for-loop to still parse, got %#v", prog.Body[0])
	}
}

func TestParseIfElseIfChain(t *testing.T) {
	src := `if x == 1 {
    return 1
} else if x == 2 {
    return 2
} else {
    return 3
}
`
	prog, p := parse(t, src)
	if p.HasError() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics())
	}
	top := prog.Body[0].(*ast.If)
	elseIf, ok := top.Else.(*ast.If)
	if !ok {
		t.Fatalf("expected chained If in Else, got %#v", top.Else)
	}
	if _, ok := elseIf.Else.(*ast.Block); !ok {
		t.Fatalf("expected final Else to be a Block, got %#v", elseIf.Else)
	}
}

func TestPlaceholderIndexAndMemberReparse(t *testing.T) {
	p := &Parser{}
	expr := placeholderExpr("a.b[0]", ast.Pos{})
	idx, ok := expr.(*ast.Index)
	if !ok {
		t.Fatalf("expected Index, got %#v", expr)
	}
	member, ok := idx.Array.(*ast.MemberAccess)
	if !ok || member.Member != "b" {
		t.Fatalf("expected MemberAccess(b) as the array part, got %#v", idx.Array)
	}
	_ = p
}

func TestCompoundAssignmentDesugars(t *testing.T) {
	prog, p := parse(t, "x += 1\n")
	if p.HasError() {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics())
	}
	stmt := prog.Body[0].(*ast.ExpressionStmt)
	bin := stmt.Expr.(*ast.Binary)
	if bin.Op != "=" {
		t.Fatalf("expected desugared assignment, got op %q", bin.Op)
	}
	rhs, ok := bin.Right.(*ast.Binary)
	if !ok || rhs.Op != "+" {
		t.Fatalf("expected '+' on the rhs, got %#v", bin.Right)
	}
}

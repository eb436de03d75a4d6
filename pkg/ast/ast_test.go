package ast

import "testing"

// countingVisitor exercises every Visitor entry so this test fails the
// moment a new node variant is added without a matching interface method
// (exhaustiveness is enforced by the compiler, not this test, but the test
// still walks a small tree touching several node kinds).
type countingVisitor struct {
	visited int
}

func (c *countingVisitor) VisitImport(*Import) error                 { c.visited++; return nil }
func (c *countingVisitor) VisitModuleDecl(*ModuleDecl) error         { c.visited++; return nil }
func (c *countingVisitor) VisitFunction(n *Function) error {
	c.visited++
	return n.Body.Accept(c)
}
func (c *countingVisitor) VisitBlock(n *Block) error {
	c.visited++
	for _, s := range n.Stmts {
		if err := s.Accept(c); err != nil {
			return err
		}
	}
	return nil
}
func (c *countingVisitor) VisitDeclaration(n *Declaration) error {
	c.visited++
	if n.Init != nil {
		return n.Init.Accept(c)
	}
	return nil
}
func (c *countingVisitor) VisitIf(*If) error             { c.visited++; return nil }
func (c *countingVisitor) VisitWhile(*While) error       { c.visited++; return nil }
func (c *countingVisitor) VisitFor(*For) error           { c.visited++; return nil }
func (c *countingVisitor) VisitReturn(*Return) error     { c.visited++; return nil }
func (c *countingVisitor) VisitBreak(*Break) error       { c.visited++; return nil }
func (c *countingVisitor) VisitContinue(*Continue) error { c.visited++; return nil }
func (c *countingVisitor) VisitExpressionStmt(n *ExpressionStmt) error {
	c.visited++
	return n.Expr.Accept(c)
}
func (c *countingVisitor) VisitBinary(n *Binary) error {
	c.visited++
	if err := n.Left.Accept(c); err != nil {
		return err
	}
	return n.Right.Accept(c)
}
func (c *countingVisitor) VisitUnary(*Unary) error             { c.visited++; return nil }
func (c *countingVisitor) VisitCall(*Call) error                { c.visited++; return nil }
func (c *countingVisitor) VisitMemberAccess(*MemberAccess) error { c.visited++; return nil }
func (c *countingVisitor) VisitIndex(*Index) error              { c.visited++; return nil }
func (c *countingVisitor) VisitGrouped(*Grouped) error          { c.visited++; return nil }
func (c *countingVisitor) VisitIdentifier(*Identifier) error    { c.visited++; return nil }
func (c *countingVisitor) VisitNumberLit(*NumberLit) error      { c.visited++; return nil }
func (c *countingVisitor) VisitStringLit(*StringLit) error      { c.visited++; return nil }
func (c *countingVisitor) VisitBooleanLit(*BooleanLit) error    { c.visited++; return nil }
func (c *countingVisitor) VisitFormatString(*FormatString) error { c.visited++; return nil }
func (c *countingVisitor) VisitRange(*Range) error              { c.visited++; return nil }
func (c *countingVisitor) VisitNamedType(*NamedType) error      { c.visited++; return nil }
func (c *countingVisitor) VisitArrayType(*ArrayType) error      { c.visited++; return nil }

func TestVisitorWalksWholeTree(t *testing.T) {
	fn := &Function{
		Name: "main",
		Body: &Block{Stmts: []Statement{
			&Declaration{Keyword: "var", Name: "x", Init: &Binary{
				Left: &NumberLit{Value: 1, IsInt: true}, Op: "+", Right: &NumberLit{Value: 2, IsInt: true},
			}},
		}},
	}
	prog := &Program{Body: []Statement{fn}}

	v := &countingVisitor{}
	if err := VisitProgram(prog, v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// function, block, declaration, binary, 2 number literals = 6
	if v.visited != 6 {
		t.Fatalf("got %d visits, want 6", v.visited)
	}
}

func TestNumberLitIntClassification(t *testing.T) {
	cases := []struct {
		value float64
		isInt bool
	}{
		{3, true},
		{3.0, true},
		{3.5, false},
		{-4, true},
	}
	for _, c := range cases {
		isInt := c.value == float64(int64(c.value))
		if isInt != c.isInt {
			t.Fatalf("value %v: got isInt=%v, want %v", c.value, isInt, c.isInt)
		}
	}
}

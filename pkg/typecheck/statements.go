package typecheck

import (
	"github.com/zhanghaoxvan/gobol/pkg/ast"
	"github.com/zhanghaoxvan/gobol/pkg/symbols"
)

// checkStatement drives one node through the Visitor double dispatch. Every
// Visit method below returns nil unconditionally: problems are recorded in
// a.bag, never surfaced as a Go error, so the caller's traversal order is
// never interrupted by a single bad statement.
func (a *Analyzer) checkStatement(stmt ast.Statement) {
	_ = stmt.Accept(a)
}

func (a *Analyzer) VisitImport(n *ast.Import) error {
	if n.Module == "__builtins__" {
		a.errf(n.Pos(), "__builtins__ is always in scope and cannot be imported")
		return nil
	}
	found := false
	for _, m := range a.registry.Modules() {
		if m == n.Module {
			found = true
			break
		}
	}
	if !found {
		a.errf(n.Pos(), "unknown module %q", n.Module)
		return nil
	}
	a.imports[n.Module] = true
	return nil
}

func (a *Analyzer) VisitModuleDecl(n *ast.ModuleDecl) error { return nil }

func (a *Analyzer) VisitFunction(n *ast.Function) error {
	sig, ok := a.funcs[n.Name]
	if !ok {
		// run()'s pass 1 should have registered every top-level function;
		// a function reached here without a signature is nested, which
		// the grammar does not produce, but checking defensively costs
		// nothing.
		a.declareFunctionSignature(n)
		sig = a.funcs[n.Name]
	}

	prevInFunction, prevReturnType, prevSaw := a.inFunction, a.returnType, a.sawReturn
	a.inFunction, a.returnType, a.sawReturn = true, sig.ReturnType, false

	a.table.Push()
	for i, p := range n.Params {
		kind := symbols.KindParameter
		sym := &symbols.Symbol{
			Name:     p.Name,
			Kind:     kind,
			DataType: typeExprName(p.Type),
			IsArray:  isArrayTypeExpr(p.Type),
		}
		if err := a.table.Define(sym); err != nil {
			a.errf(n.Pos(), "%s", err)
		}
		_ = i
	}
	for _, stmt := range n.Body.Stmts {
		a.checkStatement(stmt)
	}
	a.table.Pop()

	if a.returnType != "none" && !a.sawReturn {
		a.errf(n.Pos(), "function %q must return a %s but has no return statement", n.Name, a.returnType)
	}

	a.inFunction, a.returnType, a.sawReturn = prevInFunction, prevReturnType, prevSaw
	return nil
}

func (a *Analyzer) VisitBlock(n *ast.Block) error {
	a.table.Push()
	for _, stmt := range n.Stmts {
		a.checkStatement(stmt)
	}
	a.table.Pop()
	return nil
}

func (a *Analyzer) VisitDeclaration(n *ast.Declaration) error {
	var declType string
	isArray := false
	if n.Type != nil {
		declType = typeExprName(n.Type)
		isArray = isArrayTypeExpr(n.Type)
		if at, ok := n.Type.(*ast.ArrayType); ok {
			sizeType := a.typeOf(at.SizeExpr)
			if sizeType != "int" {
				a.errf(n.Pos(), "array size must be an int, got %s", sizeType)
			}
		}
	}

	var initType string
	if n.Init != nil {
		initType = a.typeOf(n.Init)
		if declType == "" {
			declType = initType
		} else if !isArray && !assignable(declType, initType) {
			a.errf(n.Pos(), "cannot assign %s to a %s variable", initType, declType)
		}
	}

	if declType == "" {
		a.errf(n.Pos(), "declaration of %q needs a type annotation or an initializer", n.Name)
		declType = "int"
	}

	sym := &symbols.Symbol{
		Name:      n.Name,
		Kind:      symbols.KindVariable,
		DataType:  declType,
		IsArray:   isArray,
		IsMutable: n.Keyword == "var" || n.Keyword == "let",
	}
	if err := a.table.Define(sym); err != nil {
		a.errf(n.Pos(), "%s", err)
	}
	return nil
}

func (a *Analyzer) VisitIf(n *ast.If) error {
	a.typeOf(n.Cond)
	a.checkStatement(n.Then)
	if n.Else != nil {
		a.checkStatement(n.Else)
	}
	return nil
}

func (a *Analyzer) VisitWhile(n *ast.While) error {
	a.typeOf(n.Cond)
	a.loopDepth++
	a.checkStatement(n.Body)
	a.loopDepth--
	return nil
}

func (a *Analyzer) VisitFor(n *ast.For) error {
	iterType := a.typeOf(n.Iterable)
	if iterType != "range" {
		a.errf(n.Pos(), "for-loop iterable must be a range(...) expression, got %s", iterType)
	}

	a.table.Push()
	if err := a.table.Define(&symbols.Symbol{Name: n.VarName, Kind: symbols.KindVariable, DataType: "int", IsMutable: true}); err != nil {
		a.errf(n.Pos(), "%s", err)
	}
	a.loopDepth++
	for _, stmt := range n.Body.Stmts {
		a.checkStatement(stmt)
	}
	a.loopDepth--
	a.table.Pop()
	return nil
}

func (a *Analyzer) VisitReturn(n *ast.Return) error {
	if !a.inFunction {
		a.errf(n.Pos(), "return outside of a function")
		return nil
	}
	a.sawReturn = true
	if n.Value == nil {
		if a.returnType != "none" {
			a.errf(n.Pos(), "function must return a %s value", a.returnType)
		}
		return nil
	}
	got := a.typeOf(n.Value)
	if !assignable(a.returnType, got) {
		a.errf(n.Pos(), "cannot return %s where %s is expected", got, a.returnType)
	}
	return nil
}

func (a *Analyzer) VisitBreak(n *ast.Break) error {
	if a.loopDepth == 0 {
		a.errf(n.Pos(), "break outside of a loop")
	}
	return nil
}

func (a *Analyzer) VisitContinue(n *ast.Continue) error {
	if a.loopDepth == 0 {
		a.errf(n.Pos(), "continue outside of a loop")
	}
	return nil
}

func (a *Analyzer) VisitExpressionStmt(n *ast.ExpressionStmt) error {
	a.typeOf(n.Expr)
	return nil
}

// Type nodes are never reached through checkStatement's statement-level
// dispatch (they're inspected directly via typeExprName/isArrayTypeExpr),
// but the Visitor interface still requires these two entries.
func (a *Analyzer) VisitNamedType(*ast.NamedType) error { return nil }
func (a *Analyzer) VisitArrayType(*ast.ArrayType) error { return nil }

// Expression Visit entries are unused: typeOf type-switches directly
// instead of dispatching through Accept, so these exist only to satisfy
// ast.Visitor.
func (a *Analyzer) VisitBinary(*ast.Binary) error             { return nil }
func (a *Analyzer) VisitUnary(*ast.Unary) error                { return nil }
func (a *Analyzer) VisitCall(*ast.Call) error                  { return nil }
func (a *Analyzer) VisitMemberAccess(*ast.MemberAccess) error  { return nil }
func (a *Analyzer) VisitIndex(*ast.Index) error                { return nil }
func (a *Analyzer) VisitGrouped(*ast.Grouped) error             { return nil }
func (a *Analyzer) VisitIdentifier(*ast.Identifier) error      { return nil }
func (a *Analyzer) VisitNumberLit(*ast.NumberLit) error        { return nil }
func (a *Analyzer) VisitStringLit(*ast.StringLit) error        { return nil }
func (a *Analyzer) VisitBooleanLit(*ast.BooleanLit) error      { return nil }
func (a *Analyzer) VisitFormatString(*ast.FormatString) error  { return nil }
func (a *Analyzer) VisitRange(*ast.Range) error                { return nil }

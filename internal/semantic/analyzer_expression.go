package semantic

import (
	"sumi/internal/ast"
	"sumi/internal/builtins"
)

// checkExpression validates an expression that must produce exactly want
// values. Literals and identifiers always produce one; calls produce the
// callee's result count.
func (a *Analyzer) checkExpression(expr ast.Expr, want int) {
	switch node := expr.(type) {
	case *ast.LiteralExpr:
		a.checkLiteral(node)
		if want != 1 {
			a.addValueCountError(want, 1, node.NodePos())
		}
	case *ast.IdentExpr:
		a.checkIdentifier(node)
		if want != 1 {
			a.addValueCountError(want, 1, node.NodePos())
		}
	case *ast.CallExpr:
		got := a.checkCall(node)
		if got >= 0 && got != want {
			a.addValueCountError(want, got, node.NodePos())
		}
	}
}

// checkCall resolves the callee, validates the arguments and returns the
// call's result count. Unresolvable callees yield -1 so the caller skips
// the value-count check instead of piling a second error on the same site.
func (a *Analyzer) checkCall(call *ast.CallExpr) int {
	for _, arg := range call.Args {
		a.checkExpression(arg, 1)
	}

	name := call.Callee.Value
	if builtin, ok := builtins.Lookup(name); ok {
		if len(call.Args) != builtin.Params {
			a.addArityMismatchError(name, builtin.Params, len(call.Args), call.NodePos())
		}
		return builtin.Returns
	}

	symbol := a.symbols.Lookup(name)
	if symbol == nil {
		a.addUndefinedFunctionError(name, call.Callee.NodePos())
		return -1
	}
	if symbol.Kind != SymbolFunction {
		a.addVariableUsedAsFunctionError(name, call.Callee.NodePos())
		return -1
	}

	fn := symbol.Node.(*ast.Function)
	if len(call.Args) != len(fn.Params) {
		a.addArityMismatchError(name, len(fn.Params), len(call.Args), call.NodePos())
	}
	return len(fn.Returns)
}

func (a *Analyzer) checkIdentifier(ident *ast.IdentExpr) {
	symbol := a.symbols.Lookup(ident.Name)
	if symbol == nil {
		if builtins.IsBuiltin(ident.Name) {
			a.addFunctionUsedAsVariableError(ident.Name, ident.NodePos())
			return
		}
		a.addUndefinedVariableError(ident.Name, ident.NodePos())
		return
	}
	if symbol.Kind == SymbolFunction {
		a.addFunctionUsedAsVariableError(ident.Name, ident.NodePos())
	}
}

func (a *Analyzer) checkLiteral(lit *ast.LiteralExpr) {
	value, ok := lit.NumericValue()
	if !ok {
		return
	}
	if value.Cmp(ast.MaxWord()) > 0 {
		a.addLiteralOverflowError(lit.Value, lit.NodePos())
	}
}

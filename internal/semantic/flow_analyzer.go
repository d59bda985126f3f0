package semantic

import (
	"sumi/internal/ast"
	"sumi/internal/builtins"
	"sumi/internal/errors"
)

// FlowAnalyzer surfaces development-time warnings: statements that can
// never execute, variables that are never read, functions that are never
// called. Warnings never block the pipeline.
type FlowAnalyzer struct {
	analyzer *Analyzer

	usedVars     map[string]bool
	declaredVars []declaredVar
}

type declaredVar struct {
	name string
	pos  ast.Position
}

func NewFlowAnalyzer(analyzer *Analyzer) *FlowAnalyzer {
	return &FlowAnalyzer{
		analyzer: analyzer,
	}
}

// AnalyzeProgram checks the entry block and every function body. Each
// function is its own scope unit since bodies cannot read enclosing
// variables.
func (fa *FlowAnalyzer) AnalyzeProgram(program *ast.Program) {
	fa.analyzeScopeUnit(program.Entry)

	ast.Inspect(program, func(node ast.Node) bool {
		if fn, ok := node.(*ast.Function); ok {
			fa.analyzeScopeUnit(fn.Body)
		}
		return true
	})

	fa.checkUnusedFunctions(program)
}

func (fa *FlowAnalyzer) analyzeScopeUnit(block *ast.Block) {
	fa.usedVars = make(map[string]bool)
	fa.declaredVars = nil

	fa.collectVariableFacts(block)
	fa.checkUnusedVariables()
	fa.checkUnreachable(block.Statements)
}

// collectVariableFacts records declarations and reads without descending
// into nested function bodies, which are separate scope units.
func (fa *FlowAnalyzer) collectVariableFacts(block *ast.Block) {
	for _, stmt := range block.Statements {
		ast.Inspect(stmt, func(node ast.Node) bool {
			switch n := node.(type) {
			case *ast.Function:
				return false
			case *ast.LetStmt:
				for i := range n.Names {
					fa.declaredVars = append(fa.declaredVars, declaredVar{
						name: n.Names[i].Value,
						pos:  n.Names[i].NodePos(),
					})
				}
			case *ast.IdentExpr:
				fa.usedVars[n.Name] = true
			}
			return true
		})
	}
}

func (fa *FlowAnalyzer) checkUnusedVariables() {
	for _, declared := range fa.declaredVars {
		if !fa.usedVars[declared.name] {
			fa.analyzer.addCompilerError(errors.UnusedVariable(declared.name, declared.pos))
		}
	}
}

// checkUnreachable warns on the first statement after a terminator in each
// statement list. Function definitions are hoisted and stay callable, so
// they are never flagged.
func (fa *FlowAnalyzer) checkUnreachable(statements []ast.Stmt) {
	terminated := false
	for _, stmt := range statements {
		if terminated {
			if _, ok := stmt.(*ast.Function); ok {
				continue
			}
			fa.analyzer.addCompilerError(errors.UnreachableCode(stmt.NodePos()))
			// One warning per list keeps the output readable
			return
		}
		fa.checkNestedUnreachable(stmt)
		if isTerminator(stmt) {
			terminated = true
		}
	}
}

func (fa *FlowAnalyzer) checkNestedUnreachable(stmt ast.Stmt) {
	switch node := stmt.(type) {
	case *ast.IfStmt:
		fa.checkUnreachable(node.Body.Statements)
	case *ast.SwitchStmt:
		for _, c := range node.Cases {
			fa.checkUnreachable(c.Body.Statements)
		}
		if node.Default != nil {
			fa.checkUnreachable(node.Default.Statements)
		}
	case *ast.ForStmt:
		fa.checkUnreachable(node.Init.Statements)
		fa.checkUnreachable(node.Post.Statements)
		fa.checkUnreachable(node.Body.Statements)
	case *ast.Block:
		fa.checkUnreachable(node.Statements)
	}
}

// isTerminator reports whether control cannot flow past the statement.
// Only builtin calls are considered here; the optimizer's effect analysis
// handles user functions that never return.
func isTerminator(stmt ast.Stmt) bool {
	switch node := stmt.(type) {
	case *ast.BreakStmt, *ast.ContinueStmt, *ast.LeaveStmt:
		return true
	case *ast.ExprStmt:
		if call, ok := node.Expr.(*ast.CallExpr); ok {
			if builtin, ok := builtins.Lookup(call.Callee.Value); ok {
				return builtin.Effect == builtins.NeverReturns
			}
		}
	}
	return false
}

func (fa *FlowAnalyzer) checkUnusedFunctions(program *ast.Program) {
	called := make(map[string]bool)
	ast.Inspect(program, func(node ast.Node) bool {
		if call, ok := node.(*ast.CallExpr); ok {
			called[call.Callee.Value] = true
		}
		return true
	})

	ast.Inspect(program, func(node ast.Node) bool {
		if fn, ok := node.(*ast.Function); ok {
			if !called[fn.Name.Value] {
				fa.analyzer.addCompilerError(errors.UnusedFunction(fn.Name.Value, fn.Name.NodePos()))
			}
		}
		return true
	})
}

package semantic

import (
	"sumi/internal/ast"
	"sumi/internal/builtins"
	"sumi/internal/errors"
)

type Analyzer struct {
	program *ast.Program
	errors  []errors.CompilerError
	symbols *SymbolTable

	// loopDepth counts enclosing for bodies. Init and post blocks do not
	// count: break and continue cannot bind out of them.
	loopDepth     int
	functionDepth int
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		errors: make([]errors.CompilerError, 0),
	}
}

// Analyze checks every structural invariant of the program and returns the
// diagnostics sorted by position. Warnings are included; callers that only
// care about fatal violations filter with errors.HasBlockingErrors.
func (a *Analyzer) Analyze(program *ast.Program) []errors.CompilerError {
	a.program = program
	a.errors = make([]errors.CompilerError, 0)
	a.symbols = NewSymbolTable(nil)
	a.loopDepth = 0
	a.functionDepth = 0

	a.analyzeBlock(program.Entry)

	flow := NewFlowAnalyzer(a)
	flow.AnalyzeProgram(program)

	errors.SortByPosition(a.errors)
	return a.errors
}

// GetErrors returns the diagnostics accumulated so far.
func (a *Analyzer) GetErrors() []errors.CompilerError {
	return a.errors
}

// analyzeBlock opens a scope and checks the block's statements. Function
// definitions are hoisted first so calls resolve regardless of textual
// order.
func (a *Analyzer) analyzeBlock(block *ast.Block) {
	a.symbols = NewSymbolTable(a.symbols)
	a.analyzeStatements(block.Statements)
	a.symbols = a.symbols.parent
}

func (a *Analyzer) analyzeStatements(statements []ast.Stmt) {
	a.hoistFunctions(statements)
	for _, stmt := range statements {
		a.analyzeStatement(stmt)
	}
}

func (a *Analyzer) hoistFunctions(statements []ast.Stmt) {
	for _, stmt := range statements {
		fn, ok := stmt.(*ast.Function)
		if !ok {
			continue
		}
		if builtins.IsBuiltin(fn.Name.Value) {
			a.addReservedNameError(fn.Name.Value, fn.Name.NodePos())
			continue
		}
		if existing := a.symbols.LookupLexical(fn.Name.Value); existing != nil {
			a.addShadowedNameError(fn.Name.Value, fn.Name.NodePos(), existing.Position)
			// Same-block duplicate: keep the first definition so calls
			// still resolve. An outer shadow is still defined locally.
			if a.symbols.LookupLocal(fn.Name.Value) != nil {
				continue
			}
		}
		a.symbols.Define(fn.Name.Value, SymbolFunction, fn, fn.Name.NodePos())
	}
}

func (a *Analyzer) analyzeStatement(stmt ast.Stmt) {
	switch node := stmt.(type) {
	case *ast.Function:
		a.analyzeFunction(node)
	case *ast.LetStmt:
		a.analyzeLet(node)
	case *ast.AssignStmt:
		a.analyzeAssign(node)
	case *ast.ExprStmt:
		a.analyzeExprStmt(node)
	case *ast.IfStmt:
		a.checkExpression(node.Condition, 1)
		a.analyzeBlock(node.Body)
	case *ast.SwitchStmt:
		a.analyzeSwitch(node)
	case *ast.ForStmt:
		a.analyzeFor(node)
	case *ast.BreakStmt:
		if a.loopDepth == 0 {
			a.addStrayLoopControlError("break", node.NodePos())
		}
	case *ast.ContinueStmt:
		if a.loopDepth == 0 {
			a.addStrayLoopControlError("continue", node.NodePos())
		}
	case *ast.LeaveStmt:
		if a.functionDepth == 0 {
			a.addStrayLeaveError(node.NodePos())
		}
	case *ast.Block:
		a.analyzeBlock(node)
	}
}

// analyzeFunction checks a function body. The name itself was defined
// during hoisting. Loop context does not carry into the body: a break
// inside a function never binds to a loop around the definition.
func (a *Analyzer) analyzeFunction(fn *ast.Function) {
	a.symbols = NewFunctionScope(a.symbols)
	a.defineParams(fn.Params, SymbolParameter)
	a.defineParams(fn.Returns, SymbolResult)

	savedLoopDepth := a.loopDepth
	a.loopDepth = 0
	a.functionDepth++

	a.analyzeStatements(fn.Body.Statements)

	a.functionDepth--
	a.loopDepth = savedLoopDepth
	a.symbols = a.symbols.parent
}

func (a *Analyzer) defineParams(params []*ast.FunctionParam, kind SymbolKind) {
	for _, param := range params {
		name := param.Name.Value
		if builtins.IsBuiltin(name) {
			a.addReservedNameError(name, param.Name.NodePos())
			continue
		}
		if existing := a.symbols.LookupLexical(name); existing != nil {
			a.addShadowedNameError(name, param.Name.NodePos(), existing.Position)
			if a.symbols.LookupLocal(name) != nil {
				continue
			}
		}
		a.symbols.Define(name, kind, param, param.Name.NodePos())
	}
}

func (a *Analyzer) analyzeLet(let *ast.LetStmt) {
	// The initializer is checked before the names are defined, so a
	// declaration cannot reference itself.
	if let.Expr != nil {
		a.checkExpression(let.Expr, len(let.Names))
	}
	for i := range let.Names {
		name := let.Names[i].Value
		if builtins.IsBuiltin(name) {
			a.addReservedNameError(name, let.Names[i].NodePos())
			continue
		}
		if existing := a.symbols.LookupLexical(name); existing != nil {
			a.addShadowedNameError(name, let.Names[i].NodePos(), existing.Position)
			if a.symbols.LookupLocal(name) != nil {
				continue
			}
		}
		a.symbols.Define(name, SymbolVariable, &let.Names[i], let.Names[i].NodePos())
	}
}

func (a *Analyzer) analyzeAssign(assign *ast.AssignStmt) {
	for i := range assign.Targets {
		name := assign.Targets[i].Value
		symbol := a.symbols.Lookup(name)
		if symbol == nil {
			a.addUndefinedVariableError(name, assign.Targets[i].NodePos())
			continue
		}
		if !symbol.Assignable() {
			a.addFunctionUsedAsVariableError(name, assign.Targets[i].NodePos())
		}
	}
	a.checkExpression(assign.Value, len(assign.Targets))
}

func (a *Analyzer) analyzeExprStmt(stmt *ast.ExprStmt) {
	call, ok := stmt.Expr.(*ast.CallExpr)
	if !ok {
		return
	}
	got := a.checkCall(call)
	if got > 0 {
		a.addDiscardedValueError(call.Callee.Value, got, call.NodePos())
	}
}

func (a *Analyzer) analyzeSwitch(sw *ast.SwitchStmt) {
	a.checkExpression(sw.Value, 1)

	if len(sw.Cases) == 0 && sw.Default == nil {
		a.addEmptySwitchError(sw.NodePos())
	}

	// Case values compare numerically, so 0x10 duplicates 16.
	seen := make(map[string]ast.Position)
	for _, c := range sw.Cases {
		a.checkLiteral(c.Value)
		if value, ok := c.Value.NumericValue(); ok {
			key := value.String()
			if first, dup := seen[key]; dup {
				a.addDuplicateCaseError(c.Value.Value, c.Value.NodePos(), first)
			} else {
				seen[key] = c.Value.NodePos()
			}
		}
		a.analyzeBlock(c.Body)
	}
	if sw.Default != nil {
		a.analyzeBlock(sw.Default)
	}
}

// analyzeFor opens one scope for the whole loop: names declared in the
// init block stay visible in the condition, post, and body. Only the body
// counts as loop context for break and continue.
func (a *Analyzer) analyzeFor(loop *ast.ForStmt) {
	a.symbols = NewSymbolTable(a.symbols)

	savedLoopDepth := a.loopDepth
	a.loopDepth = 0
	a.analyzeStatements(loop.Init.Statements)

	a.checkExpression(loop.Condition, 1)
	a.analyzeBlock(loop.Post)

	a.loopDepth = savedLoopDepth + 1
	a.analyzeBlock(loop.Body)

	a.loopDepth = savedLoopDepth
	a.symbols = a.symbols.parent
}

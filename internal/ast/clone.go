package ast

// CloneProgram returns a deep copy of a program. Positions are preserved so
// diagnostics on copied nodes still point at the original source.
func CloneProgram(p *Program) *Program {
	out := *p
	out.Entry = CloneBlock(p.Entry)
	return &out
}

// CloneBlock returns a deep copy of a block.
func CloneBlock(b *Block) *Block {
	out := *b
	out.Statements = make([]Stmt, len(b.Statements))
	for i, s := range b.Statements {
		out.Statements[i] = CloneStmt(s)
	}
	return &out
}

// CloneStmt returns a deep copy of a statement.
func CloneStmt(s Stmt) Stmt {
	switch s := s.(type) {
	case *ExprStmt:
		out := *s
		out.Expr = CloneExpr(s.Expr)
		return &out
	case *LetStmt:
		out := *s
		out.Names = cloneIdents(s.Names)
		if s.Expr != nil {
			out.Expr = CloneExpr(s.Expr)
		}
		return &out
	case *AssignStmt:
		out := *s
		out.Targets = cloneIdents(s.Targets)
		out.Value = CloneExpr(s.Value)
		return &out
	case *IfStmt:
		out := *s
		out.Condition = CloneExpr(s.Condition)
		out.Body = CloneBlock(s.Body)
		return &out
	case *SwitchStmt:
		out := *s
		out.Cases = make([]*SwitchCase, len(s.Cases))
		out.Value = CloneExpr(s.Value)
		for i, c := range s.Cases {
			cc := *c
			lit := *c.Value
			cc.Value = &lit
			cc.Body = CloneBlock(c.Body)
			out.Cases[i] = &cc
		}
		if s.Default != nil {
			out.Default = CloneBlock(s.Default)
		}
		return &out
	case *ForStmt:
		out := *s
		out.Init = CloneBlock(s.Init)
		out.Condition = CloneExpr(s.Condition)
		out.Post = CloneBlock(s.Post)
		out.Body = CloneBlock(s.Body)
		return &out
	case *BreakStmt:
		out := *s
		return &out
	case *ContinueStmt:
		out := *s
		return &out
	case *LeaveStmt:
		out := *s
		return &out
	case *Block:
		return CloneBlock(s)
	case *Function:
		out := *s
		out.Params = cloneParams(s.Params)
		out.Returns = cloneParams(s.Returns)
		out.Body = CloneBlock(s.Body)
		return &out
	}
	return s
}

// CloneExpr returns a deep copy of an expression.
func CloneExpr(e Expr) Expr {
	switch e := e.(type) {
	case *CallExpr:
		out := *e
		out.Args = make([]Expr, len(e.Args))
		for i, a := range e.Args {
			out.Args[i] = CloneExpr(a)
		}
		return &out
	case *LiteralExpr:
		out := *e
		return &out
	case *IdentExpr:
		out := *e
		return &out
	}
	return e
}

func cloneIdents(ids []Ident) []Ident {
	out := make([]Ident, len(ids))
	copy(out, ids)
	return out
}

func cloneParams(params []*FunctionParam) []*FunctionParam {
	out := make([]*FunctionParam, len(params))
	for i, p := range params {
		pp := *p
		out[i] = &pp
	}
	return out
}

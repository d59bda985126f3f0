package parser

import (
	"github.com/alecthomas/participle/v2/lexer"

	"sumi/grammar"
	"sumi/internal/ast"
)

// The surface grammar mirrors the optimizer tree closely, so lowering is a
// mechanical reshaping: flatten the statement union, attach positions and
// tag literal kinds. All validation happens afterwards on the lowered tree.

func lowerPos(p lexer.Position) ast.Position {
	return ast.Position{Filename: p.Filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func lowerIdent(id *grammar.PosIdent) ast.Ident {
	return ast.Ident{Pos: lowerPos(id.Pos), EndPos: lowerPos(id.EndPos), Value: id.Value}
}

func lowerIdents(ids []*grammar.PosIdent) []ast.Ident {
	out := make([]ast.Ident, len(ids))
	for i, id := range ids {
		out[i] = lowerIdent(id)
	}
	return out
}

func lowerProgram(path string, g *grammar.Program) *ast.Program {
	entry := &ast.Block{
		Pos:    lowerPos(g.Pos),
		EndPos: lowerPos(g.EndPos),
	}
	for _, s := range g.Statements {
		entry.Statements = append(entry.Statements, lowerStatement(s))
	}
	return &ast.Program{
		Pos:    lowerPos(g.Pos),
		EndPos: lowerPos(g.EndPos),
		Source: path,
		Entry:  entry,
	}
}

func lowerBlock(b *grammar.Block) *ast.Block {
	out := &ast.Block{
		Pos:    lowerPos(b.Pos),
		EndPos: lowerPos(b.EndPos),
	}
	for _, s := range b.Statements {
		out.Statements = append(out.Statements, lowerStatement(s))
	}
	return out
}

func lowerStatement(s *grammar.Statement) ast.Stmt {
	switch {
	case s.Function != nil:
		return lowerFunction(s.Function)
	case s.Let != nil:
		out := &ast.LetStmt{
			Pos:    lowerPos(s.Let.Pos),
			EndPos: lowerPos(s.Let.EndPos),
			Names:  lowerIdents(s.Let.Names),
		}
		if s.Let.Value != nil {
			out.Expr = lowerExpr(s.Let.Value)
		}
		return out
	case s.If != nil:
		return &ast.IfStmt{
			Pos:       lowerPos(s.If.Pos),
			EndPos:    lowerPos(s.If.EndPos),
			Condition: lowerExpr(s.If.Condition),
			Body:      lowerBlock(s.If.Body),
		}
	case s.Switch != nil:
		return lowerSwitch(s.Switch)
	case s.For != nil:
		return &ast.ForStmt{
			Pos:       lowerPos(s.For.Pos),
			EndPos:    lowerPos(s.For.EndPos),
			Init:      lowerBlock(s.For.Init),
			Condition: lowerExpr(s.For.Condition),
			Post:      lowerBlock(s.For.Post),
			Body:      lowerBlock(s.For.Body),
		}
	case s.Break != nil:
		return &ast.BreakStmt{Pos: lowerPos(s.Break.Pos), EndPos: lowerPos(s.Break.EndPos)}
	case s.Continue != nil:
		return &ast.ContinueStmt{Pos: lowerPos(s.Continue.Pos), EndPos: lowerPos(s.Continue.EndPos)}
	case s.Leave != nil:
		return &ast.LeaveStmt{Pos: lowerPos(s.Leave.Pos), EndPos: lowerPos(s.Leave.EndPos)}
	case s.Block != nil:
		return lowerBlock(s.Block)
	case s.Assign != nil:
		return &ast.AssignStmt{
			Pos:     lowerPos(s.Assign.Pos),
			EndPos:  lowerPos(s.Assign.EndPos),
			Targets: lowerIdents(s.Assign.Targets),
			Value:   lowerExpr(s.Assign.Value),
		}
	case s.Expr != nil:
		return &ast.ExprStmt{
			Pos:    lowerPos(s.Expr.Pos),
			EndPos: lowerPos(s.Expr.EndPos),
			Expr:   lowerCall(s.Expr.Call),
		}
	}
	return nil
}

func lowerFunction(f *grammar.Function) *ast.Function {
	out := &ast.Function{
		Pos:    lowerPos(f.Pos),
		EndPos: lowerPos(f.EndPos),
		Name:   lowerIdent(&f.Name),
		Body:   lowerBlock(f.Body),
	}
	for _, p := range f.Params {
		out.Params = append(out.Params, &ast.FunctionParam{
			Pos:    lowerPos(p.Pos),
			EndPos: lowerPos(p.EndPos),
			Name:   lowerIdent(p),
		})
	}
	for _, r := range f.Returns {
		out.Returns = append(out.Returns, &ast.FunctionParam{
			Pos:    lowerPos(r.Pos),
			EndPos: lowerPos(r.EndPos),
			Name:   lowerIdent(r),
		})
	}
	return out
}

func lowerSwitch(s *grammar.SwitchStmt) *ast.SwitchStmt {
	out := &ast.SwitchStmt{
		Pos:    lowerPos(s.Pos),
		EndPos: lowerPos(s.EndPos),
		Value:  lowerExpr(s.Value),
	}
	for _, c := range s.Cases {
		out.Cases = append(out.Cases, &ast.SwitchCase{
			Pos:    lowerPos(c.Pos),
			EndPos: lowerPos(c.EndPos),
			Value:  lowerLiteral(c.Value),
			Body:   lowerBlock(c.Body),
		})
	}
	if s.Default != nil {
		out.Default = lowerBlock(s.Default)
	}
	return out
}

func lowerExpr(e *grammar.Expr) ast.Expr {
	switch {
	case e.Call != nil:
		return lowerCall(e.Call)
	case e.Literal != nil:
		return lowerLiteral(e.Literal)
	case e.Ident != nil:
		return &ast.IdentExpr{
			Pos:    lowerPos(e.Ident.Pos),
			EndPos: lowerPos(e.Ident.EndPos),
			Name:   e.Ident.Value,
		}
	}
	return nil
}

func lowerCall(c *grammar.CallExpr) *ast.CallExpr {
	out := &ast.CallExpr{
		Pos:    lowerPos(c.Pos),
		EndPos: lowerPos(c.EndPos),
		Callee: lowerIdent(&c.Callee),
	}
	for _, a := range c.Args {
		out.Args = append(out.Args, lowerExpr(a))
	}
	return out
}

func lowerLiteral(l *grammar.Literal) *ast.LiteralExpr {
	out := &ast.LiteralExpr{
		Pos:    lowerPos(l.Pos),
		EndPos: lowerPos(l.EndPos),
	}
	if l.Number != nil {
		out.Kind = ast.NumberLiteral
		out.Value = *l.Number
	} else if l.Bool != nil {
		out.Kind = ast.BoolLiteral
		out.Value = *l.Bool
	}
	return out
}

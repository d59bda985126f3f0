package opt

import "sumi/internal/ast"

// Splitter hoists nested calls out of argument position so that after the
// pass every call either sits in statement position or has only literal and
// identifier arguments. Bindings are emitted rightmost argument first, so
// the textual order of the hoisted declarations is the evaluation order.
// This is what makes inlining a site a pure statement rewrite.
type Splitter struct {
	names   *NameDispenser
	changed bool
}

// NewSplitter creates the expression splitting pass.
func NewSplitter() *Splitter {
	return &Splitter{}
}

func (s *Splitter) Name() string {
	return "split"
}

func (s *Splitter) Description() string {
	return "Hoists nested call arguments into declarations in evaluation order"
}

// Apply rewrites the whole program. Loop conditions are left alone: they
// re-evaluate every iteration and cannot be hoisted to a single binding.
func (s *Splitter) Apply(program *ast.Program) bool {
	s.names = NewNameDispenser(program)
	s.changed = false
	s.splitBlock(program.Entry)
	return s.changed
}

func (s *Splitter) splitBlock(b *ast.Block) {
	out := make([]ast.Stmt, 0, len(b.Statements))
	for _, stmt := range b.Statements {
		prelude := s.splitStmt(stmt)
		out = append(out, prelude...)
		out = append(out, stmt)
	}
	b.Statements = out
}

// splitStmt rewrites one statement in place and returns the declarations
// that must run before it.
func (s *Splitter) splitStmt(stmt ast.Stmt) []ast.Stmt {
	switch stmt := stmt.(type) {
	case *ast.ExprStmt:
		if call, ok := stmt.Expr.(*ast.CallExpr); ok {
			return s.splitArgs(call)
		}
	case *ast.LetStmt:
		if call, ok := stmt.Expr.(*ast.CallExpr); ok {
			return s.splitArgs(call)
		}
	case *ast.AssignStmt:
		if call, ok := stmt.Value.(*ast.CallExpr); ok {
			return s.splitArgs(call)
		}
	case *ast.IfStmt:
		prelude := s.hoistValue(&stmt.Condition)
		s.splitBlock(stmt.Body)
		return prelude
	case *ast.SwitchStmt:
		prelude := s.hoistValue(&stmt.Value)
		for _, c := range stmt.Cases {
			s.splitBlock(c.Body)
		}
		if stmt.Default != nil {
			s.splitBlock(stmt.Default)
		}
		return prelude
	case *ast.ForStmt:
		s.splitBlock(stmt.Init)
		s.splitBlock(stmt.Post)
		s.splitBlock(stmt.Body)
	case *ast.Block:
		s.splitBlock(stmt)
	case *ast.Function:
		s.splitBlock(stmt.Body)
	}
	return nil
}

// splitArgs hoists every call-valued argument of a retained call,
// rightmost first. The call itself stays where it is.
func (s *Splitter) splitArgs(call *ast.CallExpr) []ast.Stmt {
	var prelude []ast.Stmt
	for i := len(call.Args) - 1; i >= 0; i-- {
		sub, ok := call.Args[i].(*ast.CallExpr)
		if !ok {
			continue
		}
		prelude = append(prelude, s.splitArgs(sub)...)
		binding, ref := s.hoist(sub)
		prelude = append(prelude, binding)
		call.Args[i] = ref
	}
	return prelude
}

// hoistValue replaces a call in condition or scrutinee position with a
// fresh identifier and returns its binding together with the bindings of
// its own arguments.
func (s *Splitter) hoistValue(e *ast.Expr) []ast.Stmt {
	call, ok := (*e).(*ast.CallExpr)
	if !ok {
		return nil
	}
	prelude := s.splitArgs(call)
	binding, ref := s.hoist(call)
	*e = ref
	return append(prelude, binding)
}

func (s *Splitter) hoist(call *ast.CallExpr) (*ast.LetStmt, *ast.IdentExpr) {
	fresh := s.names.Fresh(call.Callee.Value)
	s.changed = true
	binding := &ast.LetStmt{
		Pos:    call.Pos,
		EndPos: call.EndPos,
		Names:  []ast.Ident{{Pos: call.Pos, EndPos: call.EndPos, Value: fresh}},
		Expr:   call,
	}
	ref := &ast.IdentExpr{Pos: call.Pos, EndPos: call.EndPos, Name: fresh}
	return binding, ref
}

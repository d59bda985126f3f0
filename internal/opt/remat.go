package opt

import "sumi/internal/ast"

// Rematerializer substitutes a variable's defining expression for its uses
// when doing so can never change a value: the definition is a literal, or
// an alias of another variable, and neither end of the link is ever
// reassigned. The substituted variable loses its reads; the prune pass
// collects the emptied declaration afterwards.
type Rematerializer struct {
	reassigned map[*ast.Ident]bool
	scopes     []*rematScope
	changed    bool
}

type rematScope struct {
	vars     map[string]*rematEntry
	boundary bool
}

type rematEntry struct {
	decl *ast.Ident // declaring occurrence, key into reassigned
	repl ast.Expr   // literal or stable alias, nil when not substitutable
}

// NewRematerializer creates the definition substitution pass.
func NewRematerializer() *Rematerializer {
	return &Rematerializer{}
}

func (r *Rematerializer) Name() string {
	return "remat"
}

func (r *Rematerializer) Description() string {
	return "Replaces variable uses with their literal or alias definitions"
}

func (r *Rematerializer) Apply(program *ast.Program) bool {
	r.reassigned = collectReassigned(program)
	r.scopes = nil
	r.changed = false
	r.block(program.Entry, false)
	return r.changed
}

func (r *Rematerializer) push(boundary bool) {
	r.scopes = append(r.scopes, &rematScope{vars: make(map[string]*rematEntry), boundary: boundary})
}

func (r *Rematerializer) pop() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Rematerializer) top() *rematScope {
	return r.scopes[len(r.scopes)-1]
}

func (r *Rematerializer) resolve(name string) *rematEntry {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if entry, ok := r.scopes[i].vars[name]; ok {
			return entry
		}
		if r.scopes[i].boundary {
			return nil
		}
	}
	return nil
}

func (r *Rematerializer) declare(ident *ast.Ident, repl ast.Expr) {
	r.top().vars[ident.Value] = &rematEntry{decl: ident, repl: repl}
}

func (r *Rematerializer) block(b *ast.Block, boundary bool) {
	r.push(boundary)
	for _, s := range b.Statements {
		r.stmt(s)
	}
	r.pop()
}

func (r *Rematerializer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.LetStmt:
		if s.Expr != nil {
			s.Expr = r.rewrite(s.Expr)
		}
		for i := range s.Names {
			r.declare(&s.Names[i], nil)
		}
		if len(s.Names) == 1 && s.Expr != nil && !r.reassigned[&s.Names[0]] {
			r.top().vars[s.Names[0].Value].repl = r.substitutable(s.Expr)
		}
	case *ast.AssignStmt:
		s.Value = r.rewrite(s.Value)
	case *ast.ExprStmt:
		s.Expr = r.rewrite(s.Expr)
	case *ast.IfStmt:
		s.Condition = r.rewrite(s.Condition)
		r.block(s.Body, false)
	case *ast.SwitchStmt:
		s.Value = r.rewrite(s.Value)
		for _, c := range s.Cases {
			r.block(c.Body, false)
		}
		if s.Default != nil {
			r.block(s.Default, false)
		}
	case *ast.ForStmt:
		r.push(false)
		for _, init := range s.Init.Statements {
			r.stmt(init)
		}
		s.Condition = r.rewrite(s.Condition)
		r.block(s.Post, false)
		r.block(s.Body, false)
		r.pop()
	case *ast.Function:
		r.push(true)
		for _, param := range s.Params {
			r.declare(&param.Name, nil)
		}
		for _, ret := range s.Returns {
			r.declare(&ret.Name, nil)
		}
		r.block(s.Body, false)
		r.pop()
	case *ast.Block:
		r.block(s, false)
	}
}

// substitutable decides what a single-assignment definition may stand in
// for: a literal always, an identifier only when its own variable is never
// reassigned anywhere.
func (r *Rematerializer) substitutable(def ast.Expr) ast.Expr {
	switch def := def.(type) {
	case *ast.LiteralExpr:
		return def
	case *ast.IdentExpr:
		source := r.resolve(def.Name)
		if source != nil && !r.reassigned[source.decl] {
			return def
		}
	}
	return nil
}

// rewrite replaces references to substitutable variables in an expression.
func (r *Rematerializer) rewrite(e ast.Expr) ast.Expr {
	switch e := e.(type) {
	case *ast.IdentExpr:
		if entry := r.resolve(e.Name); entry != nil && entry.repl != nil {
			r.changed = true
			return ast.CloneExpr(entry.repl)
		}
	case *ast.CallExpr:
		for i := range e.Args {
			e.Args[i] = r.rewrite(e.Args[i])
		}
	}
	return e
}

// collectReassigned records which declarations are ever assignment targets,
// resolving each target through the scope chain so sibling scopes reusing
// a name stay independent.
func collectReassigned(program *ast.Program) map[*ast.Ident]bool {
	reassigned := make(map[*ast.Ident]bool)
	type frame struct {
		vars     map[string]*ast.Ident
		boundary bool
	}
	var stack []*frame
	push := func(boundary bool) {
		stack = append(stack, &frame{vars: make(map[string]*ast.Ident), boundary: boundary})
	}
	pop := func() { stack = stack[:len(stack)-1] }
	declare := func(ident *ast.Ident) { stack[len(stack)-1].vars[ident.Value] = ident }
	resolve := func(name string) *ast.Ident {
		for i := len(stack) - 1; i >= 0; i-- {
			if decl, ok := stack[i].vars[name]; ok {
				return decl
			}
			if stack[i].boundary {
				return nil
			}
		}
		return nil
	}

	var walkStmt func(s ast.Stmt)
	walkBlock := func(b *ast.Block, boundary bool) {
		push(boundary)
		for _, s := range b.Statements {
			walkStmt(s)
		}
		pop()
	}
	walkStmt = func(s ast.Stmt) {
		switch s := s.(type) {
		case *ast.LetStmt:
			for i := range s.Names {
				declare(&s.Names[i])
			}
		case *ast.AssignStmt:
			for _, target := range s.Targets {
				if decl := resolve(target.Value); decl != nil {
					reassigned[decl] = true
				}
			}
		case *ast.IfStmt:
			walkBlock(s.Body, false)
		case *ast.SwitchStmt:
			for _, c := range s.Cases {
				walkBlock(c.Body, false)
			}
			if s.Default != nil {
				walkBlock(s.Default, false)
			}
		case *ast.ForStmt:
			push(false)
			for _, init := range s.Init.Statements {
				walkStmt(init)
			}
			walkBlock(s.Post, false)
			walkBlock(s.Body, false)
			pop()
		case *ast.Function:
			push(true)
			for _, param := range s.Params {
				declare(&param.Name)
			}
			for _, ret := range s.Returns {
				declare(&ret.Name)
			}
			walkBlock(s.Body, false)
			pop()
		case *ast.Block:
			walkBlock(s, false)
		}
	}
	walkBlock(program.Entry, false)
	return reassigned
}

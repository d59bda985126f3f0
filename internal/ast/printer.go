package ast

import (
	"fmt"
	"strings"
)

func indent(level int) string {
	return strings.Repeat("    ", level)
}

// String renders the program in canonical form: one statement per line,
// four-space indentation, literal spellings preserved. Printing the result
// of a parse and parsing it again yields the same tree.
func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Entry.Statements {
		b.WriteString(StmtString(s, 0))
	}
	return b.String()
}

// StmtString renders a single statement at the given indent level,
// including the trailing newline.
func StmtString(s Stmt, level int) string {
	switch s := s.(type) {
	case *ExprStmt:
		return indent(level) + s.String() + "\n"
	case *LetStmt:
		return indent(level) + s.String() + "\n"
	case *AssignStmt:
		return indent(level) + s.String() + "\n"
	case *BreakStmt:
		return indent(level) + s.String() + "\n"
	case *ContinueStmt:
		return indent(level) + s.String() + "\n"
	case *LeaveStmt:
		return indent(level) + s.String() + "\n"
	case *IfStmt:
		return fmt.Sprintf("%sif %s %s\n", indent(level), s.Condition.String(), s.Body.StringWithIndent(level))
	case *SwitchStmt:
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%sswitch %s\n", indent(level), s.Value.String()))
		for _, c := range s.Cases {
			b.WriteString(fmt.Sprintf("%scase %s %s\n", indent(level), c.Value.String(), c.Body.StringWithIndent(level)))
		}
		if s.Default != nil {
			b.WriteString(fmt.Sprintf("%sdefault %s\n", indent(level), s.Default.StringWithIndent(level)))
		}
		return b.String()
	case *ForStmt:
		return fmt.Sprintf("%sfor %s %s %s %s\n", indent(level),
			s.Init.StringWithIndent(level), s.Condition.String(),
			s.Post.StringWithIndent(level), s.Body.StringWithIndent(level))
	case *Function:
		return indent(level) + s.signature() + " " + s.Body.StringWithIndent(level) + "\n"
	case *Block:
		return indent(level) + s.StringWithIndent(level) + "\n"
	}
	return ""
}

// StringWithIndent renders a block whose closing brace sits at the given
// level. The opening brace carries no indent of its own so blocks compose
// into statement headers like "if cond {".
func (b *Block) StringWithIndent(level int) string {
	if len(b.Statements) == 0 {
		return "{ }"
	}
	var out strings.Builder
	out.WriteString("{\n")
	for _, s := range b.Statements {
		out.WriteString(StmtString(s, level+1))
	}
	out.WriteString(indent(level) + "}")
	return out.String()
}

func (b *Block) String() string {
	return b.StringWithIndent(0)
}

func (f *Function) signature() string {
	var b strings.Builder
	b.WriteString("function ")
	b.WriteString(f.Name.Value)
	b.WriteString("(")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name.Value)
	}
	b.WriteString(")")
	if len(f.Returns) > 0 {
		b.WriteString(" -> ")
		for i, r := range f.Returns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(r.Name.Value)
		}
	}
	return b.String()
}

func (f *Function) String() string {
	return f.signature() + " " + f.Body.StringWithIndent(0)
}

func (fp *FunctionParam) String() string {
	return fp.Name.Value
}

func (e *ExprStmt) String() string {
	return e.Expr.String()
}

func (l *LetStmt) String() string {
	names := make([]string, len(l.Names))
	for i, n := range l.Names {
		names[i] = n.Value
	}
	if l.Expr == nil {
		return fmt.Sprintf("let %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("let %s := %s", strings.Join(names, ", "), l.Expr.String())
}

func (a *AssignStmt) String() string {
	targets := make([]string, len(a.Targets))
	for i, t := range a.Targets {
		targets[i] = t.Value
	}
	return fmt.Sprintf("%s := %s", strings.Join(targets, ", "), a.Value.String())
}

func (i *IfStmt) String() string {
	return fmt.Sprintf("if %s %s", i.Condition.String(), i.Body.StringWithIndent(0))
}

func (s *SwitchStmt) String() string {
	return strings.TrimSuffix(StmtString(s, 0), "\n")
}

func (c *SwitchCase) String() string {
	return fmt.Sprintf("case %s %s", c.Value.String(), c.Body.StringWithIndent(0))
}

func (f *ForStmt) String() string {
	return strings.TrimSuffix(StmtString(f, 0), "\n")
}

func (*BreakStmt) String() string {
	return "break"
}

func (*ContinueStmt) String() string {
	return "continue"
}

func (*LeaveStmt) String() string {
	return "leave"
}

func (c *CallExpr) String() string {
	var b strings.Builder
	b.WriteString(c.Callee.Value)
	b.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (l *LiteralExpr) String() string {
	return l.Value
}

func (i *IdentExpr) String() string {
	return i.Name
}

func (i *Ident) String() string {
	return i.Value
}

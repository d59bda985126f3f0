package opt

import "sumi/internal/ast"

// DeadCodeEliminator removes statements control can never reach: everything
// after the first terminating statement of a block. Function definitions in
// the unreachable tail are kept, since hoisting makes them callable from the
// reachable part; unused ones are the prune pass's business.
type DeadCodeEliminator struct {
	analysis *Analysis
	changed  bool
}

// NewDeadCodeEliminator creates the unreachable code pass.
func NewDeadCodeEliminator() *DeadCodeEliminator {
	return &DeadCodeEliminator{}
}

func (d *DeadCodeEliminator) Name() string {
	return "deadcode"
}

func (d *DeadCodeEliminator) Description() string {
	return "Removes statements control can never reach"
}

func (d *DeadCodeEliminator) Apply(program *ast.Program) bool {
	d.analysis = NewAnalysis(program)
	d.changed = false
	d.block(program.Entry)
	return d.changed
}

func (d *DeadCodeEliminator) block(b *ast.Block) {
	cut := -1
	for i, s := range b.Statements {
		if d.analysis.Terminates(s) {
			cut = i
			break
		}
	}
	if cut >= 0 && cut+1 < len(b.Statements) {
		kept := b.Statements[:cut+1]
		for _, s := range b.Statements[cut+1:] {
			if fn, ok := s.(*ast.Function); ok {
				kept = append(kept, fn)
				continue
			}
			d.changed = true
		}
		b.Statements = kept
	}
	for _, s := range b.Statements {
		d.recurse(s)
	}
}

func (d *DeadCodeEliminator) recurse(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.IfStmt:
		d.block(s.Body)
	case *ast.SwitchStmt:
		for _, c := range s.Cases {
			d.block(c.Body)
		}
		if s.Default != nil {
			d.block(s.Default)
		}
	case *ast.ForStmt:
		d.block(s.Init)
		d.block(s.Post)
		d.block(s.Body)
	case *ast.Function:
		d.block(s.Body)
	case *ast.Block:
		d.block(s)
	}
}

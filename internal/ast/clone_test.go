package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleProgram() *Program {
	return &Program{
		Entry: &Block{Statements: []Stmt{
			&Function{
				Name:   Ident{Value: "double"},
				Params: []*FunctionParam{{Name: Ident{Value: "v"}}},
				Returns: []*FunctionParam{
					{Name: Ident{Value: "r"}},
				},
				Body: &Block{Statements: []Stmt{
					&AssignStmt{
						Targets: []Ident{{Value: "r"}},
						Value: &CallExpr{
							Callee: Ident{Value: "mul"},
							Args: []Expr{
								&IdentExpr{Name: "v"},
								&LiteralExpr{Kind: NumberLiteral, Value: "2"},
							},
						},
					},
				}},
			},
			&LetStmt{
				Names: []Ident{{Value: "x"}},
				Expr: &CallExpr{
					Callee: Ident{Value: "double"},
					Args:   []Expr{&LiteralExpr{Kind: NumberLiteral, Value: "21"}},
				},
			},
			&ForStmt{
				Init:      &Block{},
				Condition: &LiteralExpr{Kind: NumberLiteral, Value: "1"},
				Post:      &Block{},
				Body: &Block{Statements: []Stmt{
					&SwitchStmt{
						Value: &IdentExpr{Name: "x"},
						Cases: []*SwitchCase{
							{
								Value: &LiteralExpr{Kind: NumberLiteral, Value: "42"},
								Body:  &Block{Statements: []Stmt{&BreakStmt{}}},
							},
						},
						Default: &Block{Statements: []Stmt{&ContinueStmt{}}},
					},
				}},
			},
		}},
	}
}

func TestCloneProgramIsDeep(t *testing.T) {
	original := sampleProgram()
	copied := CloneProgram(original)

	assert.Equal(t, original.String(), copied.String())

	// Mutating the copy must not leak into the original.
	fn := copied.Entry.Statements[0].(*Function)
	fn.Name.Value = "renamed"
	assign := fn.Body.Statements[0].(*AssignStmt)
	assign.Targets[0].Value = "q"
	call := assign.Value.(*CallExpr)
	call.Args[1].(*LiteralExpr).Value = "3"

	origFn := original.Entry.Statements[0].(*Function)
	assert.Equal(t, "double", origFn.Name.Value)
	origAssign := origFn.Body.Statements[0].(*AssignStmt)
	assert.Equal(t, "r", origAssign.Targets[0].Value)
	assert.Equal(t, "2", origAssign.Value.(*CallExpr).Args[1].(*LiteralExpr).Value)
}

func TestCloneSwitchIsDeep(t *testing.T) {
	original := sampleProgram()
	copied := CloneProgram(original)

	loop := copied.Entry.Statements[2].(*ForStmt)
	sw := loop.Body.Statements[0].(*SwitchStmt)
	sw.Cases[0].Value.Value = "7"
	sw.Default.Statements[0] = &LeaveStmt{}

	origLoop := original.Entry.Statements[2].(*ForStmt)
	origSw := origLoop.Body.Statements[0].(*SwitchStmt)
	assert.Equal(t, "42", origSw.Cases[0].Value.Value)
	assert.IsType(t, &ContinueStmt{}, origSw.Default.Statements[0])
}

func TestInspectVisitsInSourceOrder(t *testing.T) {
	program := &Program{
		Entry: &Block{Statements: []Stmt{
			&LetStmt{
				Names: []Ident{{Value: "a"}},
				Expr:  &LiteralExpr{Kind: NumberLiteral, Value: "1"},
			},
			&LetStmt{
				Names: []Ident{{Value: "b"}},
				Expr:  &IdentExpr{Name: "a"},
			},
		}},
	}

	var idents []string
	Inspect(program, func(n Node) bool {
		if id, ok := n.(*Ident); ok {
			idents = append(idents, id.Value)
		}
		if ref, ok := n.(*IdentExpr); ok {
			idents = append(idents, ref.Name)
		}
		return true
	})

	assert.Equal(t, []string{"a", "b", "a"}, idents)
}

func TestInspectSkipsChildrenWhenFalse(t *testing.T) {
	program := sampleProgram()

	visitedCall := false
	Inspect(program, func(n Node) bool {
		if _, ok := n.(*Function); ok {
			return false
		}
		if _, ok := n.(*AssignStmt); ok {
			visitedCall = true
		}
		return true
	})

	assert.False(t, visitedCall, "children of a skipped function should not be visited")
}

func TestCountNodes(t *testing.T) {
	// add(x, 1) counts the call, its callee ident and both arguments.
	call := &CallExpr{
		Callee: Ident{Value: "add"},
		Args: []Expr{
			&IdentExpr{Name: "x"},
			&LiteralExpr{Kind: NumberLiteral, Value: "1"},
		},
	}

	assert.Equal(t, 4, CountNodes(call))
}

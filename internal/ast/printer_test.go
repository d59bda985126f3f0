package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetStmtString(t *testing.T) {
	letStmt := &LetStmt{
		Names: []Ident{{Value: "balance"}},
		Expr:  &LiteralExpr{Kind: NumberLiteral, Value: "100"},
	}

	assert.Equal(t, "let balance := 100", letStmt.String())
}

func TestLetStmtStringWithoutInitializer(t *testing.T) {
	letStmt := &LetStmt{
		Names: []Ident{{Value: "ok"}, {Value: "data"}},
	}

	assert.Equal(t, "let ok, data", letStmt.String())
}

func TestAssignStmtString(t *testing.T) {
	assign := &AssignStmt{
		Targets: []Ident{{Value: "x"}},
		Value: &CallExpr{
			Callee: Ident{Value: "add"},
			Args: []Expr{
				&IdentExpr{Name: "x"},
				&LiteralExpr{Kind: NumberLiteral, Value: "1"},
			},
		},
	}

	assert.Equal(t, "x := add(x, 1)", assign.String())
}

func TestLiteralSpellingPreserved(t *testing.T) {
	hex := &LiteralExpr{Kind: NumberLiteral, Value: "0xFF"}
	assert.Equal(t, "0xFF", hex.String())

	boolean := &LiteralExpr{Kind: BoolLiteral, Value: "true"}
	assert.Equal(t, "true", boolean.String())
}

func TestCallExprStringNoArgs(t *testing.T) {
	call := &CallExpr{Callee: Ident{Value: "caller"}}
	assert.Equal(t, "caller()", call.String())
}

func TestIfStmtString(t *testing.T) {
	ifStmt := &IfStmt{
		Condition: &CallExpr{
			Callee: Ident{Value: "iszero"},
			Args:   []Expr{&IdentExpr{Name: "len"}},
		},
		Body: &Block{Statements: []Stmt{&LeaveStmt{}}},
	}

	assert.Equal(t, "if iszero(len) {\n    leave\n}", ifStmt.String())
}

func TestEmptyBlockString(t *testing.T) {
	block := &Block{}
	assert.Equal(t, "{ }", block.String())
}

func TestFunctionString(t *testing.T) {
	fn := &Function{
		Name: Ident{Value: "checked_add"},
		Params: []*FunctionParam{
			{Name: Ident{Value: "a"}},
			{Name: Ident{Value: "b"}},
		},
		Returns: []*FunctionParam{
			{Name: Ident{Value: "r"}},
		},
		Body: &Block{Statements: []Stmt{
			&AssignStmt{
				Targets: []Ident{{Value: "r"}},
				Value: &CallExpr{
					Callee: Ident{Value: "add"},
					Args:   []Expr{&IdentExpr{Name: "a"}, &IdentExpr{Name: "b"}},
				},
			},
		}},
	}

	result := fn.String()
	assert.Contains(t, result, "function checked_add(a, b) -> r {")
	assert.Contains(t, result, "    r := add(a, b)")
}

func TestFunctionStringNoReturns(t *testing.T) {
	fn := &Function{
		Name: Ident{Value: "noop"},
		Body: &Block{},
	}

	assert.Equal(t, "function noop() { }", fn.String())
}

func TestSwitchStmtString(t *testing.T) {
	sw := &SwitchStmt{
		Value: &IdentExpr{Name: "selector"},
		Cases: []*SwitchCase{
			{
				Value: &LiteralExpr{Kind: NumberLiteral, Value: "0"},
				Body: &Block{Statements: []Stmt{
					&AssignStmt{
						Targets: []Ident{{Value: "r"}},
						Value:   &LiteralExpr{Kind: NumberLiteral, Value: "1"},
					},
				}},
			},
		},
		Default: &Block{Statements: []Stmt{
			&ExprStmt{Expr: &CallExpr{
				Callee: Ident{Value: "revert"},
				Args: []Expr{
					&LiteralExpr{Kind: NumberLiteral, Value: "0"},
					&LiteralExpr{Kind: NumberLiteral, Value: "0"},
				},
			}},
		}},
	}

	expected := "switch selector\ncase 0 {\n    r := 1\n}\ndefault {\n    revert(0, 0)\n}"
	assert.Equal(t, expected, sw.String())
}

func TestForStmtString(t *testing.T) {
	forStmt := &ForStmt{
		Init: &Block{Statements: []Stmt{
			&LetStmt{
				Names: []Ident{{Value: "i"}},
				Expr:  &LiteralExpr{Kind: NumberLiteral, Value: "0"},
			},
		}},
		Condition: &CallExpr{
			Callee: Ident{Value: "lt"},
			Args:   []Expr{&IdentExpr{Name: "i"}, &IdentExpr{Name: "n"}},
		},
		Post: &Block{Statements: []Stmt{
			&AssignStmt{
				Targets: []Ident{{Value: "i"}},
				Value: &CallExpr{
					Callee: Ident{Value: "add"},
					Args:   []Expr{&IdentExpr{Name: "i"}, &LiteralExpr{Kind: NumberLiteral, Value: "1"}},
				},
			},
		}},
		Body: &Block{Statements: []Stmt{&BreakStmt{}}},
	}

	expected := "for {\n    let i := 0\n} lt(i, n) {\n    i := add(i, 1)\n} {\n    break\n}"
	assert.Equal(t, expected, forStmt.String())
}

func TestProgramString(t *testing.T) {
	program := &Program{
		Entry: &Block{Statements: []Stmt{
			&LetStmt{
				Names: []Ident{{Value: "x"}},
				Expr: &CallExpr{
					Callee: Ident{Value: "calldataload"},
					Args:   []Expr{&LiteralExpr{Kind: NumberLiteral, Value: "0"}},
				},
			},
			&ExprStmt{Expr: &CallExpr{
				Callee: Ident{Value: "sstore"},
				Args: []Expr{
					&LiteralExpr{Kind: NumberLiteral, Value: "0"},
					&IdentExpr{Name: "x"},
				},
			}},
		}},
	}

	expected := "let x := calldataload(0)\nsstore(0, x)\n"
	assert.Equal(t, expected, program.String())
}

func TestNestedBlockIndentation(t *testing.T) {
	program := &Program{
		Entry: &Block{Statements: []Stmt{
			&IfStmt{
				Condition: &IdentExpr{Name: "flag"},
				Body: &Block{Statements: []Stmt{
					&IfStmt{
						Condition: &IdentExpr{Name: "inner"},
						Body: &Block{Statements: []Stmt{
							&ExprStmt{Expr: &CallExpr{
								Callee: Ident{Value: "stop"},
							}},
						}},
					},
				}},
			},
		}},
	}

	expected := "if flag {\n    if inner {\n        stop()\n    }\n}\n"
	assert.Equal(t, expected, program.String())
}

package ast

type NodeType int

// regenerate nodetype_string.go with `go generate ./internal/ast`
//
//go:generate stringer -type=NodeType
const (
	// Special / error
	ILLEGAL NodeType = iota

	// High-level constructs
	PROGRAM
	BLOCK
	IDENT

	// Functions
	FUNCTION
	FUNCTION_PARAM

	// Statements
	EXPR_STMT
	LET_STMT
	ASSIGN_STMT
	IF_STMT
	SWITCH_STMT
	SWITCH_CASE
	FOR_STMT
	BREAK_STMT
	CONTINUE_STMT
	LEAVE_STMT

	// Expressions
	CALL_EXPR
	LITERAL_EXPR
	IDENT_EXPR
)

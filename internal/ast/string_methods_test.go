package ast

import (
	"testing"
)

// Tests for auto-generated string methods
func TestNodeTypeStrings(t *testing.T) {
	// Test all NodeType constants to cover nodetype_string.go
	nodeTypes := []NodeType{
		ILLEGAL,
		PROGRAM,
		BLOCK,
		IDENT,
		FUNCTION,
		FUNCTION_PARAM,
		EXPR_STMT,
		LET_STMT,
		ASSIGN_STMT,
		IF_STMT,
		SWITCH_STMT,
		SWITCH_CASE,
		FOR_STMT,
		BREAK_STMT,
		CONTINUE_STMT,
		LEAVE_STMT,
		CALL_EXPR,
		LITERAL_EXPR,
		IDENT_EXPR,
	}

	for _, nodeType := range nodeTypes {
		str := nodeType.String()
		if str == "" {
			t.Errorf("NodeType %v should have non-empty string", nodeType)
		}
	}
}

func TestNodeTypeStringOutOfRange(t *testing.T) {
	bogus := NodeType(999)
	if bogus.String() != "NodeType(999)" {
		t.Errorf("out-of-range NodeType should fall back to numeric form, got %q", bogus.String())
	}
}

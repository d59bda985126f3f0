package ast

// Program represents a Sumi source unit: the entry block that runs top to
// bottom, with function definitions hoisted wherever they appear.
// Example: "let x := calldataload(0)\nsstore(0, x)"
type Program struct {
	Pos    Position
	EndPos Position
	Source string // file name used in diagnostics
	Entry  *Block
}

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Ident represents any identifier like variable or function names.
// Example: "x", "transfer", "balance_3"
type Ident struct {
	Pos    Position
	EndPos Position
	Value  string
}

// Block represents a braced statement sequence introducing a scope
// Example: "{ let a := 1 mstore(0, a) }"
type Block struct {
	Pos        Position
	EndPos     Position
	Statements []Stmt
}

// Function represents a function definition. Definitions may appear in any
// block; they take effect for the whole enclosing block and do not see
// variables declared outside their own body.
// Example: "function checked_add(a, b) -> r { r := add(a, b) if lt(r, a) { revert(0, 0) } }"
type Function struct {
	Pos     Position
	EndPos  Position
	Name    Ident
	Params  []*FunctionParam
	Returns []*FunctionParam
	Body    *Block
}

// FunctionParam represents a parameter or named return of a function.
// Returns are zero-initialized on entry.
// Example: "a", "r" in "function f(a) -> r"
type FunctionParam struct {
	Pos    Position
	EndPos Position
	Name   Ident
}

// ExprStmt represents a call evaluated for its effect in statement position
// Example: "sstore(0, caller())", "pop(staticcall(gas(), addr, 0, 0, 0, 0))"
type ExprStmt struct {
	Pos    Position
	EndPos Position
	Expr   Expr
}

// LetStmt represents variable declarations, with or without an initializer.
// Without one, each name is bound to zero.
// Example: "let x := add(a, 1)", "let ok, data", "let lo, hi := split(v)"
type LetStmt struct {
	Pos    Position
	EndPos Position
	Names  []Ident
	Expr   Expr // nil when declared without initializer
}

// AssignStmt represents assignment to one or more existing variables
// Example: "x := mload(p)", "ok, val := try_read(slot)"
type AssignStmt struct {
	Pos     Position
	EndPos  Position
	Targets []Ident
	Value   Expr
}

// IfStmt represents a conditional with no else branch. The body runs when
// the condition is nonzero.
// Example: "if iszero(len) { leave }"
type IfStmt struct {
	Pos       Position
	EndPos    Position
	Condition Expr
	Body      *Block
}

// SwitchStmt represents a multi-way branch on a value. At most one default,
// case values must be distinct, and at least one clause must be present.
// Example: "switch selector case 0x70a08231 { ... } default { revert(0, 0) }"
type SwitchStmt struct {
	Pos     Position
	EndPos  Position
	Value   Expr
	Cases   []*SwitchCase
	Default *Block // nil when no default clause
}

// SwitchCase represents one case clause of a switch
// Example: "case 0x01 { result := 1 }"
type SwitchCase struct {
	Pos    Position
	EndPos Position
	Value  *LiteralExpr
	Body   *Block
}

// ForStmt represents a loop. Init runs once and its declarations stay in
// scope for the condition, post and body. Continue jumps to post, break
// leaves the loop.
// Example: "for { let i := 0 } lt(i, n) { i := add(i, 1) } { ... }"
type ForStmt struct {
	Pos       Position
	EndPos    Position
	Init      *Block
	Condition Expr
	Post      *Block
	Body      *Block
}

// BreakStmt exits the innermost enclosing loop
// Example: "break"
type BreakStmt struct {
	Pos    Position
	EndPos Position
}

// ContinueStmt jumps to the post block of the innermost enclosing loop
// Example: "continue"
type ContinueStmt struct {
	Pos    Position
	EndPos Position
}

// LeaveStmt returns from the enclosing function with the current values of
// its named returns
// Example: "leave"
type LeaveStmt struct {
	Pos    Position
	EndPos Position
}

// CallExpr represents a call to a builtin or user-defined function.
// Arguments are evaluated right to left.
// Example: "add(x, 1)", "keccak256(ptr, len)", "round_up(size)"
type CallExpr struct {
	Pos    Position
	EndPos Position
	Callee Ident
	Args   []Expr
}

// LiteralExpr represents literal values. The source spelling is preserved
// verbatim so printing does not change the notation.
// Example: "42", "0xff", "true"
type LiteralExpr struct {
	Pos    Position
	EndPos Position
	Kind   LiteralKind
	Value  string
}

// LiteralKind distinguishes the literal notations of the language
type LiteralKind int

const (
	NumberLiteral LiteralKind = iota // decimal or 0x hex, value < 2^256
	BoolLiteral                      // true or false
)

// IdentExpr represents a variable reference
// Example: "x", "total", "size_2"
type IdentExpr struct {
	Pos    Position
	EndPos Position
	Name   string
}

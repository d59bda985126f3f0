package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

type PosIdent struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `@Ident`
}

type Program struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Statements []*Statement `@@*`
}

type Statement struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Function *Function     `  @@`
	Let      *LetStmt      `| @@`
	If       *IfStmt       `| @@`
	Switch   *SwitchStmt   `| @@`
	For      *ForStmt      `| @@`
	Break    *BreakStmt    `| @@`
	Continue *ContinueStmt `| @@`
	Leave    *LeaveStmt    `| @@`
	Block    *Block        `| @@`
	Assign   *AssignStmt   `| @@`
	Expr     *ExprStmt     `| @@`
}

type Block struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Statements []*Statement `"{" @@* "}"`
}

type Function struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Name    PosIdent    `"function" @@ "("`
	Params  []*PosIdent `[ @@ { "," @@ } ] ")"`
	Returns []*PosIdent `[ "->" @@ { "," @@ } ]`
	Body    *Block      `@@`
}

type LetStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Names  []*PosIdent `"let" @@ { "," @@ }`
	Value  *Expr       `[ ":=" @@ ]`
}

type AssignStmt struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Targets []*PosIdent `@@ { "," @@ }`
	Value   *Expr       `":=" @@`
}

type ExprStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Call   *CallExpr `@@`
}

type IfStmt struct {
	Pos       lexer.Position
	EndPos    lexer.Position
	Condition *Expr  `"if" @@`
	Body      *Block `@@`
}

type SwitchStmt struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Value   *Expr         `"switch" @@`
	Cases   []*SwitchCase `@@*`
	Default *Block        `[ "default" @@ ]`
}

type SwitchCase struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  *Literal `"case" @@`
	Body   *Block   `@@`
}

type ForStmt struct {
	Pos       lexer.Position
	EndPos    lexer.Position
	Init      *Block `"for" @@`
	Condition *Expr  `@@`
	Post      *Block `@@`
	Body      *Block `@@`
}

type BreakStmt struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Keyword string `@"break"`
}

type ContinueStmt struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Keyword string `@"continue"`
}

type LeaveStmt struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Keyword string `@"leave"`
}

type Expr struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Call    *CallExpr `  @@`
	Literal *Literal  `| @@`
	Ident   *PosIdent `| @@`
}

type CallExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Callee PosIdent `@@ "("`
	Args   []*Expr  `[ @@ { "," @@ } ] ")"`
}

type Literal struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Number *string `  @Integer`
	Bool   *string `| @("true" | "false")`
}

package lsp

import (
	"sumi/internal/ast"
)

// SemanticToken represents a single LSP semantic token entry.
// Line and StartChar are 0-based positions, TokenType is an index into
// SemanticTokenTypes and TokenModifiers is a bitmask over
// SemanticTokenModifiers.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// collectSemanticTokens walks the program in source order, which is also the
// order the LSP delta encoding requires.
func collectSemanticTokens(program *ast.Program) []SemanticToken {
	var tokens []SemanticToken

	if program == nil {
		return tokens
	}

	for _, s := range program.Entry.Statements {
		tokens = append(tokens, walkStmt(s)...)
	}

	return tokens
}

func walkStmt(s ast.Stmt) []SemanticToken {
	var tokens []SemanticToken

	switch v := s.(type) {
	case *ast.Function:
		tokens = append(tokens, walkFunction(v)...)
	case *ast.LetStmt:
		for i := range v.Names {
			n := &v.Names[i]
			tokens = append(tokens, makeToken(n.Pos, n.EndPos, n.Value, "variable", 1)...)
		}
		tokens = append(tokens, walkExpression(v.Expr)...)
	case *ast.AssignStmt:
		for i := range v.Targets {
			n := &v.Targets[i]
			tokens = append(tokens, makeToken(n.Pos, n.EndPos, n.Value, "variable", 0)...)
		}
		tokens = append(tokens, walkExpression(v.Value)...)
	case *ast.ExprStmt:
		tokens = append(tokens, walkExpression(v.Expr)...)
	case *ast.IfStmt:
		tokens = append(tokens, walkExpression(v.Condition)...)
		tokens = append(tokens, walkBlock(v.Body)...)
	case *ast.SwitchStmt:
		// Case values are literals and literals stay with the client
		// grammar, so only the scrutinee and the bodies contribute.
		tokens = append(tokens, walkExpression(v.Value)...)
		for _, c := range v.Cases {
			tokens = append(tokens, walkBlock(c.Body)...)
		}
		if v.Default != nil {
			tokens = append(tokens, walkBlock(v.Default)...)
		}
	case *ast.ForStmt:
		tokens = append(tokens, walkBlock(v.Init)...)
		tokens = append(tokens, walkExpression(v.Condition)...)
		tokens = append(tokens, walkBlock(v.Post)...)
		tokens = append(tokens, walkBlock(v.Body)...)
	case *ast.Block:
		tokens = append(tokens, walkBlock(v)...)
	}

	return tokens
}

func walkBlock(b *ast.Block) []SemanticToken {
	var tokens []SemanticToken

	if b == nil {
		return tokens
	}

	for _, s := range b.Statements {
		tokens = append(tokens, walkStmt(s)...)
	}

	return tokens
}

func walkFunction(f *ast.Function) []SemanticToken {
	var tokens []SemanticToken

	if f == nil {
		return tokens
	}

	tokens = append(tokens, makeToken(f.Name.Pos, f.Name.EndPos, f.Name.Value, "function", 1)...)

	for _, param := range f.Params {
		tokens = append(tokens, makeToken(param.Name.Pos, param.Name.EndPos, param.Name.Value, "parameter", 1)...)
	}
	for _, ret := range f.Returns {
		tokens = append(tokens, makeToken(ret.Name.Pos, ret.Name.EndPos, ret.Name.Value, "parameter", 1)...)
	}

	tokens = append(tokens, walkBlock(f.Body)...)

	return tokens
}

func walkExpression(expr ast.Expr) []SemanticToken {
	var tokens []SemanticToken

	if expr == nil {
		return tokens
	}

	switch v := expr.(type) {
	case *ast.IdentExpr:
		// Variable references
		tokens = append(tokens, makeToken(v.Pos, v.EndPos, v.Name, "variable", 0)...)
	case *ast.CallExpr:
		// Builtins and user functions look the same at a call site
		tokens = append(tokens, makeToken(v.Callee.Pos, v.Callee.EndPos, v.Callee.Value, "function", 0)...)
		for _, arg := range v.Args {
			tokens = append(tokens, walkExpression(arg)...)
		}
	case *ast.LiteralExpr:
		// Literal notations are handled by the client grammar
		return tokens
	}

	return tokens
}

// makeToken creates a semantic token for a given position and text
func makeToken(pos, endPos ast.Position, value, tokenType string, declModifier int) []SemanticToken {
	if value == "" {
		return nil
	}

	length := endPos.Column - pos.Column
	if length <= 0 {
		length = len(value)
	}

	return []SemanticToken{{
		Line:           uint32(pos.Line - 1),   // LSP uses 0-based line numbers
		StartChar:      uint32(pos.Column - 1), // LSP uses 0-based column numbers
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: declModifier << indexOf("declaration", SemanticTokenModifiers),
	}}
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0 // Default to first token type if not found
}

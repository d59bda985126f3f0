// Package token SPDX-License-Identifier: Apache-2.0
package token

type TokenType string

type Token struct {
	Type    TokenType
	Literal string
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT"  // x, balance, size_2 ...
	NUMBER = "NUMBER" // 42, 0xff

	// Operators
	DEFINE = ":="
	ARROW  = "->"

	// Delimiters
	COMMA  = ","
	LPAREN = "("
	RPAREN = ")"
	LBRACE = "{"
	RBRACE = "}"

	COMMENT = "COMMENT"

	// Keywords
	FUNCTION = "FUNCTION"
	LET      = "LET"
	IF       = "IF"
	SWITCH   = "SWITCH"
	CASE     = "CASE"
	DEFAULT  = "DEFAULT"
	FOR      = "FOR"
	BREAK    = "BREAK"
	CONTINUE = "CONTINUE"
	LEAVE    = "LEAVE"
	TRUE     = "TRUE"
	FALSE    = "FALSE"
)

var keywords = map[string]TokenType{
	"function": FUNCTION,
	"let":      LET,
	"if":       IF,
	"switch":   SWITCH,
	"case":     CASE,
	"default":  DEFAULT,
	"for":      FOR,
	"break":    BREAK,
	"continue": CONTINUE,
	"leave":    LEAVE,
	"true":     TRUE,
	"false":    FALSE,
}

// KeywordNames lists the reserved words in source order of the const block,
// for completion and highlighting.
var KeywordNames = []string{
	"function", "let", "if", "switch", "case", "default",
	"for", "break", "continue", "leave", "true", "false",
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether a name is reserved by the language.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}

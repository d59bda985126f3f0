package parser

import (
	"github.com/alecthomas/participle/v2"

	"sumi/grammar"
	"sumi/internal/ast"
	"sumi/internal/errors"
)

// ParseSource parses source text and lowers it onto the optimizer tree.
// Syntax failures come back as diagnostics rather than printed output, so
// quiet consumers like the language server can use this directly.
func ParseSource(path string, source string) (*ast.Program, []errors.CompilerError) {
	tree, err := grammar.ParseString(path, source)
	if err != nil {
		return nil, []errors.CompilerError{convertParseError(path, err)}
	}

	return lowerProgram(path, tree), nil
}

func convertParseError(path string, err error) errors.CompilerError {
	if pe, ok := err.(participle.Error); ok {
		pos := pe.Position()
		if pos.Filename == "" {
			pos.Filename = path
		}
		return errors.SyntaxError(pe.Message(), ast.Position{
			Filename: pos.Filename,
			Offset:   pos.Offset,
			Line:     pos.Line,
			Column:   pos.Column,
		})
	}
	return errors.SyntaxError(err.Error(), ast.Position{Filename: path, Line: 1, Column: 1})
}

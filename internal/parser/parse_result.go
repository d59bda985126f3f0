package parser

import (
	"sumi/internal/ast"
	"sumi/internal/errors"
)

// ParseResult bundles the lowered program with any diagnostics produced
// while reading it. Program is nil when the source failed to parse.
type ParseResult struct {
	Program *ast.Program
	Errors  []errors.CompilerError
}

// ParseSourceWithResult parses source code and returns the bundled result.
func ParseSourceWithResult(path string, source string) *ParseResult {
	program, errs := ParseSource(path, source)
	return &ParseResult{
		Program: program,
		Errors:  errs,
	}
}

// HasErrors reports whether the result contains blocking diagnostics.
// Warnings do not count.
func (pr *ParseResult) HasErrors() bool {
	return errors.HasBlockingErrors(pr.Errors)
}

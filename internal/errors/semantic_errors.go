package errors

import (
	"fmt"
	"strings"

	"sumi/internal/ast"
)

// SemanticErrorBuilder provides a fluent interface for creating semantic errors with suggestions
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError creates a new semantic error builder
func NewSemanticError(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewSemanticWarning creates a new semantic warning builder
func NewSemanticWarning(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithNote adds a note to the error
func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *SemanticErrorBuilder) Build() CompilerError {
	return b.err
}

// Common error constructors with suggestions

// UndefinedVariable creates an error for undefined variables with suggestions
func UndefinedVariable(name string, pos ast.Position, similarNames []string) CompilerError {
	builder := NewSemanticError(ErrorUndefinedVariable, fmt.Sprintf("undefined variable '%s'", name), pos).
		WithLength(len(name))

	if len(similarNames) > 0 {
		if len(similarNames) == 1 {
			builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similarNames[0]))
		} else {
			suggestions := strings.Join(similarNames, "', '")
			builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", suggestions))
		}
	} else {
		builder = builder.WithSuggestion("make sure the variable is declared before use").
			WithNote("variables must be declared with 'let'")
	}

	return builder.Build()
}

// UndefinedFunction creates an error for calls to unknown functions
func UndefinedFunction(name string, pos ast.Position, similarNames []string) CompilerError {
	builder := NewSemanticError(ErrorUndefinedFunction, fmt.Sprintf("undefined function '%s'", name), pos).
		WithLength(len(name))

	if len(similarNames) > 0 {
		if len(similarNames) == 1 {
			builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similarNames[0]))
		} else {
			suggestions := strings.Join(similarNames, "', '")
			builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", suggestions))
		}
	}

	return builder.WithHelp("functions are visible in the whole block that defines them, including before the definition").Build()
}

// ShadowedName creates an error for declarations reusing a visible name
func ShadowedName(name string, pos ast.Position, original ast.Position) CompilerError {
	return NewSemanticError(ErrorShadowedName, fmt.Sprintf("'%s' is already declared in an enclosing scope", name), pos).
		WithLength(len(name)).
		WithSuggestion(fmt.Sprintf("rename this '%s' to a fresh name", name)).
		WithNote(fmt.Sprintf("previous declaration at line %d, column %d", original.Line, original.Column)).
		Build()
}

// ReservedName creates an error for declarations using a builtin name
func ReservedName(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorReservedName, fmt.Sprintf("'%s' is a builtin operation and cannot be redeclared", name), pos).
		WithLength(len(name)).
		WithSuggestion(fmt.Sprintf("pick a different name, for example '%s_'", name)).
		Build()
}

// ArityMismatch creates an error for call argument count mismatches
func ArityMismatch(functionName string, expected, actual int, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorArityMismatch,
		fmt.Sprintf("'%s' expects %d argument(s), got %d", functionName, expected, actual), pos).
		WithLength(len(functionName)).
		WithSuggestion(fmt.Sprintf("provide exactly %d argument(s)", expected)).
		Build()
}

// ValueCountMismatch creates an error for declarations or assignments whose
// sides disagree on how many values flow
func ValueCountMismatch(wanted, got int, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorValueCountMismatch,
		fmt.Sprintf("left-hand side names %d value(s) but the right-hand side produces %d", wanted, got), pos).
		WithSuggestion("match the number of names to the number of produced values").
		Build()
}

// StrayLoopControl creates an error for break or continue outside a loop body
func StrayLoopControl(keyword string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorStrayLoopControl,
		fmt.Sprintf("'%s' outside a loop body", keyword), pos).
		WithLength(len(keyword)).
		WithNote("loop init and post blocks do not count as the loop body").
		Build()
}

// StrayLeave creates an error for leave outside a function body
func StrayLeave(pos ast.Position) CompilerError {
	return NewSemanticError(ErrorStrayLeave, "'leave' outside a function body", pos).
		WithLength(len("leave")).
		WithSuggestion("use a terminating builtin like stop() or return(p, s) at top level").
		Build()
}

// DuplicateCase creates an error for switch cases repeating a value
func DuplicateCase(value string, pos ast.Position, first ast.Position) CompilerError {
	return NewSemanticError(ErrorDuplicateCase, fmt.Sprintf("duplicate case value %s", value), pos).
		WithLength(len(value)).
		WithNote(fmt.Sprintf("first used at line %d, column %d", first.Line, first.Column)).
		WithNote("case values are compared numerically, so 1 and 0x1 collide").
		Build()
}

// EmptySwitch creates an error for a switch with no clauses at all
func EmptySwitch(pos ast.Position) CompilerError {
	return NewSemanticError(ErrorEmptySwitch, "switch needs at least one case or a default clause", pos).
		WithSuggestion("add a 'default { }' clause if no case applies").
		Build()
}

// LiteralOverflow creates an error for number literals beyond 256 bits
func LiteralOverflow(value string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorLiteralOverflow, fmt.Sprintf("literal %s does not fit into 256 bits", value), pos).
		WithLength(len(value)).
		WithNote("values wrap at 2^256 only when computed, not when written as literals").
		Build()
}

// DiscardedValue creates an error for statement-position calls that produce values
func DiscardedValue(functionName string, count int, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorDiscardedValue,
		fmt.Sprintf("call to '%s' produces %d value(s) that are not consumed", functionName, count), pos).
		WithLength(len(functionName)).
		WithSuggestion(fmt.Sprintf("discard the result explicitly: pop(%s(...))", functionName)).
		WithSuggestion("or bind it: let result := ...").
		Build()
}

// FunctionUsedAsVariable creates an error for reading or assigning a function name
func FunctionUsedAsVariable(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorFunctionUsedAsVariable,
		fmt.Sprintf("'%s' is a function, not a variable", name), pos).
		WithLength(len(name)).
		WithSuggestion(fmt.Sprintf("call it instead: %s(...)", name)).
		Build()
}

// VariableUsedAsFunction creates an error for calling a variable
func VariableUsedAsFunction(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorVariableUsedAsFunction,
		fmt.Sprintf("'%s' is a variable, not a function", name), pos).
		WithLength(len(name)).
		Build()
}

// SyntaxError wraps a parse failure into the shared diagnostic shape
func SyntaxError(message string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorSyntax, message, pos).Build()
}

// ResourceLimit creates a notice for a pass that skipped one site because
// a configured budget was exhausted. Never fatal; the site is left as-is.
func ResourceLimit(passName, limit string, pos ast.Position) CompilerError {
	return NewSemanticWarning(ErrorResourceLimit,
		fmt.Sprintf("pass '%s' skipped a site: %s", passName, limit), pos).
		WithHelp("raise the corresponding limit flag to optimize this site").
		Build()
}

// InvariantViolated creates an error for a pass that broke the program,
// naming the offending pass so it can be reported and disabled.
func InvariantViolated(passName string, detail CompilerError) CompilerError {
	return NewSemanticError(ErrorInvariantViolated,
		fmt.Sprintf("pass '%s' produced an invalid program: %s", passName, detail.Message), detail.Position).
		WithNote(fmt.Sprintf("underlying diagnostic: %s", detail.Code)).
		WithHelp("rerun with this pass removed from --passes to confirm, then report the input").
		Build()
}

// UnusedVariable creates a warning for unused variables
func UnusedVariable(name string, pos ast.Position) CompilerError {
	return NewSemanticWarning(WarningUnusedVariable, fmt.Sprintf("variable '%s' is declared but never used", name), pos).
		WithLength(len(name)).
		WithSuggestion("remove the variable declaration if it's not needed").
		WithHelp("the unused definition sweep removes such bindings when their initializer is pure").
		Build()
}

// UnreachableCode creates a warning for unreachable code
func UnreachableCode(pos ast.Position) CompilerError {
	return NewSemanticWarning(WarningUnreachableCode, "unreachable code", pos).
		WithSuggestion("remove the unreachable code").
		WithNote("nothing runs after a terminating call, break, continue or leave").
		Build()
}

// UnusedFunction creates a warning for functions that are never called
func UnusedFunction(name string, pos ast.Position) CompilerError {
	return NewSemanticWarning(WarningUnusedFunction, fmt.Sprintf("function '%s' is defined but never called", name), pos).
		WithLength(len(name)).
		WithSuggestion("remove the function definition if it's not needed").
		Build()
}

// FindSimilarNames returns candidate names within a small edit distance,
// used for did-you-mean suggestions.
func FindSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Create matrix
	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	// Initialize first row and column
	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	// Fill the matrix
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

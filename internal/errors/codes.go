package errors

// Error codes for the Sumi optimizer toolchain
// These codes are used in error messages and documentation
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0001-E0099: Structural validation errors
// E0100-E0199: Syntax errors
// E0200-E0799: Reserved for future use
// E0800-E0899: Optimizer resource-limit notices (warning level)
// E0900-E0999: Internal invariant failures
// W0001-W0099: Warning codes

const (
	// Currently used structural validation errors (E0001-E0014)

	// E0001: Variable resolution errors
	ErrorUndefinedVariable = "E0001"

	// E0002: Function resolution errors
	ErrorUndefinedFunction = "E0002"

	// E0003: Redeclaration of a name that is still visible
	ErrorShadowedName = "E0003"

	// E0004: Declaration using a reserved builtin name
	ErrorReservedName = "E0004"

	// E0005: Call argument count errors
	ErrorArityMismatch = "E0005"

	// E0006: Declaration or assignment value count errors
	ErrorValueCountMismatch = "E0006"

	// E0007: break or continue outside a loop body
	ErrorStrayLoopControl = "E0007"

	// E0008: leave outside a function body
	ErrorStrayLeave = "E0008"

	// E0009: Duplicate switch case value
	ErrorDuplicateCase = "E0009"

	// E0010: Switch without any case or default clause
	ErrorEmptySwitch = "E0010"

	// E0011: Number literal beyond 256 bits
	ErrorLiteralOverflow = "E0011"

	// E0012: Statement-position call whose values are discarded
	ErrorDiscardedValue = "E0012"

	// E0013: Function name used where a variable is required
	ErrorFunctionUsedAsVariable = "E0013"

	// E0014: Variable name used where a function is required
	ErrorVariableUsedAsFunction = "E0014"

	// Syntax errors (reserved range: E0100-E0199)

	// E0101: Source text does not parse
	ErrorSyntax = "E0101"

	// Optimizer resource-limit notices (reserved range: E0800-E0899)

	// E0801: A pass skipped one site because a configured limit was hit
	ErrorResourceLimit = "E0801"

	// Internal invariant failures (reserved range: E0900-E0999)

	// E0901: A pass produced a tree that fails validation
	ErrorInvariantViolated = "E0901"

	// Warning codes

	// W0001: Unused variable warning
	WarningUnusedVariable = "W0001"

	// W0002: Unreachable code warning
	WarningUnreachableCode = "W0002"

	// W0003: Unused function warning
	WarningUnusedFunction = "W0003"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUndefinedVariable:
		return "Variable is used but not declared in any enclosing scope"
	case ErrorUndefinedFunction:
		return "Function is called but not defined in any enclosing block"
	case ErrorShadowedName:
		return "Declaration reuses a name that is still visible"
	case ErrorReservedName:
		return "Builtin operation names are reserved and cannot be declared"
	case ErrorArityMismatch:
		return "Call supplies the wrong number of arguments"
	case ErrorValueCountMismatch:
		return "Right-hand side produces a different number of values than the left-hand side names"
	case ErrorStrayLoopControl:
		return "break and continue are only valid inside a loop body"
	case ErrorStrayLeave:
		return "leave is only valid inside a function body"
	case ErrorDuplicateCase:
		return "Switch cases must have distinct values"
	case ErrorEmptySwitch:
		return "Switch needs at least one case or a default clause"
	case ErrorLiteralOverflow:
		return "Number literals must fit into 256 bits"
	case ErrorDiscardedValue:
		return "A call in statement position must not produce values"
	case ErrorFunctionUsedAsVariable:
		return "Function names cannot be read or assigned like variables"
	case ErrorVariableUsedAsFunction:
		return "Variables cannot be called"
	case ErrorSyntax:
		return "Source text does not conform to the grammar"
	case ErrorResourceLimit:
		return "An optimization pass skipped a site because a configured limit was hit"
	case ErrorInvariantViolated:
		return "An optimization pass produced an invalid program"
	case WarningUnusedVariable:
		return "Variable is declared but never used"
	case WarningUnreachableCode:
		return "Code is unreachable"
	case WarningUnusedFunction:
		return "Function is defined but never called"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Validation"
	case code >= "E0100" && code < "E0200":
		return "Syntax"
	case code >= "E0800" && code < "E0900":
		return "Optimizer"
	case code >= "E0900" && code < "E1000":
		return "Internal"
	case code[0] == 'W':
		return "Warning"
	default:
		return "Unknown"
	}
}

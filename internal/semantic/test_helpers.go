package semantic

import (
	"sumi/internal/errors"
)

// Test helper functions for separating fatal violations from the
// development-time warnings that would otherwise clutter assertions.

// FilterWarnings removes warning-level diagnostics.
func FilterWarnings(diags []errors.CompilerError) []errors.CompilerError {
	var filtered []errors.CompilerError
	for _, d := range diags {
		if !errors.IsWarning(d.Code) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// OnlyWarnings keeps warning-level diagnostics.
func OnlyWarnings(diags []errors.CompilerError) []errors.CompilerError {
	var filtered []errors.CompilerError
	for _, d := range diags {
		if errors.IsWarning(d.Code) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// CodesOf projects diagnostics onto their codes, preserving order.
func CodesOf(diags []errors.CompilerError) []string {
	codes := make([]string, len(diags))
	for i, d := range diags {
		codes[i] = d.Code
	}
	return codes
}

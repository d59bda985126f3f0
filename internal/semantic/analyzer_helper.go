package semantic

import (
	"sumi/internal/builtins"
)

// accessibleVariableNames collects every value name resolvable from the
// current scope, honoring function boundaries the same way Lookup does.
func (a *Analyzer) accessibleVariableNames() []string {
	var names []string
	crossed := false
	for scope := a.symbols; scope != nil; scope = scope.parent {
		for name, symbol := range scope.symbols {
			if symbol.Kind == SymbolFunction {
				continue
			}
			if !crossed {
				names = append(names, name)
			}
		}
		if scope.boundary {
			crossed = true
		}
	}
	return names
}

// callableNames collects every visible function name plus the builtin
// dialect, for suggestions on undefined calls.
func (a *Analyzer) callableNames() []string {
	var names []string
	for scope := a.symbols; scope != nil; scope = scope.parent {
		for name, symbol := range scope.symbols {
			if symbol.Kind == SymbolFunction {
				names = append(names, name)
			}
		}
	}
	for _, builtin := range builtins.All {
		names = append(names, builtin.Name)
	}
	return names
}

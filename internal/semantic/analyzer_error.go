package semantic

import (
	"sumi/internal/ast"
	"sumi/internal/errors"
)

func (a *Analyzer) addCompilerError(err errors.CompilerError) {
	a.errors = append(a.errors, err)
}

func (a *Analyzer) addUndefinedVariableError(name string, pos ast.Position) {
	// Typo suggestions come from the names actually accessible here
	similar := errors.FindSimilarNames(name, a.accessibleVariableNames())
	a.addCompilerError(errors.UndefinedVariable(name, pos, similar))
}

func (a *Analyzer) addUndefinedFunctionError(name string, pos ast.Position) {
	similar := errors.FindSimilarNames(name, a.callableNames())
	a.addCompilerError(errors.UndefinedFunction(name, pos, similar))
}

func (a *Analyzer) addShadowedNameError(name string, pos ast.Position, original ast.Position) {
	a.addCompilerError(errors.ShadowedName(name, pos, original))
}

func (a *Analyzer) addReservedNameError(name string, pos ast.Position) {
	a.addCompilerError(errors.ReservedName(name, pos))
}

func (a *Analyzer) addArityMismatchError(functionName string, expected, actual int, pos ast.Position) {
	a.addCompilerError(errors.ArityMismatch(functionName, expected, actual, pos))
}

func (a *Analyzer) addValueCountError(wanted, got int, pos ast.Position) {
	a.addCompilerError(errors.ValueCountMismatch(wanted, got, pos))
}

func (a *Analyzer) addStrayLoopControlError(keyword string, pos ast.Position) {
	a.addCompilerError(errors.StrayLoopControl(keyword, pos))
}

func (a *Analyzer) addStrayLeaveError(pos ast.Position) {
	a.addCompilerError(errors.StrayLeave(pos))
}

func (a *Analyzer) addDuplicateCaseError(value string, pos ast.Position, first ast.Position) {
	a.addCompilerError(errors.DuplicateCase(value, pos, first))
}

func (a *Analyzer) addEmptySwitchError(pos ast.Position) {
	a.addCompilerError(errors.EmptySwitch(pos))
}

func (a *Analyzer) addLiteralOverflowError(value string, pos ast.Position) {
	a.addCompilerError(errors.LiteralOverflow(value, pos))
}

func (a *Analyzer) addDiscardedValueError(functionName string, count int, pos ast.Position) {
	a.addCompilerError(errors.DiscardedValue(functionName, count, pos))
}

func (a *Analyzer) addFunctionUsedAsVariableError(name string, pos ast.Position) {
	a.addCompilerError(errors.FunctionUsedAsVariable(name, pos))
}

func (a *Analyzer) addVariableUsedAsFunctionError(name string, pos ast.Position) {
	a.addCompilerError(errors.VariableUsedAsFunction(name, pos))
}

package semantic

import (
	"sumi/internal/ast"
)

type SymbolKind int

const (
	SymbolFunction SymbolKind = iota
	SymbolParameter
	SymbolResult
	SymbolVariable
)

type Symbol struct {
	Name     string
	Kind     SymbolKind
	Node     ast.Node
	Position ast.Position
}

// Assignable reports whether the symbol names a value slot that assignment
// statements may target.
func (s *Symbol) Assignable() bool {
	return s.Kind != SymbolFunction
}

// SymbolTable is a parent-linked scope. Function bodies open a boundary
// scope: names declared outside a boundary stay visible for shadowing
// checks but only functions remain accessible through it.
type SymbolTable struct {
	symbols  map[string]*Symbol
	parent   *SymbolTable
	boundary bool
}

func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]*Symbol),
		parent:  parent,
	}
}

// NewFunctionScope opens the scope for a function body. Enclosing
// variables do not resolve through it.
func NewFunctionScope(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		symbols:  make(map[string]*Symbol),
		parent:   parent,
		boundary: true,
	}
}

func (st *SymbolTable) Define(name string, kind SymbolKind, node ast.Node, pos ast.Position) *Symbol {
	symbol := &Symbol{
		Name:     name,
		Kind:     kind,
		Node:     node,
		Position: pos,
	}
	st.symbols[name] = symbol
	return symbol
}

// Lookup resolves a name with access semantics: once the walk crosses a
// function boundary, only function symbols remain visible.
func (st *SymbolTable) Lookup(name string) *Symbol {
	crossed := false
	for scope := st; scope != nil; scope = scope.parent {
		if symbol, exists := scope.symbols[name]; exists {
			if !crossed || symbol.Kind == SymbolFunction {
				return symbol
			}
		}
		if scope.boundary {
			crossed = true
		}
	}
	return nil
}

// LookupLexical resolves a name for shadowing checks: every declaration in
// the lexical chain counts, accessible or not.
func (st *SymbolTable) LookupLexical(name string) *Symbol {
	for scope := st; scope != nil; scope = scope.parent {
		if symbol, exists := scope.symbols[name]; exists {
			return symbol
		}
	}
	return nil
}

func (st *SymbolTable) LookupLocal(name string) *Symbol {
	if symbol, exists := st.symbols[name]; exists {
		return symbol
	}
	return nil
}

package ast

import (
	"math/big"
	"strings"
)

// Literal spellings are preserved verbatim, so "0x10" and "16" are distinct
// nodes with the same value. Everything that compares or computes on
// literals goes through NumericValue.

var maxWord = func() *big.Int {
	max := new(big.Int).Lsh(big.NewInt(1), 256)
	return max.Sub(max, big.NewInt(1))
}()

// MaxWord returns the largest representable value, 2^256 - 1.
func MaxWord() *big.Int {
	return new(big.Int).Set(maxWord)
}

// NumericValue parses the literal's spelling into its numeric value.
// Booleans map to 0 and 1. The second result is false when the spelling
// is not a valid literal.
func (l *LiteralExpr) NumericValue() (*big.Int, bool) {
	switch l.Kind {
	case BoolLiteral:
		if l.Value == "true" {
			return big.NewInt(1), true
		}
		if l.Value == "false" {
			return big.NewInt(0), true
		}
		return nil, false
	case NumberLiteral:
		if strings.HasPrefix(l.Value, "0x") {
			v, ok := new(big.Int).SetString(l.Value[2:], 16)
			return v, ok
		}
		v, ok := new(big.Int).SetString(l.Value, 10)
		return v, ok
	}
	return nil, false
}

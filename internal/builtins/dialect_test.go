package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownBuiltins(t *testing.T) {
	add, ok := Lookup("add")
	assert.True(t, ok)
	assert.Equal(t, 2, add.Params)
	assert.Equal(t, 1, add.Returns)
	assert.Equal(t, Pure, add.Effect)

	sstore, ok := Lookup("sstore")
	assert.True(t, ok)
	assert.Equal(t, 2, sstore.Params)
	assert.Equal(t, 0, sstore.Returns)
	assert.Equal(t, HasSideEffect, sstore.Effect)

	revert, ok := Lookup("revert")
	assert.True(t, ok)
	assert.Equal(t, NeverReturns, revert.Effect)
}

func TestLookupUnknownName(t *testing.T) {
	_, ok := Lookup("frobnicate")
	assert.False(t, ok)
	assert.False(t, IsBuiltin("frobnicate"))
}

func TestEffectJoinTakesStronger(t *testing.T) {
	assert.Equal(t, ReadsState, Pure.Join(ReadsState))
	assert.Equal(t, ReadsState, ReadsState.Join(Pure))
	assert.Equal(t, HasSideEffect, ReadsState.Join(HasSideEffect))
	assert.Equal(t, NeverReturns, NeverReturns.Join(HasSideEffect))
	assert.Equal(t, Pure, Pure.Join(Pure))
}

func TestOnlyPureIsRemovable(t *testing.T) {
	assert.True(t, Pure.Removable())
	assert.False(t, ReadsState.Removable())
	assert.False(t, HasSideEffect.Removable())
	assert.False(t, NeverReturns.Removable())
}

func TestOrderSensitiveReadersAreNotRemovable(t *testing.T) {
	// gas, msize and pc observe execution state that optimization itself
	// changes, so they are pinned as effectful.
	for _, name := range []string{"gas", "msize", "pc"} {
		b, ok := Lookup(name)
		assert.True(t, ok, name)
		assert.Equal(t, HasSideEffect, b.Effect, name)
	}
}

func TestAllEntriesAreIndexed(t *testing.T) {
	for _, b := range All {
		got, ok := Lookup(b.Name)
		assert.True(t, ok, b.Name)
		assert.Equal(t, b, got)
	}
}

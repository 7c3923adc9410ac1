package seedseq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	t.Parallel()

	t.Run("SameMasterStateSameSequence", func(t *testing.T) {
		t.Parallel()

		a := Derive(New(99), 16)
		b := Derive(New(99), 16)

		assert.Equal(t, a, b)
	})

	t.Run("ConsumesMaster", func(t *testing.T) {
		t.Parallel()
		master := New(99)

		first := Derive(master, 4)
		second := Derive(master, 4)

		assert.NotEqual(t, first, second)
	})

	t.Run("SplitDerivationMatchesSingle", func(t *testing.T) {
		t.Parallel()

		whole := Derive(New(5), 8)
		master := New(5)
		split := append(Derive(master, 3), Derive(master, 5)...)

		assert.Equal(t, whole, split)
	})

	t.Run("ZeroCount", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, Derive(New(1), 0))
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	a := New(7)
	b := New(7)
	c := New(8)

	va, vb, vc := a.Uint64(), b.Uint64(), c.Uint64()
	assert.Equal(t, va, vb)
	assert.NotEqual(t, va, vc)
}

func TestEntropy(t *testing.T) {
	t.Parallel()

	// Two draws colliding would mean 64 bits of entropy collided.
	assert.NotEqual(t, Entropy(), Entropy())
}

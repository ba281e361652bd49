package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringUsesAlphabet(t *testing.T) {
	r := New()

	for i := 0; i < 200; i++ {
		s := r.String(8, Alphanumeric)
		assert.Len(t, s, 8)
		for _, c := range s {
			assert.True(t, strings.ContainsRune(Alphanumeric, c), "unexpected rune %q", c)
		}
	}
}

func TestStringDegenerateInput(t *testing.T) {
	r := New()

	assert.Empty(t, r.String(0, Alphanumeric))
	assert.Empty(t, r.String(8, ""))
}

func TestIntnBounds(t *testing.T) {
	r := New()

	assert.Equal(t, 0, r.Intn(0))
	for i := 0; i < 100; i++ {
		n := r.Intn(5)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 5)
	}
}

func TestTokenIsUnique(t *testing.T) {
	r := New()

	a, b := r.Token(32), r.Token(32)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43)
}

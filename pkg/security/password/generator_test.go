package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabet(t *testing.T) {
	assert.Len(t, Alphabet, 72)
	assert.NotContains(t, Alphabet, "I")
}

func TestGenerator_LengthAndCharset(t *testing.T) {
	g := NewGenerator()
	lengths := make(map[int]bool)

	for i := 0; i < 2000; i++ {
		p, err := g.Generate()
		require.NoError(t, err)

		require.GreaterOrEqual(t, len(p), MinLength)
		require.LessOrEqual(t, len(p), len(Alphabet))
		for _, r := range p {
			require.True(t, strings.ContainsRune(Alphabet, r), "unexpected character %q in %q", r, p)
		}
		lengths[len(p)] = true
	}
	// 65 possible lengths over 2000 draws; seeing only a handful would mean a fixed length.
	assert.Greater(t, len(lengths), 20)
}

func TestGenerator_Varies(t *testing.T) {
	g := NewGenerator()
	a, err := g.Generate()
	require.NoError(t, err)
	b, err := g.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("srv")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "srv-"))
	assert.Greater(t, len(got), len("srv-"))
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		got, err := Generate("x")
		require.NoError(t, err)
		assert.False(t, seen[got], "duplicate id %s", got)
		seen[got] = true
	}
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		got := MustGenerate("tok")
		assert.True(t, strings.HasPrefix(got, "tok-"))
	})
}

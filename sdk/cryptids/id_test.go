package cryptids_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alisideas/bookshare/sdk/cryptids"
)

func TestGenerateToken(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		tok, err := cryptids.GenerateToken()
		require.NoError(t, err)
		assert.Len(t, tok, cryptids.TokenLength)
		for _, r := range tok {
			assert.True(t, strings.ContainsRune(cryptids.TokenAlphabet, r))
		}
		assert.False(t, seen[tok], "duplicate token %s", tok)
		seen[tok] = true
	}
}

func TestGenerateCustomID(t *testing.T) {
	id, err := cryptids.GenerateCustomID("ab", 64)
	require.NoError(t, err)
	assert.Len(t, id, 64)
	assert.Empty(t, strings.Trim(id, "ab"))

	_, err = cryptids.GenerateCustomID("a", 10)
	assert.Error(t, err)

	_, err = cryptids.GenerateCustomID("abc", 0)
	assert.Error(t, err)
}

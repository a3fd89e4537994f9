package token

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRefreshValue(t *testing.T) {
	a, err := NewRefreshValue()
	require.NoError(t, err)
	b, err := NewRefreshValue()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)

	raw, err := base64.RawURLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, refreshValueBytes)
}

func TestHashRefreshValue(t *testing.T) {
	assert.Len(t, HashRefreshValue("x"), 32)
	assert.Equal(t, HashRefreshValue("x"), HashRefreshValue("x"))
	assert.NotEqual(t, HashRefreshValue("x"), HashRefreshValue("y"))
}

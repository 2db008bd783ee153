package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upperHex = regexp.MustCompile(`^[0-9A-F]+$`)

func TestGenerateRefCode(t *testing.T) {
	code, err := GenerateRefCode(4)
	require.NoError(t, err)

	assert.Len(t, code, 8)
	assert.Regexp(t, upperHex, code)
}

func TestGenerateRefCode_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := GenerateRefCode(4)
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

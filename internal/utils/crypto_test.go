// internal/utils/crypto_test.go
package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashStringDeterministic(t *testing.T) {
	assert.Equal(t, HashString("abc"), HashString("abc"))
	assert.NotEqual(t, HashString("abc"), HashString("abd"))
	assert.Len(t, HashString(""), 64)
}

func TestGenerateRandomStringLengthAndCharset(t *testing.T) {
	s, err := GenerateRandomString(16)
	require.NoError(t, err)
	assert.Len(t, s, 16)
	assert.Regexp(t, regexp.MustCompile("^[a-zA-Z0-9]+$"), s)
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	number, err := GenerateOrderNumber()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^ORD-\d{8}-[A-Z0-9]{6}$`), number)
}

// internal/i18n/i18n_test.go
package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslationsAndFallback(t *testing.T) {
	require.NoError(t, Initialize("./locales"))

	assert.NotEqual(t, KeyCombinationNotFound, T("en", KeyCombinationNotFound))
	assert.NotEqual(t, KeyCombinationNotFound, T("zh_TW", KeyCombinationNotFound))

	// Unsupported language falls back to English
	assert.Equal(t, T("en", KeyOrderPlaced), T("fr", KeyOrderPlaced))

	// Unknown key falls through to the key itself
	assert.Equal(t, "no.such.key", T("en", "no.such.key"))
}

func TestSupportedLanguages(t *testing.T) {
	require.NoError(t, Initialize("./locales"))

	langs := GetSupportedLanguages()
	assert.Contains(t, langs, "en")
	assert.Contains(t, langs, "zh_TW")
	assert.Equal(t, "en", DefaultLanguage())
}

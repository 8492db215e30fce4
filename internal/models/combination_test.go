// internal/models/combination_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionValueRefsValueIDs(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	refs := OptionValueRefs{
		{OptionTypeID: uuid.New(), OptionValueID: first},
		{OptionTypeID: uuid.New(), OptionValueID: second},
	}

	ids := refs.ValueIDs()
	require.Len(t, ids, 2)
	assert.Equal(t, first, ids[0])
	assert.Equal(t, second, ids[1])
}

func TestOptionValueRefsScanRoundTrip(t *testing.T) {
	refs := OptionValueRefs{{OptionTypeID: uuid.New(), OptionValueID: uuid.New()}}

	raw, err := refs.Value()
	require.NoError(t, err)

	var decoded OptionValueRefs
	require.NoError(t, decoded.Scan(raw))
	assert.Equal(t, refs, decoded)
}

func TestCombinationEffectivePrice(t *testing.T) {
	c := Combination{AdditionalPrice: 5.5}
	assert.Equal(t, 25.5, c.EffectivePrice(20))
}

func TestCombinationInStock(t *testing.T) {
	c := Combination{StockQuantity: 3}
	assert.True(t, c.InStock(3))
	assert.False(t, c.InStock(4))
}

func TestJSONBLocalized(t *testing.T) {
	translations := JSONB{"en": "Red", "zh_TW": "紅色"}

	assert.Equal(t, "紅色", translations.Localized("zh_TW", "en", "fallback"))
	assert.Equal(t, "Red", translations.Localized("fr", "en", "fallback"))
	assert.Equal(t, "fallback", JSONB{}.Localized("en", "en", "fallback"))
	assert.Equal(t, "fallback", JSONB(nil).Localized("en", "en", "fallback"))
}

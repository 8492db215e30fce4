// internal/services/combination_identity_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/openshelf/storefront-backend/internal/models"
)

func ref(typeID, valueID uuid.UUID) models.OptionValueRef {
	return models.OptionValueRef{OptionTypeID: typeID, OptionValueID: valueID}
}

func TestGenerateCombinationHashOrderIndependent(t *testing.T) {
	typeA, typeB := uuid.New(), uuid.New()
	red, large := uuid.New(), uuid.New()

	forward := models.OptionValueRefs{ref(typeA, red), ref(typeB, large)}
	reversed := models.OptionValueRefs{ref(typeB, large), ref(typeA, red)}

	assert.Equal(t, GenerateCombinationHash(forward), GenerateCombinationHash(reversed))
}

func TestGenerateCombinationHashDistinctSets(t *testing.T) {
	typeA := uuid.New()
	red, blue := uuid.New(), uuid.New()

	a := GenerateCombinationHash(models.OptionValueRefs{ref(typeA, red)})
	b := GenerateCombinationHash(models.OptionValueRefs{ref(typeA, blue)})

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 64)
}

func TestGenerateCombinationHashSubsetDiffers(t *testing.T) {
	typeA, typeB := uuid.New(), uuid.New()
	red, large := uuid.New(), uuid.New()

	single := GenerateCombinationHash(models.OptionValueRefs{ref(typeA, red)})
	pair := GenerateCombinationHash(models.OptionValueRefs{ref(typeA, red), ref(typeB, large)})

	assert.NotEqual(t, single, pair)
}

func TestBuildSummary(t *testing.T) {
	assert.Equal(t, "", buildSummary(nil))
	assert.Equal(t, "Red", buildSummary([]string{"Red"}))
	assert.Equal(t, "Red / Large / Cotton", buildSummary([]string{"Red", "Large", "Cotton"}))
}

func TestSKUCodeFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Red", "RED"},
		{"Large", "LAR"},
		{"X-Small", "XSM"},
		{"2XL", "2XL"},
		{"  blue  ", "BLU"},
		{"红色", "X"},
		{"", "X"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, skuCodeFromName(tt.name), "name %q", tt.name)
	}
}

func TestCartesianProduct(t *testing.T) {
	colors := []models.OptionValue{{Name: "Red"}, {Name: "Blue"}, {Name: "Green"}}
	sizes := []models.OptionValue{{Name: "S"}, {Name: "M"}}

	tuples := cartesianProduct([][]models.OptionValue{colors, sizes})

	assert.Len(t, tuples, 6)
	assert.Equal(t, "Red", tuples[0][0].Name)
	assert.Equal(t, "S", tuples[0][1].Name)
	assert.Equal(t, "Green", tuples[5][0].Name)
	assert.Equal(t, "M", tuples[5][1].Name)
}

func TestCartesianProductSingleList(t *testing.T) {
	colors := []models.OptionValue{{Name: "Red"}, {Name: "Blue"}}

	tuples := cartesianProduct([][]models.OptionValue{colors})

	assert.Len(t, tuples, 2)
	for _, tuple := range tuples {
		assert.Len(t, tuple, 1)
	}
}

func TestCartesianProductEmpty(t *testing.T) {
	assert.Nil(t, cartesianProduct(nil))
}

func TestCoerceNonNegative(t *testing.T) {
	ten, minus := 10, -3
	assert.Equal(t, 0, coerceNonNegativeInt(nil))
	assert.Equal(t, 0, coerceNonNegativeInt(&minus))
	assert.Equal(t, 10, coerceNonNegativeInt(&ten))

	price, negPrice := 4.5, -1.0
	assert.Equal(t, 0.0, coerceNonNegativeFloat(nil))
	assert.Equal(t, 0.0, coerceNonNegativeFloat(&negPrice))
	assert.Equal(t, 4.5, coerceNonNegativeFloat(&price))
}

func TestFilterValuesByIDs(t *testing.T) {
	red := models.OptionValue{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Red"}
	blue := models.OptionValue{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Blue"}
	stranger := uuid.New()

	filtered := filterValuesByIDs([]models.OptionValue{red, blue}, []uuid.UUID{blue.ID, stranger})

	assert.Len(t, filtered, 1)
	assert.Equal(t, "Blue", filtered[0].Name)
}

// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type passwordFixture struct {
	Password string `validate:"strong_password"`
}

type usernameFixture struct {
	Username string `validate:"username"`
}

type colorFixture struct {
	Color string `validate:"color_code"`
}

func TestStrongPassword(t *testing.T) {
	assert.NoError(t, ValidateStruct(&passwordFixture{"Abcdef12"}))
	assert.Error(t, ValidateStruct(&passwordFixture{"short1A"}))
	assert.Error(t, ValidateStruct(&passwordFixture{"alllowercase1"}))
	assert.Error(t, ValidateStruct(&passwordFixture{"ALLUPPERCASE1"}))
	assert.Error(t, ValidateStruct(&passwordFixture{"NoNumbersHere"}))
}

func TestUsername(t *testing.T) {
	assert.NoError(t, ValidateStruct(&usernameFixture{"alice_99"}))
	assert.Error(t, ValidateStruct(&usernameFixture{"ab"}))
	assert.Error(t, ValidateStruct(&usernameFixture{"has space"}))
	assert.Error(t, ValidateStruct(&usernameFixture{"dash-ed"}))
}

func TestColorCode(t *testing.T) {
	assert.NoError(t, ValidateStruct(&colorFixture{""}))
	assert.NoError(t, ValidateStruct(&colorFixture{"#fff"}))
	assert.NoError(t, ValidateStruct(&colorFixture{"#FF0000"}))
	assert.Error(t, ValidateStruct(&colorFixture{"FF0000"}))
	assert.Error(t, ValidateStruct(&colorFixture{"#ff00"}))
	assert.Error(t, ValidateStruct(&colorFixture{"#gggggg"}))
}

func TestGetValidationErrors(t *testing.T) {
	type fixture struct {
		Name string `validate:"required"`
	}

	err := ValidateStruct(&fixture{})
	assert.Error(t, err)

	errs := GetValidationErrors(err)
	assert.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "required", errs[0].Tag)
}

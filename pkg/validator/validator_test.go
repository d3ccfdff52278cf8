package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `validate:"required"`
	Count int    `validate:"min=0"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateStruct(sample{Name: "quiz", Count: 1}))

	err := ValidateStruct(sample{Count: -1})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "Field: Name, Tag: required")
		assert.Contains(t, err.Error(), "Field: Count, Tag: min, Param: 0")
	}
}

package response

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	res := Error("something failed", "req-1")

	assert.Equal(t, "something failed", res.Error)
	assert.Equal(t, "req-1", res.RequestID)
}

func TestValidationError(t *testing.T) {
	type request struct {
		Email   string `validate:"required,email"`
		RTSPURL string `validate:"required"`
	}

	err := validator.New().Struct(request{Email: "not-an-email"})
	require.Error(t, err)

	validateErr, ok := err.(validator.ValidationErrors)
	require.True(t, ok)

	res := ValidationError(validateErr)

	assert.Contains(t, res.Error, "field Email is not a valid email address")
	assert.Contains(t, res.Error, "field RTSPURL is a required field")
}

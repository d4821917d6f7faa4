package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Count    int    `validate:"max=50"`
}

func TestValidationError(t *testing.T) {
	err := validator.New().Struct(sample{Email: "not-an-email", Password: "123", Count: 51})
	require.Error(t, err)

	msg := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t,
		"field Email must be a valid email, field Password must be at least 6, field Count must be at most 50",
		msg.Msg)
}

func TestValidationError_Required(t *testing.T) {
	err := validator.New().Struct(sample{})
	require.Error(t, err)

	msg := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, "field Email is a required field, field Password is a required field", msg.Msg)
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, Message{Msg: "boom"}, Error("boom"))
	assert.Equal(t, Status{Status: "success"}, OK(StatusSuccess))
}

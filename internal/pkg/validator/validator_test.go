package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email    string `validate:"required,email"`
	UserType string `validate:"required,oneof=admin employee"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(&sample{Email: "a@x.com", UserType: "admin"}))

	errs := Validate(&sample{Email: "nope", UserType: "owner"})
	assert.Equal(t, "email", errs["Email"])
	assert.Equal(t, "oneof", errs["UserType"])
}

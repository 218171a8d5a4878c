package validate_test

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/orderdesk/pkg/validate"
)

type address struct {
	City string `json:"city"`
}

func (a address) Validate() error {
	return validation.ValidateStruct(&a, validation.Field(&a.City, validation.Required))
}

type signupInput struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Age      int     `json:"age"`
	Address  address `json:"address"`
}

func (in signupInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required, validation.Length(3, 25)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Age, validation.Min(18)),
		validation.Field(&in.Address),
	)
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(signupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Age:      30,
		Address:  address{City: "Oslo"},
	})
	assert.False(t, validate.HasErrors(errs), "got %v", errs)
}

func TestFieldErrorsUseJSONNames(t *testing.T) {
	errs := validate.Struct(signupInput{Username: "al", Email: "nope", Age: 5})

	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "age")
	assert.Contains(t, errs, "address.city")
}

func TestNoRules(t *testing.T) {
	assert.Nil(t, validate.Struct(struct{ Name string }{}))
}

func TestFields_NonValidationError(t *testing.T) {
	_, ok := validate.Fields(errors.New("db down"))
	assert.False(t, ok)

	_, ok = validate.Fields(nil)
	assert.False(t, ok)
}

func TestSummary(t *testing.T) {
	got := validate.Summary(map[string]string{"b": "two", "a": "one"})
	assert.Equal(t, "a: one; b: two", got)
}

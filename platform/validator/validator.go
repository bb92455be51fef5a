// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"party_phonecountry/platform/phone"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator with the phone tags registered:
//
//	phoneregion  empty or a region known to the numbering metadata
//	contactkind  one of the contact mechanism kinds
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("phoneregion", func(fl validator.FieldLevel) bool {
		return phone.IsSupportedRegion(fl.Field().String())
	})
	_ = v.RegisterValidation("contactkind", func(fl validator.FieldLevel) bool {
		return phone.Kind(fl.Field().String()).IsKnown()
	})
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

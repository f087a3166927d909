package httpserver

import (
	"nettileffa/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// CustomValidator plugs the shared struct-tag rules into echo's
// c.Validate.
type CustomValidator struct {
	validate *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validate: validation.New()}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return validation.Translate(cv.validate.Struct(i))
}

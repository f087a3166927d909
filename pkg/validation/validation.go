// Package validation wraps go-playground/validator so that struct-tag rules
// produce application errors with JSON field paths.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"nettileffa/errs"

	"github.com/go-playground/validator/v10"
)

var std = New()

// New returns a validator that reports JSON field names and understands the
// "notblank" tag.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", notBlank)
	return v
}

// Struct validates s against its struct tags with the shared validator.
func Struct(s interface{}) error {
	return Translate(std.Struct(s))
}

// Translate converts validator errors into an *errs.Error with one
// FieldError per failed rule. Other errors are returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	fields := make([]errs.FieldError, 0, len(ves))
	parts := make([]string, 0, len(ves))
	for _, fe := range ves {
		f := errs.FieldError{Field: fieldPath(fe), Reason: reason(fe)}
		fields = append(fields, f)
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return errs.Invalid("validation error: "+strings.Join(parts, "; "), fields...)
}

func notBlank(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(fl.Field().String()) != ""
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	if fe.Field() != "" {
		return fe.Field()
	}
	return fe.StructField()
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "min", "gte":
		switch fe.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		case reflect.String:
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max", "lte":
		switch fe.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain at most %s item(s)", fe.Param())
		case reflect.String:
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	}
	return "failed on " + fe.Tag()
}

package validator

import (
	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// Knowledge documents are limited to the formats the viewer can render
	// inline.
	validate.RegisterValidation("doctype", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "PDF", "VIDEO", "IMAGE":
			return true
		}
		return false
	})
}

// ValidateStruct runs field validation before any network call is made, so a
// bad form never reaches the backend.
func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}

package httpx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookshelf/internal/coverurl"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("coverurl", validateCoverURL)
}

func validateCoverURL(fl validator.FieldLevel) bool {
	return coverurl.Valid(fl.Field().String())
}

// ValidateStruct checks s against its validate tags and returns one detail
// per failing field, in declaration order.
func ValidateStruct(s any) []ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ErrorDetail{{Message: err.Error()}}
	}

	details := make([]ErrorDetail, 0, len(verrs))
	for _, err := range verrs {
		field := err.Field()

		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "coverurl":
			message = coverurl.Hint
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		details = append(details, ErrorDetail{
			Field:   strings.ToLower(field[:1]) + field[1:],
			Message: message,
		})
	}

	return details
}

package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validationMessage turns validator errors into a per-field message, e.g.
// "email is required; mobileNumber is invalid (e164)".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid input"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if fe.Tag() == "required" {
			parts = append(parts, field+" is required")
			continue
		}
		parts = append(parts, field+" is invalid ("+fe.Tag()+")")
	}
	return strings.Join(parts, "; ")
}

// Package validator wraps go-playground/validator for request DTO validation
package validator

import (
	playgroundValidator "github.com/go-playground/validator/v10"

	ierr "github.com/luminapower/propdeck/internal/errors"
)

var validate = playgroundValidator.New()

// ValidateRequest validates a request struct against its validate tags
func ValidateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"carebridge/internal/entities"
	apperrors "carebridge/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Status strings are matched the same way ParseAvailabilityStatus reads them.
	_ = v.RegisterValidation("availability_status", func(fl validator.FieldLevel) bool {
		return entities.KnownAvailabilityStatus(fl.Field().String())
	})
	return v
}

// validateRequest runs the struct tag rules and turns failures into a 400.
func validateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return apperrors.ErrBadRequest("invalid fields: " + strings.Join(fields, ", "))
	}
	return fmt.Errorf("validating request: %w", err)
}

// Package validation enforces the per-entity schemas in front of the
// schema-less document store. Each constructor either returns a fully
// defaulted document ready for insertion or an *errors.InvalidEntityDataError
// naming the offending field.
package validation

import (
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "studentportal/internal/errors"
	"studentportal/internal/model"
)

// enumTags maps each custom enum tag to its allowed literal set.
var enumTags = map[string][]string{
	"role":           model.Roles,
	"technology":     model.Technologies,
	"project_status": model.ProjectStatuses,
	"payment_status": model.PaymentStatuses,
}

// Validator validates entity inputs and patches.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the entity enum rules registered.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	for tag, allowed := range enumTags {
		_ = validate.RegisterValidation(tag, oneOf(allowed))
	}

	return &Validator{validate: validate}
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	}
}

// Validate implements echo.Validator. It reports the first failing field.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	return translate(fieldErrs[0])
}

func translate(fe validator.FieldError) *apperrors.InvalidEntityDataError {
	if allowed, ok := enumTags[fe.Tag()]; ok {
		return apperrors.NewInvalidEntityData(fe.Field(), "value not permitted", allowed...)
	}

	switch fe.Tag() {
	case "required":
		return apperrors.NewInvalidEntityData(fe.Field(), "field required")
	case "email":
		return apperrors.NewInvalidEntityData(fe.Field(), "value is not a valid email address")
	case "gte":
		return apperrors.NewInvalidEntityData(fe.Field(), "must be greater than or equal to "+fe.Param())
	default:
		return apperrors.NewInvalidEntityData(fe.Field(), "failed "+fe.Tag()+" rule")
	}
}

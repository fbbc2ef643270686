package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/nearest-service/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate - валидация структуры. Ошибки валидации возвращаются как errors.ErrInvalidRequest
func Validate(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return toAppError(err)
	}
	return nil
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

func toAppError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]interface{}, len(fieldErrs))
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := strings.ToLower(fe.Field())
		fields[name] = fe.Tag()
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", name, fe.Tag()))
	}

	return apperrors.ErrInvalidRequest.
		WithMessage("Invalid request: %s", strings.Join(msgs, ", ")).
		WithDetails(fields)
}

package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to the labels operators see in logs
var FieldLabels = map[string]string{
	"Name":    "Имя",
	"TG":      "Telegram",
	"Email":   "Email",
	"Job":     "Вакансия",
	"City":    "Город",
	"Message": "Сообщение",
}

// FormatValidationErrors converts validator.ValidationErrors to readable messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// FailedFields lists the struct field names that failed validation.
func FailedFields(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, e.Field())
	}
	return fields
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())

	switch e.Tag() {
	case "required", "not_blank":
		return fmt.Sprintf("%s: обязательное поле", label)
	default:
		return fmt.Sprintf("%s: ошибка проверки (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return fieldName
}

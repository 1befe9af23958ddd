package utils

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/avatarctic/study-assistant-api/internal/core/domain"
)

// ValidationError lists the offending fields. It matches domain.ErrValidation with errors.Is.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return domain.ErrValidation }

// Required checks name/value pairs and reports every blank value at once.
func Required(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	verb := "is"
	if len(missing) > 1 {
		verb = "are"
	}
	return &ValidationError{
		Fields:  missing,
		Message: fmt.Sprintf("%s %s required", strings.Join(missing, ", "), verb),
	}
}

// MaxLength rejects values longer than max characters.
func MaxLength(field, value string, max int) error {
	if n := len([]rune(value)); n > max {
		return &ValidationError{
			Fields:  []string{field},
			Message: fmt.Sprintf("%s is too long: maximum %d characters", field, max),
		}
	}
	return nil
}

// Email checks that value parses as a bare address.
func Email(field, value string) error {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return &ValidationError{Fields: []string{field}, Message: field + " is not a valid email address"}
	}
	return nil
}

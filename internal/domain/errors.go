package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrForbidden         = errors.New("insufficient permissions for this operation")
	ErrUnauthorized      = errors.New("authentication required")
	ErrConflict          = errors.New("resource already exists")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrStaleState        = errors.New("resource was modified concurrently")
	ErrUnavailable       = errors.New("dependency unavailable")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors keeps the order in which fields failed so the first message
// shown to the user matches the form order.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

func (e *FieldErrors) Add(field, message string) {
	for _, fe := range *e {
		if fe.Field == field {
			return
		}
	}
	*e = append(*e, FieldError{Field: field, Message: message})
}

func (e FieldErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func (e FieldErrors) Message(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

func (e FieldErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

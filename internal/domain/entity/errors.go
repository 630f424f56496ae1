package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across layers
var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountNotActive    = errors.New("account is not active")
	ErrSequenceUnavailable = errors.New("sequence allocation failed")
)

// MissingFieldError lists every required field absent from a registration.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// FieldViolation describes a single field that failed a rule.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SchemaValidationError lists every field that failed a format, enum or range rule.
type SchemaValidationError struct {
	Violations []FieldViolation
}

func (e *SchemaValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Fields returns the names of the offending fields.
func (e *SchemaValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

// DuplicateKeyError is returned when a unique field already belongs to another player.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("a player with this %s already exists", e.Field)
}

// IDGenerationError is returned when no identifier could be produced for a registration.
type IDGenerationError struct {
	Reason string
	Err    error
}

func (e *IDGenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("id generation failed: %s: %v", e.Reason, e.Err)
	}
	return "id generation failed: " + e.Reason
}

func (e *IDGenerationError) Unwrap() error { return e.Err }

package dto

import "github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"

// MessageResponse is a generic response for success messages.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is a response for errors. Only the detail matching the error kind is set.
type ErrorResponse struct {
	Success       bool                    `json:"success"`
	Error         string                  `json:"error"`
	MissingFields []string                `json:"missingFields,omitempty"`
	Errors        []entity.FieldViolation `json:"errors,omitempty"`
	Field         string                  `json:"field,omitempty"`
}

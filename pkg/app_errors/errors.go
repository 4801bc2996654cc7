package apperrors

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidDate   = errors.New("invalid date")
)

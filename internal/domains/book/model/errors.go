package model

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/store/storeerr"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrInvalidID    = errors.New("book id must be a positive integer")
)

// Error codes returned in the API error envelope.
const (
	ErrCodeBookNotFound   = "BOOK_NOT_FOUND"
	ErrCodeInvalidID      = "INVALID_ID"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeStorageFailure = "STORAGE_FAILURE"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

// ToHTTPStatus converts a book service error to an HTTP status code.
func ToHTTPStatus(err error) int {
	var verrs validation.Errors
	switch {
	case errors.Is(err, ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.As(err, &verrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ToErrorCode converts a book service error to an API error code.
func ToErrorCode(err error) string {
	var verrs validation.Errors
	switch {
	case errors.Is(err, ErrBookNotFound):
		return ErrCodeBookNotFound
	case errors.Is(err, ErrInvalidID):
		return ErrCodeInvalidID
	case errors.As(err, &verrs):
		return ErrCodeValidation
	case errors.Is(err, storeerr.ErrStorageFailure):
		return ErrCodeStorageFailure
	default:
		return ErrCodeInternal
	}
}

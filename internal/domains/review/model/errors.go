package model

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/store/storeerr"
)

// Error codes
const (
	ErrCodeReviewNotFound       = "REVIEW_NOT_FOUND"
	ErrCodeInvalidBookReference = "INVALID_BOOK_REFERENCE"
	ErrCodeInvalidID            = "INVALID_ID"
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeStorageFailure       = "STORAGE_FAILURE"
	ErrCodeInternal             = "INTERNAL_ERROR"
)

// Errors
var (
	ErrReviewNotFound = errors.New("review not found")
	// ErrInvalidBookReference is returned when a review names a book id
	// that does not exist at write time.
	ErrInvalidBookReference = errors.New("referenced book does not exist")
	ErrInvalidID            = errors.New("id must be a positive integer")
)

// ToHTTPStatus maps review errors to HTTP status codes.
func ToHTTPStatus(err error) int {
	var verrs validation.Errors
	switch {
	case errors.Is(err, ErrReviewNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidBookReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidID), errors.As(err, &verrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ToErrorCode maps review errors to API error codes.
func ToErrorCode(err error) string {
	var verrs validation.Errors
	switch {
	case errors.Is(err, ErrReviewNotFound):
		return ErrCodeReviewNotFound
	case errors.Is(err, ErrInvalidBookReference):
		return ErrCodeInvalidBookReference
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

package service

import (
	"context"

	"github.com/shopspring/decimal"

	"library-catalog/internal/domains/book/model"
)

// ServiceInterface - book catalog operations
type ServiceInterface interface {
	GetByID(ctx context.Context, id int64) (*model.BookView, error)
	GetAll(ctx context.Context) ([]model.BookView, error)
	GetByAuthor(ctx context.Context, authorSubstring string) ([]model.BookView, error)
	Create(ctx context.Context, req model.BookRequest) (*model.Book, error)
	Update(ctx context.Context, id int64, req model.BookRequest) (*model.Book, error)
	// Delete removes the book and every review of it, atomically.
	Delete(ctx context.Context, id int64) error
}

// RatingSource computes the average rating of one book.
type RatingSource interface {
	AverageRating(ctx context.Context, bookID int64) (*decimal.Decimal, error)
}

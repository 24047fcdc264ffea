// Package store is the gateway between the catalog services and the data
// store. It executes parameterized reads and writes against the books and
// reviews tables and holds no business rules.
package store

import (
	"context"
	"strings"

	bookModel "library-catalog/internal/domains/book/model"
	reviewModel "library-catalog/internal/domains/review/model"
)

// Gateway is the narrow persistence capability the services depend on.
//
// Lookups by id return bookModel.ErrBookNotFound / reviewModel.ErrReviewNotFound
// when no row matches. Updates and deletes return the affected-row count and
// leave its interpretation to the caller. Every other failure is a
// storeerr.ErrStorageFailure.
type Gateway interface {
	BookStore
	ReviewStore

	// InTx runs fn against a gateway bound to a single transaction.
	// fn's error rolls everything back; nil commits.
	InTx(ctx context.Context, fn func(tx Gateway) error) error

	// Ping checks the store is reachable.
	Ping(ctx context.Context) error
}

type BookStore interface {
	GetBook(ctx context.Context, id int64) (*bookModel.Book, error)
	ListBooks(ctx context.Context) ([]bookModel.Book, error)
	// FindBooksByAuthor matches author names containing substring, ignoring case.
	FindBooksByAuthor(ctx context.Context, substring string) ([]bookModel.Book, error)
	BookExists(ctx context.Context, id int64) (bool, error)
	// NextBookID draws a fresh, never reused identifier.
	NextBookID(ctx context.Context) (int64, error)
	InsertBook(ctx context.Context, b *bookModel.Book) error
	UpdateBook(ctx context.Context, b *bookModel.Book) (int64, error)
	DeleteBook(ctx context.Context, id int64) (int64, error)
}

type ReviewStore interface {
	GetReview(ctx context.Context, id int64) (*reviewModel.Review, error)
	ListReviewsByBook(ctx context.Context, bookID int64) ([]reviewModel.Review, error)
	// ListReviewsByReviewer joins reviews with their books; exact name match.
	ListReviewsByReviewer(ctx context.Context, reviewerName string) ([]reviewModel.ReviewByReviewer, error)
	NextReviewID(ctx context.Context) (int64, error)
	InsertReview(ctx context.Context, r *reviewModel.Review) error
	UpdateReview(ctx context.Context, r *reviewModel.Review) (int64, error)
	DeleteReview(ctx context.Context, id int64) (int64, error)
	DeleteReviewsByBook(ctx context.Context, bookID int64) (int64, error)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE/ILIKE pattern using '\' as escape.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

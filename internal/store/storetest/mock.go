// Package storetest provides a testify mock of store.Gateway for service
// and handler tests that need to inject storage failures.
package storetest

import (
	"context"

	"github.com/stretchr/testify/mock"

	bookModel "library-catalog/internal/domains/book/model"
	reviewModel "library-catalog/internal/domains/review/model"
	"library-catalog/internal/store"
)

type MockGateway struct {
	mock.Mock
}

var _ store.Gateway = (*MockGateway)(nil)

// InTx records the call and, unless an error is configured, runs fn
// against the mock itself.
func (m *MockGateway) InTx(ctx context.Context, fn func(tx store.Gateway) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *MockGateway) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGateway) GetBook(ctx context.Context, id int64) (*bookModel.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookModel.Book), args.Error(1)
}

func (m *MockGateway) ListBooks(ctx context.Context) ([]bookModel.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bookModel.Book), args.Error(1)
}

func (m *MockGateway) FindBooksByAuthor(ctx context.Context, substring string) ([]bookModel.Book, error) {
	args := m.Called(ctx, substring)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bookModel.Book), args.Error(1)
}

func (m *MockGateway) BookExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockGateway) NextBookID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGateway) InsertBook(ctx context.Context, b *bookModel.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockGateway) UpdateBook(ctx context.Context, b *bookModel.Book) (int64, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGateway) DeleteBook(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGateway) GetReview(ctx context.Context, id int64) (*reviewModel.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reviewModel.Review), args.Error(1)
}

func (m *MockGateway) ListReviewsByBook(ctx context.Context, bookID int64) ([]reviewModel.Review, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reviewModel.Review), args.Error(1)
}

func (m *MockGateway) ListReviewsByReviewer(ctx context.Context, reviewerName string) ([]reviewModel.ReviewByReviewer, error) {
	args := m.Called(ctx, reviewerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reviewModel.ReviewByReviewer), args.Error(1)
}

func (m *MockGateway) NextReviewID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGateway) InsertReview(ctx context.Context, r *reviewModel.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockGateway) UpdateReview(ctx context.Context, r *reviewModel.Review) (int64, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGateway) DeleteReview(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGateway) DeleteReviewsByBook(ctx context.Context, bookID int64) (int64, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).(int64), args.Error(1)
}

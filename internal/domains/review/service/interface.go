package service

import (
	"context"

	"library-catalog/internal/domains/review/model"
)

// =====================================================
// REVIEW SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// GetByBookID lists reviews of a book; an unknown book yields an empty list.
	GetByBookID(ctx context.Context, bookID int64) ([]model.ReviewByBook, error)

	// GetByReviewerName lists a reviewer's reviews with the reviewed book's title and author.
	GetByReviewerName(ctx context.Context, reviewerName string) ([]model.ReviewByReviewer, error)

	Create(ctx context.Context, req model.ReviewRequest) (*model.Review, error)

	Update(ctx context.Context, id int64, req model.ReviewRequest) (*model.Review, error)

	DeleteByID(ctx context.Context, id int64) error
}

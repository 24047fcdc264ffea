package service

import (
	"context"

	"library-catalog/internal/domains/review/model"
	"library-catalog/internal/store"
	"library-catalog/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type reviewService struct {
	store store.Gateway
}

func NewReviewService(gw store.Gateway) ServiceInterface {
	return &reviewService{store: gw}
}

// =====================================================
// READS
// =====================================================

func (s *reviewService) GetByBookID(ctx context.Context, bookID int64) ([]model.ReviewByBook, error) {
	reviews, err := s.store.ListReviewsByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	out := make([]model.ReviewByBook, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, r.ToByBook())
	}
	return out, nil
}

func (s *reviewService) GetByReviewerName(ctx context.Context, reviewerName string) ([]model.ReviewByReviewer, error) {
	return s.store.ListReviewsByReviewer(ctx, reviewerName)
}

// =====================================================
// WRITES
// =====================================================

func (s *reviewService) Create(ctx context.Context, req model.ReviewRequest) (*model.Review, error) {
	// Step 1: Referenced book must exist
	if err := s.checkBook(ctx, req.BookID); err != nil {
		return nil, err
	}

	// Step 2: Assign id and persist
	id, err := s.store.NextReviewID(ctx)
	if err != nil {
		return nil, err
	}

	review := req.ToEntity()
	review.ID = id
	if err := s.store.InsertReview(ctx, review); err != nil {
		return nil, err
	}

	logger.Info("review created", map[string]interface{}{
		"review_id": review.ID,
		"book_id":   review.BookID,
	})
	return review, nil
}

// Update replaces book id, rating, reviewer name and text. The path id wins.
func (s *reviewService) Update(ctx context.Context, id int64, req model.ReviewRequest) (*model.Review, error) {
	review, err := s.store.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkBook(ctx, req.BookID); err != nil {
		return nil, err
	}

	req.ApplyTo(review)
	n, err := s.store.UpdateReview(ctx, review)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, model.ErrReviewNotFound
	}
	return review, nil
}

func (s *reviewService) DeleteByID(ctx context.Context, id int64) error {
	n, err := s.store.DeleteReview(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}

func (s *reviewService) checkBook(ctx context.Context, bookID int64) error {
	exists, err := s.store.BookExists(ctx, bookID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrInvalidBookReference
	}
	return nil
}

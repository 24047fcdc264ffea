// Package rating derives a book's average rating from its reviews.
package rating

import (
	"context"

	"github.com/shopspring/decimal"

	reviewModel "library-catalog/internal/domains/review/model"
)

// ReviewLister is the read the aggregator needs from the store.
type ReviewLister interface {
	ListReviewsByBook(ctx context.Context, bookID int64) ([]reviewModel.Review, error)
}

type Aggregator struct {
	reviews ReviewLister
}

func NewAggregator(reviews ReviewLister) *Aggregator {
	return &Aggregator{reviews: reviews}
}

// AverageRating returns the mean rating of every review of bookID, or nil when
// the book has no reviews. It reads fresh on every call and never caches.
// Store errors are returned unchanged.
func (a *Aggregator) AverageRating(ctx context.Context, bookID int64) (*decimal.Decimal, error) {
	reviews, err := a.reviews.ListReviewsByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return Mean(reviews), nil
}

// Mean is the arithmetic mean of the ratings; nil for an empty slice.
func Mean(reviews []reviewModel.Review) *decimal.Decimal {
	if len(reviews) == 0 {
		return nil
	}
	sum := decimal.Zero
	for _, r := range reviews {
		sum = sum.Add(decimal.NewFromInt(int64(r.Rating)))
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(reviews))))
	return &avg
}

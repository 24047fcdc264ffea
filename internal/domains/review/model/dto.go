package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MinRating = 0
	MaxRating = 10

	MaxReviewerNameLength = 255
	MaxTextLength         = 5000
)

// ReviewRequest is the payload for POST /reviews and PUT /reviews/:id.
// Any "id" in the body is ignored in favour of the sequence or the path.
type ReviewRequest struct {
	ID           *int64 `json:"id,omitempty"`
	BookID       int64  `json:"book_id"`
	Rating       *int   `json:"rating"`
	ReviewerName string `json:"reviewer_name"`
	Text         string `json:"text"`
}

// Validate is the HTTP boundary policy for review payloads, including the
// 0..10 rating range. The service itself accepts any rating.
func (r ReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID,
			validation.Required.Error("book_id is required"),
			validation.Min(int64(1)).Error("book_id must be positive"),
		),
		validation.Field(&r.Rating,
			validation.NotNil.Error("rating is required"),
			validation.Min(MinRating),
			validation.Max(MaxRating),
		),
		validation.Field(&r.ReviewerName,
			validation.Required.Error("reviewer_name is required"),
			validation.RuneLength(1, MaxReviewerNameLength),
		),
		validation.Field(&r.Text,
			validation.RuneLength(0, MaxTextLength),
		),
	)
}

func (r ReviewRequest) rating() int {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}

// ToEntity builds a Review without an id; the service assigns it.
func (r ReviewRequest) ToEntity() *Review {
	return &Review{
		BookID:       r.BookID,
		Rating:       r.rating(),
		ReviewerName: r.ReviewerName,
		Text:         r.Text,
	}
}

// ApplyTo replaces every mutable field of rv.
func (r ReviewRequest) ApplyTo(rv *Review) {
	rv.BookID = r.BookID
	rv.Rating = r.rating()
	rv.ReviewerName = r.ReviewerName
	rv.Text = r.Text
}

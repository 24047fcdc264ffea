package model

import (
	"github.com/shopspring/decimal"
)

// Book is the persisted catalog entry. ID is assigned by the store on
// creation and never changes afterwards.
type Book struct {
	ID     int64  `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	Author string `json:"author" db:"author"`
}

// BookView is a Book composed with the mean of its review ratings.
// AverageRating is nil when the book has no reviews; it is never stored.
type BookView struct {
	ID            int64            `json:"id"`
	Title         string           `json:"title"`
	Author        string           `json:"author"`
	AverageRating *decimal.Decimal `json:"average_rating"`
}

// NewBookView composes a view from a book and its (possibly absent) average.
func NewBookView(b Book, avg *decimal.Decimal) BookView {
	return BookView{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		AverageRating: avg,
	}
}

// HasRating reports whether at least one review contributed to the view.
func (v BookView) HasRating() bool {
	return v.AverageRating != nil
}

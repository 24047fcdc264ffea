package model

// Review is a reader's rating and text for one book.
// Rating is 0..10 by convention; the request layer enforces the range.
type Review struct {
	ID           int64  `json:"id" db:"id"`
	BookID       int64  `json:"book_id" db:"book_id"`
	Rating       int    `json:"rating" db:"rating"`
	ReviewerName string `json:"reviewer_name" db:"reviewer_name"`
	Text         string `json:"text" db:"review_text"`
}

// ReviewByBook is the reviewer-facing projection listed under a book.
type ReviewByBook struct {
	ReviewerName string `json:"reviewer_name"`
	Text         string `json:"text"`
	Rating       int    `json:"rating"`
}

// ReviewByReviewer is the book-facing projection listed under a reviewer,
// produced by joining reviews with books.
type ReviewByReviewer struct {
	Text      string `json:"text"`
	Rating    int    `json:"rating"`
	BookTitle string `json:"book_title"`
	Author    string `json:"author"`
}

// ToByBook projects a review for the per-book listing.
func (r Review) ToByBook() ReviewByBook {
	return ReviewByBook{
		ReviewerName: r.ReviewerName,
		Text:         r.Text,
		Rating:       r.Rating,
	}
}

package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxTitleLength  = 255
	MaxAuthorLength = 255
)

// BookRequest is the payload for POST /books and PUT /books/:id.
// An "id" sent by the client is accepted for compatibility and ignored:
// create takes the id from the sequence, update takes it from the path.
type BookRequest struct {
	ID     *int64 `json:"id,omitempty"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Validate is the HTTP boundary policy for book payloads. The service stores
// whatever it is given verbatim.
func (r BookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.RuneLength(1, MaxAuthorLength),
		),
	)
}

// ToEntity builds a Book without an id; the service assigns it.
func (r BookRequest) ToEntity() *Book {
	return &Book{
		Title:  r.Title,
		Author: r.Author,
	}
}

// ApplyTo replaces the mutable fields of b. Full replace, not a patch.
func (r BookRequest) ApplyTo(b *Book) {
	b.Title = r.Title
	b.Author = r.Author
}

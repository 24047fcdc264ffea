package service

import (
	"context"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/store"
	"library-catalog/pkg/logger"
)

// BookService - implements ServiceInterface
type BookService struct {
	store   store.Gateway
	ratings RatingSource
}

// NewService - constructor with DI
func NewService(gw store.Gateway, ratings RatingSource) ServiceInterface {
	return &BookService{
		store:   gw,
		ratings: ratings,
	}
}

func (s *BookService) GetByID(ctx context.Context, id int64) (*model.BookView, error) {
	book, err := s.store.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	view, err := s.compose(ctx, *book)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *BookService) GetAll(ctx context.Context) ([]model.BookView, error) {
	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	return s.composeAll(ctx, books)
}

func (s *BookService) GetByAuthor(ctx context.Context, authorSubstring string) ([]model.BookView, error) {
	books, err := s.store.FindBooksByAuthor(ctx, authorSubstring)
	if err != nil {
		return nil, err
	}
	return s.composeAll(ctx, books)
}

// compose attaches the live average rating; one aggregate read per book.
func (s *BookService) compose(ctx context.Context, b model.Book) (model.BookView, error) {
	avg, err := s.ratings.AverageRating(ctx, b.ID)
	if err != nil {
		return model.BookView{}, err
	}
	return model.NewBookView(b, avg), nil
}

func (s *BookService) composeAll(ctx context.Context, books []model.Book) ([]model.BookView, error) {
	views := make([]model.BookView, 0, len(books))
	for _, b := range books {
		v, err := s.compose(ctx, b)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *BookService) Create(ctx context.Context, req model.BookRequest) (*model.Book, error) {
	id, err := s.store.NextBookID(ctx)
	if err != nil {
		return nil, err
	}

	book := req.ToEntity()
	book.ID = id
	if err := s.store.InsertBook(ctx, book); err != nil {
		return nil, err
	}

	logger.Info("book created", map[string]interface{}{
		"book_id": book.ID,
	})
	return book, nil
}

// Update replaces title and author of an existing book. The path id wins
// over any id carried by the request; a missing book is never inserted.
func (s *BookService) Update(ctx context.Context, id int64, req model.BookRequest) (*model.Book, error) {
	book, err := s.store.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(book)
	n, err := s.store.UpdateBook(ctx, book)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// removed between read and write
		return nil, model.ErrBookNotFound
	}
	return book, nil
}

// Delete removes reviews first, then the book, in one transaction.
// A missing book rolls the whole thing back.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	return s.store.InTx(ctx, func(tx store.Gateway) error {
		removed, err := tx.DeleteReviewsByBook(ctx, id)
		if err != nil {
			return err
		}

		n, err := tx.DeleteBook(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return model.ErrBookNotFound
		}

		logger.Debug("book deleted with its reviews", map[string]interface{}{
			"book_id":         id,
			"reviews_removed": removed,
		})
		return nil
	})
}

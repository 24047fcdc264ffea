package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	bookModel "library-catalog/internal/domains/book/model"
	reviewModel "library-catalog/internal/domains/review/model"
	"library-catalog/internal/store/storeerr"
	"library-catalog/pkg/database"
)

// Querier is the subset of pgx shared by pools, connections and transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool is what Postgres needs from *pgxpool.Pool.
type Pool interface {
	Querier
	database.TxBeginner
	Ping(ctx context.Context) error
}

// =====================================================
// POSTGRES GATEWAY
// =====================================================

type Postgres struct {
	pool Pool
	q    Querier
}

var _ Gateway = (*Postgres)(nil)

func NewPostgres(pool Pool) *Postgres {
	return &Postgres{pool: pool, q: pool}
}

func (s *Postgres) InTx(ctx context.Context, fn func(tx Gateway) error) error {
	if s.pool == nil {
		// already bound to a transaction
		return fn(s)
	}
	var fnErr error
	err := database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		fnErr = fn(&Postgres{q: tx})
		return fnErr
	})
	if err != nil && fnErr == nil {
		// begin or commit failed
		return storeerr.Wrap("transaction", err)
	}
	return err
}

func (s *Postgres) Ping(ctx context.Context) error {
	if s.pool == nil {
		return nil
	}
	if err := s.pool.Ping(ctx); err != nil {
		return storeerr.Wrap("ping", err)
	}
	return nil
}

// =====================================================
// BOOKS
// =====================================================

const selectBook = `SELECT id, title, author FROM books`

func (s *Postgres) GetBook(ctx context.Context, id int64) (*bookModel.Book, error) {
	var b bookModel.Book
	err := s.q.QueryRow(ctx, selectBook+` WHERE id = $1`, id).Scan(&b.ID, &b.Title, &b.Author)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, bookModel.ErrBookNotFound
		}
		return nil, storeerr.Wrap("get book", err)
	}
	return &b, nil
}

func (s *Postgres) ListBooks(ctx context.Context) ([]bookModel.Book, error) {
	rows, err := s.q.Query(ctx, selectBook+` ORDER BY id`)
	if err != nil {
		return nil, storeerr.Wrap("list books", err)
	}
	return scanBooks(rows, "list books")
}

func (s *Postgres) FindBooksByAuthor(ctx context.Context, substring string) ([]bookModel.Book, error) {
	query := selectBook + ` WHERE author ILIKE '%' || $1 || '%' ESCAPE '\' ORDER BY id`
	rows, err := s.q.Query(ctx, query, escapeLike(substring))
	if err != nil {
		return nil, storeerr.Wrap("find books by author", err)
	}
	return scanBooks(rows, "find books by author")
}

func scanBooks(rows pgx.Rows, op string) ([]bookModel.Book, error) {
	defer rows.Close()

	books := make([]bookModel.Book, 0)
	for rows.Next() {
		var b bookModel.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author); err != nil {
			return nil, storeerr.Wrap(op, err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, storeerr.Wrap(op, err)
	}
	return books, nil
}

func (s *Postgres) BookExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, storeerr.Wrap("book exists", err)
	}
	return exists, nil
}

func (s *Postgres) NextBookID(ctx context.Context) (int64, error) {
	return s.nextval(ctx, "books_seq")
}

func (s *Postgres) InsertBook(ctx context.Context, b *bookModel.Book) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO books (id, title, author) VALUES ($1, $2, $3)`,
		b.ID, b.Title, b.Author,
	)
	if err != nil {
		return storeerr.Wrap("insert book", err)
	}
	return nil
}

func (s *Postgres) UpdateBook(ctx context.Context, b *bookModel.Book) (int64, error) {
	return s.exec(ctx, "update book",
		`UPDATE books SET title = $1, author = $2 WHERE id = $3`,
		b.Title, b.Author, b.ID,
	)
}

func (s *Postgres) DeleteBook(ctx context.Context, id int64) (int64, error) {
	return s.exec(ctx, "delete book", `DELETE FROM books WHERE id = $1`, id)
}

// =====================================================
// REVIEWS
// =====================================================

const selectReview = `SELECT id, book_id, rating, reviewer_name, review_text FROM reviews`

func (s *Postgres) GetReview(ctx context.Context, id int64) (*reviewModel.Review, error) {
	var r reviewModel.Review
	err := s.q.QueryRow(ctx, selectReview+` WHERE id = $1`, id).
		Scan(&r.ID, &r.BookID, &r.Rating, &r.ReviewerName, &r.Text)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, reviewModel.ErrReviewNotFound
		}
		return nil, storeerr.Wrap("get review", err)
	}
	return &r, nil
}

func (s *Postgres) ListReviewsByBook(ctx context.Context, bookID int64) ([]reviewModel.Review, error) {
	rows, err := s.q.Query(ctx, selectReview+` WHERE book_id = $1 ORDER BY id`, bookID)
	if err != nil {
		return nil, storeerr.Wrap("list reviews by book", err)
	}
	defer rows.Close()

	reviews := make([]reviewModel.Review, 0)
	for rows.Next() {
		var r reviewModel.Review
		if err := rows.Scan(&r.ID, &r.BookID, &r.Rating, &r.ReviewerName, &r.Text); err != nil {
			return nil, storeerr.Wrap("list reviews by book", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storeerr.Wrap("list reviews by book", err)
	}
	return reviews, nil
}

func (s *Postgres) ListReviewsByReviewer(ctx context.Context, reviewerName string) ([]reviewModel.ReviewByReviewer, error) {
	query := `
		SELECT r.review_text, r.rating, b.title, b.author
		FROM reviews r
		INNER JOIN books b ON b.id = r.book_id
		WHERE r.reviewer_name = $1
		ORDER BY r.id
	`
	rows, err := s.q.Query(ctx, query, reviewerName)
	if err != nil {
		return nil, storeerr.Wrap("list reviews by reviewer", err)
	}
	defer rows.Close()

	out := make([]reviewModel.ReviewByReviewer, 0)
	for rows.Next() {
		var v reviewModel.ReviewByReviewer
		if err := rows.Scan(&v.Text, &v.Rating, &v.BookTitle, &v.Author); err != nil {
			return nil, storeerr.Wrap("list reviews by reviewer", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storeerr.Wrap("list reviews by reviewer", err)
	}
	return out, nil
}

func (s *Postgres) NextReviewID(ctx context.Context) (int64, error) {
	return s.nextval(ctx, "reviews_seq")
}

func (s *Postgres) InsertReview(ctx context.Context, r *reviewModel.Review) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO reviews (id, book_id, rating, reviewer_name, review_text) VALUES ($1, $2, $3, $4, $5)`,
		r.ID, r.BookID, r.Rating, r.ReviewerName, r.Text,
	)
	if err != nil {
		return storeerr.Wrap("insert review", err)
	}
	return nil
}

func (s *Postgres) UpdateReview(ctx context.Context, r *reviewModel.Review) (int64, error) {
	return s.exec(ctx, "update review",
		`UPDATE reviews SET book_id = $1, rating = $2, reviewer_name = $3, review_text = $4 WHERE id = $5`,
		r.BookID, r.Rating, r.ReviewerName, r.Text, r.ID,
	)
}

func (s *Postgres) DeleteReview(ctx context.Context, id int64) (int64, error) {
	return s.exec(ctx, "delete review", `DELETE FROM reviews WHERE id = $1`, id)
}

func (s *Postgres) DeleteReviewsByBook(ctx context.Context, bookID int64) (int64, error) {
	return s.exec(ctx, "delete reviews by book", `DELETE FROM reviews WHERE book_id = $1`, bookID)
}

// =====================================================
// HELPERS
// =====================================================

func (s *Postgres) nextval(ctx context.Context, sequence string) (int64, error) {
	var id int64
	if err := s.q.QueryRow(ctx, `SELECT nextval($1::regclass)`, sequence).Scan(&id); err != nil {
		return 0, storeerr.Wrap("nextval "+sequence, err)
	}
	return id, nil
}

func (s *Postgres) exec(ctx context.Context, op, sql string, args ...any) (int64, error) {
	tag, err := s.q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, storeerr.Wrap(op, err)
	}
	return tag.RowsAffected(), nil
}

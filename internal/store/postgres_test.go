package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "library-catalog/internal/domains/book/model"
	reviewModel "library-catalog/internal/domains/review/model"
	"library-catalog/internal/store/storeerr"
)

func newPostgresFixture(t *testing.T) (*Postgres, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewPostgres(mock), mock
}

var errConnReset = errors.New("connection reset by peer")

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

func TestPostgres_GetBook_Success(t *testing.T) {
	s, mock := newPostgresFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, title, author FROM books WHERE id =").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "author"}).
			AddRow(int64(1), "Dune", "Frank Herbert"))

	got, err := s.GetBook(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &bookModel.Book{ID: 1, Title: "Dune", Author: "Frank Herbert"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetBook_NotFound(t *testing.T) {
	s, mock := newPostgresFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, title, author FROM books WHERE id =").
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	got, err := s.GetBook(context.Background(), 99)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, bookModel.ErrBookNotFound)
	assert.False(t, errors.Is(err, storeerr.ErrStorageFailure))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetBook_StorageFailure(t *testing.T) {
	s, mock := newPostgresFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, title, author FROM books WHERE id =").
		WithArgs(int64(1)).
		WillReturnError(errConnReset)

	_, err := s.GetBook(context.Background(), 1)
	assert.ErrorIs(t, err, storeerr.ErrStorageFailure)
	assert.ErrorIs(t, err, errConnReset)
	assert.False(t, errors.Is(err, bookModel.ErrBookNotFound))
}

func TestPostgres_ListBooks_Empty(t *testing.T) {
	s, mock := newPostgresFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, title, author FROM books ORDER BY id").
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "author"}))

	got, err := s.ListBooks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListBooks_ScanRows(t *testing.T) {
	s, mock := newPostgresFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, title, author FROM books ORDER BY id").
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "author"}).
			AddRow(int64(1), "Dune", "Frank Herbert").
			AddRow(int64(2), "Emma", "Jane Austen"))

	got, err := s.ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Emma", got[1].Title)
}

func TestPostgres_FindBooksByAuthor_EscapesWildcards(t *testing.T) {
	s, mock := newPostgresFixture(t)
	defer mock.Close()

	mock.ExpectQuery("FROM books WHERE author ILIKE").
		WithArgs(`50\%\_off`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "author"}))

	got, err := s.FindBooksByAuthor(context.Background(), "50%_off")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_NextBookID(t *testing.T) {
	s, mock := newPostgresFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT nextval").
		WithArgs("books_seq").
		WillReturnRows(pgxmock.NewRows([]string{"nextval"}).AddRow(int64(7)))

	id, err := s.NextBookID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestPostgres_UpdateBook_ReturnsRowsAffected(t *testing.T) {
	s, mock := newPostgresFixture(t)
	defer mock.Close()

	b := &bookModel.Book{ID: 3, Title: "Persuasion", Author: "Jane Austen"}
	mock.ExpectExec("UPDATE books SET").
		WithArgs(b.Title, b.Author, b.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	n, err := s.UpdateBook(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_InsertBook_StorageFailure(t *testing.T) {
	s, mock := newPostgresFixture(t)
	defer mock.Close()

	b := &bookModel.Book{ID: 3, Title: "Persuasion", Author: "Jane Austen"}
	mock.ExpectExec("INSERT INTO books").
		WithArgs(b.ID, b.Title, b.Author).
		WillReturnError(errConnReset)

	err := s.InsertBook(context.Background(), b)
	assert.ErrorIs(t, err, storeerr.ErrStorageFailure)
}

// ---------------------------------------------------------------------------
// Reviews
// ---------------------------------------------------------------------------

func reviewColumns() []string {
	return []string{"id", "book_id", "rating", "reviewer_name", "review_text"}
}

func TestPostgres_GetReview_NotFound(t *testing.T) {
	s, mock := newPostgresFixture(t)
	defer mock.Close()

	mock.ExpectQuery("FROM reviews WHERE id =").
		WithArgs(int64(5)).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetReview(context.Background(), 5)
	assert.ErrorIs(t, err, reviewModel.ErrReviewNotFound)
}

func TestPostgres_ListReviewsByBook(t *testing.T) {
	s, mock := newPostgresFixture(t)
	defer mock.Close()

	mock.ExpectQuery("FROM reviews WHERE book_id =").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(reviewColumns()).
			AddRow(int64(10), int64(1), 8, "Alice", "Great").
			AddRow(int64(11), int64(1), 6, "Bob", ""))

	got, err := s.ListReviewsByBook(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, reviewModel.Review{ID: 10, BookID: 1, Rating: 8, ReviewerName: "Alice", Text: "Great"}, got[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListReviewsByReviewer_JoinsBooks(t *testing.T) {
	s, mock := newPostgresFixture(t)
	defer mock.Close()

	mock.ExpectQuery("INNER JOIN books b ON b.id = r.book_id").
		WithArgs("Alice").
		WillReturnRows(pgxmock.NewRows([]string{"review_text", "rating", "title", "author"}).
			AddRow("Great", 8, "Dune", "Frank Herbert"))

	got, err := s.ListReviewsByReviewer(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Equal(t, []reviewModel.ReviewByReviewer{
		{Text: "Great", Rating: 8, BookTitle: "Dune", Author: "Frank Herbert"},
	}, got)
}

func TestPostgres_DeleteReviewsByBook(t *testing.T) {
	s, mock := newPostgresFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM reviews WHERE book_id =").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := s.DeleteReviewsByBook(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

// ---------------------------------------------------------------------------
// Transactions
// ---------------------------------------------------------------------------

func TestPostgres_InTx_Commit(t *testing.T) {
	s, mock := newPostgresFixture(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM reviews WHERE book_id =").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec("DELETE FROM books WHERE id =").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err := s.InTx(context.Background(), func(tx Gateway) error {
		if _, err := tx.DeleteReviewsByBook(context.Background(), 1); err != nil {
			return err
		}
		_, err := tx.DeleteBook(context.Background(), 1)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_InTx_RollbackKeepsCallbackError(t *testing.T) {
	s, mock := newPostgresFixture(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM reviews WHERE book_id =").
		WithArgs(int64(9)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM books WHERE id =").
		WithArgs(int64(9)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	err := s.InTx(context.Background(), func(tx Gateway) error {
		if _, err := tx.DeleteReviewsByBook(context.Background(), 9); err != nil {
			return err
		}
		n, err := tx.DeleteBook(context.Background(), 9)
		if err != nil {
			return err
		}
		if n == 0 {
			return bookModel.ErrBookNotFound
		}
		return nil
	})
	assert.ErrorIs(t, err, bookModel.ErrBookNotFound)
	assert.False(t, errors.Is(err, storeerr.ErrStorageFailure))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_InTx_BeginFailure(t *testing.T) {
	s, mock := newPostgresFixture(t)
	defer mock.Close()

	mock.ExpectBegin().WillReturnError(errConnReset)

	called := false
	err := s.InTx(context.Background(), func(tx Gateway) error {
		called = true
		return nil
	})
	assert.False(t, called)
	assert.ErrorIs(t, err, storeerr.ErrStorageFailure)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "tolkien", escapeLike("tolkien"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
}

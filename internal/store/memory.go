package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	bookModel "library-catalog/internal/domains/book/model"
	reviewModel "library-catalog/internal/domains/review/model"
	"library-catalog/internal/store/storeerr"
)

// errForeignKey mirrors the reviews.book_id constraint of the SQL schema.
var errForeignKey = errors.New("foreign key violation on reviews.book_id")

// Memory is a process-local Gateway used for local runs and service tests.
// It enforces the same referential rule as the SQL schema: a review must
// point at an existing book and a book cannot be removed while reviews
// still reference it.
type Memory struct {
	mu sync.RWMutex
	st *memState
}

var (
	_ Gateway = (*Memory)(nil)
	_ Gateway = (*memTx)(nil)
)

func NewMemory() *Memory {
	return &Memory{st: newMemState()}
}

type memState struct {
	books     map[int64]bookModel.Book
	reviews   map[int64]reviewModel.Review
	bookSeq   int64
	reviewSeq int64
}

func newMemState() *memState {
	return &memState{
		books:   make(map[int64]bookModel.Book),
		reviews: make(map[int64]reviewModel.Review),
	}
}

func (st *memState) clone() *memState {
	return &memState{
		books:     maps.Clone(st.books),
		reviews:   maps.Clone(st.reviews),
		bookSeq:   st.bookSeq,
		reviewSeq: st.reviewSeq,
	}
}

func (m *Memory) read(fn func(tx *memTx)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn(&memTx{st: m.st})
}

func (m *Memory) write(fn func(tx *memTx)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&memTx{st: m.st})
}

// InTx runs fn on a copy of the data and swaps it in only when fn succeeds.
// Writers are serialized for the duration of fn. Sequence values drawn inside
// a failed transaction stay consumed, as they do in Postgres.
func (m *Memory) InTx(ctx context.Context, fn func(tx Gateway) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.st.clone()
	if err := fn(&memTx{st: work}); err != nil {
		m.st.bookSeq = work.bookSeq
		m.st.reviewSeq = work.reviewSeq
		return err
	}
	m.st = work
	return nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return storeerr.Wrap("ping", ctx.Err())
}

func (m *Memory) GetBook(ctx context.Context, id int64) (b *bookModel.Book, err error) {
	m.read(func(tx *memTx) { b, err = tx.GetBook(ctx, id) })
	return
}

func (m *Memory) ListBooks(ctx context.Context) (books []bookModel.Book, err error) {
	m.read(func(tx *memTx) { books, err = tx.ListBooks(ctx) })
	return
}

func (m *Memory) FindBooksByAuthor(ctx context.Context, substring string) (books []bookModel.Book, err error) {
	m.read(func(tx *memTx) { books, err = tx.FindBooksByAuthor(ctx, substring) })
	return
}

func (m *Memory) BookExists(ctx context.Context, id int64) (ok bool, err error) {
	m.read(func(tx *memTx) { ok, err = tx.BookExists(ctx, id) })
	return
}

func (m *Memory) NextBookID(ctx context.Context) (id int64, err error) {
	m.write(func(tx *memTx) { id, err = tx.NextBookID(ctx) })
	return
}

func (m *Memory) InsertBook(ctx context.Context, b *bookModel.Book) (err error) {
	m.write(func(tx *memTx) { err = tx.InsertBook(ctx, b) })
	return
}

func (m *Memory) UpdateBook(ctx context.Context, b *bookModel.Book) (n int64, err error) {
	m.write(func(tx *memTx) { n, err = tx.UpdateBook(ctx, b) })
	return
}

func (m *Memory) DeleteBook(ctx context.Context, id int64) (n int64, err error) {
	m.write(func(tx *memTx) { n, err = tx.DeleteBook(ctx, id) })
	return
}

func (m *Memory) GetReview(ctx context.Context, id int64) (r *reviewModel.Review, err error) {
	m.read(func(tx *memTx) { r, err = tx.GetReview(ctx, id) })
	return
}

func (m *Memory) ListReviewsByBook(ctx context.Context, bookID int64) (reviews []reviewModel.Review, err error) {
	m.read(func(tx *memTx) { reviews, err = tx.ListReviewsByBook(ctx, bookID) })
	return
}

func (m *Memory) ListReviewsByReviewer(ctx context.Context, reviewerName string) (out []reviewModel.ReviewByReviewer, err error) {
	m.read(func(tx *memTx) { out, err = tx.ListReviewsByReviewer(ctx, reviewerName) })
	return
}

func (m *Memory) NextReviewID(ctx context.Context) (id int64, err error) {
	m.write(func(tx *memTx) { id, err = tx.NextReviewID(ctx) })
	return
}

func (m *Memory) InsertReview(ctx context.Context, r *reviewModel.Review) (err error) {
	m.write(func(tx *memTx) { err = tx.InsertReview(ctx, r) })
	return
}

func (m *Memory) UpdateReview(ctx context.Context, r *reviewModel.Review) (n int64, err error) {
	m.write(func(tx *memTx) { n, err = tx.UpdateReview(ctx, r) })
	return
}

func (m *Memory) DeleteReview(ctx context.Context, id int64) (n int64, err error) {
	m.write(func(tx *memTx) { n, err = tx.DeleteReview(ctx, id) })
	return
}

func (m *Memory) DeleteReviewsByBook(ctx context.Context, bookID int64) (n int64, err error) {
	m.write(func(tx *memTx) { n, err = tx.DeleteReviewsByBook(ctx, bookID) })
	return
}

// memTx operates on a memState without locking; the owner holds the lock.
type memTx struct {
	st *memState
}

func (t *memTx) InTx(ctx context.Context, fn func(tx Gateway) error) error {
	return fn(t)
}

func (t *memTx) Ping(ctx context.Context) error {
	return storeerr.Wrap("ping", ctx.Err())
}

func (t *memTx) GetBook(ctx context.Context, id int64) (*bookModel.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeerr.Wrap("get book", err)
	}
	b, ok := t.st.books[id]
	if !ok {
		return nil, bookModel.ErrBookNotFound
	}
	return &b, nil
}

func (t *memTx) ListBooks(ctx context.Context) ([]bookModel.Book, error) {
	return t.filterBooks(ctx, "list books", func(bookModel.Book) bool { return true })
}

func (t *memTx) FindBooksByAuthor(ctx context.Context, substring string) ([]bookModel.Book, error) {
	needle := strings.ToLower(substring)
	return t.filterBooks(ctx, "find books by author", func(b bookModel.Book) bool {
		return strings.Contains(strings.ToLower(b.Author), needle)
	})
}

func (t *memTx) filterBooks(ctx context.Context, op string, keep func(bookModel.Book) bool) ([]bookModel.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeerr.Wrap(op, err)
	}
	books := make([]bookModel.Book, 0)
	for _, id := range slices.Sorted(maps.Keys(t.st.books)) {
		if b := t.st.books[id]; keep(b) {
			books = append(books, b)
		}
	}
	return books, nil
}

func (t *memTx) BookExists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, storeerr.Wrap("book exists", err)
	}
	_, ok := t.st.books[id]
	return ok, nil
}

func (t *memTx) NextBookID(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, storeerr.Wrap("nextval books_seq", err)
	}
	t.st.bookSeq++
	return t.st.bookSeq, nil
}

func (t *memTx) InsertBook(ctx context.Context, b *bookModel.Book) error {
	if err := ctx.Err(); err != nil {
		return storeerr.Wrap("insert book", err)
	}
	if _, exists := t.st.books[b.ID]; exists {
		return storeerr.Wrap("insert book", fmt.Errorf("duplicate key books.id=%d", b.ID))
	}
	t.st.books[b.ID] = *b
	return nil
}

func (t *memTx) UpdateBook(ctx context.Context, b *bookModel.Book) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, storeerr.Wrap("update book", err)
	}
	if _, ok := t.st.books[b.ID]; !ok {
		return 0, nil
	}
	t.st.books[b.ID] = *b
	return 1, nil
}

func (t *memTx) DeleteBook(ctx context.Context, id int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, storeerr.Wrap("delete book", err)
	}
	if _, ok := t.st.books[id]; !ok {
		return 0, nil
	}
	for _, r := range t.st.reviews {
		if r.BookID == id {
			return 0, storeerr.Wrap("delete book", errForeignKey)
		}
	}
	delete(t.st.books, id)
	return 1, nil
}

func (t *memTx) GetReview(ctx context.Context, id int64) (*reviewModel.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeerr.Wrap("get review", err)
	}
	r, ok := t.st.reviews[id]
	if !ok {
		return nil, reviewModel.ErrReviewNotFound
	}
	return &r, nil
}

func (t *memTx) sortedReviews() []reviewModel.Review {
	out := make([]reviewModel.Review, 0, len(t.st.reviews))
	for _, id := range slices.Sorted(maps.Keys(t.st.reviews)) {
		out = append(out, t.st.reviews[id])
	}
	return out
}

func (t *memTx) ListReviewsByBook(ctx context.Context, bookID int64) ([]reviewModel.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeerr.Wrap("list reviews by book", err)
	}
	reviews := make([]reviewModel.Review, 0)
	for _, r := range t.sortedReviews() {
		if r.BookID == bookID {
			reviews = append(reviews, r)
		}
	}
	return reviews, nil
}

func (t *memTx) ListReviewsByReviewer(ctx context.Context, reviewerName string) ([]reviewModel.ReviewByReviewer, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeerr.Wrap("list reviews by reviewer", err)
	}
	out := make([]reviewModel.ReviewByReviewer, 0)
	for _, r := range t.sortedReviews() {
		if r.ReviewerName != reviewerName {
			continue
		}
		b, ok := t.st.books[r.BookID]
		if !ok {
			continue
		}
		out = append(out, reviewModel.ReviewByReviewer{
			Text:      r.Text,
			Rating:    r.Rating,
			BookTitle: b.Title,
			Author:    b.Author,
		})
	}
	return out, nil
}

func (t *memTx) NextReviewID(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, storeerr.Wrap("nextval reviews_seq", err)
	}
	t.st.reviewSeq++
	return t.st.reviewSeq, nil
}

func (t *memTx) InsertReview(ctx context.Context, r *reviewModel.Review) error {
	if err := ctx.Err(); err != nil {
		return storeerr.Wrap("insert review", err)
	}
	if _, exists := t.st.reviews[r.ID]; exists {
		return storeerr.Wrap("insert review", fmt.Errorf("duplicate key reviews.id=%d", r.ID))
	}
	if _, ok := t.st.books[r.BookID]; !ok {
		return storeerr.Wrap("insert review", errForeignKey)
	}
	t.st.reviews[r.ID] = *r
	return nil
}

func (t *memTx) UpdateReview(ctx context.Context, r *reviewModel.Review) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, storeerr.Wrap("update review", err)
	}
	if _, ok := t.st.reviews[r.ID]; !ok {
		return 0, nil
	}
	if _, ok := t.st.books[r.BookID]; !ok {
		return 0, storeerr.Wrap("update review", errForeignKey)
	}
	t.st.reviews[r.ID] = *r
	return 1, nil
}

func (t *memTx) DeleteReview(ctx context.Context, id int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, storeerr.Wrap("delete review", err)
	}
	if _, ok := t.st.reviews[id]; !ok {
		return 0, nil
	}
	delete(t.st.reviews, id)
	return 1, nil
}

func (t *memTx) DeleteReviewsByBook(ctx context.Context, bookID int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, storeerr.Wrap("delete reviews by book", err)
	}
	var n int64
	for id, r := range t.st.reviews {
		if r.BookID == bookID {
			delete(t.st.reviews, id)
			n++
		}
	}
	return n, nil
}

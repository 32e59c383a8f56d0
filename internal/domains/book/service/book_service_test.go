package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/domains/author"
	authorservice "library-backend/internal/domains/author/service"
	"library-backend/internal/domains/book"
	"library-backend/internal/shared/apperr"
)

// libraryStore is an in-memory store implementing both the author and book
// repository contracts, so cross-domain flows can be exercised end to end
// without a running database.
type libraryStore struct {
	authors map[primitive.ObjectID]author.Author
	books   map[primitive.ObjectID]book.Book
}

func newLibraryStore() *libraryStore {
	return &libraryStore{
		authors: make(map[primitive.ObjectID]author.Author),
		books:   make(map[primitive.ObjectID]book.Book),
	}
}

// book.Repository

func (s *libraryStore) Create(_ context.Context, b *book.Book) error {
	b.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	s.books[b.ID] = *b
	return nil
}

func (s *libraryStore) GetByID(_ context.Context, id primitive.ObjectID) (*book.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return &b, nil
}

func (s *libraryStore) GetAll(_ context.Context, filter book.Filter) ([]book.Book, int64, error) {
	out := make([]book.Book, 0, len(s.books))
	for _, b := range s.books {
		if filter.Genre != "" && b.Genre != filter.Genre {
			continue
		}
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (s *libraryStore) Update(_ context.Context, b *book.Book) error {
	if _, ok := s.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	s.books[b.ID] = *b
	return nil
}

func (s *libraryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(s.books, id)
	return nil
}

func (s *libraryStore) ExistsByISBN(_ context.Context, isbn string, excludeID primitive.ObjectID) (bool, error) {
	for id, b := range s.books {
		if b.ISBN == isbn && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *libraryStore) AuthorExists(_ context.Context, id primitive.ObjectID) (bool, error) {
	_, ok := s.authors[id]
	return ok, nil
}

func (s *libraryStore) AuthorsByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]author.Author, error) {
	out := make(map[primitive.ObjectID]author.Author, len(ids))
	for _, id := range ids {
		if a, ok := s.authors[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (s *libraryStore) MarkBorrowed(_ context.Context, id primitive.ObjectID, lending book.Lending) (*book.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	if !b.Availability {
		return nil, book.ErrLendingStateMismatch
	}
	b.Availability = false
	b.BorrowedBy = lending.BorrowedBy
	borrowed, due := lending.BorrowedDate, lending.ReturnDueDate
	b.BorrowedDate = &borrowed
	b.ReturnDueDate = &due
	b.UpdatedAt = time.Now().UTC()
	s.books[id] = b
	return &b, nil
}

func (s *libraryStore) MarkReturned(_ context.Context, id primitive.ObjectID) (*book.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	if b.Availability {
		return nil, book.ErrLendingStateMismatch
	}
	b.Availability = true
	b.BorrowedBy = ""
	b.BorrowedDate = nil
	b.ReturnDueDate = nil
	b.UpdatedAt = time.Now().UTC()
	s.books[id] = b
	return &b, nil
}

// Author-side storage. The CRUD method names clash with the book contract,
// so authorRepoAdapter below exposes them under the author.Repository shape.

func (s *libraryStore) CreateAuthor(_ context.Context, a *author.Author) error {
	a.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.authors[a.ID] = *a
	return nil
}

func (s *libraryStore) ExistsByEmail(_ context.Context, email string, excludeID primitive.ObjectID) (bool, error) {
	for id, a := range s.authors {
		if a.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *libraryStore) BooksByAuthors(_ context.Context, authorIDs []primitive.ObjectID) ([]author.BookRef, error) {
	wanted := make(map[primitive.ObjectID]bool, len(authorIDs))
	for _, id := range authorIDs {
		wanted[id] = true
	}
	var refs []author.BookRef
	for _, b := range s.books {
		if wanted[b.AuthorID] {
			refs = append(refs, author.BookRef{AuthorID: b.AuthorID, Title: b.Title})
		}
	}
	return refs, nil
}

func (s *libraryStore) CountBooks(_ context.Context, authorID primitive.ObjectID) (int64, error) {
	var n int64
	for _, b := range s.books {
		if b.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

// authorRepoAdapter papers over the Create/GetByID/GetAll/Update/Delete
// signature clash between the two repository contracts.
type authorRepoAdapter struct {
	*libraryStore
}

func (a authorRepoAdapter) Create(ctx context.Context, au *author.Author) error {
	return a.CreateAuthor(ctx, au)
}

func (a authorRepoAdapter) GetByID(_ context.Context, id primitive.ObjectID) (*author.Author, error) {
	au, ok := a.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return &au, nil
}

func (a authorRepoAdapter) GetAll(_ context.Context, _ author.Filter) ([]author.Author, int64, error) {
	out := make([]author.Author, 0, len(a.authors))
	for _, au := range a.authors {
		out = append(out, au)
	}
	return out, int64(len(out)), nil
}

func (a authorRepoAdapter) Update(_ context.Context, au *author.Author) error {
	if _, ok := a.authors[au.ID]; !ok {
		return author.ErrAuthorNotFound
	}
	a.authors[au.ID] = *au
	return nil
}

func (a authorRepoAdapter) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := a.authors[id]; !ok {
		return author.ErrAuthorNotFound
	}
	delete(a.authors, id)
	return nil
}

func seedAuthor(t *testing.T, store *libraryStore) author.Author {
	t.Helper()
	a := author.Author{
		Name:        "Gabriel Garcia Marquez",
		Bio:         "Colombian novelist",
		BirthDate:   "1927-03-06",
		Nationality: "Colombian",
		IsActive:    true,
	}
	require.NoError(t, store.CreateAuthor(context.Background(), &a))
	return a
}

func validBookRequest(authorID string) *book.CreateBookRequest {
	return &book.CreateBookRequest{
		Title:         "One Hundred Years of Solitude",
		AuthorID:      authorID,
		ISBN:          "978-0-06-088328-7",
		Genre:         "Magical Realism",
		PublishedDate: "1967-05-30",
		Description:   "The Buendia family saga",
		TotalPages:    417,
	}
}

func TestCreateBook(t *testing.T) {
	store := newLibraryStore()
	svc := NewBookService(store)
	a := seedAuthor(t, store)

	b, err := svc.Create(context.Background(), validBookRequest(a.ID.Hex()))
	require.NoError(t, err)

	assert.False(t, b.ID.IsZero())
	assert.Equal(t, "9780060883287", b.ISBN)
	assert.Equal(t, a.ID, b.AuthorID)
	assert.True(t, b.Availability)
	assert.Equal(t, b.CreatedAt, b.UpdatedAt)
}

func TestCreateBookUnknownAuthor(t *testing.T) {
	store := newLibraryStore()
	svc := NewBookService(store)

	_, err := svc.Create(context.Background(), validBookRequest(primitive.NewObjectID().Hex()))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	// No partial record was written.
	assert.Empty(t, store.books)

	_, err = svc.Create(context.Background(), validBookRequest("garbage-id"))
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCreateBookDuplicateISBN(t *testing.T) {
	store := newLibraryStore()
	svc := NewBookService(store)
	a := seedAuthor(t, store)

	_, err := svc.Create(context.Background(), validBookRequest(a.ID.Hex()))
	require.NoError(t, err)

	// Same ISBN in a different formatting still collides.
	req := validBookRequest(a.ID.Hex())
	req.Title = "Another Title"
	req.ISBN = "9780060883287"
	_, err = svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestBorrowAndReturn(t *testing.T) {
	store := newLibraryStore()
	svc := NewBookService(store)
	a := seedAuthor(t, store)

	b, err := svc.Create(context.Background(), validBookRequest(a.ID.Hex()))
	require.NoError(t, err)

	borrowed, err := svc.Borrow(context.Background(), b.ID.Hex(), &book.BorrowRequest{BorrowedBy: "  alice  "})
	require.NoError(t, err)

	assert.False(t, borrowed.Availability)
	assert.Equal(t, "alice", borrowed.BorrowedBy)
	require.NotNil(t, borrowed.BorrowedDate)
	require.NotNil(t, borrowed.ReturnDueDate)
	assert.Equal(t, borrowed.BorrowedDate.Add(book.LoanPeriod), *borrowed.ReturnDueDate)

	// Second borrow conflicts.
	_, err = svc.Borrow(context.Background(), b.ID.Hex(), &book.BorrowRequest{BorrowedBy: "bob"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	returned, err := svc.Return(context.Background(), b.ID.Hex())
	require.NoError(t, err)
	assert.True(t, returned.Availability)
	assert.Empty(t, returned.BorrowedBy)
	assert.Nil(t, returned.BorrowedDate)
	assert.Nil(t, returned.ReturnDueDate)

	// Returning an available book conflicts.
	_, err = svc.Return(context.Background(), b.ID.Hex())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestBorrowRequiresBorrower(t *testing.T) {
	store := newLibraryStore()
	svc := NewBookService(store)
	a := seedAuthor(t, store)

	b, err := svc.Create(context.Background(), validBookRequest(a.ID.Hex()))
	require.NoError(t, err)

	_, err = svc.Borrow(context.Background(), b.ID.Hex(), &book.BorrowRequest{BorrowedBy: "   "})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestDeleteBookOnLoan(t *testing.T) {
	store := newLibraryStore()
	svc := NewBookService(store)
	a := seedAuthor(t, store)

	b, err := svc.Create(context.Background(), validBookRequest(a.ID.Hex()))
	require.NoError(t, err)

	_, err = svc.Borrow(context.Background(), b.ID.Hex(), &book.BorrowRequest{BorrowedBy: "alice"})
	require.NoError(t, err)

	_, err = svc.Delete(context.Background(), b.ID.Hex())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	_, err = svc.Return(context.Background(), b.ID.Hex())
	require.NoError(t, err)

	resp, err := svc.Delete(context.Background(), b.ID.Hex())
	require.NoError(t, err)
	assert.True(t, resp.Deleted)
}

func TestUpdateBookReassignsAuthor(t *testing.T) {
	store := newLibraryStore()
	svc := NewBookService(store)
	a := seedAuthor(t, store)

	b, err := svc.Create(context.Background(), validBookRequest(a.ID.Hex()))
	require.NoError(t, err)

	missing := primitive.NewObjectID().Hex()
	_, err = svc.Update(context.Background(), b.ID.Hex(), &book.UpdateBookRequest{AuthorID: &missing})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	other := author.Author{Name: "Other", Bio: "x", BirthDate: "1950-01-01", Nationality: "X", IsActive: true}
	require.NoError(t, store.CreateAuthor(context.Background(), &other))

	otherID := other.ID.Hex()
	updated, err := svc.Update(context.Background(), b.ID.Hex(), &book.UpdateBookRequest{AuthorID: &otherID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, updated.AuthorID)
}

func TestGetByIDEmbedsAuthor(t *testing.T) {
	store := newLibraryStore()
	svc := NewBookService(store)
	a := seedAuthor(t, store)

	b, err := svc.Create(context.Background(), validBookRequest(a.ID.Hex()))
	require.NoError(t, err)

	detail, err := svc.GetByID(context.Background(), b.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, detail.Author)
	assert.Equal(t, a.Name, detail.Author.Name)

	// A dangling author reference is tolerated: the embedded author is null.
	delete(store.authors, a.ID)
	detail, err = svc.GetByID(context.Background(), b.ID.Hex())
	require.NoError(t, err)
	assert.Nil(t, detail.Author)
}

func TestGetAllRejectsUnknownSortField(t *testing.T) {
	svc := NewBookService(newLibraryStore())

	_, _, err := svc.GetAll(context.Background(), book.Filter{SortBy: "color"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

// TestLendingLifecycle walks the full cross-domain flow: an author with a
// borrowed book cannot be deleted until the book is returned and removed.
func TestLendingLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newLibraryStore()
	bookSvc := NewBookService(store)
	authorSvc := authorservice.NewAuthorService(authorRepoAdapter{store})

	created, err := authorSvc.Create(ctx, &author.CreateAuthorRequest{
		Name:        "Gabriel Garcia Marquez",
		Bio:         "Colombian novelist",
		BirthDate:   "1927-03-06",
		Nationality: "Colombian",
	})
	require.NoError(t, err)

	b, err := bookSvc.Create(ctx, validBookRequest(created.ID.Hex()))
	require.NoError(t, err)

	_, err = bookSvc.Borrow(ctx, b.ID.Hex(), &book.BorrowRequest{BorrowedBy: "alice"})
	require.NoError(t, err)

	_, err = authorSvc.Delete(ctx, created.ID.Hex())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Contains(t, err.Error(), "has 1 book")

	_, err = bookSvc.Return(ctx, b.ID.Hex())
	require.NoError(t, err)

	_, err = bookSvc.Delete(ctx, b.ID.Hex())
	require.NoError(t, err)

	resp, err := authorSvc.Delete(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.True(t, resp.Deleted)
}

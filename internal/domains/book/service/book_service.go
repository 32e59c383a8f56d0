package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/shared/apperr"
)

// Whitelisted sort fields, exposed name -> stored field.
var sortFields = map[string]string{
	"title":         "title",
	"publishedDate": "publishedDate",
	"rating":        "rating",
	"createdAt":     "createdAt",
}

type bookService struct {
	repo book.Repository
}

func NewBookService(repo book.Repository) book.Service {
	return &bookService{repo: repo}
}

// GetAll lists books enriched with their author via a second query and an
// in-memory join. Books default to newest first.
func (s *bookService) GetAll(ctx context.Context, filter book.Filter) ([]book.BookDetail, int64, error) {
	if filter.SortBy == "" {
		filter.SortBy = "createdAt"
		if filter.Order == "" {
			filter.Order = "desc"
		}
	}
	field, ok := sortFields[filter.SortBy]
	if !ok {
		return nil, 0, apperr.Validation([]string{"sortBy: must be one of title, publishedDate, rating, createdAt"})
	}
	filter.SortBy = field

	filter.Order = strings.ToLower(filter.Order)
	if filter.Order != "desc" {
		filter.Order = "asc"
	}

	books, total, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	details, err := s.enrich(ctx, books)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (s *bookService) GetByID(ctx context.Context, id string) (*book.BookDetail, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	details, err := s.enrich(ctx, []book.Book{*b})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *bookService) Create(ctx context.Context, req *book.CreateBookRequest) (*book.Book, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperr.FromValidation(err)
	}

	authorID, err := primitive.ObjectIDFromHex(req.AuthorID)
	if err != nil {
		return nil, author.ErrAuthorNotFound
	}

	// Fast-fail convenience; the unique index is the real guard.
	exists, err := s.repo.ExistsByISBN(ctx, req.ISBN, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, book.ErrDuplicateISBN
	}

	ok, err := s.repo.AuthorExists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, author.ErrAuthorNotFound
	}

	b := req.ToEntity()
	b.AuthorID = authorID
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *bookService) Update(ctx context.Context, id string, req *book.UpdateBookRequest) (*book.Book, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperr.FromValidation(err)
	}

	current, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if req.ISBN != nil && *req.ISBN != current.ISBN {
		exists, err := s.repo.ExistsByISBN(ctx, *req.ISBN, oid)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, book.ErrDuplicateISBN
		}
	}

	updated := *current
	req.Apply(&updated)

	if req.AuthorID != nil && *req.AuthorID != current.AuthorID.Hex() {
		authorID, err := primitive.ObjectIDFromHex(*req.AuthorID)
		if err != nil {
			return nil, author.ErrAuthorNotFound
		}
		ok, err := s.repo.AuthorExists(ctx, authorID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, author.ErrAuthorNotFound
		}
		updated.AuthorID = authorID
	}

	updated.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *bookService) Delete(ctx context.Context, id string) (*book.DeleteBookResponse, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if b.OnLoan() {
		return nil, book.ErrBookOnLoan
	}

	if err := s.repo.Delete(ctx, oid); err != nil {
		return nil, err
	}

	return &book.DeleteBookResponse{
		ID:      b.ID.Hex(),
		Title:   b.Title,
		Deleted: true,
	}, nil
}

// Borrow transitions Available -> OnLoan, stamping the borrower and a 14-day
// informational due date.
func (s *bookService) Borrow(ctx context.Context, id string, req *book.BorrowRequest) (*book.Book, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	req.BorrowedBy = strings.TrimSpace(req.BorrowedBy)
	if err := req.Validate(); err != nil {
		return nil, apperr.FromValidation(err)
	}

	now := time.Now().UTC()
	b, err := s.repo.MarkBorrowed(ctx, oid, book.Lending{
		BorrowedBy:    req.BorrowedBy,
		BorrowedDate:  now,
		ReturnDueDate: now.Add(book.LoanPeriod),
	})
	if err != nil {
		if errors.Is(err, book.ErrLendingStateMismatch) {
			return nil, book.ErrAlreadyBorrowed
		}
		return nil, err
	}
	return b, nil
}

// Return transitions OnLoan -> Available and clears the borrower fields.
func (s *bookService) Return(ctx context.Context, id string) (*book.Book, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.MarkReturned(ctx, oid)
	if err != nil {
		if errors.Is(err, book.ErrLendingStateMismatch) {
			return nil, book.ErrNotBorrowed
		}
		return nil, err
	}
	return b, nil
}

func (s *bookService) enrich(ctx context.Context, books []book.Book) ([]book.BookDetail, error) {
	ids := make([]primitive.ObjectID, 0, len(books))
	seen := make(map[primitive.ObjectID]bool, len(books))
	for _, b := range books {
		if !seen[b.AuthorID] {
			seen[b.AuthorID] = true
			ids = append(ids, b.AuthorID)
		}
	}

	authors, err := s.repo.AuthorsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]book.BookDetail, 0, len(books))
	for _, b := range books {
		detail := book.BookDetail{Book: b}
		// A missing author is tolerated: the book keeps its dangling
		// reference and the embedded author stays null.
		if a, ok := authors[b.AuthorID]; ok {
			detail.Author = &a
		}
		details = append(details, detail)
	}
	return details, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, book.ErrBookNotFound
	}
	return oid, nil
}

package book

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/domains/author"
	"library-backend/internal/shared/validate"
)

// CreateBookRequest - POST /v1/books
type CreateBookRequest struct {
	Title         string   `json:"title"`
	AuthorID      string   `json:"authorId"`
	ISBN          string   `json:"isbn"`
	Genre         string   `json:"genre"`
	PublishedDate string   `json:"publishedDate"`
	Description   string   `json:"description"`
	TotalPages    int      `json:"totalPages"`
	Rating        *float64 `json:"rating,omitempty"`
}

// Normalize trims whitespace and canonicalizes the ISBN to its bare digit
// string so uniqueness checks compare like with like.
func (r *CreateBookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.AuthorID = strings.TrimSpace(r.AuthorID)
	r.ISBN = validate.NormalizeISBN(strings.TrimSpace(r.ISBN))
	r.Genre = strings.TrimSpace(r.Genre)
	r.PublishedDate = strings.TrimSpace(r.PublishedDate)
	r.Description = strings.TrimSpace(r.Description)
}

// Validate runs every rule and accumulates all violations.
func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.AuthorID, validation.Required),
		validation.Field(&r.ISBN, validation.Required, validate.ISBN),
		validation.Field(&r.Genre, validation.Required),
		validation.Field(&r.PublishedDate, validation.Required, validate.ISODate),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.TotalPages, validation.Required, validation.Min(1), validation.Max(10000)),
		validation.Field(&r.Rating, validation.Min(0.0), validation.Max(5.0)),
	)
}

// ToEntity builds a new Book with defaults: available, rating 0 unless
// given. AuthorID is resolved by the service after the existence check.
func (r *CreateBookRequest) ToEntity() *Book {
	b := &Book{
		Title:         r.Title,
		ISBN:          r.ISBN,
		Genre:         r.Genre,
		PublishedDate: r.PublishedDate,
		Description:   r.Description,
		TotalPages:    r.TotalPages,
		Availability:  true,
	}
	if r.Rating != nil {
		b.Rating = *r.Rating
	}
	return b
}

// UpdateBookRequest - PUT /v1/books/:id
// Absent fields are left untouched; present fields are re-validated and
// overwritten. Lending fields are not updatable here; borrow/return own them.
type UpdateBookRequest struct {
	Title         *string  `json:"title,omitempty"`
	AuthorID      *string  `json:"authorId,omitempty"`
	ISBN          *string  `json:"isbn,omitempty"`
	Genre         *string  `json:"genre,omitempty"`
	PublishedDate *string  `json:"publishedDate,omitempty"`
	Description   *string  `json:"description,omitempty"`
	TotalPages    *int     `json:"totalPages,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
}

func (r *UpdateBookRequest) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.AuthorID)
	trimPtr(r.Genre)
	trimPtr(r.PublishedDate)
	trimPtr(r.Description)
	if r.ISBN != nil {
		*r.ISBN = validate.NormalizeISBN(strings.TrimSpace(*r.ISBN))
	}
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty),
		validation.Field(&r.AuthorID, validation.NilOrNotEmpty),
		validation.Field(&r.ISBN, validation.NilOrNotEmpty, validate.ISBN),
		validation.Field(&r.Genre, validation.NilOrNotEmpty),
		validation.Field(&r.PublishedDate, validation.NilOrNotEmpty, validate.ISODate),
		validation.Field(&r.Description, validation.NilOrNotEmpty),
		validation.Field(&r.TotalPages, validation.Min(1), validation.Max(10000)),
		validation.Field(&r.Rating, validation.Min(0.0), validation.Max(5.0)),
	)
}

// Apply merges supplied fields into the entity. AuthorID is merged by the
// service since it needs parsing and an existence check first.
func (r *UpdateBookRequest) Apply(b *Book) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.ISBN != nil {
		b.ISBN = *r.ISBN
	}
	if r.Genre != nil {
		b.Genre = *r.Genre
	}
	if r.PublishedDate != nil {
		b.PublishedDate = *r.PublishedDate
	}
	if r.Description != nil {
		b.Description = *r.Description
	}
	if r.TotalPages != nil {
		b.TotalPages = *r.TotalPages
	}
	if r.Rating != nil {
		b.Rating = *r.Rating
	}
}

// BorrowRequest - POST /v1/books/:id/borrow
type BorrowRequest struct {
	BorrowedBy string `json:"borrowedBy"`
}

func (r BorrowRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BorrowedBy, validation.Required),
	)
}

// BookDetail is a Book enriched at read time with its author. Author is null
// when the referenced record is gone; that inconsistency is tolerated, not
// an error.
type BookDetail struct {
	Book
	Author *author.Author `json:"author"`
}

// DeleteBookResponse confirms a removal, naming the deleted entity.
type DeleteBookResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Deleted bool   `json:"deleted"`
}

// Lending describes a borrow transition computed by the service and applied
// atomically by the repository.
type Lending struct {
	BorrowedBy    string
	BorrowedDate  time.Time
	ReturnDueDate time.Time
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

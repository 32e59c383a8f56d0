package book

import "library-backend/internal/shared/apperr"

var (
	ErrBookNotFound    = apperr.NotFound("book not found")
	ErrDuplicateISBN   = apperr.Conflict("book with this isbn already exists")
	ErrAlreadyBorrowed = apperr.Conflict("book is already borrowed")
	ErrNotBorrowed     = apperr.Conflict("book is not currently borrowed")
	ErrBookOnLoan      = apperr.Conflict("cannot delete book while it is on loan")
)

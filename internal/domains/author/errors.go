package author

import "library-backend/internal/shared/apperr"

var (
	ErrAuthorNotFound = apperr.NotFound("author not found")
	ErrDuplicateEmail = apperr.Conflict("author with this email already exists")
)

// ErrHasBooks guards deletion while books still reference the author.
func ErrHasBooks(count int64) *apperr.Error {
	if count == 1 {
		return apperr.Conflict("cannot delete author: has 1 book")
	}
	return apperr.Conflictf("cannot delete author: has %d books", count)
}

package contact

import "library-backend/internal/shared/apperr"

var (
	ErrContactNotFound = apperr.NotFound("contact not found")
	ErrDuplicateEmail  = apperr.Conflict("contact with this email already exists")
)

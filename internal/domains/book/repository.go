package book

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/domains/author"
)

type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Book, error)
	GetAll(ctx context.Context, filter Filter) ([]Book, int64, error)
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// ExistsByISBN reports whether another book already uses the
	// normalized isbn, excluding excludeID.
	ExistsByISBN(ctx context.Context, isbn string, excludeID primitive.ObjectID) (bool, error)

	// AuthorExists backs the referential check on create/update.
	AuthorExists(ctx context.Context, id primitive.ObjectID) (bool, error)

	// AuthorsByIDs reads the authors collection for the join-time
	// enrichment of book reads.
	AuthorsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]author.Author, error)

	// MarkBorrowed transitions Available -> OnLoan. The filter matches only
	// available books so the transition is atomic at the store; callers
	// disambiguate a miss into NotFound vs Conflict.
	MarkBorrowed(ctx context.Context, id primitive.ObjectID, lending Lending) (*Book, error)

	// MarkReturned transitions OnLoan -> Available and clears the borrower
	// fields, with the same miss semantics as MarkBorrowed.
	MarkReturned(ctx context.Context, id primitive.ObjectID) (*Book, error)
}

// ErrLendingStateMismatch is returned by MarkBorrowed/MarkReturned when the
// book exists but is in the wrong lending state. The service translates it
// into the operation-specific conflict.
var ErrLendingStateMismatch = errors.New("lending state mismatch")

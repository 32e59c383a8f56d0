package author

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookRef is the slice of book data the author domain needs for enrichment
// and integrity checks. Kept local to avoid a dependency on the book domain.
type BookRef struct {
	AuthorID primitive.ObjectID `bson:"authorId"`
	Title    string             `bson:"title"`
}

type Repository interface {
	Create(ctx context.Context, a *Author) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Author, error)
	GetAll(ctx context.Context, filter Filter) ([]Author, int64, error)
	Update(ctx context.Context, a *Author) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// ExistsByEmail reports whether another author already uses email,
	// excluding excludeID so updates do not collide with themselves.
	ExistsByEmail(ctx context.Context, email string, excludeID primitive.ObjectID) (bool, error)

	// BooksByAuthors reads the books collection for the join-time
	// enrichment of author listings.
	BooksByAuthors(ctx context.Context, authorIDs []primitive.ObjectID) ([]BookRef, error)

	// CountBooks backs the referential-integrity guard on delete.
	CountBooks(ctx context.Context, authorID primitive.ObjectID) (int64, error)
}

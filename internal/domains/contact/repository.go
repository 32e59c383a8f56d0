package contact

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	Create(ctx context.Context, c *Contact) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Contact, error)
	GetAll(ctx context.Context, filter Filter) ([]Contact, int64, error)
	Update(ctx context.Context, c *Contact) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ExistsByEmail(ctx context.Context, email string, excludeID primitive.ObjectID) (bool, error)
}

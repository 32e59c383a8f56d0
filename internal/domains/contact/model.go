package contact

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string             `bson:"phone" json:"phone"`
	Company   string             `bson:"company,omitempty" json:"company,omitempty"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Favorite  bool               `bson:"favorite" json:"favorite"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Filter struct {
	Name     string
	Favorite *bool
	SortBy   string
	Order    string
	Skip     int64
	Limit    int64
}

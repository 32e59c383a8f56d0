package author

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SocialMedia holds the four handles the API knows about. Each is optional.
type SocialMedia struct {
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
}

type Author struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Bio         string             `bson:"bio" json:"bio"`
	BirthDate   string             `bson:"birthDate" json:"birthDate"`
	Nationality string             `bson:"nationality" json:"nationality"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	Website     string             `bson:"website,omitempty" json:"website,omitempty"`
	SocialMedia *SocialMedia       `bson:"socialMedia,omitempty" json:"socialMedia,omitempty"`
	Awards      []string           `bson:"awards,omitempty" json:"awards,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AddAward appends the award unless it is already present. Reports whether
// the set changed.
func (a *Author) AddAward(award string) bool {
	for _, existing := range a.Awards {
		if existing == award {
			return false
		}
	}
	a.Awards = append(a.Awards, award)
	return true
}

// Filter carries list query parameters. Skip/Limit arrive already bounded by
// the HTTP layer; the store honors whatever it is given.
type Filter struct {
	Name        string
	Nationality string
	IsActive    *bool
	SortBy      string
	Order       string
	Skip        int64
	Limit       int64
}

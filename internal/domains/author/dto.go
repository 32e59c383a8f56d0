package author

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"library-backend/internal/shared/validate"
)

// CreateAuthorRequest - POST /v1/authors
type CreateAuthorRequest struct {
	Name        string       `json:"name"`
	Bio         string       `json:"bio"`
	BirthDate   string       `json:"birthDate"`
	Nationality string       `json:"nationality"`
	Email       string       `json:"email,omitempty"`
	Website     string       `json:"website,omitempty"`
	SocialMedia *SocialMedia `json:"socialMedia,omitempty"`
	Awards      []string     `json:"awards,omitempty"`
	IsActive    *bool        `json:"isActive,omitempty"`
}

// Normalize trims whitespace and lowercases the email before validation and
// persistence.
func (r *CreateAuthorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Bio = strings.TrimSpace(r.Bio)
	r.BirthDate = strings.TrimSpace(r.BirthDate)
	r.Nationality = strings.TrimSpace(r.Nationality)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Website = strings.TrimSpace(r.Website)
	for i := range r.Awards {
		r.Awards[i] = strings.TrimSpace(r.Awards[i])
	}
}

// Validate runs every rule and accumulates all violations.
func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Bio, validation.Required),
		validation.Field(&r.BirthDate, validation.Required, validate.ISODate, validation.By(validate.NotFutureDate)),
		validation.Field(&r.Nationality, validation.Required),
		validation.Field(&r.Email, is.EmailFormat),
		validation.Field(&r.Website, validate.HTTPURL),
	)
}

// ToEntity builds a new Author with defaults applied. Awards are
// deduplicated on the way in.
func (r *CreateAuthorRequest) ToEntity() *Author {
	a := &Author{
		Name:        r.Name,
		Bio:         r.Bio,
		BirthDate:   r.BirthDate,
		Nationality: r.Nationality,
		Email:       r.Email,
		Website:     r.Website,
		SocialMedia: r.SocialMedia,
		IsActive:    true,
	}
	if r.IsActive != nil {
		a.IsActive = *r.IsActive
	}
	for _, award := range r.Awards {
		if award != "" {
			a.AddAward(award)
		}
	}
	return a
}

// UpdateAuthorRequest - PUT /v1/authors/:id
// Every field is optional: absent fields are left untouched, present fields
// are re-validated and overwritten.
type UpdateAuthorRequest struct {
	Name        *string      `json:"name,omitempty"`
	Bio         *string      `json:"bio,omitempty"`
	BirthDate   *string      `json:"birthDate,omitempty"`
	Nationality *string      `json:"nationality,omitempty"`
	Email       *string      `json:"email,omitempty"`
	Website     *string      `json:"website,omitempty"`
	SocialMedia *SocialMedia `json:"socialMedia,omitempty"`
	Awards      []string     `json:"awards,omitempty"`
	IsActive    *bool        `json:"isActive,omitempty"`
}

func (r *UpdateAuthorRequest) Normalize() {
	trimPtr(r.Name)
	trimPtr(r.Bio)
	trimPtr(r.BirthDate)
	trimPtr(r.Nationality)
	trimPtr(r.Website)
	if r.Email != nil {
		*r.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	for i := range r.Awards {
		r.Awards[i] = strings.TrimSpace(r.Awards[i])
	}
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty),
		validation.Field(&r.Bio, validation.NilOrNotEmpty),
		validation.Field(&r.BirthDate, validation.NilOrNotEmpty, validate.ISODate, validation.By(validate.NotFutureDate)),
		validation.Field(&r.Nationality, validation.NilOrNotEmpty),
		validation.Field(&r.Email, is.EmailFormat),
		validation.Field(&r.Website, validate.HTTPURL),
	)
}

// Apply merges supplied fields into the entity. Awards use add-if-absent
// semantics rather than replacement.
func (r *UpdateAuthorRequest) Apply(a *Author) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Bio != nil {
		a.Bio = *r.Bio
	}
	if r.BirthDate != nil {
		a.BirthDate = *r.BirthDate
	}
	if r.Nationality != nil {
		a.Nationality = *r.Nationality
	}
	if r.Email != nil {
		a.Email = *r.Email
	}
	if r.Website != nil {
		a.Website = *r.Website
	}
	if r.SocialMedia != nil {
		a.SocialMedia = r.SocialMedia
	}
	for _, award := range r.Awards {
		if award != "" {
			a.AddAward(award)
		}
	}
	if r.IsActive != nil {
		a.IsActive = *r.IsActive
	}
}

// AddAwardRequest - POST /v1/authors/:id/awards
type AddAwardRequest struct {
	Award string `json:"award"`
}

func (r AddAwardRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Award, validation.Required),
	)
}

// AuthorDetail is an Author enriched with derived book fields computed at
// read time; nothing here is persisted.
type AuthorDetail struct {
	Author
	BookCount  int      `json:"bookCount"`
	BookTitles []string `json:"bookTitles"`
}

// DeleteAuthorResponse confirms a removal, naming the deleted entity.
type DeleteAuthorResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

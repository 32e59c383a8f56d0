package contact

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"library-backend/internal/shared/validate"
)

// CreateContactRequest - POST /v1/contacts
type CreateContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone"`
	Company  string `json:"company,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Favorite *bool  `json:"favorite,omitempty"`
}

func (r *CreateContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Company = strings.TrimSpace(r.Company)
	r.Notes = strings.TrimSpace(r.Notes)
}

func (r CreateContactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, is.EmailFormat),
		validation.Field(&r.Phone, validation.Required, validate.Phone),
	)
}

func (r *CreateContactRequest) ToEntity() *Contact {
	c := &Contact{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Company: r.Company,
		Notes:   r.Notes,
	}
	if r.Favorite != nil {
		c.Favorite = *r.Favorite
	}
	return c
}

// UpdateContactRequest - PUT /v1/contacts/:id
// Absent fields stay untouched; present fields are re-validated.
type UpdateContactRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Company  *string `json:"company,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	Favorite *bool   `json:"favorite,omitempty"`
}

func (r *UpdateContactRequest) Normalize() {
	trimPtr(r.Name)
	trimPtr(r.Phone)
	trimPtr(r.Company)
	trimPtr(r.Notes)
	if r.Email != nil {
		*r.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
}

func (r UpdateContactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty),
		validation.Field(&r.Email, is.EmailFormat),
		validation.Field(&r.Phone, validation.NilOrNotEmpty, validate.Phone),
	)
}

func (r *UpdateContactRequest) Apply(c *Contact) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	if r.Company != nil {
		c.Company = *r.Company
	}
	if r.Notes != nil {
		c.Notes = *r.Notes
	}
	if r.Favorite != nil {
		c.Favorite = *r.Favorite
	}
}

// DeleteContactResponse confirms a removal, naming the deleted entity.
type DeleteContactResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/domains/contact"
	"library-backend/internal/shared/apperr"
)

var sortFields = map[string]string{
	"name":      "name",
	"createdAt": "createdAt",
}

type contactService struct {
	repo contact.Repository
}

func NewContactService(repo contact.Repository) contact.Service {
	return &contactService{repo: repo}
}

func (s *contactService) GetAll(ctx context.Context, filter contact.Filter) ([]contact.Contact, int64, error) {
	if filter.SortBy == "" {
		filter.SortBy = "name"
	}
	field, ok := sortFields[filter.SortBy]
	if !ok {
		return nil, 0, apperr.Validation([]string{"sortBy: must be one of name, createdAt"})
	}
	filter.SortBy = field

	filter.Order = strings.ToLower(filter.Order)
	if filter.Order != "desc" {
		filter.Order = "asc"
	}

	return s.repo.GetAll(ctx, filter)
}

func (s *contactService) GetByID(ctx context.Context, id string) (*contact.Contact, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, oid)
}

func (s *contactService) Create(ctx context.Context, req *contact.CreateContactRequest) (*contact.Contact, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperr.FromValidation(err)
	}

	if req.Email != "" {
		exists, err := s.repo.ExistsByEmail(ctx, req.Email, primitive.NilObjectID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, contact.ErrDuplicateEmail
		}
	}

	c := req.ToEntity()
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contactService) Update(ctx context.Context, id string, req *contact.UpdateContactRequest) (*contact.Contact, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperr.FromValidation(err)
	}

	current, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != "" && *req.Email != current.Email {
		exists, err := s.repo.ExistsByEmail(ctx, *req.Email, oid)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, contact.ErrDuplicateEmail
		}
	}

	updated := *current
	req.Apply(&updated)
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *contactService) Delete(ctx context.Context, id string) (*contact.DeleteContactResponse, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, oid); err != nil {
		return nil, err
	}

	return &contact.DeleteContactResponse{
		ID:      c.ID.Hex(),
		Name:    c.Name,
		Deleted: true,
	}, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, contact.ErrContactNotFound
	}
	return oid, nil
}

package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/domains/author"
	"library-backend/internal/shared/apperr"
)

// Whitelisted sort fields, exposed name -> stored field.
var sortFields = map[string]string{
	"name":        "name",
	"nationality": "nationality",
	"birthDate":   "birthDate",
	"createdAt":   "createdAt",
}

type authorService struct {
	repo author.Repository
}

func NewAuthorService(repo author.Repository) author.Service {
	return &authorService{repo: repo}
}

// GetAll lists authors enriched with derived book counts and titles. The
// enrichment is a second query over the books collection plus an in-memory
// join; no aggregation pipeline leaks into the repository contract.
func (s *authorService) GetAll(ctx context.Context, filter author.Filter) ([]author.AuthorDetail, int64, error) {
	if filter.SortBy == "" {
		filter.SortBy = "name"
	}
	field, ok := sortFields[filter.SortBy]
	if !ok {
		return nil, 0, apperr.Validation([]string{"sortBy: must be one of name, nationality, birthDate, createdAt"})
	}
	filter.SortBy = field

	filter.Order = strings.ToLower(filter.Order)
	if filter.Order != "desc" {
		filter.Order = "asc"
	}

	authors, total, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	details, err := s.enrich(ctx, authors)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (s *authorService) GetByID(ctx context.Context, id string) (*author.AuthorDetail, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	details, err := s.enrich(ctx, []author.Author{*a})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *authorService) Create(ctx context.Context, req *author.CreateAuthorRequest) (*author.Author, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperr.FromValidation(err)
	}

	// Fast-fail convenience; the unique index is the real guard.
	if req.Email != "" {
		exists, err := s.repo.ExistsByEmail(ctx, req.Email, primitive.NilObjectID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, author.ErrDuplicateEmail
		}
	}

	a := req.ToEntity()
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *authorService) Update(ctx context.Context, id string, req *author.UpdateAuthorRequest) (*author.Author, error) {
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
			return nil, author.ErrDuplicateEmail
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

func (s *authorService) Delete(ctx context.Context, id string) (*author.DeleteAuthorResponse, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountBooks(ctx, oid)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, author.ErrHasBooks(count)
	}

	if err := s.repo.Delete(ctx, oid); err != nil {
		return nil, err
	}

	return &author.DeleteAuthorResponse{
		ID:      a.ID.Hex(),
		Name:    a.Name,
		Deleted: true,
	}, nil
}

func (s *authorService) AddAward(ctx context.Context, id string, req *author.AddAwardRequest) (*author.Author, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	req.Award = strings.TrimSpace(req.Award)
	if err := req.Validate(); err != nil {
		return nil, apperr.FromValidation(err)
	}

	a, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	// Add-if-absent: a repeated award is a no-op, not an error.
	if !a.AddAward(req.Award) {
		return a, nil
	}

	a.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *authorService) enrich(ctx context.Context, authors []author.Author) ([]author.AuthorDetail, error) {
	ids := make([]primitive.ObjectID, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}

	refs, err := s.repo.BooksByAuthors(ctx, ids)
	if err != nil {
		return nil, err
	}

	titles := make(map[primitive.ObjectID][]string, len(authors))
	for _, ref := range refs {
		titles[ref.AuthorID] = append(titles[ref.AuthorID], ref.Title)
	}

	details := make([]author.AuthorDetail, 0, len(authors))
	for _, a := range authors {
		details = append(details, author.AuthorDetail{
			Author:     a,
			BookCount:  len(titles[a.ID]),
			BookTitles: titles[a.ID],
		})
	}
	return details, nil
}

// parseID maps malformed identifiers to NotFound: a bad hex string can never
// resolve to a record.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, author.ErrAuthorNotFound
	}
	return oid, nil
}

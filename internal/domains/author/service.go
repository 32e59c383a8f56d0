package author

import "context"

type Service interface {
	GetAll(ctx context.Context, filter Filter) ([]AuthorDetail, int64, error)
	GetByID(ctx context.Context, id string) (*AuthorDetail, error)
	Create(ctx context.Context, req *CreateAuthorRequest) (*Author, error)
	Update(ctx context.Context, id string, req *UpdateAuthorRequest) (*Author, error)
	Delete(ctx context.Context, id string) (*DeleteAuthorResponse, error)
	AddAward(ctx context.Context, id string, req *AddAwardRequest) (*Author, error)
}

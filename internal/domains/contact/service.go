package contact

import "context"

type Service interface {
	GetAll(ctx context.Context, filter Filter) ([]Contact, int64, error)
	GetByID(ctx context.Context, id string) (*Contact, error)
	Create(ctx context.Context, req *CreateContactRequest) (*Contact, error)
	Update(ctx context.Context, id string, req *UpdateContactRequest) (*Contact, error)
	Delete(ctx context.Context, id string) (*DeleteContactResponse, error)
}

package book

import "context"

type Service interface {
	GetAll(ctx context.Context, filter Filter) ([]BookDetail, int64, error)
	GetByID(ctx context.Context, id string) (*BookDetail, error)
	Create(ctx context.Context, req *CreateBookRequest) (*Book, error)
	Update(ctx context.Context, id string, req *UpdateBookRequest) (*Book, error)
	Delete(ctx context.Context, id string) (*DeleteBookResponse, error)
	Borrow(ctx context.Context, id string, req *BorrowRequest) (*Book, error)
	Return(ctx context.Context, id string) (*Book, error)
}

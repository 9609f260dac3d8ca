package repository

import (
	"context"

	"github.com/bazarhub/catalog-api/internal/domain/entity"
)

type ContactRepository interface {
	Create(ctx context.Context, c *entity.Contact) error
	GetByID(ctx context.Context, id string) (*entity.Contact, error)
	List(ctx context.Context) ([]entity.Contact, error)
	Delete(ctx context.Context, id string) error
}

type EnquiryRepository interface {
	Create(ctx context.Context, e *entity.Enquiry) error
	GetByID(ctx context.Context, id string) (*entity.Enquiry, error)
	List(ctx context.Context) ([]entity.Enquiry, error)
	Delete(ctx context.Context, id string) error
}

package repository

import (
	"context"

	"github.com/bazarhub/catalog-api/internal/domain/entity"
)

// CategoryRepository covers the top level of the hierarchy.
// CountChildren reports how many subcategories point at a category so
// deletes can be blocked while children exist.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id string) error
	CountChildren(ctx context.Context, id string) (int, error)
}

type SubCategoryRepository interface {
	Create(ctx context.Context, c *entity.SubCategory) error
	GetByID(ctx context.Context, id string) (*entity.SubCategory, error)
	GetByName(ctx context.Context, categoryID, name string) (*entity.SubCategory, error)
	ListByCategory(ctx context.Context, categoryID string) ([]entity.SubCategory, error)
	Update(ctx context.Context, c *entity.SubCategory) error
	Delete(ctx context.Context, id string) error
	CountChildren(ctx context.Context, id string) (int, error)
}

type SubSubCategoryRepository interface {
	Create(ctx context.Context, c *entity.SubSubCategory) error
	GetByID(ctx context.Context, id string) (*entity.SubSubCategory, error)
	GetByName(ctx context.Context, subCategoryID, name string) (*entity.SubSubCategory, error)
	ListBySubCategory(ctx context.Context, subCategoryID string) ([]entity.SubSubCategory, error)
	Update(ctx context.Context, c *entity.SubSubCategory) error
	Delete(ctx context.Context, id string) error
	CountProducts(ctx context.Context, id string) (int, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	List(ctx context.Context, categoryID string) ([]entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
}

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazarhub/catalog-api/internal/domain/entity"
	"github.com/bazarhub/catalog-api/internal/domain/repository"
)

// --- categories ---

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	c := &entity.Category{}
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, slug, image_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, c.Name, c.Slug, c.ImageURL)
	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return scanCategory(r.pool.QueryRow(ctx, `
		SELECT id, name, slug, COALESCE(image_url, ''), created_at, updated_at
		FROM categories WHERE id = $1
	`, id))
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return scanCategory(r.pool.QueryRow(ctx, `
		SELECT id, name, slug, COALESCE(image_url, ''), created_at, updated_at
		FROM categories WHERE name = $1
	`, name))
}

func (r *CategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slug, COALESCE(image_url, ''), created_at, updated_at
		FROM categories ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	c.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE categories SET name = $1, slug = $2, image_url = $3, updated_at = $4 WHERE id = $5
	`, c.Name, c.Slug, c.ImageURL, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errors.New("category not found")
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}

func (r *CategoryRepository) CountChildren(ctx context.Context, id string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM subcategories WHERE category_id = $1`, id).Scan(&n)
	return n, err
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

// --- subcategories ---

type SubCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewSubCategoryRepository(pool *pgxpool.Pool) *SubCategoryRepository {
	return &SubCategoryRepository{pool: pool}
}

func scanSubCategory(row pgx.Row) (*entity.SubCategory, error) {
	c := &entity.SubCategory{}
	err := row.Scan(&c.ID, &c.CategoryID, &c.Name, &c.Slug, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *SubCategoryRepository) Create(ctx context.Context, c *entity.SubCategory) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO subcategories (category_id, name, slug, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, c.CategoryID, c.Name, c.Slug, c.ImageURL)
	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *SubCategoryRepository) GetByID(ctx context.Context, id string) (*entity.SubCategory, error) {
	return scanSubCategory(r.pool.QueryRow(ctx, `
		SELECT id, category_id, name, slug, COALESCE(image_url, ''), created_at, updated_at
		FROM subcategories WHERE id = $1
	`, id))
}

func (r *SubCategoryRepository) GetByName(ctx context.Context, categoryID, name string) (*entity.SubCategory, error) {
	return scanSubCategory(r.pool.QueryRow(ctx, `
		SELECT id, category_id, name, slug, COALESCE(image_url, ''), created_at, updated_at
		FROM subcategories WHERE category_id = $1 AND name = $2
	`, categoryID, name))
}

func (r *SubCategoryRepository) ListByCategory(ctx context.Context, categoryID string) ([]entity.SubCategory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, category_id, name, slug, COALESCE(image_url, ''), created_at, updated_at
		FROM subcategories WHERE category_id = $1 ORDER BY name
	`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []entity.SubCategory
	for rows.Next() {
		var c entity.SubCategory
		if err := rows.Scan(&c.ID, &c.CategoryID, &c.Name, &c.Slug, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SubCategoryRepository) Update(ctx context.Context, c *entity.SubCategory) error {
	c.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE subcategories SET name = $1, slug = $2, image_url = $3, updated_at = $4 WHERE id = $5
	`, c.Name, c.Slug, c.ImageURL, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errors.New("subcategory not found")
	}
	return nil
}

func (r *SubCategoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM subcategories WHERE id = $1`, id)
	return err
}

func (r *SubCategoryRepository) CountChildren(ctx context.Context, id string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM subsubcategories WHERE subcategory_id = $1`, id).Scan(&n)
	return n, err
}

var _ repository.SubCategoryRepository = (*SubCategoryRepository)(nil)

// --- subsubcategories ---

type SubSubCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewSubSubCategoryRepository(pool *pgxpool.Pool) *SubSubCategoryRepository {
	return &SubSubCategoryRepository{pool: pool}
}

func scanSubSubCategory(row pgx.Row) (*entity.SubSubCategory, error) {
	c := &entity.SubSubCategory{}
	err := row.Scan(&c.ID, &c.SubCategoryID, &c.Name, &c.Slug, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *SubSubCategoryRepository) Create(ctx context.Context, c *entity.SubSubCategory) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO subsubcategories (subcategory_id, name, slug, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, c.SubCategoryID, c.Name, c.Slug, c.ImageURL)
	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *SubSubCategoryRepository) GetByID(ctx context.Context, id string) (*entity.SubSubCategory, error) {
	return scanSubSubCategory(r.pool.QueryRow(ctx, `
		SELECT id, subcategory_id, name, slug, COALESCE(image_url, ''), created_at, updated_at
		FROM subsubcategories WHERE id = $1
	`, id))
}

func (r *SubSubCategoryRepository) GetByName(ctx context.Context, subCategoryID, name string) (*entity.SubSubCategory, error) {
	return scanSubSubCategory(r.pool.QueryRow(ctx, `
		SELECT id, subcategory_id, name, slug, COALESCE(image_url, ''), created_at, updated_at
		FROM subsubcategories WHERE subcategory_id = $1 AND name = $2
	`, subCategoryID, name))
}

func (r *SubSubCategoryRepository) ListBySubCategory(ctx context.Context, subCategoryID string) ([]entity.SubSubCategory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, subcategory_id, name, slug, COALESCE(image_url, ''), created_at, updated_at
		FROM subsubcategories WHERE subcategory_id = $1 ORDER BY name
	`, subCategoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []entity.SubSubCategory
	for rows.Next() {
		var c entity.SubSubCategory
		if err := rows.Scan(&c.ID, &c.SubCategoryID, &c.Name, &c.Slug, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SubSubCategoryRepository) Update(ctx context.Context, c *entity.SubSubCategory) error {
	c.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE subsubcategories SET name = $1, slug = $2, image_url = $3, updated_at = $4 WHERE id = $5
	`, c.Name, c.Slug, c.ImageURL, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errors.New("subsubcategory not found")
	}
	return nil
}

func (r *SubSubCategoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM subsubcategories WHERE id = $1`, id)
	return err
}

func (r *SubSubCategoryRepository) CountProducts(ctx context.Context, id string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE subsubcategory_id = $1`, id).Scan(&n)
	return n, err
}

var _ repository.SubSubCategoryRepository = (*SubSubCategoryRepository)(nil)

// --- products ---

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productCols = `id, category_id, COALESCE(subcategory_id::text, ''), COALESCE(subsubcategory_id::text, ''),
	name, slug, COALESCE(description, ''), price, stock, COALESCE(image_url, ''), created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{}
	err := row.Scan(&p.ID, &p.CategoryID, &p.SubCategoryID, &p.SubSubCategoryID,
		&p.Name, &p.Slug, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (category_id, subcategory_id, subsubcategory_id, name, slug, description, price, stock, image_url)
		VALUES ($1, NULLIF($2, '')::uuid, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, p.CategoryID, p.SubCategoryID, p.SubSubCategoryID, p.Name, p.Slug, p.Description, p.Price, p.Stock, p.ImageURL)
	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx,
		"SELECT "+productCols+" FROM products WHERE id = $1", id))
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx,
		"SELECT "+productCols+" FROM products WHERE slug = $1", slug))
}

// List returns all products, or only those under a category when
// categoryID is non-empty.
func (r *ProductRepository) List(ctx context.Context, categoryID string) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productCols+` FROM products
		WHERE $1 = '' OR category_id = NULLIF($1, '')::uuid
		ORDER BY name
	`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.SubCategoryID, &p.SubSubCategoryID,
			&p.Name, &p.Slug, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	p.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $1, slug = $2, description = $3, price = $4, stock = $5, image_url = $6, updated_at = $7
		WHERE id = $8
	`, p.Name, p.Slug, p.Description, p.Price, p.Stock, p.ImageURL, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errors.New("product not found")
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

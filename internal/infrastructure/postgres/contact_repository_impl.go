package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazarhub/catalog-api/internal/domain/entity"
	"github.com/bazarhub/catalog-api/internal/domain/repository"
)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO contacts (name, email, phone, subject, message)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)
		RETURNING id, created_at
	`, c.Name, c.Email, c.Phone, c.Subject, c.Message)
	return row.Scan(&c.ID, &c.CreatedAt)
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (*entity.Contact, error) {
	c := &entity.Contact{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), subject, message, created_at
		FROM contacts WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *ContactRepository) List(ctx context.Context) ([]entity.Contact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), subject, message, created_at
		FROM contacts ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []entity.Contact
	for rows.Next() {
		var c entity.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	return err
}

var _ repository.ContactRepository = (*ContactRepository)(nil)

type EnquiryRepository struct {
	pool *pgxpool.Pool
}

func NewEnquiryRepository(pool *pgxpool.Pool) *EnquiryRepository {
	return &EnquiryRepository{pool: pool}
}

func (r *EnquiryRepository) Create(ctx context.Context, e *entity.Enquiry) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO enquiries (name, email, phone, product_id, message)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, '')::uuid, $5)
		RETURNING id, created_at
	`, e.Name, e.Email, e.Phone, e.ProductID, e.Message)
	return row.Scan(&e.ID, &e.CreatedAt)
}

func (r *EnquiryRepository) GetByID(ctx context.Context, id string) (*entity.Enquiry, error) {
	e := &entity.Enquiry{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), COALESCE(product_id::text, ''), message, created_at
		FROM enquiries WHERE id = $1
	`, id).Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.ProductID, &e.Message, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

func (r *EnquiryRepository) List(ctx context.Context) ([]entity.Enquiry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), COALESCE(product_id::text, ''), message, created_at
		FROM enquiries ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []entity.Enquiry
	for rows.Next() {
		var e entity.Enquiry
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.ProductID, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EnquiryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM enquiries WHERE id = $1`, id)
	return err
}

var _ repository.EnquiryRepository = (*EnquiryRepository)(nil)

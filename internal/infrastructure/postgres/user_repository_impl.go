package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazarhub/catalog-api/internal/domain/entity"
	"github.com/bazarhub/catalog-api/internal/domain/repository"
)

// Optional identity columns are stored as NULL, never empty string, so
// the partial unique indexes hold. Entities use "" for absent.
const userCols = `id, COALESCE(username, ''), COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(password, ''), COALESCE(first_name, ''), COALESCE(last_name, ''),
	is_activated, COALESCE(google_id, ''), COALESCE(facebook_id, ''),
	COALESCE(otp, ''), otp_expires, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Phone,
		&u.Password, &u.FirstName, &u.LastName,
		&u.IsActivated, &u.GoogleID, &u.FacebookID,
		&u.OTP, &u.OTPExpires, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, phone, password, first_name, last_name, is_activated, google_id)
		VALUES (NULLIF($1, ''), NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, NULLIF($8, ''))
		RETURNING id, created_at, updated_at
	`, u.Username, u.Email, u.Phone, u.Password, u.FirstName, u.LastName, u.IsActivated, u.GoogleID)
	return row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg any) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM users WHERE %s", userCols, where), arg)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	return r.getBy(ctx, "phone = $1", phone)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getBy(ctx, "username = $1", username)
}

func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*entity.User, error) {
	return r.getBy(ctx, "google_id = $1", googleID)
}

// FindByAny matches on any of the three identity fields; empty inputs
// never match because the columns are NULL for absent values.
func (r *UserRepository) FindByAny(ctx context.Context, username, email, phone string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM users
		WHERE username = NULLIF($1, '') OR email = NULLIF($2, '') OR phone = NULLIF($3, '')
		LIMIT 1
	`, userCols), username, email, phone)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = NULLIF($1, ''), email = NULLIF($2, ''), phone = NULLIF($3, ''),
			password = NULLIF($4, ''), first_name = NULLIF($5, ''), last_name = NULLIF($6, ''),
			is_activated = $7, updated_at = $8
		WHERE id = $9
	`, u.Username, u.Email, u.Phone, u.Password, u.FirstName, u.LastName, u.IsActivated, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errors.New("user not found")
	}
	return nil
}

func (r *UserRepository) SetActivated(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET is_activated = TRUE, updated_at = now() WHERE id = $1
	`, id)
	return err
}

func (r *UserRepository) SetOTP(ctx context.Context, id, code string, expires time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET otp = $2, otp_expires = $3, updated_at = now() WHERE id = $1
	`, id, code, expires)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET password = $2, updated_at = now() WHERE id = $1
	`, id, passwordHash)
	return err
}

// ConsumeOTP is the compare-and-clear: one UPDATE matches the code and
// its expiry and wipes both in the same statement, so a code can only
// be used once even under concurrent verifications.
func (r *UserRepository) ConsumeOTP(ctx context.Context, contactField, contact, code string) (*entity.User, error) {
	var where string
	switch contactField {
	case repository.ContactFieldEmail:
		where = "email = $1"
	case repository.ContactFieldPhone:
		where = "phone = $1"
	default:
		return nil, fmt.Errorf("unknown contact field %q", contactField)
	}
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE users SET otp = NULL, otp_expires = NULL, updated_at = now()
		WHERE %s AND otp = $2 AND otp_expires > now()
		RETURNING %s
	`, where, userCols), contact, code)
	return scanUser(row)
}

var _ repository.UserRepository = (*UserRepository)(nil)

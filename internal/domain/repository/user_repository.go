package repository

import (
	"context"
	"time"

	"github.com/bazarhub/catalog-api/internal/domain/entity"
)

// UserRepository defines the storage contract for the account flows.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByPhone(ctx context.Context, phone string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*entity.User, error)

	// FindByAny reports any user matching username, email or phone; a
	// single collision is enough to block a registration.
	FindByAny(ctx context.Context, username, email, phone string) (*entity.User, error)

	Update(ctx context.Context, u *entity.User) error
	SetActivated(ctx context.Context, id string) error
	SetOTP(ctx context.Context, id, code string, expires time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// ConsumeOTP atomically clears the stored code and returns the user,
	// but only when the code matches and has not expired. Two concurrent
	// verifications of the same code succeed at most once.
	ConsumeOTP(ctx context.Context, contactField, contact, code string) (*entity.User, error)
}

// Contact field names accepted by ConsumeOTP.
const (
	ContactFieldEmail = "email"
	ContactFieldPhone = "phone"
)

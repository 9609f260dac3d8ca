package entity

import (
	"time"
)

// User is the aggregate root for the account domain. Passwords are
// stored as bcrypt hashes in Password; pure-OAuth accounts carry an
// empty hash. Username, Email, Phone and GoogleID are each unique when
// present; empty string means absent (stored as NULL).
type User struct {
	ID          string
	Username    string
	Email       string
	Phone       string
	Password    string
	FirstName   string
	LastName    string
	IsActivated bool
	GoogleID    string
	FacebookID  string
	OTP         string
	OTPExpires  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DisplayName prefers the real name, falling back to the username.
func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		name = u.Username
	}
	return name
}

package entity

import "time"

// Role represents an authorization role attached to users
// through the user_roles join table.
type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Permission is a named capability; many-to-many with roles.
type Permission struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

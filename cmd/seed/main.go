package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/bazarhub/catalog-api/config"
	"github.com/bazarhub/catalog-api/internal/domain/entity"
	"github.com/bazarhub/catalog-api/pkg/helpers"
)

func upsertRole(db *sql.DB, name string) (entity.Role, error) {
	var r entity.Role
	err := db.QueryRow(`
		INSERT INTO roles (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET updated_at = now()
		RETURNING id, name, created_at, updated_at
	`, name).Scan(&r.ID, &r.Name, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func upsertPermission(db *sql.DB, name string) (entity.Permission, error) {
	var p entity.Permission
	err := db.QueryRow(`
		INSERT INTO permissions (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET updated_at = now()
		RETURNING id, name, created_at, updated_at
	`, name).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Base roles
	adminRole, err := upsertRole(db, "admin")
	if err != nil {
		log.Fatalf("failed to upsert admin role: %v", err)
	}
	userRole, err := upsertRole(db, "user")
	if err != nil {
		log.Fatalf("failed to upsert user role: %v", err)
	}
	fmt.Printf("roles ensured: admin=%s user=%s\n", adminRole.ID, userRole.ID)

	// Catalog management permissions for the admin role
	for _, name := range []string{"catalog:write", "products:write", "contacts:read", "enquiries:read"} {
		perm, err := upsertPermission(db, name)
		if err != nil {
			log.Fatalf("failed to upsert permission %s: %v", name, err)
		}
		if _, err := db.Exec(`
			INSERT INTO role_permissions (role_id, permission_id)
			VALUES ($1, $2)
			ON CONFLICT (role_id, permission_id) DO NOTHING
		`, adminRole.ID, perm.ID); err != nil {
			log.Fatalf("failed to grant %s: %v", perm.Name, err)
		}
	}

	// Demo admin account, already activated
	email := "admin@bazarhub.dev"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password, is_activated)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (email) DO UPDATE SET is_activated = TRUE, updated_at = now()
		RETURNING id
	`, "admin", email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`, id, adminRole.ID); err != nil {
		log.Fatalf("failed to assign admin role: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", id, email, password)
}

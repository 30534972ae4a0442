package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/lumoshop/lumoshop-api/config"
	"github.com/lumoshop/lumoshop-api/internal/application"
	"github.com/lumoshop/lumoshop-api/internal/domain/entity"
	"github.com/lumoshop/lumoshop-api/pkg/helpers"
)

// Seeds the reserved admin identity from ADMIN_EMAIL so the admin
// surface is usable before the first federated sign-in.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.AdminEmail == "" {
		log.Fatal("ADMIN_EMAIL not configured")
	}
	password := envOr("ADMIN_PASSWORD", "changeme123")

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := application.NormalizeEmail(cfg.AdminEmail)
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, username, first_name, last_name, photo_url, role, email_confirmed)
		VALUES ($1, $2, 'admin', 'Admin', '', $3, $4, TRUE)
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role, updated_at = now()
		RETURNING id
	`, email, hash, entity.DefaultPhotoURL, entity.RoleAdmin).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s\n", id, email)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

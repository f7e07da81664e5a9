// seed-user creates or updates a login user from env vars. Handy for fresh
// deployments and local testing without going through /api/auth/register.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//   SEED_EMAIL=owner@example.com SEED_PASSWORD=secret SEED_NAME="Owner" \
//   go run ./cmd/seed-user
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/returnukhti/resi_backend/config"
	"github.com/returnukhti/resi_backend/models"
	"github.com/returnukhti/resi_backend/utils"
	"gorm.io/gorm"
)

func main() {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_EMAIL")))
	password := os.Getenv("SEED_PASSWORD")
	name := strings.TrimSpace(os.Getenv("SEED_NAME"))
	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "SEED_EMAIL and SEED_PASSWORD are required")
		os.Exit(1)
	}
	if name == "" {
		name = email
	}

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	hashed, err := utils.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	var existing models.User
	err = db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
			os.Exit(1)
		}
		u := models.User{
			Name:     name,
			Email:    email,
			Password: string(hashed),
		}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created user: email=%q (id=%d)\n", email, u.ID)
		return
	}

	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Updates(map[string]any{
		"password": string(hashed),
		"name":     name,
	}).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to update user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Updated user: email=%q (id=%d)\n", email, existing.ID)
}

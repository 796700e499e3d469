package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/giftlink/giftlink-api/config"
	"github.com/giftlink/giftlink-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@giftlink.dev"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET first_name = EXCLUDED.first_name
		RETURNING id
	`, "Demo", "User", email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	gifts := []struct {
		name        string
		category    string
		condition   string
		ageYears    int
		description string
	}{
		{"Wooden rocking chair", "Furniture", "Good", 5, "Solid oak rocking chair, lightly worn armrests."},
		{"Acoustic guitar", "Music", "Like New", 1, "Barely used dreadnought with a soft case."},
		{"Box of picture books", "Books", "Fair", 8, "Around twenty picture books for ages 3 to 7."},
		{"Stand mixer", "Kitchen", "Good", 3, "Five-quart stand mixer with dough hook and whisk."},
		{"Mountain bike", "Sports", "Fair", 6, "26 inch frame, new brake pads, tires hold air."},
	}
	for _, g := range gifts {
		var giftID string
		err := db.QueryRow(`
			INSERT INTO gifts (name, category, condition, age_years, description)
			SELECT $1, $2, $3, $4, $5
			WHERE NOT EXISTS (SELECT 1 FROM gifts WHERE name = $1)
			RETURNING id
		`, g.name, g.category, g.condition, g.ageYears, g.description).Scan(&giftID)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			log.Fatalf("failed to seed gift %q: %v", g.name, err)
		}
		fmt.Printf("seeded gift: id=%s name=%s\n", giftID, g.name)
	}
}

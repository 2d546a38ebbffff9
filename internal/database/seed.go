package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"inkwell/internal/slug"
)

// seedCategories are the starter categories inserted on a fresh development
// database.
var seedCategories = []struct {
	name        string
	description string
}{
	{"Engineering", "Deep dives into how we build things"},
	{"Product", "Announcements and product updates"},
	{"Culture", "Life at the company"},
}

// Seed inserts development sample data. It is a no-op when the categories
// table already has rows, so it is safe to call on every startup.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("seed count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, c := range seedCategories {
		_, err := db.Exec(`
			INSERT INTO categories (name, slug, description)
			VALUES ($1, $2, $3)
		`, c.name, slug.Make(c.name), c.description)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", c.name, err)
		}
	}

	_, err := db.Exec(`
		INSERT INTO posts (title, slug, status, content, author)
		VALUES ($1, $2, $3, $4, $5)
	`,
		"Welcome to Inkwell",
		slug.Make("Welcome to Inkwell"),
		"published",
		`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"This is your first post."}]}]}`,
		"admin",
	)
	if err != nil {
		return fmt.Errorf("seed welcome post: %w", err)
	}

	slog.Info("development data seeded", "categories", len(seedCategories))
	return nil
}

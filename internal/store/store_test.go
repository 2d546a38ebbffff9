// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"encoding/json"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/database"
	"inkwell/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with the same defaults as config.Load.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Reset goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanCategories removes test categories by slug. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM categories WHERE slug = $1", slug)
	}
}

// cleanPosts removes test posts by slug. Call in t.Cleanup().
func cleanPosts(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM posts WHERE slug = $1", slug)
	}
}

// uniqueSuffix returns a short random suffix for test slugs so parallel
// runs never collide with leftover rows.
func uniqueSuffix() string {
	return uuid.NewString()[:8]
}

// testContent returns a minimal opaque editor document.
func testContent() json.RawMessage {
	return json.RawMessage(`{"type":"doc","content":[]}`)
}

// makeCategory inserts a category directly and returns it.
func makeCategory(t *testing.T, db *sql.DB, name, slug string) *models.Category {
	t.Helper()
	s := NewCategoryStore(db)
	c, err := s.Create(&models.Category{Name: name, Slug: slug})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	t.Cleanup(func() { cleanCategories(t, db, slug) })
	return c
}

// makePost inserts a post directly and returns it.
func makePost(t *testing.T, db *sql.DB, title, slug string, status models.PostStatus) *models.Post {
	t.Helper()
	s := NewPostStore(db)
	p, err := s.Create(&models.Post{
		Title:   title,
		Slug:    slug,
		Status:  status,
		Content: testContent(),
		Author:  "tester",
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	t.Cleanup(func() { cleanPosts(t, db, slug) })
	return p
}

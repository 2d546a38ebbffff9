// service_test.go provides a shared test database helper for the service
// integration tests. Tests are skipped if PostgreSQL is not available.
package service

import (
	"database/sql"
	"encoding/json"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/database"
	"inkwell/internal/store"
)

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

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testServices wires both services against the same database handle.
func testServices(db *sql.DB) (*CategoryService, *PostService) {
	categories := store.NewCategoryStore(db)
	posts := store.NewPostStore(db)
	links := store.NewPostCategoryStore(db)
	return NewCategoryService(categories, links), NewPostService(posts, categories, links)
}

// uniqueSuffix returns a short random suffix so test names never collide
// with leftover rows from earlier runs.
func uniqueSuffix() string {
	return uuid.NewString()[:8]
}

func testContent() json.RawMessage {
	return json.RawMessage(`{"type":"doc","content":[]}`)
}

// cleanPostsByTitle removes every post whose title starts with prefix.
func cleanPostsByTitle(t *testing.T, db *sql.DB, prefix string) {
	t.Helper()
	db.Exec(`DELETE FROM posts WHERE title LIKE $1 || '%'`, prefix)
}

// cleanCategoriesByName removes every category whose name starts with prefix.
func cleanCategoriesByName(t *testing.T, db *sql.DB, prefix string) {
	t.Helper()
	db.Exec(`DELETE FROM categories WHERE name LIKE $1 || '%'`, prefix)
}

// asServiceError fails the test unless err is a *Error with the given code.
func asServiceError(t *testing.T, err error, code Code) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	svcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *service.Error, got %T: %v", err, err)
	}
	if svcErr.Code != code {
		t.Fatalf("error code: got %s, want %s (message %q)", svcErr.Code, code, svcErr.Message)
	}
	return svcErr
}

// Copyright (c) 2026 The Inkwell Authors
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"inkwell/internal/models"
)

// Listing defaults and bounds shared with the API layer.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// PostStore manages posts in the database.
type PostStore struct {
	db *sql.DB
}

// NewPostStore returns a new PostStore.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, slug, status, content, author, created_at, updated_at`

// scanPost scans a row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Status, &p.Content, &p.Author,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PostFilter narrows a post listing. Zero values mean "no constraint";
// Limit falls back to DefaultListLimit when unset.
type PostFilter struct {
	Status models.PostStatus
	Author string
	IDs    []int64
	Limit  int
	Offset int
}

// List returns posts matching the filter, ordered by creation date descending.
func (s *PostStore) List(f PostFilter) ([]models.Post, error) {
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Author != "" {
		args = append(args, f.Author)
		conds = append(conds, fmt.Sprintf("author = $%d", len(args)))
	}
	if f.IDs != nil {
		args = append(args, f.IDs)
		conds = append(conds, fmt.Sprintf("id = ANY($%d)", len(args)))
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a post by ID. Returns nil if not found.
func (s *PostStore) FindByID(id int64) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a post by slug regardless of status. Returns nil if
// not found. Also used by the slug collision loop, which must see drafts.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = $1`, slug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// Count returns the number of posts under an optional status/author filter.
func (s *PostStore) Count(status models.PostStatus, author string) (int, error) {
	var (
		conds []string
		args  []any
	)
	if status != "" {
		args = append(args, status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if author != "" {
		args = append(args, author)
		conds = append(conds, fmt.Sprintf("author = $%d", len(args)))
	}

	query := `SELECT COUNT(*) FROM posts`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// Create inserts a new post and returns the stored row. A slug uniqueness
// race lost here surfaces as a constraint violation (see IsUniqueViolation).
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	row := s.db.QueryRow(`
		INSERT INTO posts (title, slug, status, content, author)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+postColumns,
		p.Title, p.Slug, p.Status, p.Content, p.Author,
	)
	result, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// Update modifies all mutable fields of an existing post, bumping
// updated_at, and returns the stored row.
func (s *PostStore) Update(p *models.Post) (*models.Post, error) {
	row := s.db.QueryRow(`
		UPDATE posts SET
			title = $1, slug = $2, status = $3, content = $4, author = $5,
			updated_at = NOW()
		WHERE id = $6
		RETURNING `+postColumns,
		p.Title, p.Slug, p.Status, p.Content, p.Author, p.ID,
	)
	result, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return result, nil
}

// UpdateStatus changes only the status of a post, bumping updated_at, and
// returns the stored row.
func (s *PostStore) UpdateStatus(id int64, status models.PostStatus) (*models.Post, error) {
	row := s.db.QueryRow(`
		UPDATE posts SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+postColumns,
		status, id,
	)
	result, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("update post status: %w", err)
	}
	return result, nil
}

// Delete removes a post by ID. Join rows cascade at the schema level.
func (s *PostStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

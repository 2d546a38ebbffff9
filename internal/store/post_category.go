// Copyright (c) 2026 The Inkwell Authors
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"inkwell/internal/models"
)

// PostCategoryStore manages the many-to-many relationship between posts and
// categories. Rows are pure relationship records; the composite primary key
// guarantees at most one link per (post, category) pair.
type PostCategoryStore struct {
	db *sql.DB
}

// NewPostCategoryStore returns a new PostCategoryStore.
func NewPostCategoryStore(db *sql.DB) *PostCategoryStore {
	return &PostCategoryStore{db: db}
}

// CategoriesForPost returns the categories linked to a post, ordered by
// creation date descending.
func (s *PostCategoryStore) CategoriesForPost(postID int64) ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.slug, c.description, c.created_at, c.updated_at
		FROM categories c
		JOIN post_categories pc ON pc.category_id = c.id
		WHERE pc.post_id = $1
		ORDER BY c.created_at DESC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("categories for post: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// PostsForCategory returns the posts linked to a category, ordered by
// creation date descending.
func (s *PostCategoryStore) PostsForCategory(categoryID int64) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.title, p.slug, p.status, p.content, p.author,
		       p.created_at, p.updated_at
		FROM posts p
		JOIN post_categories pc ON pc.post_id = p.id
		WHERE pc.category_id = $1
		ORDER BY p.created_at DESC
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("posts for category: %w", err)
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

// PostIDsForCategory returns the ids of posts linked to a category.
func (s *PostCategoryStore) PostIDsForCategory(categoryID int64) ([]int64, error) {
	rows, err := s.db.Query(`
		SELECT post_id FROM post_categories WHERE category_id = $1
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("post ids for category: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan post id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CategoryIDsForPost returns the ids of categories linked to a post.
func (s *PostCategoryStore) CategoryIDsForPost(postID int64) ([]int64, error) {
	rows, err := s.db.Query(`
		SELECT category_id FROM post_categories WHERE post_id = $1
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("category ids for post: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan category id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountForCategory returns the number of posts linked to a category.
func (s *PostCategoryStore) CountForCategory(categoryID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM post_categories WHERE category_id = $1
	`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts for category: %w", err)
	}
	return count, nil
}

// Link inserts join rows for the given category ids. Callers are expected
// to have filtered out already-linked ids.
func (s *PostCategoryStore) Link(postID int64, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	return s.link(s.db, postID, categoryIDs)
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (s *PostCategoryStore) link(e execer, postID int64, categoryIDs []int64) error {
	_, err := e.Exec(`
		INSERT INTO post_categories (post_id, category_id)
		SELECT $1, unnest($2::bigint[])
	`, postID, categoryIDs)
	if err != nil {
		return fmt.Errorf("link categories: %w", err)
	}
	return nil
}

// Unlink deletes the join rows matching the given category ids. Ids that
// were never linked are ignored.
func (s *PostCategoryStore) Unlink(postID int64, categoryIDs []int64) error {
	_, err := s.db.Exec(`
		DELETE FROM post_categories
		WHERE post_id = $1 AND category_id = ANY($2)
	`, postID, categoryIDs)
	if err != nil {
		return fmt.Errorf("unlink categories: %w", err)
	}
	return nil
}

// Replace swaps the full category set of a post in a single transaction, so
// a failure partway through leaves the previous links intact.
func (s *PostCategoryStore) Replace(postID int64, categoryIDs []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM post_categories WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	if len(categoryIDs) > 0 {
		if err := s.link(tx, postID, categoryIDs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

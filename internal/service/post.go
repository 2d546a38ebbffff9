// Copyright (c) 2026 The Inkwell Authors
// All rights reserved. See LICENSE for details.

package service

import (
	"encoding/json"
	"fmt"

	"inkwell/internal/models"
	"inkwell/internal/slug"
	"inkwell/internal/store"
)

// maxSlugRetries bounds how often a create/update is retried after losing a
// slug uniqueness race at the storage layer. The pre-check loop can race
// with a concurrent writer; the unique constraint is the backstop, and a
// violation triggers a re-derivation with a fresh suffix. Once exhausted,
// the violation is surfaced verbatim.
const maxSlugRetries = 3

// PostService implements the post procedures.
type PostService struct {
	posts      *store.PostStore
	categories *store.CategoryStore
	links      *store.PostCategoryStore
}

// NewPostService returns a new PostService.
func NewPostService(posts *store.PostStore, categories *store.CategoryStore, links *store.PostCategoryStore) *PostService {
	return &PostService{posts: posts, categories: categories, links: links}
}

// ListParams narrow a post listing. Limit defaults to store.DefaultListLimit
// when zero; the API layer rejects values above store.MaxListLimit.
type ListParams struct {
	Status models.PostStatus
	Author string
	Limit  int
	Offset int
}

// GetAll returns posts under an optional status filter, newest first.
func (s *PostService) GetAll(p ListParams) ([]models.Post, error) {
	return s.list(store.PostFilter{
		Status: p.Status,
		Author: p.Author,
		Limit:  p.Limit,
		Offset: p.Offset,
	})
}

// GetPublished returns published posts, newest first.
func (s *PostService) GetPublished(p ListParams) ([]models.Post, error) {
	p.Status = models.PostStatusPublished
	return s.GetAll(p)
}

// GetByAuthor returns an author's posts under an optional status filter,
// newest first.
func (s *PostService) GetByAuthor(author string, p ListParams) ([]models.Post, error) {
	p.Author = author
	return s.GetAll(p)
}

func (s *PostService) list(f store.PostFilter) ([]models.Post, error) {
	items, err := s.posts.List(f)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Post{}
	}
	return items, nil
}

// GetByID returns a single post with its categories eagerly attached.
func (s *PostService) GetByID(id int64) (*models.Post, error) {
	p, err := s.posts.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("Post not found")
	}
	return s.attachCategories(p)
}

// GetBySlug returns a single post with its categories eagerly attached.
// Drafts are returned too; status filtering is the caller's concern.
func (s *PostService) GetBySlug(postSlug string) (*models.Post, error) {
	p, err := s.posts.FindBySlug(postSlug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("Post not found")
	}
	return s.attachCategories(p)
}

func (s *PostService) attachCategories(p *models.Post) (*models.Post, error) {
	cats, err := s.links.CategoriesForPost(p.ID)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []models.Category{}
	}
	p.Categories = cats
	return p, nil
}

// GetByCategory returns the posts linked to a category, newest first.
// A category with no linked posts yields an empty list, not an error.
func (s *PostService) GetByCategory(categoryID int64, p ListParams) ([]models.Post, error) {
	ids, err := s.links.PostIDsForCategory(categoryID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Post{}, nil
	}
	return s.list(store.PostFilter{
		IDs:    ids,
		Status: p.Status,
		Limit:  p.Limit,
		Offset: p.Offset,
	})
}

// GetByCategorySlug resolves a category slug and returns its linked posts.
// An unknown slug is NOT_FOUND; a known slug with no posts is an empty list.
func (s *PostService) GetByCategorySlug(categorySlug string, p ListParams) ([]models.Post, error) {
	c, err := s.categories.FindBySlug(categorySlug)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound("Category not found")
	}
	return s.GetByCategory(c.ID, p)
}

// GetCount returns the number of posts under an optional compound
// status/author filter.
func (s *PostService) GetCount(status models.PostStatus, author string) (int, error) {
	return s.posts.Count(status, author)
}

// resolveSlug derives the base slug from title and walks numeric suffixes
// until no other row holds the candidate. For updates, excludeID is the row
// being updated, which may keep its own slug.
func (s *PostService) resolveSlug(title string, excludeID int64) (string, error) {
	base := slug.Make(title)
	candidate := base
	for suffix := 1; ; suffix++ {
		existing, err := s.posts.FindBySlug(candidate)
		if err != nil {
			return "", err
		}
		if existing == nil || (excludeID != 0 && existing.ID == excludeID) {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}

// Create inserts a new post with a collision-resolved slug.
func (s *PostService) Create(title string, content json.RawMessage, author string, status models.PostStatus) (*models.Post, error) {
	if status == "" {
		status = models.PostStatusDraft
	}

	for attempt := 0; ; attempt++ {
		sl, err := s.resolveSlug(title, 0)
		if err != nil {
			return nil, err
		}

		created, err := s.posts.Create(&models.Post{
			Title:   title,
			Slug:    sl,
			Status:  status,
			Content: content,
			Author:  author,
		})
		if err != nil {
			if store.IsUniqueViolation(err) && attempt < maxSlugRetries {
				continue
			}
			return nil, err
		}
		return created, nil
	}
}

// Update replaces all mutable fields of a post. The slug is re-derived only
// when the derived slug differs from the current one, so editing a post
// without renaming it never changes its URL.
func (s *PostService) Update(id int64, title string, status models.PostStatus, content json.RawMessage, author string) (*models.Post, error) {
	existing, err := s.posts.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFound("Post not found")
	}

	for attempt := 0; ; attempt++ {
		newSlug := existing.Slug
		if slug.Make(title) != existing.Slug {
			newSlug, err = s.resolveSlug(title, id)
			if err != nil {
				return nil, err
			}
		}

		updated, err := s.posts.Update(&models.Post{
			ID:      id,
			Title:   title,
			Slug:    newSlug,
			Status:  status,
			Content: content,
			Author:  author,
		})
		if err != nil {
			if store.IsUniqueViolation(err) && attempt < maxSlugRetries {
				continue
			}
			return nil, err
		}
		return updated, nil
	}
}

// UpdateStatus changes only the publishing status of a post.
func (s *PostService) UpdateStatus(id int64, status models.PostStatus) (*models.Post, error) {
	existing, err := s.posts.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFound("Post not found")
	}
	return s.posts.UpdateStatus(id, status)
}

// Delete removes a post; its category links cascade away with it.
func (s *PostService) Delete(id int64) error {
	existing, err := s.posts.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("Post not found")
	}
	return s.posts.Delete(id)
}

// AddCategories links the given categories to a post, skipping ids that are
// already linked, and reports how many links were actually added. Unknown
// category ids fail the whole call.
func (s *PostService) AddCategories(postID int64, categoryIDs []int64) (int, error) {
	if err := s.requirePost(postID); err != nil {
		return 0, err
	}
	if err := s.requireCategories(categoryIDs); err != nil {
		return 0, err
	}

	linked, err := s.links.CategoryIDsForPost(postID)
	if err != nil {
		return 0, err
	}
	already := make(map[int64]bool, len(linked))
	for _, id := range linked {
		already[id] = true
	}

	var newIDs []int64
	for _, id := range categoryIDs {
		if !already[id] {
			newIDs = append(newIDs, id)
		}
	}
	if len(newIDs) == 0 {
		return 0, nil
	}

	if err := s.links.Link(postID, newIDs); err != nil {
		return 0, err
	}
	return len(newIDs), nil
}

// RemoveCategories unlinks the given categories from a post. Ids that were
// never linked are ignored; the reported count is the requested count.
func (s *PostService) RemoveCategories(postID int64, categoryIDs []int64) (int, error) {
	if err := s.requirePost(postID); err != nil {
		return 0, err
	}
	if err := s.links.Unlink(postID, categoryIDs); err != nil {
		return 0, err
	}
	return len(categoryIDs), nil
}

// SetCategories replaces the full category set of a post in one transaction.
// An empty set clears all links. Unknown ids fail the whole call before
// anything is written.
func (s *PostService) SetCategories(postID int64, categoryIDs []int64) (int, error) {
	if err := s.requirePost(postID); err != nil {
		return 0, err
	}
	if len(categoryIDs) > 0 {
		if err := s.requireCategories(categoryIDs); err != nil {
			return 0, err
		}
	}
	if err := s.links.Replace(postID, categoryIDs); err != nil {
		return 0, err
	}
	return len(categoryIDs), nil
}

func (s *PostService) requirePost(id int64) error {
	p, err := s.posts.FindByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return notFound("Post not found")
	}
	return nil
}

// requireCategories fails with BAD_REQUEST unless every id exists. Duplicate
// ids in the input fail too, since the matched set comes back smaller.
func (s *PostService) requireCategories(ids []int64) error {
	found, err := s.categories.ExistingIDs(ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return badRequest("One or more categories not found")
	}
	return nil
}

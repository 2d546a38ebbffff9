// Copyright (c) 2026 The Inkwell Authors
// All rights reserved. See LICENSE for details.

package service

import (
	"fmt"

	"inkwell/internal/models"
	"inkwell/internal/slug"
	"inkwell/internal/store"
)

// CategoryService implements the category procedures.
type CategoryService struct {
	categories *store.CategoryStore
	links      *store.PostCategoryStore
}

// NewCategoryService returns a new CategoryService.
func NewCategoryService(categories *store.CategoryStore, links *store.PostCategoryStore) *CategoryService {
	return &CategoryService{categories: categories, links: links}
}

// GetAll returns all categories, newest first.
func (s *CategoryService) GetAll() ([]models.Category, error) {
	items, err := s.categories.List()
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Category{}
	}
	return items, nil
}

// GetAllWithCounts returns all categories with their linked post counts,
// newest first. Categories with no posts appear with a count of zero.
func (s *CategoryService) GetAllWithCounts() ([]models.Category, error) {
	items, err := s.categories.ListWithCounts()
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Category{}
	}
	return items, nil
}

// GetByID returns a single category with its posts eagerly attached.
func (s *CategoryService) GetByID(id int64) (*models.Category, error) {
	c, err := s.categories.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound("Category not found")
	}
	return s.attachPosts(c)
}

// GetBySlug returns a single category with its posts eagerly attached.
func (s *CategoryService) GetBySlug(categorySlug string) (*models.Category, error) {
	c, err := s.categories.FindBySlug(categorySlug)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound("Category not found")
	}
	return s.attachPosts(c)
}

func (s *CategoryService) attachPosts(c *models.Category) (*models.Category, error) {
	posts, err := s.links.PostsForCategory(c.ID)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	c.Posts = posts
	c.PostCount = len(posts)
	return c, nil
}

// Create derives the slug from name and inserts the category. Unlike posts,
// category slugs are not disambiguated: a taken slug is a conflict.
func (s *CategoryService) Create(name string, description *string) (*models.Category, error) {
	sl := slug.Make(name)

	existing, err := s.categories.FindBySlug(sl)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflict("A category with this name already exists")
	}

	return s.categories.Create(&models.Category{
		Name:        name,
		Slug:        sl,
		Description: description,
	})
}

// Update renames a category, re-deriving its slug. A derived slug colliding
// with a different row is a conflict; colliding with the row itself (name
// unchanged) is fine.
func (s *CategoryService) Update(id int64, name string, description *string) (*models.Category, error) {
	existing, err := s.categories.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFound("Category not found")
	}

	newSlug := slug.Make(name)
	if newSlug != existing.Slug {
		taken, err := s.categories.FindBySlug(newSlug)
		if err != nil {
			return nil, err
		}
		if taken != nil && taken.ID != id {
			return nil, conflict("A category with this name already exists")
		}
	}

	return s.categories.Update(&models.Category{
		ID:          id,
		Name:        name,
		Slug:        newSlug,
		Description: description,
	})
}

// Delete removes a category. A category still referenced by posts cannot be
// deleted; the failure message reports the exact referencing count.
func (s *CategoryService) Delete(id int64) error {
	existing, err := s.categories.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("Category not found")
	}

	count, err := s.links.CountForCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return preconditionFailed(fmt.Sprintf(
			"Cannot delete category. It is assigned to %d post(s). Remove the category from all posts first.",
			count,
		))
	}

	return s.categories.Delete(id)
}

// Copyright (c) 2026 The Inkwell Authors
// All rights reserved. See LICENSE for details.

package service

import (
	"strconv"
	"strings"
	"testing"

	"inkwell/internal/models"
)

func TestCategoryCreateDerivesSlug(t *testing.T) {
	db := testDB(t)
	cats, _ := testServices(db)

	suffix := uniqueSuffix()
	name := "Web Dev " + suffix
	t.Cleanup(func() { cleanCategoriesByName(t, db, "Web Dev "+suffix) })

	desc := "all things web"
	created, err := cats.Create(name, &desc)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Slug != "web-dev-"+suffix {
		t.Errorf("slug: got %q, want %q", created.Slug, "web-dev-"+suffix)
	}
	if created.Description == nil || *created.Description != desc {
		t.Errorf("description not persisted: %v", created.Description)
	}
}

func TestCategoryCreateConflictOnSameSlug(t *testing.T) {
	db := testDB(t)
	cats, _ := testServices(db)

	suffix := uniqueSuffix()
	t.Cleanup(func() { cleanCategoriesByName(t, db, "Conflict "+suffix) })

	if _, err := cats.Create("Conflict "+suffix, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// "Conflict X!" derives the same slug as "Conflict X" — categories do
	// not disambiguate, they refuse.
	_, err := cats.Create("Conflict "+suffix+"!", nil)
	svcErr := asServiceError(t, err, CodeConflict)
	if svcErr.Message != "A category with this name already exists" {
		t.Errorf("message: got %q", svcErr.Message)
	}
}

func TestCategoryGetByIDEagerPosts(t *testing.T) {
	db := testDB(t)
	cats, posts := testServices(db)

	suffix := uniqueSuffix()
	t.Cleanup(func() {
		cleanPostsByTitle(t, db, "Eager "+suffix)
		cleanCategoriesByName(t, db, "Eager "+suffix)
	})

	c, err := cats.Create("Eager "+suffix, nil)
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}
	p, err := posts.Create("Eager "+suffix+" Post", testContent(), "alice", models.PostStatusDraft)
	if err != nil {
		t.Fatalf("Create post: %v", err)
	}
	if _, err := posts.AddCategories(p.ID, []int64{c.ID}); err != nil {
		t.Fatalf("AddCategories: %v", err)
	}

	got, err := cats.GetByID(c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Posts) != 1 || got.Posts[0].ID != p.ID {
		t.Errorf("eager posts: got %v, want the linked post", got.Posts)
	}

	bySlug, err := cats.GetBySlug(c.Slug)
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if bySlug.ID != c.ID {
		t.Errorf("GetBySlug: got id %d, want %d", bySlug.ID, c.ID)
	}
}

func TestCategoryGetMissing(t *testing.T) {
	db := testDB(t)
	cats, _ := testServices(db)

	_, err := cats.GetByID(-1)
	asServiceError(t, err, CodeNotFound)

	_, err = cats.GetBySlug("no-such-category-" + uniqueSuffix())
	asServiceError(t, err, CodeNotFound)
}

func TestCategoryUpdate(t *testing.T) {
	db := testDB(t)
	cats, _ := testServices(db)

	suffix := uniqueSuffix()
	t.Cleanup(func() { cleanCategoriesByName(t, db, "Rename "+suffix) })

	c, err := cats.Create("Rename "+suffix, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Same name again: derived slug equals own slug, no conflict.
	same, err := cats.Update(c.ID, "Rename "+suffix, nil)
	if err != nil {
		t.Fatalf("Update with unchanged name: %v", err)
	}
	if same.Slug != c.Slug {
		t.Errorf("slug changed on no-op rename: %q → %q", c.Slug, same.Slug)
	}

	// Real rename re-derives the slug.
	renamed, err := cats.Update(c.ID, "Rename "+suffix+" Two", nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if renamed.Slug != "rename-"+suffix+"-two" {
		t.Errorf("slug: got %q, want %q", renamed.Slug, "rename-"+suffix+"-two")
	}
	if !renamed.UpdatedAt.After(c.UpdatedAt) {
		t.Errorf("updated_at not bumped: %v → %v", c.UpdatedAt, renamed.UpdatedAt)
	}
}

func TestCategoryUpdateConflictWithOtherRow(t *testing.T) {
	db := testDB(t)
	cats, _ := testServices(db)

	suffix := uniqueSuffix()
	t.Cleanup(func() { cleanCategoriesByName(t, db, "Clash "+suffix) })

	if _, err := cats.Create("Clash "+suffix+" A", nil); err != nil {
		t.Fatalf("Create A: %v", err)
	}
	b, err := cats.Create("Clash "+suffix+" B", nil)
	if err != nil {
		t.Fatalf("Create B: %v", err)
	}

	_, err = cats.Update(b.ID, "Clash "+suffix+" A", nil)
	asServiceError(t, err, CodeConflict)
}

func TestCategoryUpdateMissing(t *testing.T) {
	db := testDB(t)
	cats, _ := testServices(db)

	_, err := cats.Update(-1, "Ghost", nil)
	asServiceError(t, err, CodeNotFound)
}

func TestCategoryDeleteBlockedByPosts(t *testing.T) {
	db := testDB(t)
	cats, posts := testServices(db)

	suffix := uniqueSuffix()
	t.Cleanup(func() {
		cleanPostsByTitle(t, db, "Blocker "+suffix)
		cleanCategoriesByName(t, db, "Blocked "+suffix)
	})

	c, err := cats.Create("Blocked "+suffix, nil)
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}
	for i := 0; i < 2; i++ {
		p, err := posts.Create("Blocker "+suffix+" "+strconv.Itoa(i), testContent(), "bob", models.PostStatusDraft)
		if err != nil {
			t.Fatalf("Create post: %v", err)
		}
		if _, err := posts.AddCategories(p.ID, []int64{c.ID}); err != nil {
			t.Fatalf("AddCategories: %v", err)
		}
	}

	err = cats.Delete(c.ID)
	svcErr := asServiceError(t, err, CodePreconditionFailed)
	if !strings.Contains(svcErr.Message, "2 post(s)") {
		t.Errorf("message must report the exact referencing count, got %q", svcErr.Message)
	}

	// Still there.
	if _, err := cats.GetByID(c.ID); err != nil {
		t.Errorf("category should survive a blocked delete: %v", err)
	}
}

func TestCategoryDeleteUnreferenced(t *testing.T) {
	db := testDB(t)
	cats, _ := testServices(db)

	suffix := uniqueSuffix()
	t.Cleanup(func() { cleanCategoriesByName(t, db, "Orphan "+suffix) })

	c, err := cats.Create("Orphan "+suffix, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := cats.Delete(c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err = cats.GetByID(c.ID)
	asServiceError(t, err, CodeNotFound)
}

func TestCategoryDeleteMissing(t *testing.T) {
	db := testDB(t)
	cats, _ := testServices(db)

	err := cats.Delete(-1)
	asServiceError(t, err, CodeNotFound)
}

func TestCategoryGetAllWithCounts(t *testing.T) {
	db := testDB(t)
	cats, posts := testServices(db)

	suffix := uniqueSuffix()
	t.Cleanup(func() {
		cleanPostsByTitle(t, db, "Countme "+suffix)
		cleanCategoriesByName(t, db, "Countme "+suffix)
	})

	c, err := cats.Create("Countme "+suffix, nil)
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}
	p, err := posts.Create("Countme "+suffix, testContent(), "carol", models.PostStatusDraft)
	if err != nil {
		t.Fatalf("Create post: %v", err)
	}
	if _, err := posts.AddCategories(p.ID, []int64{c.ID}); err != nil {
		t.Fatalf("AddCategories: %v", err)
	}

	items, err := cats.GetAllWithCounts()
	if err != nil {
		t.Fatalf("GetAllWithCounts: %v", err)
	}
	for _, item := range items {
		if item.ID == c.ID && item.PostCount != 1 {
			t.Errorf("post count: got %d, want 1", item.PostCount)
		}
	}
}

// Copyright (c) 2026 The Inkwell Authors
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"
)

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Valid reports whether s is a known status value.
func (s PostStatus) Valid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// Post is a blog post. Content is an opaque document produced and consumed
// by the external rich-text editor; the server stores and returns it without
// ever interpreting its structure.
type Post struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Slug      string          `json:"slug"`
	Status    PostStatus      `json:"status"`
	Content   json.RawMessage `json:"content"`
	Author    string          `json:"author"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Virtual field populated by store methods.
	Categories []Category `json:"categories,omitempty"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

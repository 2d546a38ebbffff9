// Copyright (c) 2026 The Inkwell Authors
// All rights reserved. See LICENSE for details.

package models

import "time"

// Category groups posts by topic. Name and Slug are globally unique;
// Slug is always the derived form of Name at last write.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Virtual fields populated by store methods.
	PostCount int    `json:"post_count,omitempty"`
	Posts     []Post `json:"posts,omitempty"`
}

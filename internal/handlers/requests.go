package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/store"
)

// createCategoryRequest is the body for POST /categories.
type createCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (req createCategoryRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name,
			validation.Required.Error("Name is required"),
			validation.Length(1, 50).Error("Name must be between 1 and 50 characters"),
		),
		validation.Field(&req.Description,
			validation.Length(0, 200).Error("Description must be at most 200 characters"),
		),
	)
}

// updateCategoryRequest is the body for PUT /categories/{id}.
type updateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (req updateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name,
			validation.Required.Error("Name is required"),
			validation.Length(1, 50).Error("Name must be between 1 and 50 characters"),
		),
		validation.Field(&req.Description,
			validation.Length(0, 200).Error("Description must be at most 200 characters"),
		),
	)
}

// createPostRequest is the body for POST /posts.
type createPostRequest struct {
	Title   string            `json:"title"`
	Content json.RawMessage   `json:"content"`
	Author  string            `json:"author"`
	Status  models.PostStatus `json:"status"`
}

func (req createPostRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Title,
			validation.Required.Error("Title is required"),
			validation.Length(1, 255).Error("Title must be between 1 and 255 characters"),
		),
		validation.Field(&req.Content,
			validation.Required.Error("Content is required"),
		),
		validation.Field(&req.Author,
			validation.Required.Error("Author is required"),
			validation.Length(1, 255).Error("Author must be between 1 and 255 characters"),
		),
		validation.Field(&req.Status,
			validation.In(models.PostStatusDraft, models.PostStatusPublished).Error("Status must be draft or published"),
		),
	)
}

// updatePostRequest is the body for PUT /posts/{id}.
type updatePostRequest struct {
	Title   string            `json:"title"`
	Content json.RawMessage   `json:"content"`
	Author  string            `json:"author"`
	Status  models.PostStatus `json:"status"`
}

func (req updatePostRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Title,
			validation.Required.Error("Title is required"),
			validation.Length(1, 255).Error("Title must be between 1 and 255 characters"),
		),
		validation.Field(&req.Content,
			validation.Required.Error("Content is required"),
		),
		validation.Field(&req.Author,
			validation.Required.Error("Author is required"),
			validation.Length(1, 255).Error("Author must be between 1 and 255 characters"),
		),
		validation.Field(&req.Status,
			validation.Required.Error("Status is required"),
			validation.In(models.PostStatusDraft, models.PostStatusPublished).Error("Status must be draft or published"),
		),
	)
}

// updateStatusRequest is the body for PATCH /posts/{id}/status.
type updateStatusRequest struct {
	Status models.PostStatus `json:"status"`
}

func (req updateStatusRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Status,
			validation.Required.Error("Status is required"),
			validation.In(models.PostStatusDraft, models.PostStatusPublished).Error("Status must be draft or published"),
		),
	)
}

// categoryIDsRequest is the body for adding or removing post categories.
// At least one id must be supplied.
type categoryIDsRequest struct {
	CategoryIDs []int64 `json:"categoryIds"`
}

func (req categoryIDsRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.CategoryIDs,
			validation.Required.Error("At least one category ID is required"),
		),
	)
}

// setCategoriesRequest is the body for PUT /posts/{id}/categories. An empty
// list is valid and clears all assignments.
type setCategoriesRequest struct {
	CategoryIDs []int64 `json:"categoryIds"`
}

// parseListParams reads limit, offset, status, and author query parameters.
// Out-of-range values are rejected rather than clamped.
func parseListParams(r *http.Request) (service.ListParams, error) {
	params := service.ListParams{Limit: store.DefaultListLimit}

	q := r.URL.Query()
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > store.MaxListLimit {
			return params, badRequest("Limit must be between 1 and 100")
		}
		params.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return params, badRequest("Offset must be zero or greater")
		}
		params.Offset = offset
	}
	if raw := q.Get("status"); raw != "" {
		status := models.PostStatus(raw)
		if !status.Valid() {
			return params, badRequest("Status must be draft or published")
		}
		params.Status = status
	}
	params.Author = q.Get("author")

	return params, nil
}

// Package router assembles the chi router: global middleware, the health
// endpoint, and the versioned API routes.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
)

// Deps carries the handler groups the router mounts.
type Deps struct {
	Categories *handlers.Categories
	Posts      *handlers.Posts
}

// New builds the HTTP router. Mutation routes sit behind a per-IP rate
// limiter; reads are unthrottled.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	writeLimiter := middleware.NewRateLimiter(60, time.Minute)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", deps.Categories.List)
			r.Get("/counts", deps.Categories.ListWithCounts)
			r.Get("/slug/{slug}", deps.Categories.GetBySlug)
			r.Get("/{id}", deps.Categories.Get)

			r.Group(func(r chi.Router) {
				r.Use(writeLimiter.Middleware)
				r.Post("/", deps.Categories.Create)
				r.Put("/{id}", deps.Categories.Update)
				r.Delete("/{id}", deps.Categories.Delete)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", deps.Posts.List)
			r.Get("/published", deps.Posts.Published)
			r.Get("/count", deps.Posts.Count)
			r.Get("/slug/{slug}", deps.Posts.GetBySlug)
			r.Get("/author/{author}", deps.Posts.ByAuthor)
			r.Get("/category/slug/{slug}", deps.Posts.ByCategorySlug)
			r.Get("/category/{id}", deps.Posts.ByCategory)
			r.Get("/{id}", deps.Posts.Get)

			r.Group(func(r chi.Router) {
				r.Use(writeLimiter.Middleware)
				r.Post("/", deps.Posts.Create)
				r.Put("/{id}", deps.Posts.Update)
				r.Patch("/{id}/status", deps.Posts.UpdateStatus)
				r.Delete("/{id}", deps.Posts.Delete)
				r.Post("/{id}/categories", deps.Posts.AddCategories)
				r.Delete("/{id}/categories", deps.Posts.RemoveCategories)
				r.Put("/{id}/categories", deps.Posts.SetCategories)
			})
		})
	})

	return r
}

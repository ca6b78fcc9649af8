// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reviews

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/revora/internal/platform/apperr"
	"github.com/taibuivan/revora/internal/platform/middleware"
	"github.com/taibuivan/revora/internal/platform/perm"
	requestutil "github.com/taibuivan/revora/internal/platform/request"
	"github.com/taibuivan/revora/pkg/uuidv7"
)

// Handler implements the review and comment HTTP endpoints.
type Handler struct {
	reviewService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{reviewService: service}
}

// Routes returns a [chi.Router] for the review tree. The caller mounts it
// under /titles/{titleID}/reviews; chi carries the titleID parameter down
// through the mount.
//
// # Endpoints
//   - GET    /                                 : List a title's reviews (open reads).
//   - POST   /                                 : Publish a review (authenticated).
//   - GET    /{reviewID}                       : Fetch one review (open reads).
//   - PUT    /{reviewID}                       : Replace a review (author or staff).
//   - PATCH  /{reviewID}                       : Edit a review (author or staff).
//   - DELETE /{reviewID}                       : Remove a review (author or staff).
//   - *      /{reviewID}/comments/...          : The comment thread, same rules.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequirePolicy(perm.AuthorOrVIP))

	router.Get("/", handler.listReviews)
	router.Post("/", handler.createReview)
	router.Get("/{reviewID}", handler.getReview)
	router.Put("/{reviewID}", handler.updateReview)
	router.Patch("/{reviewID}", handler.updateReview)
	router.Delete("/{reviewID}", handler.deleteReview)

	router.Mount("/{reviewID}/comments", handler.commentRoutes())

	return router
}

// commentRoutes returns the nested comment router. The parent router already
// applied the access policy, so it is not repeated here.
func (handler *Handler) commentRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listComments)
	router.Post("/", handler.createComment)
	router.Get("/{commentID}", handler.getComment)
	router.Put("/{commentID}", handler.updateComment)
	router.Patch("/{commentID}", handler.updateComment)
	router.Delete("/{commentID}", handler.deleteComment)

	return router
}

// pathID extracts one identifier from the request path, reading a malformed
// value as a missing resource.
func pathID(request *http.Request, param, resource string) (string, error) {
	id := requestutil.Param(request, param)
	if !uuidv7.IsValid(id) {
		return "", apperr.NotFound(resource)
	}
	return id, nil
}

// reviewPath extracts the title and review identifiers shared by every
// detail route in the tree.
func reviewPath(request *http.Request) (titleID, reviewID string, err error) {
	if titleID, err = pathID(request, "titleID", "Title"); err != nil {
		return "", "", err
	}
	if reviewID, err = pathID(request, "reviewID", "Review"); err != nil {
		return "", "", err
	}
	return titleID, reviewID, nil
}

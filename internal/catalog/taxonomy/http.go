// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/revora/internal/platform/middleware"
	"github.com/taibuivan/revora/internal/platform/perm"
	requestutil "github.com/taibuivan/revora/internal/platform/request"
	"github.com/taibuivan/revora/internal/platform/respond"
	"github.com/taibuivan/revora/internal/platform/validate"
	"github.com/taibuivan/revora/pkg/pagination"
)

// Handler implements the taxonomy HTTP endpoints.
//
// Categories and genres expose the same surface: an open listing, admin-only
// creation, and admin-only deletion by slug. There is no item GET; slugs are
// discovered through the listing.
type Handler struct {
	taxonomyService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{taxonomyService: service}
}

// CategoryRoutes returns a [chi.Router] for the /categories resource.
func (handler *Handler) CategoryRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequirePolicy(perm.AdminOrReadOnly))

	router.Get("/", handler.listCategories)
	router.Post("/", handler.createCategory)
	router.Delete("/{slug}", handler.deleteCategory)

	return router
}

// GenreRoutes returns a [chi.Router] for the /genres resource.
func (handler *Handler) GenreRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequirePolicy(perm.AdminOrReadOnly))

	router.Get("/", handler.listGenres)
	router.Post("/", handler.createGenre)
	router.Delete("/{slug}", handler.deleteGenre)

	return router
}

// createTaxonomyRequest is the shared JSON payload for both lookup tables.
// Slug is optional; it is derived from the name when omitted.
type createTaxonomyRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// listFilterFromRequest builds the repository filter from query parameters.
func listFilterFromRequest(request *http.Request) (ListFilter, pagination.Params) {
	page := pagination.FromRequest(request)
	return ListFilter{
		Search: request.URL.Query().Get("search"),
		Limit:  page.Limit,
		Offset: page.Offset(),
	}, page
}

// # Category Handlers

// listCategories handles GET /api/v1/categories requests.
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	filter, page := listFilterFromRequest(request)

	categories, total, err := handler.taxonomyService.ListCategories(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(page.Page, page.Limit, total))
}

// createCategory handles POST /api/v1/categories requests.
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input createTaxonomyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	category, err := handler.taxonomyService.CreateCategory(request.Context(), CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

// deleteCategory handles DELETE /api/v1/categories/{slug} requests.
func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	if err := handler.taxonomyService.DeleteCategory(request.Context(), requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Genre Handlers

// listGenres handles GET /api/v1/genres requests.
func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	filter, page := listFilterFromRequest(request)

	genres, total, err := handler.taxonomyService.ListGenres(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, genres, pagination.NewMeta(page.Page, page.Limit, total))
}

// createGenre handles POST /api/v1/genres requests.
func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input createTaxonomyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	genre, err := handler.taxonomyService.CreateGenre(request.Context(), CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, genre)
}

// deleteGenre handles DELETE /api/v1/genres/{slug} requests.
func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	if err := handler.taxonomyService.DeleteGenre(request.Context(), requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

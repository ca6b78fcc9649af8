// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/revora/internal/platform/apperr"
	"github.com/taibuivan/revora/internal/platform/middleware"
	"github.com/taibuivan/revora/internal/platform/perm"
	requestutil "github.com/taibuivan/revora/internal/platform/request"
	"github.com/taibuivan/revora/internal/platform/respond"
	"github.com/taibuivan/revora/internal/platform/validate"
	"github.com/taibuivan/revora/pkg/pagination"
	"github.com/taibuivan/revora/pkg/uuidv7"
)

// Handler implements the title HTTP endpoints.
type Handler struct {
	titleService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{titleService: service}
}

// Routes returns a [chi.Router] for the /titles resource.
//
// # Parameters
//   - reviews: The nested review router, mounted under /{titleID}/reviews
//     with its own access policy. Pass nil to skip mounting (tests).
//
// # Endpoints
//   - GET    /           : List titles with filters (open reads).
//   - POST   /           : Create a title (admin).
//   - GET    /{titleID}  : Fetch one title (open reads).
//   - PUT    /{titleID}  : Replace a title (admin).
//   - PATCH  /{titleID}  : Partially update a title (admin).
//   - DELETE /{titleID}  : Remove a title and its review tree (admin).
func (handler *Handler) Routes(reviews chi.Router) chi.Router {
	router := chi.NewRouter()

	router.Group(func(catalogue chi.Router) {
		catalogue.Use(middleware.RequirePolicy(perm.AdminOrReadOnly))
		catalogue.Get("/", handler.list)
		catalogue.Post("/", handler.create)
		catalogue.Get("/{titleID}", handler.get)
		catalogue.Put("/{titleID}", handler.update)
		catalogue.Patch("/{titleID}", handler.update)
		catalogue.Delete("/{titleID}", handler.delete)
	})

	// The review tree carries its own policy, so it mounts outside the
	// catalogue group.
	if reviews != nil {
		router.Mount("/{titleID}/reviews", reviews)
	}

	return router
}

// titleID extracts and validates the path identifier.
func titleID(request *http.Request) (string, error) {
	id := requestutil.Param(request, "titleID")
	if !uuidv7.IsValid(id) {
		return "", apperr.NotFound("Title")
	}
	return id, nil
}

// list handles GET /api/v1/titles requests.
//
// # Query Parameters
//   - category : Filter by category slug.
//   - genre    : Filter by genre slug.
//   - search   : Filter by name substring.
//   - year     : Filter by exact release year.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	query := request.URL.Query()

	year := 0
	if rawYear := query.Get("year"); rawYear != "" {
		parsed, err := strconv.Atoi(rawYear)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError("year", "must be an integer"))
			return
		}
		year = parsed
	}

	titles, total, err := handler.titleService.List(request.Context(), ListFilter{
		CategorySlug: query.Get("category"),
		GenreSlug:    query.Get("genre"),
		Search:       query.Get("search"),
		Year:         year,
		Limit:        page.Limit,
		Offset:       page.Offset(),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(page.Page, page.Limit, total))
}

// createTitleRequest represents the JSON payload for title creation.
type createTitleRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Genre       []string `json:"genre"`
	Category    string   `json:"category"`
}

// create handles POST /api/v1/titles requests.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createTitleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	created, err := handler.titleService.Create(request.Context(), CreateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		GenreSlugs:   input.Genre,
		CategorySlug: input.Category,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// get handles GET /api/v1/titles/{titleID} requests.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := titleID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.titleService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

// updateTitleRequest represents the JSON payload for partial title updates.
type updateTitleRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Genre       *[]string `json:"genre"`
	Category    *string   `json:"category"`
}

// update handles PUT/PATCH /api/v1/titles/{titleID} requests.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := titleID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateTitleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	updated, err := handler.titleService.Update(request.Context(), id, UpdateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		GenreSlugs:   input.Genre,
		CategorySlug: input.Category,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

// delete handles DELETE /api/v1/titles/{titleID} requests.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := titleID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.titleService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

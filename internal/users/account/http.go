// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/revora/internal/platform/apperr"
	"github.com/taibuivan/revora/internal/platform/middleware"
	"github.com/taibuivan/revora/internal/platform/perm"
	requestutil "github.com/taibuivan/revora/internal/platform/request"
	"github.com/taibuivan/revora/internal/platform/respond"
	"github.com/taibuivan/revora/internal/platform/validate"
	"github.com/taibuivan/revora/pkg/pagination"
)

// Handler implements the account-management HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] for the /users resource.
//
// # Endpoints
//   - GET    /me         : Own profile (any authenticated user).
//   - PUT    /me         : Replace own profile.
//   - PATCH  /me         : Partially update own profile.
//   - DELETE /me         : Always 405, accounts cannot self-destruct.
//   - GET    /           : List accounts (admin).
//   - POST   /           : Create an account (admin).
//   - GET    /{username} : Fetch one account (admin).
//   - PUT    /{username} : Replace an account (admin).
//   - PATCH  /{username} : Partially update an account (admin).
//   - DELETE /{username} : Remove an account (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self-service: the target always resolves to the requester, regardless
	// of role. Registered as a literal segment so it wins over {username}.
	router.Route("/me", func(me chi.Router) {
		me.Use(middleware.RequireAuth)
		me.Get("/", handler.getMe)
		me.Put("/", handler.updateMe)
		me.Patch("/", handler.updateMe)
		me.Delete("/", handler.deleteMe)
	})

	// Administration surface.
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequirePolicy(perm.AdminOnly))
		admin.Get("/", handler.list)
		admin.Post("/", handler.create)
		admin.Get("/{username}", handler.get)
		admin.Put("/{username}", handler.update)
		admin.Patch("/{username}", handler.update)
		admin.Delete("/{username}", handler.delete)
	})

	return router
}

// # Administration Handlers

// list handles GET /api/v1/users requests.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	filter := ListFilter{
		Search: request.URL.Query().Get("search"),
		Page:   page,
	}

	users, total, err := handler.accountService.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(page.Page, page.Limit, total))
}

// createRequest represents the JSON payload for admin-side account creation.
type createRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// create handles POST /api/v1/users requests.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.Create(request.Context(), CreateInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

// get handles GET /api/v1/users/{username} requests.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.accountService.GetByUsername(request.Context(), requestutil.Param(request, "username"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateRequest represents the JSON payload for partial account updates.
// Absent fields stay untouched.
type updateRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// update handles PUT/PATCH /api/v1/users/{username} requests.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	handler.applyUpdate(writer, request, requestutil.Param(request, "username"))
}

// delete handles DELETE /api/v1/users/{username} requests.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.accountService.Delete(request.Context(), requestutil.Param(request, "username")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Self-Service Handlers

// getMe handles GET /api/v1/users/me requests.
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetByID(request.Context(), actor.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateMe handles PUT/PATCH /api/v1/users/me requests.
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.applyUpdate(writer, request, actor.Username)
}

// deleteMe handles DELETE /api/v1/users/me requests.
// Self-deletion is not part of the account lifecycle.
func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, apperr.MethodNotAllowed("Accounts cannot be deleted through the me endpoint"))
}

// applyUpdate decodes the partial payload and runs the shared update flow
// for both the admin and the self-service surface.
func (handler *Handler) applyUpdate(writer http.ResponseWriter, request *http.Request, username string) {
	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.Update(request.Context(), requestutil.Actor(request), username, UpdateInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

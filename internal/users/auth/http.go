// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/revora/internal/platform/request"
	"github.com/taibuivan/revora/internal/platform/respond"
	"github.com/taibuivan/revora/internal/platform/validate"
)

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points (signup and
// code-for-token exchange). It contains no business logic or database queries.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup : Creates a new account and dispatches a confirmation code.
//   - POST /token  : Exchanges username + code for a bearer token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.Post("/token", handler.token)

	return router
}

// signupRequest represents the JSON payload expected for account creation.
type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// signupResponse echoes back the identity fields, never the code.
type signupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// signup handles POST /api/v1/auth/signup requests.
//
// # Returns
//   - Writes HTTP 200 OK on success with the username/email pair.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 409 Conflict if username or email is taken.
//   - Writes HTTP 429 Too Many Requests during the dispatch cooldown.
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input signupRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	// Field validation, uniqueness, code generation and dispatch all live in
	// the service. Domain errors map to HTTP statuses via the respond helper.
	user, err := handler.authService.Signup(request.Context(), SignupInput{
		Username: input.Username,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Presentation Output ────────────────────────────────────────────

	respond.OK(writer, signupResponse{Username: user.Username, Email: user.Email})
}

// tokenRequest represents the JSON payload expected for the code exchange.
type tokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

// token handles POST /api/v1/auth/token requests.
//
// # Returns
//   - Writes HTTP 200 OK on success with the bearer token.
//   - Writes HTTP 404 Not Found for an unknown username.
//   - Writes HTTP 400 Bad Request for a code mismatch.
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input tokenRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if input.Username == "" {
		respond.Error(writer, request, validate.RequiredError("username", "is required"))
		return
	}
	if input.ConfirmationCode == "" {
		respond.Error(writer, request, validate.RequiredError("confirmation_code", "is required"))
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	result, err := handler.authService.ExchangeToken(request.Context(), input.Username, input.ConfirmationCode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.OK(writer, result)
}

// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/revora/internal/platform/apperr"
	"github.com/taibuivan/revora/internal/platform/ctxutil"
	"github.com/taibuivan/revora/internal/platform/perm"
	"github.com/taibuivan/revora/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Actor builds the permission-evaluator actor for the request.

Returns nil if the request is anonymous.
*/
func Actor(request *http.Request) *perm.Actor {
	return perm.FromClaims(ctxutil.GetAuthUser(request.Context()))
}

/*
RequiredActor ensures the request is authenticated and returns its actor.

Returns:
  - *perm.Actor: The authenticated identity
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredActor(request *http.Request) (*perm.Actor, error) {
	actor := Actor(request)
	if actor == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return actor, nil
}

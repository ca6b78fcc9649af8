// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package perm implements the authorization decision model for the Revora API.

Every request is judged in two stages:

  - Collection stage: [CanAccessCollection] runs before any resource lookup
    (list/create). A denial here leaks nothing about whether a target exists.
  - Object stage: [CanAccessObject] runs after the target entity has been
    resolved (retrieve/update/delete) and may take ownership into account.

Both stages are pure functions over (actor, policy, method class): no I/O,
no stored state, fully table-driven. The policy table below is the single
source of truth for every access rule in the system — handlers and services
never hand-roll role comparisons.

# Method Classes

HTTP methods split into two classes: SAFE (read-only retrieval: GET, HEAD,
OPTIONS) and UNSAFE (create, update, delete). Several policies let SAFE
requests through unconditionally while gating UNSAFE ones.
*/
package perm

import (
	"net/http"

	"github.com/taibuivan/revora/internal/platform/sec"
)

// # Actor

// Actor is the identity a request acts under.
//
// A nil *Actor means the request is anonymous. Role and IsSuperuser are the
// only stored authorization state; every capability below is derived from
// them on demand and never persisted redundantly.
type Actor struct {
	ID          string
	Username    string
	Role        sec.UserRole
	IsSuperuser bool
}

// FromClaims builds an [Actor] from verified token claims.
// It returns nil for anonymous requests (nil claims).
func FromClaims(claims *sec.AuthClaims) *Actor {
	if claims == nil {
		return nil
	}
	return &Actor{
		ID:          claims.UserID,
		Username:    claims.Username,
		Role:        sec.UserRole(claims.Role),
		IsSuperuser: claims.IsSuperuser,
	}
}

// # Capability Predicates

// IsModerator reports whether the actor holds the moderator role.
//
// Note the asymmetry with [Actor.IsAdmin]: the superuser flag does NOT grant
// moderator standing. A superuser passes admin gates, not moderator-only ones.
func (actor *Actor) IsModerator() bool {
	return actor != nil && actor.Role == sec.RoleModerator
}

// IsAdmin reports whether the actor holds admin capability,
// either through the admin role or the orthogonal superuser flag.
func (actor *Actor) IsAdmin() bool {
	return actor != nil && (actor.Role == sec.RoleAdmin || actor.IsSuperuser)
}

// IsVIP reports whether the actor is a moderator or an admin.
func (actor *Actor) IsVIP() bool {
	return actor.IsModerator() || actor.IsAdmin()
}

// IsElevated reports whether the actor may change role fields on user records.
// Only admins (including superusers) qualify.
func (actor *Actor) IsElevated() bool {
	return actor.IsAdmin()
}

// # Method Classes

// MethodClass partitions HTTP methods into read-only and mutating operations.
type MethodClass int

const (
	// Safe covers read-only retrieval methods.
	Safe MethodClass = iota
	// Unsafe covers create, update, and delete methods.
	Unsafe
)

// ClassOf maps an HTTP method name to its [MethodClass].
func ClassOf(method string) MethodClass {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return Safe
	}
	return Unsafe
}

// # Policies

// Policy identifies one of the access rule sets applied to a resource group.
type Policy int

const (
	// AdminOnly: every access requires an authenticated admin.
	// Applied to user management endpoints.
	AdminOnly Policy = iota

	// AdminOrReadOnly: anonymous reads pass; everything else requires admin.
	// Applied to the category/genre/title catalogue.
	AdminOrReadOnly

	// AuthorOrVIP: anonymous reads pass, any authenticated user may enter the
	// collection; mutating a specific object requires authorship or VIP
	// standing. Applied to reviews and comments.
	AuthorOrVIP

	// ModeratorOnly: any authenticated user passes the collection gate, but
	// object access requires the moderator role specifically.
	ModeratorOnly

	// VIPOnly: every access requires moderator-or-admin capability.
	VIPOnly
)

// capability names the role-derived predicate a rule row requires.
type capability int

const (
	capAuthenticated capability = iota // any signed-in actor
	capModerator                       // Actor.IsModerator
	capAdmin                           // Actor.IsAdmin
	capVIP                             // Actor.IsVIP
)

// rule is one row of the policy table.
type rule struct {
	// anonymousSafeList lets an anonymous actor through the collection
	// stage for SAFE methods.
	anonymousSafeList bool

	// collectionNeeds is the capability an authenticated actor must hold to
	// pass the collection stage, regardless of method class.
	collectionNeeds capability

	// objectSafeBypass lets SAFE methods through the object stage for
	// any actor, anonymous included.
	objectSafeBypass bool

	// objectNeeds is the capability required at the object stage.
	objectNeeds capability

	// ownershipCounts accepts authorship of the target object as an
	// alternative to objectNeeds.
	ownershipCounts bool
}

// policyTable is the complete decision table. It mirrors the rules prose in
// the package documentation; tests exercise every row exhaustively.
var policyTable = map[Policy]rule{
	AdminOnly: {
		collectionNeeds: capAdmin,
		objectNeeds:     capAdmin,
	},
	AdminOrReadOnly: {
		anonymousSafeList: true,
		collectionNeeds:   capAdmin,
		objectSafeBypass:  true,
		objectNeeds:       capAdmin,
	},
	AuthorOrVIP: {
		anonymousSafeList: true,
		collectionNeeds:   capAuthenticated,
		objectSafeBypass:  true,
		objectNeeds:       capVIP,
		ownershipCounts:   true,
	},
	ModeratorOnly: {
		collectionNeeds: capAuthenticated,
		objectNeeds:     capModerator,
	},
	VIPOnly: {
		collectionNeeds: capVIP,
		objectNeeds:     capVIP,
	},
}

// # Decision Functions

// CanAccessCollection decides the pre-lookup (list/create) stage.
//
// Parameters:
//   - policy: The rule set of the resource group.
//   - actor: The requesting identity, nil when anonymous.
//   - method: The raw HTTP method.
//
// Returns:
//   - bool: true when the request may proceed to resource resolution.
func CanAccessCollection(policy Policy, actor *Actor, method string) bool {
	row := policyTable[policy]

	if actor == nil {
		return row.anonymousSafeList && ClassOf(method) == Safe
	}

	return hasCapability(actor, row.collectionNeeds)
}

// CanAccessObject decides the post-lookup stage for a specific entity.
//
// Parameters:
//   - policy: The rule set of the resource group.
//   - actor: The requesting identity, nil when anonymous.
//   - method: The raw HTTP method.
//   - ownerID: The ID of the entity's author. Ownership is always judged
//     against the entity's own author field, never against the parent
//     title/review the entity hangs off.
//
// Returns:
//   - bool: true when the actor may perform the action on this entity.
func CanAccessObject(policy Policy, actor *Actor, method string, ownerID string) bool {
	row := policyTable[policy]

	if row.objectSafeBypass && ClassOf(method) == Safe {
		return true
	}

	if actor == nil {
		return false
	}

	if row.ownershipCounts && ownerID != "" && actor.ID == ownerID {
		return true
	}

	return hasCapability(actor, row.objectNeeds)
}

// hasCapability evaluates a single capability requirement against an actor.
func hasCapability(actor *Actor, need capability) bool {
	switch need {
	case capAuthenticated:
		return true
	case capModerator:
		return actor.IsModerator()
	case capAdmin:
		return actor.IsAdmin()
	case capVIP:
		return actor.IsVIP()
	}
	return false
}

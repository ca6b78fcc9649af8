// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package perm_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/revora/internal/platform/perm"
	"github.com/taibuivan/revora/internal/platform/sec"
)

// Fixed actor fixtures reused across the matrix tests.
var (
	anonymous *perm.Actor
	member    = &perm.Actor{ID: "u-member", Username: "alice", Role: sec.RoleUser}
	moderator = &perm.Actor{ID: "u-mod", Username: "mona", Role: sec.RoleModerator}
	admin     = &perm.Actor{ID: "u-admin", Username: "root", Role: sec.RoleAdmin}
	superuser = &perm.Actor{ID: "u-super", Username: "sys", Role: sec.RoleUser, IsSuperuser: true}
)

/*
TestClassOf verifies the SAFE/UNSAFE method split.
*/
func TestClassOf(t *testing.T) {
	tests := []struct {
		method string
		class  perm.MethodClass
	}{
		{http.MethodGet, perm.Safe},
		{http.MethodHead, perm.Safe},
		{http.MethodOptions, perm.Safe},
		{http.MethodPost, perm.Unsafe},
		{http.MethodPut, perm.Unsafe},
		{http.MethodPatch, perm.Unsafe},
		{http.MethodDelete, perm.Unsafe},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			assert.Equal(t, tt.class, perm.ClassOf(tt.method))
		})
	}
}

/*
TestCapabilityPredicates verifies the role-derived predicates, including the
superuser elevation and the strictness of the moderator check.
*/
func TestCapabilityPredicates(t *testing.T) {
	tests := []struct {
		name        string
		actor       *perm.Actor
		isModerator bool
		isAdmin     bool
		isVIP       bool
	}{
		{"anonymous", anonymous, false, false, false},
		{"member", member, false, false, false},
		{"moderator", moderator, true, false, true},
		{"admin", admin, false, true, true},
		// Superuser passes admin gates but is NOT a moderator.
		{"superuser_member", superuser, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isModerator, tt.actor.IsModerator())
			assert.Equal(t, tt.isAdmin, tt.actor.IsAdmin())
			assert.Equal(t, tt.isVIP, tt.actor.IsVIP())
		})
	}
}

/*
TestCanAccessCollection exercises the full (policy × actor × method-class)
matrix at the pre-lookup stage.
*/
func TestCanAccessCollection(t *testing.T) {
	tests := []struct {
		name   string
		policy perm.Policy
		actor  *perm.Actor
		method string
		allow  bool
	}{
		// AdminOnly
		{"admin_only/anonymous_get", perm.AdminOnly, anonymous, http.MethodGet, false},
		{"admin_only/member_get", perm.AdminOnly, member, http.MethodGet, false},
		{"admin_only/moderator_post", perm.AdminOnly, moderator, http.MethodPost, false},
		{"admin_only/admin_get", perm.AdminOnly, admin, http.MethodGet, true},
		{"admin_only/admin_post", perm.AdminOnly, admin, http.MethodPost, true},
		{"admin_only/superuser_delete", perm.AdminOnly, superuser, http.MethodDelete, true},

		// AdminOrReadOnly: anonymous reads pass, authenticated access needs admin.
		{"admin_or_ro/anonymous_get", perm.AdminOrReadOnly, anonymous, http.MethodGet, true},
		{"admin_or_ro/anonymous_post", perm.AdminOrReadOnly, anonymous, http.MethodPost, false},
		{"admin_or_ro/member_post", perm.AdminOrReadOnly, member, http.MethodPost, false},
		{"admin_or_ro/moderator_post", perm.AdminOrReadOnly, moderator, http.MethodPost, false},
		{"admin_or_ro/admin_post", perm.AdminOrReadOnly, admin, http.MethodPost, true},
		{"admin_or_ro/superuser_post", perm.AdminOrReadOnly, superuser, http.MethodPost, true},

		// AuthorOrVIP: anonymous reads pass, any authenticated actor enters.
		{"author_or_vip/anonymous_get", perm.AuthorOrVIP, anonymous, http.MethodGet, true},
		{"author_or_vip/anonymous_post", perm.AuthorOrVIP, anonymous, http.MethodPost, false},
		{"author_or_vip/member_get", perm.AuthorOrVIP, member, http.MethodGet, true},
		{"author_or_vip/member_post", perm.AuthorOrVIP, member, http.MethodPost, true},
		{"author_or_vip/moderator_delete", perm.AuthorOrVIP, moderator, http.MethodDelete, true},

		// ModeratorOnly: authentication suffices at collection level.
		{"moderator_only/anonymous_get", perm.ModeratorOnly, anonymous, http.MethodGet, false},
		{"moderator_only/member_get", perm.ModeratorOnly, member, http.MethodGet, true},
		{"moderator_only/moderator_post", perm.ModeratorOnly, moderator, http.MethodPost, true},

		// VIPOnly
		{"vip_only/anonymous_get", perm.VIPOnly, anonymous, http.MethodGet, false},
		{"vip_only/member_get", perm.VIPOnly, member, http.MethodGet, false},
		{"vip_only/moderator_get", perm.VIPOnly, moderator, http.MethodGet, true},
		{"vip_only/admin_post", perm.VIPOnly, admin, http.MethodPost, true},
		{"vip_only/superuser_post", perm.VIPOnly, superuser, http.MethodPost, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allow, perm.CanAccessCollection(tt.policy, tt.actor, tt.method))
		})
	}
}

/*
TestCanAccessObject exercises the post-lookup stage, where ownership and the
SAFE-method bypass come into play.
*/
func TestCanAccessObject(t *testing.T) {
	const ownerID = "u-member" // the member fixture owns the target object

	tests := []struct {
		name   string
		policy perm.Policy
		actor  *perm.Actor
		method string
		allow  bool
	}{
		// AuthorOrVIP object rules: the write gate for reviews/comments.
		{"author_or_vip/anonymous_get", perm.AuthorOrVIP, anonymous, http.MethodGet, true},
		{"author_or_vip/anonymous_delete", perm.AuthorOrVIP, anonymous, http.MethodDelete, false},
		{"author_or_vip/owner_patch", perm.AuthorOrVIP, member, http.MethodPatch, true},
		{"author_or_vip/owner_delete", perm.AuthorOrVIP, member, http.MethodDelete, true},
		{"author_or_vip/non_owner_member_get", perm.AuthorOrVIP,
			&perm.Actor{ID: "u-other", Role: sec.RoleUser}, http.MethodGet, true},
		{"author_or_vip/non_owner_member_delete", perm.AuthorOrVIP,
			&perm.Actor{ID: "u-other", Role: sec.RoleUser}, http.MethodDelete, false},
		{"author_or_vip/moderator_delete", perm.AuthorOrVIP, moderator, http.MethodDelete, true},
		{"author_or_vip/admin_patch", perm.AuthorOrVIP, admin, http.MethodPatch, true},
		{"author_or_vip/superuser_delete", perm.AuthorOrVIP, superuser, http.MethodDelete, true},

		// AdminOrReadOnly object rules: SAFE always passes, UNSAFE needs admin.
		{"admin_or_ro/anonymous_get", perm.AdminOrReadOnly, anonymous, http.MethodGet, true},
		{"admin_or_ro/member_get", perm.AdminOrReadOnly, member, http.MethodGet, true},
		{"admin_or_ro/member_patch", perm.AdminOrReadOnly, member, http.MethodPatch, false},
		{"admin_or_ro/admin_delete", perm.AdminOrReadOnly, admin, http.MethodDelete, true},

		// AdminOnly object rules: no SAFE bypass.
		{"admin_only/member_get", perm.AdminOnly, member, http.MethodGet, false},
		{"admin_only/admin_get", perm.AdminOnly, admin, http.MethodGet, true},

		// ModeratorOnly object rules: moderator role strictly — admin capability
		// alone (including superuser) does not pass.
		{"moderator_only/member_patch", perm.ModeratorOnly, member, http.MethodPatch, false},
		{"moderator_only/moderator_patch", perm.ModeratorOnly, moderator, http.MethodPatch, true},
		{"moderator_only/admin_patch", perm.ModeratorOnly, admin, http.MethodPatch, false},
		{"moderator_only/superuser_patch", perm.ModeratorOnly, superuser, http.MethodPatch, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allow, perm.CanAccessObject(tt.policy, tt.actor, tt.method, ownerID))
		})
	}
}

/*
TestCanAccessObject_OwnershipAgainstEntityAuthor pins down that ownership is
judged by the entity's own author ID and that an empty owner never matches.
*/
func TestCanAccessObject_OwnershipAgainstEntityAuthor(t *testing.T) {
	// Owner match allows an UNSAFE action.
	assert.True(t, perm.CanAccessObject(perm.AuthorOrVIP, member, http.MethodDelete, member.ID))

	// A different owner denies it.
	assert.False(t, perm.CanAccessObject(perm.AuthorOrVIP, member, http.MethodDelete, "someone-else"))

	// An empty owner ID never grants ownership, even if the actor ID were empty too.
	ghost := &perm.Actor{ID: "", Role: sec.RoleUser}
	assert.False(t, perm.CanAccessObject(perm.AuthorOrVIP, ghost, http.MethodDelete, ""))
}

/*
TestFromClaims checks the claims-to-actor mapping, including anonymous.
*/
func TestFromClaims(t *testing.T) {
	assert.Nil(t, perm.FromClaims(nil))

	claims := &sec.AuthClaims{UserID: "u-1", Username: "bob", Role: "moderator", IsSuperuser: false}
	actor := perm.FromClaims(claims)

	assert.Equal(t, "u-1", actor.ID)
	assert.Equal(t, "bob", actor.Username)
	assert.Equal(t, sec.RoleModerator, actor.Role)
	assert.True(t, actor.IsVIP())
}

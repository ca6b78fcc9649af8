// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// The set is closed: every stored role is one of the three constants below.
// The orthogonal superuser elevation lives on the user record (and in the
// token claims), never inside the role value itself.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can manage community content and moderate reviews/comments
	RoleModerator UserRole = "moderator"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// Valid reports whether r is one of the three known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// Elevated reports whether the role grants moderator-or-above standing.
//
// Full capability predicates (is_admin, is_vip) also take the superuser flag
// into account and live in the perm package; this helper exists for call
// sites that only have a bare role value.
func (r UserRole) Elevated() bool {
	return r == RoleAdmin || r == RoleModerator
}

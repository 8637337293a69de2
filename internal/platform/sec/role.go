// Copyright (c) 2026 Harmonia. All rights reserved.

package sec

import "context"

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access, including editing role assignments.
	RoleAdmin UserRole = "admin"

	// Can moderate content: reject/approve corrections and image-queue
	// entries on behalf of other authors.
	RoleModerator UserRole = "moderator"

	// Can upload and manage their own contributions, subject to review.
	RoleEditor UserRole = "editor"

	// Default role for standard registered users.
	RoleMember UserRole = "member"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleModerator:
		return 30
	case RoleEditor:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}

// IsPrivileged reports whether r carries any of the roles the correction
// engine treats as privileged for auto-approval and moderation purposes
// (Moderator or Admin). A caller that needs a different set supplies its
// own role checker.
func (r UserRole) IsPrivileged() bool {
	return r.AtLeast(RoleModerator)
}

// # Role-checker Interface

// RoleChecker is the external interface the engine depends on: it asks
// whether a user carries a privileged role without knowing how roles are
// stored (Postgres column, JWT claim, external IdP, ...).
type RoleChecker interface {
	// HasAnyRole reports whether userID currently carries at least one of
	// the given roles.
	HasAnyRole(ctx context.Context, userID string, roles ...UserRole) (bool, error)

	// IsPrivileged reports whether userID carries a role configured as
	// privileged (Admin/Moderator by default).
	IsPrivileged(ctx context.Context, userID string) (bool, error)
}

// ClaimsRoleChecker implements [RoleChecker] by trusting the role embedded
// in the caller-supplied JWT claims, avoiding an extra round trip to
// storage on every correction-engine call, the same way
// [middleware.RequireRole] trusts [AuthClaims.Role] directly.
type ClaimsRoleChecker struct{}

// NewClaimsRoleChecker constructs a [ClaimsRoleChecker].
func NewClaimsRoleChecker() *ClaimsRoleChecker {
	return &ClaimsRoleChecker{}
}

// HasAnyRole is satisfied by comparing the claims role passed via ctx
// against the requested set. Callers that need a storage-backed check
// (e.g. roles that change between token issuance and use) should supply
// their own [RoleChecker] instead.
func (c *ClaimsRoleChecker) HasAnyRole(ctx context.Context, userID string, roles ...UserRole) (bool, error) {
	claims := ClaimsFromContext(ctx)
	if claims == nil || claims.UserID != userID {
		return false, nil
	}
	current := UserRole(claims.Role)
	for _, role := range roles {
		if current == role {
			return true, nil
		}
	}
	return false, nil
}

// IsPrivileged reports whether the context's claims carry a privileged role.
func (c *ClaimsRoleChecker) IsPrivileged(ctx context.Context, userID string) (bool, error) {
	claims := ClaimsFromContext(ctx)
	if claims == nil || claims.UserID != userID {
		return false, nil
	}
	return UserRole(claims.Role).IsPrivileged(), nil
}

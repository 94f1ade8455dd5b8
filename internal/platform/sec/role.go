// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// The superuser flag is stored separately on the account and is orthogonal
// to the role.
type UserRole string

const (
	// Default role for accounts created through signup
	RoleUser UserRole = "user"

	// Can edit and delete any review or comment
	RoleModerator UserRole = "moderator"

	// Can manage users and the catalogue
	RoleAdmin UserRole = "admin"
)

// Roles lists every assignable role in display order.
var Roles = []UserRole{RoleUser, RoleModerator, RoleAdmin}

// Valid reports whether r is one of the assignable roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	default:
		return false
	}
}

// RoleNames returns the roles as plain strings, for validation messages.
func RoleNames() []string {
	names := make([]string, len(Roles))
	for i, role := range Roles {
		names[i] = string(role)
	}
	return names
}

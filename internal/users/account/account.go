// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages user accounts after signup.

Two audiences use it:

  - Admins and superusers manage every account under /users, addressed by
    username, including the role.
  - Any authenticated user reads and edits their own profile under the
    /users/me alias. The role is never writable through that path.

# Architecture

The package depends on the auth package for the User entity and its
repository, mirroring the split between identity and profile concerns.
*/
package account

// # Request Payloads

// UserInput carries the writable account fields. Nil pointers leave the
// stored value unchanged on update.
type UserInput struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// # Query Parameters

const (
	// ParamSearch filters the user list by username substring.
	ParamSearch = "search"

	// ParamUsername is the URL parameter addressing one account.
	ParamUsername = "username"
)

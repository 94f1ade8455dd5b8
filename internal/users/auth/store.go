// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/yamdb/pkg/pagination"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Username and email uniqueness are enforced by the storage layer: a
// concurrent duplicate Create fails with a field-attributed conflict.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - error: apperr.NotFound if absent
	*/
	FindByID(ctx context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username (exact match).

		Returns:
		  - error: apperr.NotFound if absent
	*/
	FindByUsername(ctx context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email (exact match).

		Returns:
		  - error: apperr.NotFound if absent
	*/
	FindByEmail(ctx context.Context, email string) (*User, error)

	/*
		List returns one page of accounts ordered by username.
	*/
	List(ctx context.Context, filter Filter, params pagination.Params) (pagination.Result[*User], error)

	/*
		Create persists a brand-new account.

		Returns:
		  - error: apperr.FieldConflict on duplicate username or email
	*/
	Create(ctx context.Context, user *User) error

	/*
		Update persists profile fields and role. The credential is untouched.

		Returns:
		  - error: apperr.NotFound, or apperr.FieldConflict on duplicates
	*/
	Update(ctx context.Context, user *User) error

	/*
		UpdateCredential replaces only the credential hash.
	*/
	UpdateCredential(ctx context.Context, id string, hash *string) error

	/*
		Delete removes the account and, by cascade, its reviews and comments.
	*/
	Delete(ctx context.Context, id string) error
}

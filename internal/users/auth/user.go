// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the identity store and the passwordless signup flow.

A visitor signs up with a (username, email) pair and receives a one-time
confirmation code by email. Exchanging the code at /auth/token yields a signed
bearer token. Repeating signup with an identical pair reissues a fresh code
and invalidates the previous one.
*/
package auth

import (
	"time"

	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// # Domain Entities

// User is a registered account.
type User struct {
	ID          string       `json:"-"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Bio         string       `json:"bio"`
	Role        sec.UserRole `json:"role"`
	IsSuperuser bool         `json:"-"`
	DateJoined  time.Time    `json:"-"`

	// CredentialHash is the bcrypt hash of the latest confirmation code.
	// Nil means the account has no usable credential.
	CredentialHash *string `json:"-"`
}

// CheckCredential reports whether code matches the stored credential.
func (u *User) CheckCredential(code string) bool {
	if u.CredentialHash == nil {
		return false
	}
	return sec.CheckPasswordHash(code, *u.CredentialHash)
}

// Filter narrows a user listing.
type Filter struct {
	// Search matches a case-insensitive substring of the username.
	Search string
}

// # Field Identifiers

const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
	FieldRole             = "role"
	FieldConfirmationCode = "confirmation_code"
	FieldToken            = "token"
)

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts and cross-cutting keys that are shared between
different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Security: JWT issuer and header names.
  - Identity: Username and email constraints shared by signup and user management.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "yamdb-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// Signup blocks on the mail transport, so this is wider than a plain CRUD budget.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 25 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "yamdb"

	// BearerScheme is the Authorization header scheme accepted by the API.
	BearerScheme = "bearer"
)

// # Identity

const (
	// UsernameMaxLength is the maximum username length in characters.
	UsernameMaxLength = 150

	// EmailMaxLength is the maximum email length in characters.
	EmailMaxLength = 254

	// PersonNameMaxLength bounds first_name and last_name.
	PersonNameMaxLength = 150

	// ReservedUsername is the alias used for self-service and can never be registered.
	ReservedUsername = "me"

	// ConfirmationCodeLength is the length of the emailed one-time credential.
	ConfirmationCodeLength = 20

	// MsgMustBeUnique is the field message reported on uniqueness violations.
	MsgMustBeUnique = "This field must be unique."
)

// # Catalogue

const (
	// NameMaxLength bounds category, genre and title names.
	NameMaxLength = 256

	// SlugMaxLength bounds category and genre slugs.
	SlugMaxLength = 50

	// MinTitleYear is the earliest accepted release year.
	MinTitleYear = 1900

	// MinScore and MaxScore bound a review score (inclusive).
	MinScore = 1
	MaxScore = 10

	// MsgAlreadyReviewed rejects a second review of one title by one author.
	MsgAlreadyReviewed = "You have already reviewed this title"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
)

// uniqueRule describes how a unique constraint violation is reported.
// An empty field yields a non-field conflict.
type uniqueRule struct {
	field   string
	message string
}

// Unique constraint names as declared in the migrations.
const (
	ConstraintUsersUsername   = "users_username_key"
	ConstraintUsersEmail      = "users_email_key"
	ConstraintCategoriesSlug  = "categories_slug_key"
	ConstraintGenresSlug      = "genres_slug_key"
	ConstraintReviewsPerTitle = "reviews_author_title_key"
)

var uniqueRules = map[string]uniqueRule{
	ConstraintUsersUsername:   {field: "username", message: constants.MsgMustBeUnique},
	ConstraintUsersEmail:      {field: "email", message: constants.MsgMustBeUnique},
	ConstraintCategoriesSlug:  {field: "slug", message: constants.MsgMustBeUnique},
	ConstraintGenresSlug:      {field: "slug", message: constants.MsgMustBeUnique},
	ConstraintReviewsPerTitle: {message: constants.MsgAlreadyReviewed},
}

// Wrap inspects a database error and classifies it as an [apperr.AppError].
// resource names the entity in NotFound messages.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// 1. Already classified upstream
	if apperr.IsAppError(err) {
		return err
	}

	// 2. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 3. Constraint violations
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return uniqueViolation(pgErr).WithCause(err)
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError("Referenced resource does not exist").WithCause(err)
		case pgerrcode.CheckViolation:
			return apperr.ValidationError("Value out of range").WithCause(err)
		}
	}

	// 4. Anything else is a server-side fault
	return apperr.Internal(err)
}

func uniqueViolation(pgErr *pgconn.PgError) *apperr.AppError {
	rule, ok := uniqueRules[pgErr.ConstraintName]
	if !ok {
		return apperr.Conflict("Resource already exists")
	}
	if rule.field == "" {
		return apperr.Conflict(rule.message)
	}
	return apperr.FieldConflict(rule.field, rule.message)
}

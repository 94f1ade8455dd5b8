// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// resourceUser names the entity in NotFound errors.
const resourceUser = "User"

// # User Repository

// PostgresUserRepository implements [UserRepository] on users.account.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var (
	tbl = schema.UserAccount

	selectUser = fmt.Sprintf(`SELECT %s FROM %s`, schema.List("", tbl.Columns()...), tbl.Table)
)

// scanUser hydrates a User from a row selected with tbl.Columns().
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	var role string

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&role,
		&user.IsSuperuser,
		&user.CredentialHash,
		&user.DateJoined,
	)
	if err != nil {
		return nil, err
	}

	user.Role = sec.UserRole(role)
	return user, nil
}

func (repository *PostgresUserRepository) findOne(ctx context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1`, selectUser, column)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, value))
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser)
	}
	return user, nil
}

// FindByID retrieves a user by primary key.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return repository.findOne(ctx, tbl.ID, id)
}

// FindByUsername retrieves a user by exact username.
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return repository.findOne(ctx, tbl.Username, username)
}

// FindByEmail retrieves a user by exact email.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return repository.findOne(ctx, tbl.Email, email)
}

// List returns one page of users, optionally filtered by a username substring.
func (repository *PostgresUserRepository) List(ctx context.Context, filter Filter, params pagination.Params) (pagination.Result[*User], error) {
	result := pagination.Result[*User]{Items: make([]*User, 0)}

	where := "TRUE"
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = fmt.Sprintf("%s ILIKE $%d", tbl.Username, len(args))
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, tbl.Table, where)
	if err := repository.pool.QueryRow(ctx, countQuery, args...).Scan(&result.Total); err != nil {
		return result, dberr.Wrap(err, resourceUser)
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY %s`, selectUser, where, tbl.Username)
	if !params.Unbounded() {
		args = append(args, params.Limit, params.Offset())
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return result, dberr.Wrap(err, resourceUser)
	}
	defer rows.Close()

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return result, dberr.Wrap(err, resourceUser)
		}
		result.Items = append(result.Items, user)
	}

	return result, dberr.Wrap(rows.Err(), resourceUser)
}

/*
Create persists a new account.

Username and email uniqueness is decided by the users_username_key and
users_email_key constraints, so two racing signups cannot both succeed.
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		tbl.Table, schema.List("", tbl.Columns()...))

	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now().UTC()
	}

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		string(user.Role),
		user.IsSuperuser,
		user.CredentialHash,
		user.DateJoined,
	)

	return dberr.Wrap(err, resourceUser)
}

// Update persists profile fields and role.
func (repository *PostgresUserRepository) Update(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1`,
		tbl.Table,
		tbl.Username, tbl.Email, tbl.FirstName, tbl.LastName, tbl.Bio, tbl.Role,
		tbl.ID)

	tag, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		string(user.Role),
	)
	if err != nil {
		return dberr.Wrap(err, resourceUser)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceUser)
	}
	return nil
}

// UpdateCredential replaces the credential hash. A nil hash disables it.
func (repository *PostgresUserRepository) UpdateCredential(ctx context.Context, id string, hash *string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, tbl.Table, tbl.PasswordHash, tbl.ID)

	tag, err := repository.pool.Exec(ctx, query, id, hash)
	if err != nil {
		return dberr.Wrap(err, resourceUser)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceUser)
	}
	return nil
}

// Delete removes the account row.
func (repository *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, tbl.Table, tbl.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceUser)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceUser)
	}
	return nil
}

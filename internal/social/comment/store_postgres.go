// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// PostgresRepository implements [Repository] on social.comment.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	tbl     = schema.SocialComment
	account = schema.UserAccount

	selectComments = fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, a.%s, c.%s, c.%s
		FROM %s c
		JOIN %s a ON a.%s = c.%s`,
		tbl.ID, tbl.ReviewID, tbl.AuthorID, account.Username, tbl.Text, tbl.PubDate,
		tbl.Table,
		account.Table, account.ID, tbl.AuthorID,
	)
)

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(
		&comment.ID,
		&comment.ReviewID,
		&comment.AuthorID,
		&comment.Author,
		&comment.Text,
		&comment.PubDate,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// List returns one page of a review's comments, newest first.
func (repository *PostgresRepository) List(ctx context.Context, reviewID string, params pagination.Params) (pagination.Result[*Comment], error) {
	result := pagination.Result[*Comment]{Items: make([]*Comment, 0)}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, tbl.Table, tbl.ReviewID)
	if err := repository.pool.QueryRow(ctx, countQuery, reviewID).Scan(&result.Total); err != nil {
		return result, dberr.Wrap(err, resourceComment)
	}

	args := []any{reviewID}
	query := fmt.Sprintf(`%s WHERE c.%s = $1 ORDER BY c.%s DESC, c.%s DESC`,
		selectComments, tbl.ReviewID, tbl.PubDate, tbl.ID)
	if !params.Unbounded() {
		args = append(args, params.Limit, params.Offset())
		query += ` LIMIT $2 OFFSET $3`
	}

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return result, dberr.Wrap(err, resourceComment)
	}
	defer rows.Close()

	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return result, dberr.Wrap(err, resourceComment)
		}
		result.Items = append(result.Items, comment)
	}

	return result, dberr.Wrap(rows.Err(), resourceComment)
}

// FindByID retrieves one comment of the given review.
func (repository *PostgresRepository) FindByID(ctx context.Context, reviewID, id string) (*Comment, error) {
	query := fmt.Sprintf(`%s WHERE c.%s = $1 AND c.%s = $2`, selectComments, tbl.ID, tbl.ReviewID)

	comment, err := scanComment(repository.pool.QueryRow(ctx, query, id, reviewID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceComment)
	}
	return comment, nil
}

// Create persists a new comment.
func (repository *PostgresRepository) Create(ctx context.Context, comment *Comment) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5)`,
		tbl.Table, schema.List("", tbl.Columns()...))

	_, err := repository.pool.Exec(ctx, query,
		comment.ID,
		comment.ReviewID,
		comment.AuthorID,
		comment.Text,
		comment.PubDate,
	)
	return dberr.Wrap(err, resourceComment)
}

// Update persists the text.
func (repository *PostgresRepository) Update(ctx context.Context, comment *Comment) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, tbl.Table, tbl.Text, tbl.ID)

	tag, err := repository.pool.Exec(ctx, query, comment.ID, comment.Text)
	if err != nil {
		return dberr.Wrap(err, resourceComment)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceComment)
	}
	return nil
}

// Delete removes a comment.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, tbl.Table, tbl.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceComment)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceComment)
	}
	return nil
}

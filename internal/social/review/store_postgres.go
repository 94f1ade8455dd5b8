// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

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

// PostgresRepository implements [Repository] on social.review.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	tbl     = schema.SocialReview
	account = schema.UserAccount

	// selectReviews resolves the author's username alongside each review.
	selectReviews = fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s a ON a.%s = r.%s`,
		tbl.ID, tbl.TitleID, tbl.AuthorID, account.Username, tbl.Text, tbl.Score, tbl.PubDate,
		tbl.Table,
		account.Table, account.ID, tbl.AuthorID,
	)
)

func scanReview(row pgx.Row) (*Review, error) {
	review := &Review{}
	err := row.Scan(
		&review.ID,
		&review.TitleID,
		&review.AuthorID,
		&review.Author,
		&review.Text,
		&review.Score,
		&review.PubDate,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}

// List returns one page of a title's reviews, oldest publication first.
func (repository *PostgresRepository) List(ctx context.Context, titleID string, params pagination.Params) (pagination.Result[*Review], error) {
	result := pagination.Result[*Review]{Items: make([]*Review, 0)}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, tbl.Table, tbl.TitleID)
	if err := repository.pool.QueryRow(ctx, countQuery, titleID).Scan(&result.Total); err != nil {
		return result, dberr.Wrap(err, resourceReview)
	}

	args := []any{titleID}
	query := fmt.Sprintf(`%s WHERE r.%s = $1 ORDER BY r.%s, r.%s`, selectReviews, tbl.TitleID, tbl.PubDate, tbl.ID)
	if !params.Unbounded() {
		args = append(args, params.Limit, params.Offset())
		query += ` LIMIT $2 OFFSET $3`
	}

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return result, dberr.Wrap(err, resourceReview)
	}
	defer rows.Close()

	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return result, dberr.Wrap(err, resourceReview)
		}
		result.Items = append(result.Items, review)
	}

	return result, dberr.Wrap(rows.Err(), resourceReview)
}

// FindByID retrieves one review of the given title.
func (repository *PostgresRepository) FindByID(ctx context.Context, titleID, id string) (*Review, error) {
	query := fmt.Sprintf(`%s WHERE r.%s = $1 AND r.%s = $2`, selectReviews, tbl.ID, tbl.TitleID)

	review, err := scanReview(repository.pool.QueryRow(ctx, query, id, titleID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceReview)
	}
	return review, nil
}

// ExistsByAuthor reports whether authorID already reviewed titleID.
func (repository *PostgresRepository) ExistsByAuthor(ctx context.Context, titleID, authorID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		tbl.Table, tbl.TitleID, tbl.AuthorID)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, titleID, authorID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resourceReview)
	}
	return exists, nil
}

/*
Create persists a new review.

The reviews_author_title_key constraint decides concurrent duplicates; the
loser gets a Conflict.
*/
func (repository *PostgresRepository) Create(ctx context.Context, review *Review) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		tbl.Table, schema.List("", tbl.Columns()...))

	_, err := repository.pool.Exec(ctx, query,
		review.ID,
		review.TitleID,
		review.AuthorID,
		review.Text,
		review.Score,
		review.PubDate,
	)
	return dberr.Wrap(err, resourceReview)
}

// Update persists the text and score.
func (repository *PostgresRepository) Update(ctx context.Context, review *Review) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		tbl.Table, tbl.Text, tbl.Score, tbl.ID)

	tag, err := repository.pool.Exec(ctx, query, review.ID, review.Text, review.Score)
	if err != nil {
		return dberr.Wrap(err, resourceReview)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceReview)
	}
	return nil
}

// Delete removes a review. Its comments cascade.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, tbl.Table, tbl.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceReview)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceReview)
	}
	return nil
}

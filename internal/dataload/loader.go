// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dataload

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
)

// Loader writes datasets into PostgreSQL.
type Loader struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
	now    func() time.Time
}

// NewLoader constructs a [Loader].
func NewLoader(pool *pgxpool.Pool, logger *slog.Logger) *Loader {
	return &Loader{pool: pool, logger: logger, now: time.Now}
}

/*
Load replaces the application data with dataset in a single transaction.

Existing rows are wiped first, superusers excepted, then every table is
bulk copied in dependency order. Any failure rolls the whole load back.
*/
func (loader *Loader) Load(ctx context.Context, dataset *Dataset) (Counts, error) {
	var counts Counts

	err := postgres.WithTx(ctx, loader.pool, func(tx pgx.Tx) error {
		if err := wipe(ctx, tx); err != nil {
			return err
		}

		joined := loader.now().UTC()

		var err error
		if counts.Users, err = copyRows(ctx, tx, schema.UserAccount.Table,
			[]string{
				schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
				schema.UserAccount.FirstName, schema.UserAccount.LastName, schema.UserAccount.Bio,
				schema.UserAccount.Role, schema.UserAccount.DateJoined,
			},
			dataset.Users, func(user User) []any {
				return []any{user.ID, user.Username, user.Email, user.FirstName, user.LastName, user.Bio, string(user.Role), joined}
			}); err != nil {
			return err
		}

		taxonRow := func(taxon Taxon) []any { return []any{taxon.ID, taxon.Name, taxon.Slug} }
		if counts.Categories, err = copyRows(ctx, tx, schema.CoreCategory.Table, schema.CoreCategory.Columns(), dataset.Categories, taxonRow); err != nil {
			return err
		}
		if counts.Genres, err = copyRows(ctx, tx, schema.CoreGenre.Table, schema.CoreGenre.Columns(), dataset.Genres, taxonRow); err != nil {
			return err
		}

		if counts.Titles, err = copyRows(ctx, tx, schema.CoreTitle.Table, schema.CoreTitle.Columns(),
			dataset.Titles, func(title Title) []any {
				return []any{title.ID, title.Name, title.Year, title.Description, title.CategoryID}
			}); err != nil {
			return err
		}

		if counts.GenreTitle, err = copyRows(ctx, tx, schema.CoreGenreTitle.Table, schema.CoreGenreTitle.Columns(),
			dataset.GenreTitle, func(link GenreTitle) []any {
				return []any{link.TitleID, link.GenreID}
			}); err != nil {
			return err
		}

		if counts.Reviews, err = copyRows(ctx, tx, schema.SocialReview.Table, schema.SocialReview.Columns(),
			dataset.Reviews, func(review Review) []any {
				return []any{review.ID, review.TitleID, review.AuthorID, review.Text, review.Score, review.PubDate}
			}); err != nil {
			return err
		}

		counts.Comments, err = copyRows(ctx, tx, schema.SocialComment.Table, schema.SocialComment.Columns(),
			dataset.Comments, func(comment Comment) []any {
				return []any{comment.ID, comment.ReviewID, comment.AuthorID, comment.Text, comment.PubDate}
			})
		return err
	})
	if err != nil {
		return Counts{}, err
	}

	loader.logger.InfoContext(ctx, "dataset_loaded",
		slog.Int64("users", counts.Users),
		slog.Int64("categories", counts.Categories),
		slog.Int64("genres", counts.Genres),
		slog.Int64("titles", counts.Titles),
		slog.Int64("reviews", counts.Reviews),
		slog.Int64("comments", counts.Comments),
	)

	return counts, nil
}

// Unload removes all application data except superuser accounts.
func (loader *Loader) Unload(ctx context.Context) error {
	err := postgres.WithTx(ctx, loader.pool, func(tx pgx.Tx) error {
		return wipe(ctx, tx)
	})
	if err != nil {
		return err
	}

	loader.logger.InfoContext(ctx, "dataset_unloaded")
	return nil
}

// # Helpers

// wipe deletes rows children first so no foreign key is left dangling.
func wipe(ctx context.Context, tx pgx.Tx) error {
	statements := []string{
		"DELETE FROM " + schema.SocialComment.Table,
		"DELETE FROM " + schema.SocialReview.Table,
		"DELETE FROM " + schema.CoreGenreTitle.Table,
		"DELETE FROM " + schema.CoreTitle.Table,
		"DELETE FROM " + schema.CoreGenre.Table,
		"DELETE FROM " + schema.CoreCategory.Table,
		fmt.Sprintf("DELETE FROM %s WHERE NOT %s", schema.UserAccount.Table, schema.UserAccount.IsSuperuser),
	}

	for _, statement := range statements {
		if _, err := tx.Exec(ctx, statement); err != nil {
			return fmt.Errorf("dataload: %s: %w", statement, err)
		}
	}
	return nil
}

// copyRows bulk inserts items into a schema-qualified table.
func copyRows[T any](ctx context.Context, tx pgx.Tx, table string, columns []string, items []T, row func(T) []any) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	source := pgx.CopyFromSlice(len(items), func(index int) ([]any, error) {
		return row(items[index]), nil
	})

	copied, err := tx.CopyFrom(ctx, pgx.Identifier(strings.Split(table, ".")), columns, source)
	if err != nil {
		return 0, fmt.Errorf("dataload: copy %s: %w", table, err)
	}
	return copied, nil
}

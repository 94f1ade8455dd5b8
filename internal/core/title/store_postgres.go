// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/slice"
)

// PostgresRepository implements [Repository] on core.title and core.genretitle.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	tbl      = schema.CoreTitle
	category = schema.CoreCategory
	genre    = schema.CoreGenre
	link     = schema.CoreGenreTitle
	review   = schema.SocialReview

	// selectTitles joins the category and aggregates review scores per title.
	selectTitles = fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s,
		       c.%s, c.%s, c.%s,
		       rs.total, rs.count
		FROM %s t
		LEFT JOIN %s c ON c.%s = t.%s
		CROSS JOIN LATERAL (
			SELECT COALESCE(SUM(r.%s), 0) AS total, COUNT(*) AS count
			FROM %s r WHERE r.%s = t.%s
		) rs`,
		tbl.ID, tbl.Name, tbl.Year, tbl.Description,
		category.ID, category.Name, category.Slug,
		tbl.Table,
		category.Table, category.ID, tbl.CategoryID,
		review.Score,
		review.Table, review.TitleID, tbl.ID,
	)
)

// scanTitle hydrates a Title, without genres, from a selectTitles row.
func scanTitle(row pgx.Row) (*Title, error) {
	title := &Title{Genres: make([]*taxonomy.Taxon, 0)}
	var (
		categoryID, categoryName, categorySlug *string
		total, count                           int
	)

	err := row.Scan(
		&title.ID, &title.Name, &title.Year, &title.Description,
		&categoryID, &categoryName, &categorySlug,
		&total, &count,
	)
	if err != nil {
		return nil, err
	}

	if categoryID != nil {
		title.Category = &taxonomy.Taxon{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
	}
	title.Rating = ratingOf(total, count)
	return title, nil
}

// attachGenres loads the genre set of every title in one round trip.
func (repository *PostgresRepository) attachGenres(ctx context.Context, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	byID := make(map[string]*Title, len(titles))
	for _, title := range titles {
		byID[title.ID] = title
	}

	query := fmt.Sprintf(`
		SELECT l.%s, g.%s, g.%s, g.%s
		FROM %s l
		JOIN %s g ON g.%s = l.%s
		WHERE l.%s = ANY($1::uuid[])
		ORDER BY g.%s`,
		link.TitleID, genre.ID, genre.Name, genre.Slug,
		link.Table,
		genre.Table, genre.ID, link.GenreID,
		link.TitleID,
		genre.Slug,
	)

	ids := slice.Map(titles, func(t *Title) string { return t.ID })
	rows, err := repository.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var titleID string
		taxon := &taxonomy.Taxon{}
		if err := rows.Scan(&titleID, &taxon.ID, &taxon.Name, &taxon.Slug); err != nil {
			return err
		}
		if title, ok := byID[titleID]; ok {
			title.Genres = append(title.Genres, taxon)
		}
	}
	return rows.Err()
}

// List returns one page of titles, newest release year first.
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, params pagination.Params) (pagination.Result[*Title], error) {
	result := pagination.Result[*Title]{Items: make([]*Title, 0)}

	conditions := []string{"TRUE"}
	args := []any{}

	if filter.Genre != "" {
		args = append(args, filter.Genre)
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM %s l JOIN %s g ON g.%s = l.%s
			WHERE l.%s = t.%s AND g.%s = $%d)`,
			link.Table, genre.Table, genre.ID, link.GenreID,
			link.TitleID, tbl.ID, genre.Slug, len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf(`c.%s = $%d`, category.Slug, len(args)))
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conditions = append(conditions, fmt.Sprintf(`t.%s ILIKE $%d`, tbl.Name, len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		conditions = append(conditions, fmt.Sprintf(`t.%s = $%d`, tbl.Year, len(args)))
	}
	where := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s t LEFT JOIN %s c ON c.%s = t.%s WHERE %s`,
		tbl.Table, category.Table, category.ID, tbl.CategoryID, where)
	if err := repository.pool.QueryRow(ctx, countQuery, args...).Scan(&result.Total); err != nil {
		return result, dberr.Wrap(err, resourceTitle)
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY t.%s DESC, t.%s, t.%s`, selectTitles, where, tbl.Year, tbl.Name, tbl.ID)
	if !params.Unbounded() {
		args = append(args, params.Limit, params.Offset())
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return result, dberr.Wrap(err, resourceTitle)
	}
	defer rows.Close()

	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return result, dberr.Wrap(err, resourceTitle)
		}
		result.Items = append(result.Items, title)
	}
	if err := rows.Err(); err != nil {
		return result, dberr.Wrap(err, resourceTitle)
	}
	rows.Close()

	return result, dberr.Wrap(repository.attachGenres(ctx, result.Items), resourceTitle)
}

// FindByID retrieves one title with its genres, category and rating.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Title, error) {
	query := fmt.Sprintf(`%s WHERE t.%s = $1`, selectTitles, tbl.ID)

	title, err := scanTitle(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceTitle)
	}

	if err := repository.attachGenres(ctx, []*Title{title}); err != nil {
		return nil, dberr.Wrap(err, resourceTitle)
	}
	return title, nil
}

// Exists reports whether a title with id exists.
func (repository *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, tbl.Table, tbl.ID)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resourceTitle)
	}
	return exists, nil
}

/*
Create inserts the title row and its genre links in one transaction.
*/
func (repository *PostgresRepository) Create(ctx context.Context, record *Record) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5)`,
		tbl.Table, schema.List("", tbl.Columns()...))

	err := postgres.WithTx(ctx, repository.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query,
			record.ID, record.Name, record.Year, record.Description, categoryIDOf(record),
		); err != nil {
			return err
		}
		return linkGenres(ctx, tx, record)
	})

	return dberr.Wrap(err, resourceTitle)
}

/*
Update rewrites the title row and replaces its genre links in one transaction.
*/
func (repository *PostgresRepository) Update(ctx context.Context, record *Record) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
		tbl.Table, tbl.Name, tbl.Year, tbl.Description, tbl.CategoryID, tbl.ID)
	unlink := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, link.Table, link.TitleID)

	err := postgres.WithTx(ctx, repository.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query,
			record.ID, record.Name, record.Year, record.Description, categoryIDOf(record),
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound(resourceTitle)
		}

		if _, err := tx.Exec(ctx, unlink, record.ID); err != nil {
			return err
		}
		return linkGenres(ctx, tx, record)
	})

	return dberr.Wrap(err, resourceTitle)
}

// Delete removes a title. Its genre links and reviews cascade.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, tbl.Table, tbl.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceTitle)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceTitle)
	}
	return nil
}

func linkGenres(ctx context.Context, tx pgx.Tx, record *Record) error {
	if len(record.Genres) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) SELECT $1, unnest($2::uuid[])`,
		link.Table, link.TitleID, link.GenreID)

	ids := slice.Map(record.Genres, func(g *taxonomy.Taxon) string { return g.ID })
	_, err := tx.Exec(ctx, query, record.ID, ids)
	return err
}

func categoryIDOf(record *Record) *string {
	if record.Category == nil {
		return nil
	}
	return &record.Category.ID
}

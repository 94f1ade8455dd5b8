// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

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

// PostgresRepository implements [Repository] on core.category or core.genre.
type PostgresRepository struct {
	pool *pgxpool.Pool
	kind Kind
}

// NewPostgresRepository returns a repository bound to kind's table.
func NewPostgresRepository(pool *pgxpool.Pool, kind Kind) *PostgresRepository {
	return &PostgresRepository{pool: pool, kind: kind}
}

func (repository *PostgresRepository) selectTaxa() string {
	tbl := repository.kind.table
	return fmt.Sprintf(`SELECT %s FROM %s`, schema.List("", tbl.Columns()...), tbl.Table)
}

func scanTaxon(row pgx.Row) (*Taxon, error) {
	taxon := &Taxon{}
	if err := row.Scan(&taxon.ID, &taxon.Name, &taxon.Slug); err != nil {
		return nil, err
	}
	return taxon, nil
}

// List returns one page ordered by name, optionally filtered by a name substring.
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, params pagination.Params) (pagination.Result[*Taxon], error) {
	tbl := repository.kind.table
	result := pagination.Result[*Taxon]{Items: make([]*Taxon, 0)}

	where := "TRUE"
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = fmt.Sprintf("%s ILIKE $%d", tbl.Name, len(args))
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, tbl.Table, where)
	if err := repository.pool.QueryRow(ctx, countQuery, args...).Scan(&result.Total); err != nil {
		return result, dberr.Wrap(err, repository.kind.Resource)
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY %s, %s`, repository.selectTaxa(), where, tbl.Name, tbl.Slug)
	if !params.Unbounded() {
		args = append(args, params.Limit, params.Offset())
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return result, dberr.Wrap(err, repository.kind.Resource)
	}
	defer rows.Close()

	for rows.Next() {
		taxon, err := scanTaxon(rows)
		if err != nil {
			return result, dberr.Wrap(err, repository.kind.Resource)
		}
		result.Items = append(result.Items, taxon)
	}

	return result, dberr.Wrap(rows.Err(), repository.kind.Resource)
}

// FindBySlug retrieves one entry by its slug.
func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Taxon, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1`, repository.selectTaxa(), repository.kind.table.Slug)

	taxon, err := scanTaxon(repository.pool.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, repository.kind.Resource)
	}
	return taxon, nil
}

// FindBySlugs retrieves every entry whose slug is in slugs.
func (repository *PostgresRepository) FindBySlugs(ctx context.Context, slugs []string) ([]*Taxon, error) {
	taxa := make([]*Taxon, 0, len(slugs))
	if len(slugs) == 0 {
		return taxa, nil
	}

	tbl := repository.kind.table
	query := fmt.Sprintf(`%s WHERE %s = ANY($1) ORDER BY %s`, repository.selectTaxa(), tbl.Slug, tbl.Slug)

	rows, err := repository.pool.Query(ctx, query, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, repository.kind.Resource)
	}
	defer rows.Close()

	for rows.Next() {
		taxon, err := scanTaxon(rows)
		if err != nil {
			return nil, dberr.Wrap(err, repository.kind.Resource)
		}
		taxa = append(taxa, taxon)
	}

	return taxa, dberr.Wrap(rows.Err(), repository.kind.Resource)
}

/*
Create persists a new entry.

Slug uniqueness is decided by the table's unique constraint and surfaces as a
field conflict on "slug".
*/
func (repository *PostgresRepository) Create(ctx context.Context, taxon *Taxon) error {
	tbl := repository.kind.table
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3)`,
		tbl.Table, schema.List("", tbl.Columns()...))

	_, err := repository.pool.Exec(ctx, query, taxon.ID, taxon.Name, taxon.Slug)
	return dberr.Wrap(err, repository.kind.Resource)
}

// Delete removes an entry. Titles referencing a deleted category keep a
// null category; genre links are dropped.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	tbl := repository.kind.table
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, tbl.Table, tbl.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, repository.kind.Resource)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(repository.kind.Resource)
	}
	return nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Repository defines the persistence contract for titles.
type Repository interface {
	List(ctx context.Context, filter Filter, params pagination.Params) (pagination.Result[*Title], error)
	FindByID(ctx context.Context, id string) (*Title, error)
	Exists(ctx context.Context, id string) (bool, error)

	// Create and Update write the title row and replace its genre links
	// atomically.
	Create(ctx context.Context, record *Record) error
	Update(ctx context.Context, record *Record) error

	Delete(ctx context.Context, id string) error
}

// TaxonFinder resolves category or genre slugs. [taxonomy.Repository]
// satisfies it.
type TaxonFinder interface {
	FindBySlug(ctx context.Context, slug string) (*taxonomy.Taxon, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]*taxonomy.Taxon, error)
}

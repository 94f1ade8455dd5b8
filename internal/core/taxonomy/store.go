// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"

	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Repository defines the persistence contract for one taxonomy [Kind].
type Repository interface {
	List(ctx context.Context, filter Filter, params pagination.Params) (pagination.Result[*Taxon], error)
	FindBySlug(ctx context.Context, slug string) (*Taxon, error)

	// FindBySlugs returns the entries matching slugs. Unknown slugs are
	// omitted rather than reported, so callers compare lengths.
	FindBySlugs(ctx context.Context, slugs []string) ([]*Taxon, error)

	Create(ctx context.Context, taxon *Taxon) error
	Delete(ctx context.Context, id string) error
}

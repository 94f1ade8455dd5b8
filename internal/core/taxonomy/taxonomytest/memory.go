// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package taxonomytest provides an in-memory taxonomy repository for service
// and handler tests.
package taxonomytest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// Repository is a goroutine-safe in-memory [taxonomy.Repository] enforcing
// slug uniqueness.
type Repository struct {
	mu   sync.Mutex
	kind taxonomy.Kind
	taxa map[string]taxonomy.Taxon
}

// NewRepository returns an empty store for kind.
func NewRepository(kind taxonomy.Kind) *Repository {
	return &Repository{kind: kind, taxa: make(map[string]taxonomy.Taxon)}
}

var _ taxonomy.Repository = (*Repository)(nil)

// Seed stores an entry with a generated ID and returns it.
func (r *Repository) Seed(name, slug string) *taxonomy.Taxon {
	taxon := &taxonomy.Taxon{ID: uuid.New(), Name: name, Slug: slug}
	_ = r.Create(context.Background(), taxon)
	return taxon
}

// List implements [taxonomy.Repository].
func (r *Repository) List(_ context.Context, filter taxonomy.Filter, params pagination.Params) (pagination.Result[*taxonomy.Taxon], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*taxonomy.Taxon, 0, len(r.taxa))
	for _, taxon := range r.taxa {
		if strings.Contains(strings.ToLower(taxon.Name), strings.ToLower(filter.Search)) {
			found := taxon
			matched = append(matched, &found)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	result := pagination.Result[*taxonomy.Taxon]{Items: matched, Total: len(matched)}
	if params.Unbounded() {
		return result, nil
	}

	start := min(params.Offset(), len(matched))
	end := min(start+params.Limit, len(matched))
	result.Items = matched[start:end]
	return result, nil
}

// FindBySlug implements [taxonomy.Repository].
func (r *Repository) FindBySlug(_ context.Context, slug string) (*taxonomy.Taxon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, taxon := range r.taxa {
		if taxon.Slug == slug {
			found := taxon
			return &found, nil
		}
	}
	return nil, apperr.NotFound(r.kind.Resource)
}

// FindBySlugs implements [taxonomy.Repository].
func (r *Repository) FindBySlugs(_ context.Context, slugs []string) ([]*taxonomy.Taxon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	taxa := make([]*taxonomy.Taxon, 0, len(slugs))
	for _, taxon := range r.taxa {
		for _, slug := range slugs {
			if taxon.Slug == slug {
				found := taxon
				taxa = append(taxa, &found)
				break
			}
		}
	}
	sort.Slice(taxa, func(i, j int) bool { return taxa[i].Slug < taxa[j].Slug })
	return taxa, nil
}

// Create implements [taxonomy.Repository].
func (r *Repository) Create(_ context.Context, taxon *taxonomy.Taxon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.taxa {
		if other.Slug == taxon.Slug {
			return apperr.FieldConflict(taxonomy.FieldSlug, constants.MsgMustBeUnique)
		}
	}
	r.taxa[taxon.ID] = *taxon
	return nil
}

// Delete implements [taxonomy.Repository].
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.taxa[id]; !ok {
		return apperr.NotFound(r.kind.Resource)
	}
	delete(r.taxa, id)
	return nil
}

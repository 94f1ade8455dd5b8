// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package titletest provides an in-memory title repository for service and
// handler tests.
package titletest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Repository is a goroutine-safe in-memory [title.Repository]. Review scores
// are registered with Score so ratings can be exercised without a review
// store.
type Repository struct {
	mu      sync.Mutex
	records map[string]title.Record
	scores  map[string][]int
}

// NewRepository returns an empty store.
func NewRepository() *Repository {
	return &Repository{
		records: make(map[string]title.Record),
		scores:  make(map[string][]int),
	}
}

var _ title.Repository = (*Repository)(nil)

// Score records review scores for a title.
func (r *Repository) Score(titleID string, scores ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores[titleID] = append(r.scores[titleID], scores...)
}

func (r *Repository) view(record title.Record) *title.Title {
	view := &title.Title{
		ID:          record.ID,
		Name:        record.Name,
		Year:        record.Year,
		Description: record.Description,
		Genres:      append(make([]*taxonomy.Taxon, 0, len(record.Genres)), record.Genres...),
		Category:    record.Category,
	}
	if scores := r.scores[record.ID]; len(scores) > 0 {
		sum := 0
		for _, s := range scores {
			sum += s
		}
		rating := sum / len(scores)
		view.Rating = &rating
	}
	return view
}

func matches(record title.Record, filter title.Filter) bool {
	if filter.Category != "" && (record.Category == nil || record.Category.Slug != filter.Category) {
		return false
	}
	if filter.Genre != "" {
		found := false
		for _, genre := range record.Genres {
			found = found || genre.Slug == filter.Genre
		}
		if !found {
			return false
		}
	}
	if filter.Name != "" && !strings.Contains(strings.ToLower(record.Name), strings.ToLower(filter.Name)) {
		return false
	}
	return filter.Year == nil || *filter.Year == record.Year
}

// List implements [title.Repository].
func (r *Repository) List(_ context.Context, filter title.Filter, params pagination.Params) (pagination.Result[*title.Title], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*title.Title, 0, len(r.records))
	for _, record := range r.records {
		if matches(record, filter) {
			matched = append(matched, r.view(record))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Year != matched[j].Year {
			return matched[i].Year > matched[j].Year
		}
		return matched[i].Name < matched[j].Name
	})

	result := pagination.Result[*title.Title]{Items: matched, Total: len(matched)}
	if params.Unbounded() {
		return result, nil
	}

	start := min(params.Offset(), len(matched))
	end := min(start+params.Limit, len(matched))
	result.Items = matched[start:end]
	return result, nil
}

// FindByID implements [title.Repository].
func (r *Repository) FindByID(_ context.Context, id string) (*title.Title, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok {
		return nil, apperr.NotFound("Title")
	}
	return r.view(record), nil
}

// Exists implements [title.Repository].
func (r *Repository) Exists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.records[id]
	return ok, nil
}

// Create implements [title.Repository].
func (r *Repository) Create(_ context.Context, record *title.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.ID] = *record
	return nil
}

// Update implements [title.Repository].
func (r *Repository) Update(_ context.Context, record *title.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.ID]; !ok {
		return apperr.NotFound("Title")
	}
	r.records[record.ID] = *record
	return nil
}

// Delete implements [title.Repository].
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return apperr.NotFound("Title")
	}
	delete(r.records, id)
	delete(r.scores, id)
	return nil
}

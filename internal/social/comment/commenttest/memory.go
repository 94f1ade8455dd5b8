// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package commenttest provides an in-memory comment repository for service
// and handler tests.
package commenttest

import (
	"context"
	"sort"
	"sync"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/social/comment"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Repository is a goroutine-safe in-memory [comment.Repository].
type Repository struct {
	mu       sync.Mutex
	comments map[string]comment.Comment
}

// NewRepository returns an empty store.
func NewRepository() *Repository {
	return &Repository{comments: make(map[string]comment.Comment)}
}

var _ comment.Repository = (*Repository)(nil)

// List implements [comment.Repository], newest first.
func (r *Repository) List(_ context.Context, reviewID string, params pagination.Params) (pagination.Result[*comment.Comment], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*comment.Comment, 0)
	for _, stored := range r.comments {
		if stored.ReviewID == reviewID {
			found := stored
			matched = append(matched, &found)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].PubDate.After(matched[j].PubDate) })

	total := len(matched)
	if params.Limit > 0 {
		start := min(params.Offset(), total)
		matched = matched[start:min(start+params.Limit, total)]
	}
	return pagination.Result[*comment.Comment]{Items: matched, Total: total}, nil
}

// FindByID implements [comment.Repository].
func (r *Repository) FindByID(_ context.Context, reviewID, id string) (*comment.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.comments[id]
	if !ok || stored.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	return &stored, nil
}

// Create implements [comment.Repository].
func (r *Repository) Create(_ context.Context, created *comment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments[created.ID] = *created
	return nil
}

// Update implements [comment.Repository].
func (r *Repository) Update(_ context.Context, updated *comment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[updated.ID]; !ok {
		return apperr.NotFound("Comment")
	}
	r.comments[updated.ID] = *updated
	return nil
}

// Delete implements [comment.Repository].
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(r.comments, id)
	return nil
}

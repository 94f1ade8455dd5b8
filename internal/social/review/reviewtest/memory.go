// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package reviewtest provides an in-memory review repository for service and
// handler tests.
package reviewtest

import (
	"context"
	"sort"
	"sync"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/social/review"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Repository is a goroutine-safe in-memory [review.Repository] enforcing one
// review per (author, title) like the database constraint.
type Repository struct {
	mu      sync.Mutex
	reviews map[string]review.Review
}

// NewRepository returns an empty store.
func NewRepository() *Repository {
	return &Repository{reviews: make(map[string]review.Review)}
}

var _ review.Repository = (*Repository)(nil)

// List implements [review.Repository].
func (r *Repository) List(_ context.Context, titleID string, params pagination.Params) (pagination.Result[*review.Review], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*review.Review, 0)
	for _, stored := range r.reviews {
		if stored.TitleID == titleID {
			found := stored
			matched = append(matched, &found)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].PubDate.Equal(matched[j].PubDate) {
			return matched[i].PubDate.Before(matched[j].PubDate)
		}
		return matched[i].ID < matched[j].ID
	})

	result := pagination.Result[*review.Review]{Items: matched, Total: len(matched)}
	if params.Unbounded() {
		return result, nil
	}

	start := min(params.Offset(), len(matched))
	end := min(start+params.Limit, len(matched))
	result.Items = matched[start:end]
	return result, nil
}

// FindByID implements [review.Repository].
func (r *Repository) FindByID(_ context.Context, titleID, id string) (*review.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.reviews[id]
	if !ok || stored.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	return &stored, nil
}

// ExistsByAuthor implements [review.Repository].
func (r *Repository) ExistsByAuthor(_ context.Context, titleID, authorID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.reviewed(titleID, authorID), nil
}

func (r *Repository) reviewed(titleID, authorID string) bool {
	for _, stored := range r.reviews {
		if stored.TitleID == titleID && stored.AuthorID == authorID {
			return true
		}
	}
	return false
}

// Create implements [review.Repository].
func (r *Repository) Create(_ context.Context, created *review.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.reviewed(created.TitleID, created.AuthorID) {
		return apperr.Conflict(constants.MsgAlreadyReviewed)
	}
	r.reviews[created.ID] = *created
	return nil
}

// Update implements [review.Repository].
func (r *Repository) Update(_ context.Context, updated *review.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.reviews[updated.ID]
	if !ok {
		return apperr.NotFound("Review")
	}
	stored.Text = updated.Text
	stored.Score = updated.Score
	r.reviews[updated.ID] = stored
	return nil
}

// Delete implements [review.Repository].
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[id]; !ok {
		return apperr.NotFound("Review")
	}
	delete(r.reviews, id)
	return nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"

	"github.com/taibuivan/yamdb/internal/social/review"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Repository defines the persistence contract for comments. Every lookup is
// scoped to a review.
type Repository interface {
	List(ctx context.Context, reviewID string, params pagination.Params) (pagination.Result[*Comment], error)
	FindByID(ctx context.Context, reviewID, id string) (*Comment, error)
	Create(ctx context.Context, comment *Comment) error
	Update(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, id string) error
}

// ReviewFinder resolves a review within its title. [review.Service]
// satisfies it.
type ReviewFinder interface {
	Find(ctx context.Context, titleID, id string) (*review.Review, error)
}

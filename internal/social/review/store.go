// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"

	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Repository defines the persistence contract for reviews. Every lookup is
// scoped to a title.
type Repository interface {
	List(ctx context.Context, titleID string, params pagination.Params) (pagination.Result[*Review], error)
	FindByID(ctx context.Context, titleID, id string) (*Review, error)

	// ExistsByAuthor reports whether authorID already reviewed titleID.
	ExistsByAuthor(ctx context.Context, titleID, authorID string) (bool, error)

	// Create fails with a Conflict if the author already reviewed the title.
	Create(ctx context.Context, review *Review) error
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id string) error
}

// TitleChecker reports whether a title exists. [title.Repository]
// satisfies it.
type TitleChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

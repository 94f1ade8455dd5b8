// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/yamdb/internal/access"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// # Service Layer

// Service orchestrates comments under the content policy.
type Service struct {
	repo    Repository
	reviews ReviewFinder
	now     func() time.Time
	logger  *slog.Logger
}

// NewService constructs a new [Service]. now stamps publication dates.
func NewService(repo Repository, reviews ReviewFinder, now func() time.Time, logger *slog.Logger) *Service {
	return &Service{repo: repo, reviews: reviews, now: now, logger: logger}
}

// List returns one page of a review's thread, newest first. Open to everyone.
func (service *Service) List(ctx context.Context, actor access.Actor, titleID, reviewID string, params pagination.Params) (pagination.Result[*Comment], error) {
	if err := access.Content.Authorize(actor, access.ActionList); err != nil {
		return pagination.Result[*Comment]{}, err
	}
	if _, err := service.reviews.Find(ctx, titleID, reviewID); err != nil {
		return pagination.Result[*Comment]{}, err
	}
	return service.repo.List(ctx, reviewID, params)
}

// Get returns one comment. Open to everyone.
func (service *Service) Get(ctx context.Context, actor access.Actor, titleID, reviewID, id string) (*Comment, error) {
	return service.resolve(ctx, actor, access.ActionRetrieve, titleID, reviewID, id)
}

/*
Create adds the actor's comment to a review.

Returns:
  - *Comment: The stored comment
  - error: NotFound (title or review), ValidationError
*/
func (service *Service) Create(ctx context.Context, actor access.Actor, titleID, reviewID string, input Input) (*Comment, error) {
	if err := access.Content.Authorize(actor, access.ActionCreate); err != nil {
		return nil, err
	}

	parent, err := service.reviews.Find(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuid.New(),
		ReviewID: parent.ID,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		PubDate:  service.now().UTC(),
	}
	if err := apply(comment, input); err != nil {
		return nil, err
	}

	if err := service.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("review_id", parent.ID),
	)
	return comment, nil
}

// Update edits a comment. Authors edit their own; moderators and admins any.
func (service *Service) Update(ctx context.Context, actor access.Actor, titleID, reviewID, id string, input Input) (*Comment, error) {
	comment, err := service.resolve(ctx, actor, access.ActionUpdate, titleID, reviewID, id)
	if err != nil {
		return nil, err
	}

	if err := apply(comment, input); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "comment_updated",
		slog.String("comment_id", comment.ID),
		slog.String("by", actor.Username),
	)
	return comment, nil
}

// Delete removes a comment. Same rule as Update.
func (service *Service) Delete(ctx context.Context, actor access.Actor, titleID, reviewID, id string) error {
	comment, err := service.resolve(ctx, actor, access.ActionDelete, titleID, reviewID, id)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, comment.ID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "comment_deleted",
		slog.String("comment_id", comment.ID),
		slog.String("by", actor.Username),
	)
	return nil
}

func (service *Service) resolve(ctx context.Context, actor access.Actor, action access.Action, titleID, reviewID, id string) (*Comment, error) {
	if err := access.Content.Authorize(actor, action); err != nil {
		return nil, err
	}

	if _, err := service.reviews.Find(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceComment)
	}

	comment, err := service.repo.FindByID(ctx, reviewID, id)
	if err != nil {
		return nil, err
	}

	if err := access.Content.AuthorizeObject(actor, action, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func apply(comment *Comment, input Input) error {
	if input.Text != nil {
		comment.Text = *input.Text
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, comment.Text)
	return validator.Err()
}

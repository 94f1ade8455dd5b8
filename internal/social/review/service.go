// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/yamdb/internal/access"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// # Service Layer

// Service orchestrates reviews under the content policy.
type Service struct {
	repo   Repository
	titles TitleChecker
	now    func() time.Time
	logger *slog.Logger
}

// NewService constructs a new [Service]. now stamps publication dates.
func NewService(repo Repository, titles TitleChecker, now func() time.Time, logger *slog.Logger) *Service {
	return &Service{repo: repo, titles: titles, now: now, logger: logger}
}

// List returns one page of a title's reviews. Open to everyone.
func (service *Service) List(ctx context.Context, actor access.Actor, titleID string, params pagination.Params) (pagination.Result[*Review], error) {
	if err := access.Content.Authorize(actor, access.ActionList); err != nil {
		return pagination.Result[*Review]{}, err
	}
	if err := service.requireTitle(ctx, titleID); err != nil {
		return pagination.Result[*Review]{}, err
	}
	return service.repo.List(ctx, titleID, params)
}

// Get returns one review. Open to everyone.
func (service *Service) Get(ctx context.Context, actor access.Actor, titleID, id string) (*Review, error) {
	return service.resolve(ctx, actor, access.ActionRetrieve, titleID, id)
}

/*
Create publishes the actor's review of a title.

Description: The title must exist and the actor must not have reviewed it
yet. The score is an integer from 1 to 10 inclusive.

Returns:
  - *Review: The stored review
  - error: NotFound (title), ValidationError, or Conflict (already reviewed)
*/
func (service *Service) Create(ctx context.Context, actor access.Actor, titleID string, input Input) (*Review, error) {
	if err := access.Content.Authorize(actor, access.ActionCreate); err != nil {
		return nil, err
	}
	if err := service.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review := &Review{
		ID:       uuid.New(),
		TitleID:  titleID,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		PubDate:  service.now().UTC(),
	}

	validator := &validate.Validator{}
	validator.Custom(FieldScore, input.Score == nil, "This field is required.")
	if input.Text == nil {
		validator.Required(FieldText, "")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}
	if err := apply(review, input); err != nil {
		return nil, err
	}

	reviewed, err := service.repo.ExistsByAuthor(ctx, titleID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, apperr.Conflict(constants.MsgAlreadyReviewed)
	}

	if err := service.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "review_created",
		slog.String("review_id", review.ID),
		slog.String("title_id", titleID),
		slog.Int("score", review.Score),
	)
	return review, nil
}

// Update edits a review. Authors edit their own; moderators and admins any.
func (service *Service) Update(ctx context.Context, actor access.Actor, titleID, id string, input Input) (*Review, error) {
	review, err := service.resolve(ctx, actor, access.ActionUpdate, titleID, id)
	if err != nil {
		return nil, err
	}

	if err := apply(review, input); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, review); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "review_updated",
		slog.String("review_id", review.ID),
		slog.String("by", actor.Username),
	)
	return review, nil
}

// Delete removes a review and its comments. Same rule as Update.
func (service *Service) Delete(ctx context.Context, actor access.Actor, titleID, id string) error {
	review, err := service.resolve(ctx, actor, access.ActionDelete, titleID, id)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, review.ID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "review_deleted",
		slog.String("review_id", review.ID),
		slog.String("by", actor.Username),
	)
	return nil
}

// Find returns a review of a title without an authorization check. The
// comment service uses it to resolve the parent review.
func (service *Service) Find(ctx context.Context, titleID, id string) (*Review, error) {
	if err := service.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceReview)
	}
	return service.repo.FindByID(ctx, titleID, id)
}

// resolve runs both authorization phases around the lookup of one review.
func (service *Service) resolve(ctx context.Context, actor access.Actor, action access.Action, titleID, id string) (*Review, error) {
	if err := access.Content.Authorize(actor, action); err != nil {
		return nil, err
	}

	review, err := service.Find(ctx, titleID, id)
	if err != nil {
		return nil, err
	}

	if err := access.Content.AuthorizeObject(actor, action, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (service *Service) requireTitle(ctx context.Context, titleID string) error {
	if !uuid.Valid(titleID) {
		return apperr.NotFound("Title")
	}

	exists, err := service.titles.Exists(ctx, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}

// apply copies the set fields of input onto review and validates the result.
func apply(review *Review, input Input) error {
	if input.Text != nil {
		review.Text = *input.Text
	}
	if input.Score != nil {
		review.Score = *input.Score
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, review.Text).
		Range(FieldScore, review.Score, constants.MinScore, constants.MaxScore)
	return validator.Err()
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/access"
	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/slice"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// # Service Layer

// Service orchestrates titles under the catalogue policy.
type Service struct {
	repo       Repository
	genres     TaxonFinder
	categories TaxonFinder
	now        func() time.Time
	logger     *slog.Logger
}

// NewService constructs a new [Service].
//
// now supplies the current time for the release year upper bound.
func NewService(repo Repository, genres, categories TaxonFinder, now func() time.Time, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		genres:     genres,
		categories: categories,
		now:        now,
		logger:     logger,
	}
}

// List returns one page of titles. Open to everyone.
func (service *Service) List(ctx context.Context, actor access.Actor, filter Filter, params pagination.Params) (pagination.Result[*Title], error) {
	if err := access.Catalogue.Authorize(actor, access.ActionList); err != nil {
		return pagination.Result[*Title]{}, err
	}
	return service.repo.List(ctx, filter, params)
}

// Get returns one title with its computed rating. Open to everyone.
func (service *Service) Get(ctx context.Context, actor access.Actor, id string) (*Title, error) {
	if err := access.Catalogue.Authorize(actor, access.ActionRetrieve); err != nil {
		return nil, err
	}

	title, err := service.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := access.Catalogue.AuthorizeObject(actor, access.ActionRetrieve, title); err != nil {
		return nil, err
	}
	return title, nil
}

/*
Create adds a title. Admin only.

Description: Genres and category are given by slug. The category is
required and the genre list must be present, though it may be empty.

Returns:
  - *Record: The created title in its write view
  - error: ValidationError when a field is invalid or a slug is unknown
*/
func (service *Service) Create(ctx context.Context, actor access.Actor, input Input) (*Record, error) {
	if err := access.Catalogue.Authorize(actor, access.ActionCreate); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Custom(FieldYear, input.Year == nil, "This field is required.").
		Custom(FieldGenre, input.Genre == nil, "This field is required.").
		Custom(FieldCategory, input.Category == nil || *input.Category == "", "This field is required.")
	if input.Name == nil {
		validator.Required(FieldName, "")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	record := &Record{ID: uuid.New()}
	if err := service.merge(ctx, record, input); err != nil {
		return nil, err
	}

	if err := service.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "title_created",
		slog.String("title_id", record.ID),
		slog.String("name", record.Name),
	)
	return record, nil
}

// Update applies a partial change to a title. Admin only.
func (service *Service) Update(ctx context.Context, actor access.Actor, id string, input Input) (*Record, error) {
	if err := access.Catalogue.Authorize(actor, access.ActionUpdate); err != nil {
		return nil, err
	}

	title, err := service.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := access.Catalogue.AuthorizeObject(actor, access.ActionUpdate, title); err != nil {
		return nil, err
	}

	record := recordOf(title)
	if err := service.merge(ctx, record, input); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "title_updated", slog.String("title_id", record.ID))
	return record, nil
}

// Delete removes a title with its reviews. Admin only.
func (service *Service) Delete(ctx context.Context, actor access.Actor, id string) error {
	if err := access.Catalogue.Authorize(actor, access.ActionDelete); err != nil {
		return err
	}

	title, err := service.find(ctx, id)
	if err != nil {
		return err
	}

	if err := access.Catalogue.AuthorizeObject(actor, access.ActionDelete, title); err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, title.ID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "title_deleted", slog.String("title_id", title.ID))
	return nil
}

// find loads a title, treating malformed ids as absent.
func (service *Service) find(ctx context.Context, id string) (*Title, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceTitle)
	}
	return service.repo.FindByID(ctx, id)
}

// merge validates input, resolves its slugs and copies it onto record.
func (service *Service) merge(ctx context.Context, record *Record, input Input) error {
	if input.Name != nil {
		record.Name = strings.TrimSpace(*input.Name)
	}
	if input.Year != nil {
		record.Year = *input.Year
	}
	if input.Description != nil {
		record.Description = input.Description
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, record.Name).
		MaxLen(FieldName, record.Name, constants.NameMaxLength).
		Year(FieldYear, record.Year, constants.MinTitleYear, service.now())

	if input.Genre != nil {
		genres, unknown, err := service.resolveGenres(ctx, input.Genre)
		switch {
		case err != nil:
			return err
		case unknown != "":
			validator.Custom(FieldGenre, true, fmt.Sprintf("Genre with slug %q does not exist", unknown))
		default:
			record.Genres = genres
		}
	}

	if input.Category != nil {
		found, err := service.categories.FindBySlug(ctx, *input.Category)
		switch {
		case apperr.IsNotFound(err):
			validator.Custom(FieldCategory, true, fmt.Sprintf("Category with slug %q does not exist", *input.Category))
		case err != nil:
			return err
		default:
			record.Category = found
		}
	}

	return validator.Err()
}

// resolveGenres returns the genres named by slugs, or the first slug that
// matches none.
func (service *Service) resolveGenres(ctx context.Context, slugs []string) ([]*taxonomy.Taxon, string, error) {
	slugs = slice.Unique(slugs)

	genres, err := service.genres.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, "", err
	}

	known := make(map[string]bool, len(genres))
	for _, genre := range genres {
		known[genre.Slug] = true
	}
	for _, slug := range slugs {
		if !known[slug] {
			return nil, slug, nil
		}
	}
	return genres, "", nil
}

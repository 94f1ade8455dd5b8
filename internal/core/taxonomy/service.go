// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/yamdb/internal/access"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/slug"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// # Service Layer

// Service orchestrates one taxonomy list under the catalogue policy.
type Service struct {
	kind   Kind
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] for kind.
func NewService(kind Kind, repo Repository, logger *slog.Logger) *Service {
	return &Service{kind: kind, repo: repo, logger: logger}
}

// Kind reports which list the service manages.
func (service *Service) Kind() Kind {
	return service.kind
}

// List returns one page of entries. Open to everyone.
func (service *Service) List(ctx context.Context, actor access.Actor, filter Filter, params pagination.Params) (pagination.Result[*Taxon], error) {
	if err := access.Catalogue.Authorize(actor, access.ActionList); err != nil {
		return pagination.Result[*Taxon]{}, err
	}
	return service.repo.List(ctx, filter, params)
}

// Retrieve is not a supported action on taxonomy entries, whoever asks.
func (service *Service) Retrieve(_ context.Context, _ access.Actor, _ string) (*Taxon, error) {
	return nil, apperr.MethodNotAllowed(http.MethodGet)
}

/*
Create adds an entry. Admin only.

Description: When the slug is omitted it is derived from the name, so
"Science Fiction" becomes "science-fiction".

Returns:
  - *Taxon: The created entry
  - error: ValidationError or Conflict on "slug"
*/
func (service *Service) Create(ctx context.Context, actor access.Actor, input Input) (*Taxon, error) {
	if err := access.Catalogue.Authorize(actor, access.ActionCreate); err != nil {
		return nil, err
	}

	taxon := &Taxon{
		ID:   uuid.New(),
		Name: strings.TrimSpace(input.Name),
	}
	if input.Slug != nil && *input.Slug != "" {
		taxon.Slug = *input.Slug
	} else {
		taxon.Slug = slug.Truncate(slug.From(taxon.Name), constants.SlugMaxLength)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, taxon.Name).
		MaxLen(FieldName, taxon.Name, constants.NameMaxLength).
		MaxLen(FieldSlug, taxon.Slug, constants.SlugMaxLength).
		Slug(FieldSlug, taxon.Slug)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Create(ctx, taxon); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "taxon_created",
		slog.String("kind", service.kind.Resource),
		slog.String("slug", taxon.Slug),
	)
	return taxon, nil
}

// Delete removes the entry addressed by slug. Admin only.
func (service *Service) Delete(ctx context.Context, actor access.Actor, slug string) error {
	if err := access.Catalogue.Authorize(actor, access.ActionDelete); err != nil {
		return err
	}

	taxon, err := service.repo.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}

	if err := access.Catalogue.AuthorizeObject(actor, access.ActionDelete, taxon); err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, taxon.ID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "taxon_deleted",
		slog.String("kind", service.kind.Resource),
		slog.String("slug", taxon.Slug),
	)
	return nil
}

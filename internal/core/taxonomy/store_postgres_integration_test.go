//go:build integration

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/postgres/pgtest"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

func TestPostgresRepository(t *testing.T) {
	pool, _ := pgtest.Start(t)
	ctx := context.Background()

	for _, kind := range []taxonomy.Kind{taxonomy.Category, taxonomy.Genre} {
		t.Run(kind.Path, func(t *testing.T) {
			pgtest.Truncate(t, pool)
			repo := taxonomy.NewPostgresRepository(pool, kind)

			require.NoError(t, repo.Create(ctx, &taxonomy.Taxon{ID: uuid.New(), Name: "Drama", Slug: "drama"}))
			require.NoError(t, repo.Create(ctx, &taxonomy.Taxon{ID: uuid.New(), Name: "Comedy", Slug: "comedy"}))

			err := repo.Create(ctx, &taxonomy.Taxon{ID: uuid.New(), Name: "Drama 2", Slug: "drama"})
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
			assert.Equal(t, taxonomy.FieldSlug, apperr.As(err).Details[0].Field)

			page, err := repo.List(ctx, taxonomy.Filter{Search: "DRA"}, pagination.Params{Page: 1, Limit: 10})
			require.NoError(t, err)
			assert.Equal(t, 1, page.Total)
			assert.Equal(t, "drama", page.Items[0].Slug)

			found, err := repo.FindBySlugs(ctx, []string{"comedy", "drama", "missing"})
			require.NoError(t, err)
			assert.Len(t, found, 2)

			drama, err := repo.FindBySlug(ctx, "drama")
			require.NoError(t, err)
			require.NoError(t, repo.Delete(ctx, drama.ID))
			assert.True(t, apperr.IsNotFound(repo.Delete(ctx, drama.ID)))
		})
	}
}

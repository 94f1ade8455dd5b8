// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/access"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/core/title/titletest"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/social/review"
	"github.com/taibuivan/yamdb/internal/social/review/reviewtest"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/pointer"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

var (
	alice     = access.Actor{UserID: "u-alice", Username: "alice", Role: sec.RoleUser}
	bob       = access.Actor{UserID: "u-bob", Username: "bob", Role: sec.RoleUser}
	moderator = access.Actor{UserID: "u-mod", Username: "mod", Role: sec.RoleModerator}
	admin     = access.Actor{UserID: "u-admin", Username: "boss", Role: sec.RoleAdmin}
	superuser = access.Actor{UserID: "u-root", Username: "root", Role: sec.RoleUser, IsSuperuser: true}
)

type fixture struct {
	titleID string
	service *review.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	titles := titletest.NewRepository()
	titleID := uuid.New()
	require.NoError(t, titles.Create(context.Background(), &title.Record{ID: titleID, Name: "Solaris", Year: 1972}))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := func() time.Time { return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC) }

	return &fixture{
		titleID: titleID,
		service: review.NewService(reviewtest.NewRepository(), titles, now, logger),
	}
}

func (f *fixture) post(t *testing.T, actor access.Actor, score int) *review.Review {
	t.Helper()
	created, err := f.service.Create(context.Background(), actor, f.titleID, review.Input{
		Text:  pointer.To("Worth watching"),
		Score: pointer.To(score),
	})
	require.NoError(t, err)
	return created
}

func status(t *testing.T, err error) int {
	t.Helper()
	ae := apperr.As(err)
	require.NotNil(t, ae, "expected AppError, got %v", err)
	return ae.HTTPStatus
}

func TestCreate_AttributesAuthor(t *testing.T) {
	f := newFixture(t)
	created := f.post(t, alice, 8)

	assert.Equal(t, "alice", created.Author)
	assert.Equal(t, alice.UserID, created.OwnerID())
	assert.Equal(t, 2026, created.PubDate.Year())
}

func TestCreate_Anonymous(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Create(context.Background(), access.Anonymous(), f.titleID, review.Input{
		Text: pointer.To("x"), Score: pointer.To(5),
	})
	assert.Equal(t, http.StatusUnauthorized, status(t, err))
}

func TestCreate_UnknownTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input := review.Input{Text: pointer.To("x"), Score: pointer.To(5)}

	_, err := f.service.Create(ctx, alice, uuid.New(), input)
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.service.Create(ctx, alice, "42", input)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreate_ScoreBounds(t *testing.T) {
	tests := []struct {
		score int
		ok    bool
	}{
		{0, false},
		{1, true},
		{10, true},
		{11, false},
		{-3, false},
	}
	for _, tt := range tests {
		f := newFixture(t)
		_, err := f.service.Create(context.Background(), alice, f.titleID, review.Input{
			Text: pointer.To("x"), Score: pointer.To(tt.score),
		})
		if tt.ok {
			assert.NoError(t, err, tt.score)
			continue
		}
		require.Error(t, err, tt.score)
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "score %d: %v", tt.score, err)
	}
}

func TestCreate_MissingFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), alice, f.titleID, review.Input{Text: pointer.To("x")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = f.service.Create(context.Background(), alice, f.titleID, review.Input{Score: pointer.To(5)})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestCreate_OnePerAuthorAndTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.post(t, alice, 8)

	_, err := f.service.Create(ctx, alice, f.titleID, review.Input{Text: pointer.To("again"), Score: pointer.To(3)})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	assert.Equal(t, http.StatusBadRequest, status(t, err))

	edited, err := f.service.Update(ctx, alice, f.titleID, first.ID, review.Input{Score: pointer.To(9)})
	require.NoError(t, err, "editing the existing review is not a second review")
	assert.Equal(t, 9, edited.Score)
	assert.Equal(t, "Worth watching", edited.Text)

	f.post(t, bob, 5)
}

func TestCreate_ConcurrentDuplicates(t *testing.T) {
	f := newFixture(t)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Create(context.Background(), alice, f.titleID, review.Input{
				Text: pointer.To("x"), Score: pointer.To(7),
			})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestOwnership(t *testing.T) {
	tests := []struct {
		name   string
		actor  access.Actor
		status int
	}{
		{"author", alice, 0},
		{"other user", bob, http.StatusForbidden},
		{"anonymous", access.Anonymous(), http.StatusUnauthorized},
		{"moderator", moderator, 0},
		{"admin", admin, 0},
		{"superuser", superuser, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			target := f.post(t, alice, 6)

			_, err := f.service.Update(ctx, tt.actor, f.titleID, target.ID, review.Input{Text: pointer.To("edited")})
			if tt.status == 0 {
				require.NoError(t, err)
			} else {
				assert.Equal(t, tt.status, status(t, err))
			}

			err = f.service.Delete(ctx, tt.actor, f.titleID, target.ID)
			if tt.status == 0 {
				require.NoError(t, err)
			} else {
				assert.Equal(t, tt.status, status(t, err))
			}
		})
	}
}

func TestReadIsOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.post(t, alice, 6)

	page, err := f.service.List(ctx, access.Anonymous(), f.titleID, pagination.All)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	got, err := f.service.Get(ctx, access.Anonymous(), f.titleID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Score)

	_, err = f.service.Get(ctx, access.Anonymous(), uuid.New(), created.ID)
	assert.True(t, apperr.IsNotFound(err), "review is scoped to its title")

	_, err = f.service.List(ctx, access.Anonymous(), uuid.New(), pagination.All)
	assert.True(t, apperr.IsNotFound(err))
}

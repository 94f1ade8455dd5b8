//go:build integration

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/postgres/pgtest"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/internal/users/auth/authtest"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

func TestPostgresUserRepository(t *testing.T) {
	pool, _ := pgtest.Start(t)
	repo := auth.NewUserRepository(pool)
	ctx := context.Background()

	t.Run("create_and_find", func(t *testing.T) {
		pgtest.Truncate(t, pool)

		user := &auth.User{ID: uuid.New(), Username: "critic", Email: "critic@example.com", Role: sec.RoleUser}
		require.NoError(t, repo.Create(ctx, user))

		found, err := repo.FindByUsername(ctx, "critic")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, sec.RoleUser, found.Role)
		assert.Nil(t, found.CredentialHash)

		_, err = repo.FindByEmail(ctx, "nobody@example.com")
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("unique_constraints", func(t *testing.T) {
		pgtest.Truncate(t, pool)

		require.NoError(t, repo.Create(ctx, &auth.User{ID: uuid.New(), Username: "critic", Email: "a@example.com", Role: sec.RoleUser}))

		err := repo.Create(ctx, &auth.User{ID: uuid.New(), Username: "critic", Email: "b@example.com", Role: sec.RoleUser})
		assert.Equal(t, auth.FieldUsername, apperr.As(err).Details[0].Field)

		err = repo.Create(ctx, &auth.User{ID: uuid.New(), Username: "other", Email: "a@example.com", Role: sec.RoleUser})
		assert.Equal(t, auth.FieldEmail, apperr.As(err).Details[0].Field)
	})

	t.Run("concurrent_create_has_one_winner", func(t *testing.T) {
		pgtest.Truncate(t, pool)

		var wg sync.WaitGroup
		errs := make([]error, 10)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = repo.Create(ctx, &auth.User{ID: uuid.New(), Username: "race", Email: "race@example.com", Role: sec.RoleUser})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			} else {
				assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
			}
		}
		assert.Equal(t, 1, succeeded)
	})

	t.Run("list_search", func(t *testing.T) {
		pgtest.Truncate(t, pool)
		for _, name := range []string{"alice", "bob", "alicia"} {
			require.NoError(t, repo.Create(ctx, &auth.User{ID: uuid.New(), Username: name, Email: name + "@example.com", Role: sec.RoleUser}))
		}

		result, err := repo.List(ctx, auth.Filter{Search: "ALI"}, pagination.Params{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Total)
		assert.Equal(t, "alice", result.Items[0].Username)
	})

	t.Run("signup_roundtrip", func(t *testing.T) {
		pgtest.Truncate(t, pool)
		mailbox := &authtest.Mailbox{}
		service := auth.NewService(repo, mailbox, stubIssuer{}, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))

		_, err := service.Signup(ctx, auth.SignupInput{Username: "critic", Email: "critic@example.com"})
		require.NoError(t, err)

		msg, _ := mailbox.Last()
		code := msg.Body[len(msg.Body)-20:]

		token, err := service.ExchangeToken(ctx, auth.TokenInput{Username: "critic", ConfirmationCode: code})
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/internal/users/auth/authtest"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

type stubIssuer struct{}

func (stubIssuer) GenerateAccessToken(userID, username, role string, isSuperuser bool, _ time.Duration) (string, error) {
	return "token:" + username + ":" + role, nil
}

type fixture struct {
	repo    *authtest.Repository
	mailbox *authtest.Mailbox
	service *auth.Service
}

func newFixture() *fixture {
	repo := authtest.NewRepository()
	mailbox := &authtest.Mailbox{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		repo:    repo,
		mailbox: mailbox,
		service: auth.NewService(repo, mailbox, stubIssuer{}, time.Hour, logger),
	}
}

// lastCode extracts the confirmation code from the latest message.
func (f *fixture) lastCode(t *testing.T) string {
	t.Helper()
	msg, ok := f.mailbox.Last()
	require.True(t, ok, "no message sent")

	_, code, found := strings.Cut(msg.Body, "confirmation_code: ")
	require.True(t, found)
	return code
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	ae := apperr.As(err)
	require.NotNil(t, ae, "expected AppError, got %v", err)
	require.NotEmpty(t, ae.Details)
	return ae.Details[0].Field
}

func TestSignup_NewUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user, err := f.service.Signup(ctx, auth.SignupInput{Username: "critic", Email: "critic@example.com"})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleUser, user.Role)
	assert.Equal(t, 1, f.mailbox.Count())

	msg, _ := f.mailbox.Last()
	assert.Equal(t, "critic@example.com", msg.To)
	assert.Equal(t, auth.ConfirmationSubject, msg.Subject)
	assert.Len(t, f.lastCode(t), constants.ConfirmationCodeLength)
}

func TestSignup_IdempotentReissue(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	input := auth.SignupInput{Username: "critic", Email: "critic@example.com"}

	first, err := f.service.Signup(ctx, input)
	require.NoError(t, err)
	firstCode := f.lastCode(t)

	second, err := f.service.Signup(ctx, input)
	require.NoError(t, err)
	secondCode := f.lastCode(t)

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, firstCode, secondCode)
	assert.Equal(t, 2, f.mailbox.Count())

	// The latest code is the only valid one.
	_, err = f.service.ExchangeToken(ctx, auth.TokenInput{Username: "critic", ConfirmationCode: firstCode})
	assert.Equal(t, auth.FieldConfirmationCode, fieldOf(t, err))

	token, err := f.service.ExchangeToken(ctx, auth.TokenInput{Username: "critic", ConfirmationCode: secondCode})
	require.NoError(t, err)
	assert.Equal(t, "token:critic:user", token)
}

func TestSignup_Conflicts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Signup(ctx, auth.SignupInput{Username: "critic", Email: "critic@example.com"})
	require.NoError(t, err)

	_, err = f.service.Signup(ctx, auth.SignupInput{Username: "critic", Email: "other@example.com"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	assert.Equal(t, auth.FieldUsername, fieldOf(t, err))

	_, err = f.service.Signup(ctx, auth.SignupInput{Username: "newcomer", Email: "critic@example.com"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	assert.Equal(t, auth.FieldEmail, fieldOf(t, err))

	assert.Equal(t, 1, f.mailbox.Count())
}

func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input auth.SignupInput
		field string
	}{
		{"reserved_username", auth.SignupInput{Username: "me", Email: "me@example.com"}, auth.FieldUsername},
		{"bad_characters", auth.SignupInput{Username: "john doe", Email: "j@example.com"}, auth.FieldUsername},
		{"too_long_username", auth.SignupInput{Username: strings.Repeat("a", 151), Email: "j@example.com"}, auth.FieldUsername},
		{"missing_username", auth.SignupInput{Email: "j@example.com"}, auth.FieldUsername},
		{"bad_email", auth.SignupInput{Username: "john", Email: "john-at-example"}, auth.FieldEmail},
		{"missing_email", auth.SignupInput{Username: "john"}, auth.FieldEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.service.Signup(context.Background(), tt.input)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, tt.field, ae.Details[0].Field)
			assert.Zero(t, f.mailbox.Count())
		})
	}
}

func TestSignup_ReservedIsCaseSensitive(t *testing.T) {
	f := newFixture()

	_, err := f.service.Signup(context.Background(), auth.SignupInput{Username: "Me", Email: "me@example.com"})
	assert.NoError(t, err)
}

func TestSignup_DeliveryFailure(t *testing.T) {
	f := newFixture()
	f.mailbox.Fail = true

	_, err := f.service.Signup(context.Background(), auth.SignupInput{Username: "critic", Email: "critic@example.com"})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeDeliveryFailed, ae.Code)
	assert.Equal(t, http.StatusBadGateway, ae.HTTPStatus)
	assert.ErrorIs(t, err, authtest.ErrRelayDown)
}

func TestSignup_ConcurrentIdenticalPairs(t *testing.T) {
	f := newFixture()
	input := auth.SignupInput{Username: "critic", Email: "critic@example.com"}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.Signup(context.Background(), input)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}

	result, err := f.repo.List(context.Background(), auth.Filter{}, pagination.All)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
}

func TestExchangeToken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Signup(ctx, auth.SignupInput{Username: "critic", Email: "critic@example.com"})
	require.NoError(t, err)
	code := f.lastCode(t)

	t.Run("unknown_username", func(t *testing.T) {
		_, err := f.service.ExchangeToken(ctx, auth.TokenInput{Username: "ghost", ConfirmationCode: code})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
		assert.Equal(t, "User ghost not found", ae.Message)
	})

	t.Run("wrong_code", func(t *testing.T) {
		_, err := f.service.ExchangeToken(ctx, auth.TokenInput{Username: "critic", ConfirmationCode: "nope"})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
		assert.Equal(t, auth.MsgCheckConfirmationCode, ae.Details[0].Message)
	})

	t.Run("missing_fields", func(t *testing.T) {
		_, err := f.service.ExchangeToken(ctx, auth.TokenInput{})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Len(t, ae.Details, 2)
	})

	t.Run("code_is_reusable", func(t *testing.T) {
		for range 2 {
			token, err := f.service.ExchangeToken(ctx, auth.TokenInput{Username: "critic", ConfirmationCode: code})
			require.NoError(t, err)
			assert.NotEmpty(t, token)
		}
	})
}

func TestExchangeToken_NoCredential(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.repo.Create(ctx, &auth.User{ID: "u-1", Username: "invited", Email: "i@example.com", Role: sec.RoleModerator}))

	_, err := f.service.ExchangeToken(ctx, auth.TokenInput{Username: "invited", ConfirmationCode: "anything"})
	assert.Equal(t, auth.FieldConfirmationCode, fieldOf(t, err))
}

func TestCurrentClaims(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user := &auth.User{ID: "u-1", Username: "critic", Email: "critic@example.com", Role: sec.RoleModerator}
	require.NoError(t, f.repo.Create(ctx, user))

	issued := &sec.AuthClaims{UserID: "u-1", Username: "critic", Role: string(sec.RoleAdmin), IsSuperuser: true}

	current, err := f.service.CurrentClaims(ctx, issued)
	require.NoError(t, err)
	assert.Equal(t, string(sec.RoleModerator), current.Role)
	assert.False(t, current.IsSuperuser)
	assert.Equal(t, string(sec.RoleAdmin), issued.Role, "input claims are not mutated")

	require.NoError(t, f.repo.Delete(ctx, "u-1"))
	_, err = f.service.CurrentClaims(ctx, issued)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

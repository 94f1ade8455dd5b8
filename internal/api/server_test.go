// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/api"
	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/core/taxonomy/taxonomytest"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/core/title/titletest"
	"github.com/taibuivan/yamdb/internal/platform/config"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/social/comment"
	"github.com/taibuivan/yamdb/internal/social/comment/commenttest"
	"github.com/taibuivan/yamdb/internal/social/review"
	"github.com/taibuivan/yamdb/internal/social/review/reviewtest"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/internal/users/auth/authtest"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

type harness struct {
	router  http.Handler
	users   *authtest.Repository
	mailbox *authtest.Mailbox
	tokens  *sec.TokenService
}

func newHarness(t *testing.T, ready error) *harness {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := sec.NewTokenServiceFromKeys(key, &key.PublicKey, constants.AuthIssuer)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := authtest.NewRepository()
	mailbox := &authtest.Mailbox{}

	categoryRepo := taxonomytest.NewRepository(taxonomy.Category)
	genreRepo := taxonomytest.NewRepository(taxonomy.Genre)
	titleRepo := titletest.NewRepository()

	titleService := title.NewService(titleRepo, genreRepo, categoryRepo, time.Now, logger)
	reviewService := review.NewService(reviewtest.NewRepository(), titleRepo, time.Now, logger)
	commentService := comment.NewService(commenttest.NewRepository(), reviewService, time.Now, logger)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error { return ready },
	}, logger)

	authService := auth.NewService(users, mailbox, tokens, time.Hour, logger)

	router := api.NewRouter(&config.Config{Environment: "development"}, logger, tokens, authService, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService),
		Users:      account.NewHandler(account.NewService(users, logger)),
		Categories: taxonomy.NewHandler(taxonomy.NewService(taxonomy.Category, categoryRepo, logger)),
		Genres:     taxonomy.NewHandler(taxonomy.NewService(taxonomy.Genre, genreRepo, logger)),
		Titles:     title.NewHandler(titleService),
		Reviews:    review.NewHandler(reviewService),
		Comments:   comment.NewHandler(commentService),
	})

	return &harness{router: router, users: users, mailbox: mailbox, tokens: tokens}
}

// admin seeds an administrator and returns its bearer token.
func (h *harness) admin(t *testing.T) string {
	t.Helper()
	return h.seed(t, "boss", sec.RoleAdmin)
}

// seed stores an account with role and returns a bearer token for it.
func (h *harness) seed(t *testing.T, username string, role sec.UserRole) string {
	t.Helper()
	user := &auth.User{ID: uuid.New(), Username: username, Email: username + "@example.com", Role: role}
	require.NoError(t, h.users.Create(context.Background(), user))

	token, err := h.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), false, time.Hour)
	require.NoError(t, err)
	return token
}

func (h *harness) do(t *testing.T, token, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

// data decodes the success envelope into out.
func data(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out), rec.Body.String())
}

func TestRouter_Health(t *testing.T) {
	h := newHarness(t, nil)

	rec := h.do(t, "", http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, "", http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)

	down := newHarness(t, errors.New("connection refused"))
	rec = down.do(t, "", http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
}

func TestRouter_EndToEnd(t *testing.T) {
	h := newHarness(t, nil)
	adminToken := h.admin(t)

	// Signup and token exchange
	rec := h.do(t, "", http.MethodPost, "/api/v1/auth/signup", `{"username":"critic","email":"critic@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	msg, ok := h.mailbox.Last()
	require.True(t, ok)
	_, code, found := strings.Cut(msg.Body, "confirmation_code: ")
	require.True(t, found)

	rec = h.do(t, "", http.MethodPost, "/api/v1/auth/token",
		`{"username":"critic","confirmation_code":"`+strings.TrimSpace(code)+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var issued struct {
		Token string `json:"token"`
	}
	data(t, rec, &issued)
	userToken := issued.Token

	// Catalogue, administered by the admin
	rec = h.do(t, adminToken, http.MethodPost, "/api/v1/categories", `{"name":"Film","slug":"film"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = h.do(t, adminToken, http.MethodPost, "/api/v1/genres", `{"name":"Drama"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = h.do(t, userToken, http.MethodPost, "/api/v1/categories", `{"name":"Book","slug":"book"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(t, adminToken, http.MethodPut, "/api/v1/categories/film", `{"name":"Movie"}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = h.do(t, adminToken, http.MethodPost, "/api/v1/titles",
		`{"name":"Solaris","year":1972,"genre":["drama"],"category":"film"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	data(t, rec, &created)
	titlePath := "/api/v1/titles/" + created.ID

	// Review and comment by the signed-up user
	rec = h.do(t, userToken, http.MethodPost, titlePath+"/reviews", `{"text":"Slow and deep","score":9}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var posted struct {
		ID     string `json:"id"`
		Author string `json:"author"`
	}
	data(t, rec, &posted)
	assert.Equal(t, "critic", posted.Author)

	rec = h.do(t, userToken, http.MethodPost, titlePath+"/reviews", `{"text":"Again","score":3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "one review per title")

	commentsPath := titlePath + "/reviews/" + posted.ID + "/comments"
	rec = h.do(t, adminToken, http.MethodPost, commentsPath, `{"text":"Agreed"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = h.do(t, "", http.MethodGet, commentsPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"text":"Agreed"`)

	rec = h.do(t, "", http.MethodGet, titlePath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":{"name":"Film","slug":"film"}`)

	// Self service
	rec = h.do(t, userToken, http.MethodPatch, "/api/v1/users/me", `{"bio":"cinephile","role":"admin"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"role":"user"`)
	assert.Contains(t, rec.Body.String(), `"bio":"cinephile"`)
}

func TestRouter_StoredRoleWinsOverToken(t *testing.T) {
	h := newHarness(t, nil)
	adminToken := h.admin(t)
	staleToken := h.seed(t, "exadmin", sec.RoleAdmin)

	rec := h.do(t, staleToken, http.MethodPost, "/api/v1/categories", `{"name":"Film","slug":"film"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Demotion applies to the token issued before it
	rec = h.do(t, adminToken, http.MethodPatch, "/api/v1/users/exadmin", `{"role":"user"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.do(t, staleToken, http.MethodPost, "/api/v1/categories", `{"name":"Book","slug":"book"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = h.do(t, staleToken, http.MethodGet, "/api/v1/users", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = h.do(t, staleToken, http.MethodGet, "/api/v1/users/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"user"`)

	// Deletion revokes the token outright
	rec = h.do(t, adminToken, http.MethodDelete, "/api/v1/users/exadmin", "")
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = h.do(t, staleToken, http.MethodPost, "/api/v1/genres", `{"name":"Drama"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = h.do(t, staleToken, http.MethodGet, "/api/v1/titles", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Rejections(t *testing.T) {
	h := newHarness(t, nil)

	cases := []struct {
		name   string
		token  string
		method string
		path   string
		body   string
		status int
	}{
		{"anonymous write", "", http.MethodPost, "/api/v1/titles", `{"name":"x"}`, http.StatusUnauthorized},
		{"anonymous me", "", http.MethodGet, "/api/v1/users/me", "", http.StatusUnauthorized},
		{"garbage token", "not-a-jwt", http.MethodGet, "/api/v1/titles", "", http.StatusUnauthorized},
		{"unknown route", "", http.MethodGet, "/api/v1/nowhere", "", http.StatusNotFound},
		{"unknown title", "", http.MethodGet, "/api/v1/titles/" + uuid.New(), "", http.StatusNotFound},
		{"reviews of unknown title", "", http.MethodGet, "/api/v1/titles/" + uuid.New() + "/reviews", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := h.do(t, tc.token, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
}

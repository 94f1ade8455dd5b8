// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/access"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/account"
)

// serve runs one request as actor. A zero actor sends no claims.
func serve(t *testing.T, handler http.Handler, actor access.Actor, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if actor.Authenticated() {
		req = req.WithContext(ctxutil.WithClaims(req.Context(), &sec.AuthClaims{
			UserID:      actor.UserID,
			Username:    actor.Username,
			Role:        string(actor.Role),
			IsSuperuser: actor.IsSuperuser,
		}))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Me(t *testing.T) {
	f := newFixture(t)
	reader := f.seed(t, "u1", "reader", sec.RoleUser, false)
	router := account.NewHandler(f.service).Routes()

	rec := serve(t, router, access.Anonymous(), http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(t, router, reader, http.MethodGet, "/me", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"username":"reader"`)
	assert.NotContains(t, rec.Body.String(), "stored-hash")

	rec = serve(t, router, reader, http.MethodPatch, "/me", `{"role":"admin","bio":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"role":"user"`)
	assert.Contains(t, rec.Body.String(), `"bio":"hi"`)
}

func TestHandler_Admin(t *testing.T) {
	f := newFixture(t)
	reader := f.seed(t, "u1", "reader", sec.RoleUser, false)
	admin := f.seed(t, "a1", "boss", sec.RoleAdmin, false)
	router := account.NewHandler(f.service).Routes()

	rec := serve(t, router, reader, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(t, router, admin, http.MethodGet, "/?search=rea", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"username":"reader"`)
	assert.NotContains(t, rec.Body.String(), `"username":"boss"`)
	assert.Contains(t, rec.Body.String(), `"total":1`)

	rec = serve(t, router, admin, http.MethodPost, "/", `{"username":"newbie","email":"newbie@example.com","role":"moderator"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"role":"moderator"`)

	rec = serve(t, router, admin, http.MethodPost, "/", `{"username":"reader","email":"x@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"username"`)

	rec = serve(t, router, admin, http.MethodPatch, "/reader", `{"role":"admin"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)

	rec = serve(t, router, admin, http.MethodDelete, "/newbie", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(t, router, admin, http.MethodGet, "/newbie", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/middleware"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

type stubVerifier struct {
	claims *sec.AuthClaims
}

func (s stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "good-token" {
		return nil, errors.New("bad token")
	}
	return s.claims, nil
}

// stubAccounts serves stored roles by user ID. Unknown IDs are gone.
type stubAccounts map[string]sec.UserRole

func (s stubAccounts) CurrentClaims(_ context.Context, claims *sec.AuthClaims) (*sec.AuthClaims, error) {
	role, ok := s[claims.UserID]
	if !ok {
		return nil, apperr.Unauthorized("User not found")
	}
	current := *claims
	current.Role = string(role)
	return &current, nil
}

// capture records the claims seen by the final handler.
func capture(seen **sec.AuthClaims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = ctxutil.GetClaims(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestAuthenticate(t *testing.T) {
	claims := &sec.AuthClaims{UserID: "u-1", Username: "critic", Role: string(sec.RoleUser)}
	mw := middleware.Authenticate(stubVerifier{claims: claims}, stubAccounts{"u-1": sec.RoleUser})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantClaims bool
	}{
		{"anonymous", "", http.StatusTeapot, false},
		{"valid_bearer", "Bearer good-token", http.StatusTeapot, true},
		{"scheme_case_insensitive", "bearer good-token", http.StatusTeapot, true},
		{"wrong_scheme", "Basic good-token", http.StatusUnauthorized, false},
		{"missing_token", "Bearer", http.StatusUnauthorized, false},
		{"invalid_token", "Bearer forged", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *sec.AuthClaims
			req := httptest.NewRequest(http.MethodGet, "/api/v1/titles/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			mw(capture(&seen)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantClaims {
				require.NotNil(t, seen)
				assert.Equal(t, "critic", seen.Username)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestAuthenticate_UsesStoredAccount(t *testing.T) {
	issued := &sec.AuthClaims{UserID: "u-1", Username: "critic", Role: string(sec.RoleAdmin)}

	t.Run("demoted", func(t *testing.T) {
		var seen *sec.AuthClaims
		mw := middleware.Authenticate(stubVerifier{claims: issued}, stubAccounts{"u-1": sec.RoleUser})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		mw(capture(&seen)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, string(sec.RoleUser), seen.Role)
	})

	t.Run("deleted", func(t *testing.T) {
		var seen *sec.AuthClaims
		mw := middleware.Authenticate(stubVerifier{claims: issued}, stubAccounts{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		mw(capture(&seen)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, seen)
	})
}

func TestRequireAuth(t *testing.T) {
	var seen *sec.AuthClaims
	handler := middleware.RequireAuth(capture(&seen))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/me/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me/", nil)
	req = req.WithContext(ctxutil.WithClaims(req.Context(), &sec.AuthClaims{UserID: "u-1"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(constants.HeaderXRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderXRequestID, "client-id")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "client-id", seen)
}

func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

type corsConfig struct {
	dev     bool
	origins []string
}

func (c corsConfig) IsDevelopment() bool      { return c.dev }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := middleware.CORS(corsConfig{origins: []string{"https://yamdb.example"}})(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://yamdb.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "https://yamdb.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", middleware.RealIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", middleware.RealIP(req))
}

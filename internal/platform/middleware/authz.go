// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// TokenVerifier verifies bearer tokens. Satisfied by [*sec.TokenService].
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// AccountLookup reloads the account behind verified claims. Satisfied by
// [*auth.Service].
type AccountLookup interface {
	// CurrentClaims returns claims carrying the stored username, role and
	// superuser flag, or apperr.Unauthorized if the account is gone.
	CurrentClaims(ctx context.Context, claims *sec.AuthClaims) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the bearer token from the Authorization
// header.
//
// # Flow
//  1. No header: the request proceeds as anonymous.
//  2. Malformed header or invalid token: 401.
//  3. Valid token: the account is reloaded so role changes and deletions
//     apply to tokens already issued. A deleted account gets 401.
//  4. The refreshed claims are stored in the context and the request logger
//     is tagged with the user.
//
// Authorization decisions are not made here; resource services consult the
// access policies with the resulting actor.
func Authenticate(verifier TokenVerifier, accounts AccountLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, constants.BearerScheme) || strings.TrimSpace(token) == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Account Reload ─────────────────────────────────────────────
			claims, err = accounts.CurrentClaims(request.Context(), claims)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithClaims(request.Context(), claims)
			logger := ctxutil.GetLogger(ctx).With(
				slog.String("user_id", claims.UserID),
				slog.String("role", claims.Role),
			)
			ctx = ctxutil.WithLogger(ctx, logger)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks anonymous requests with 401.
//
// Must be registered AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetClaims(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication credentials were not provided"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

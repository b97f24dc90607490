// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerly/api/internal/platform/apperr"
	"github.com/ledgerly/api/internal/platform/ctxutil"
	"github.com/ledgerly/api/internal/platform/respond"
	"github.com/ledgerly/api/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, the request proceeds as anonymous; [RequireAuth] decides
//     whether anonymity is acceptable for the route.
//  3. A header that does not match the Bearer pattern is AUTH_REQUIRED:
//     the client supplied no usable credential at all.
//  4. A well-formed Bearer token that fails verification propagates the
//     verifier's specific kind (invalid / expired / not active) so the
//     client can react accordingly.
//  5. On success, the verified claims are attached to the request context.
//
// No state is retained between requests: this is a pure per-request check
// with no session store. Logout is a client-side token discard.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				respond.Error(writer, request, apperr.AuthRequired("Invalid authorization header format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				// Carries the verifier's kind: AUTH_INVALID_TOKEN,
				// AUTH_TOKEN_EXPIRED, or AUTH_TOKEN_NOT_ACTIVE.
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if verified claims exist in context.
//  2. If missing, abort with 401 AUTH_REQUIRED.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.AuthRequired("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// OrgContext resolves the tenant identifier from the {orgID} path segment
// and attaches it to the request context.
//
// # Guarantee
//
// Its sole guarantee is that a tenant identifier is present before any
// resource handler runs; it performs no existence or membership check on
// the org itself. Tenant isolation is enforced downstream by every store
// query filtering on this identifier.
func OrgContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		orgID := chi.URLParam(request, "orgID")
		if orgID == "" {
			respond.Error(writer, request, apperr.BadRequest("Organization id is required"))
			return
		}

		ctx := ctxutil.WithOrgID(request.Context(), orgID)
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/api/internal/platform/apperr"
	"github.com/ledgerly/api/internal/platform/ctxutil"
	"github.com/ledgerly/api/internal/platform/middleware"
	"github.com/ledgerly/api/internal/platform/sec"
)

// stubVerifier returns canned claims or a canned error per token string.
type stubVerifier struct {
	claims map[string]*sec.AuthClaims
	errs   map[string]error
}

func (s *stubVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if err, ok := s.errs[tokenStr]; ok {
		return nil, err
	}
	if claims, ok := s.claims[tokenStr]; ok {
		return claims, nil
	}
	return nil, apperr.InvalidToken(nil)
}

func guardedRouter(verifier middleware.TokenVerifier) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(verifier))

	router.Route("/org/{orgID}", func(org chi.Router) {
		org.Use(middleware.RequireAuth)
		org.Use(middleware.OrgContext)
		org.Get("/whoami", func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())
			writer.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(writer).Encode(map[string]string{
				"user_id": claims.UserID,
				"org_id":  ctxutil.GetOrgID(request.Context()),
			})
		})
	})

	return router
}

func errorCode(t *testing.T, body *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(body.Body.Bytes(), &payload))
	code, _ := payload["error"].(string)
	return code
}

/*
TestAuthenticate_GuardedRoute covers the bearer-token decision table for a
tenant route: absent, malformed, invalid, expired, not-active, and valid.
*/
func TestAuthenticate_GuardedRoute(t *testing.T) {
	verifier := &stubVerifier{
		claims: map[string]*sec.AuthClaims{
			"good-token": {UserID: "user-1"},
		},
		errs: map[string]error{
			"expired-token":  apperr.TokenExpired(nil),
			"immature-token": apperr.TokenNotActive(nil),
			"bad-token":      apperr.InvalidToken(nil),
		},
	}
	router := guardedRouter(verifier)

	tests := []struct {
		name       string
		authHeader string
		status     int
		code       string
	}{
		{"no_header", "", http.StatusUnauthorized, apperr.CodeAuthRequired},
		{"not_bearer", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, apperr.CodeAuthRequired},
		{"bearer_no_token", "Bearer ", http.StatusUnauthorized, apperr.CodeAuthRequired},
		{"invalid_token", "Bearer bad-token", http.StatusUnauthorized, apperr.CodeInvalidToken},
		{"expired_token", "Bearer expired-token", http.StatusUnauthorized, apperr.CodeTokenExpired},
		{"not_active_token", "Bearer immature-token", http.StatusUnauthorized, apperr.CodeTokenNotActive},
		{"valid_token", "Bearer good-token", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/org/org-1/whoami", nil)
			if tt.authHeader != "" {
				request.Header.Set("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, errorCode(t, recorder))
			}
		})
	}
}

/*
TestAuthenticate_CaseInsensitiveScheme accepts "bearer" in any case, per
RFC 7235 scheme matching.
*/
func TestAuthenticate_CaseInsensitiveScheme(t *testing.T) {
	verifier := &stubVerifier{claims: map[string]*sec.AuthClaims{"good-token": {UserID: "user-1"}}}
	router := guardedRouter(verifier)

	request := httptest.NewRequest(http.MethodGet, "/org/org-1/whoami", nil)
	request.Header.Set("Authorization", "bearer good-token")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestOrgContext_InjectsTenantScope verifies the path org id and the verified
principal both reach the handler's context.
*/
func TestOrgContext_InjectsTenantScope(t *testing.T) {
	verifier := &stubVerifier{claims: map[string]*sec.AuthClaims{"good-token": {UserID: "user-1"}}}
	router := guardedRouter(verifier)

	request := httptest.NewRequest(http.MethodGet, "/org/org-42/whoami", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	assert.Equal(t, "user-1", payload["user_id"])
	assert.Equal(t, "org-42", payload["org_id"])
}

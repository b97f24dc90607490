// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/api/internal/platform/apperr"
)

/*
TestConstructors_StatusMapping pins the kind-to-status table. The wire
contract depends on this mapping staying fixed.
*/
func TestConstructors_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		code   string
		status int
	}{
		{"validation", apperr.ValidationError("bad input"), apperr.CodeValidation, http.StatusBadRequest},
		{"bad_request", apperr.BadRequest("bad month"), apperr.CodeBadRequest, http.StatusBadRequest},
		{"auth_required", apperr.AuthRequired("no token"), apperr.CodeAuthRequired, http.StatusUnauthorized},
		{"invalid_token", apperr.InvalidToken(nil), apperr.CodeInvalidToken, http.StatusUnauthorized},
		{"token_expired", apperr.TokenExpired(nil), apperr.CodeTokenExpired, http.StatusUnauthorized},
		{"token_not_active", apperr.TokenNotActive(nil), apperr.CodeTokenNotActive, http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden("nope"), apperr.CodeForbidden, http.StatusForbidden},
		{"not_found", apperr.NotFound("Transaction"), apperr.CodeNotFound, http.StatusNotFound},
		{"conflict", apperr.Conflict("duplicate"), apperr.CodeConflict, http.StatusConflict},
		{"internal", apperr.Internal(errors.New("boom")), apperr.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

/*
TestAs_TraversesWrappedChain verifies the kind survives fmt.Errorf wrapping,
which is how services annotate storage failures.
*/
func TestAs_TraversesWrappedChain(t *testing.T) {
	inner := apperr.NotFound("Category")
	wrapped := fmt.Errorf("category_service_delete_failed: %w", inner)

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeNotFound, ae.Code)
	assert.True(t, apperr.IsAppError(wrapped))
}

/*
TestConflictFields checks the structured unique-violation detail payload.
*/
func TestConflictFields(t *testing.T) {
	err := apperr.ConflictFields("Unique constraint violated", []string{"email"})

	details, ok := err.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"email"}, details["fields"])
}

/*
TestInternal_KeepsCauseServerSide ensures the original cause stays reachable
for logging but never leaks into the client message.
*/
func TestInternal_KeepsCauseServerSide(t *testing.T) {
	cause := errors.New("pq: connection reset")
	err := apperr.Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Message, "pq:")
}

/*
TestNotFound_Message checks the resource-name message convention.
*/
func TestNotFound_Message(t *testing.T) {
	assert.Equal(t, "Transaction not found", apperr.NotFound("Transaction").Error())
}

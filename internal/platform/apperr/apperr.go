// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

/*
Package apperr defines the centralized error taxonomy for Ledgerly.

It provides a rich error type that bridges the gap between low-level
Domain/Storage errors and high-level HTTP responses.

Architecture:

  - AppError: A struct pairing a machine-readable error kind with an HTTP
    status and a client-safe message.
  - Fixed taxonomy: every failure a client can see maps to exactly one of
    the Code* constants below. Handlers never invent codes inline.
  - Pass-through: an error that already carries a kind keeps it end to end;
    only unrecognized failures fall back to INTERNAL_SERVER_ERROR.

Every error that leaves the service layer should be wrapped as an [AppError]
to ensure consistent API responses.
*/
package apperr

import (
	"errors"
	"net/http"
)

// # Error Kinds

// Stable error codes the client branches on. The set is closed: the three
// token kinds must stay distinguishable because the client reacts
// differently to each (silent re-login on expiry vs. forced logout on
// tamper detection).
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeBadRequest     = "BAD_REQUEST"
	CodeAuthRequired   = "AUTH_REQUIRED"
	CodeInvalidToken   = "AUTH_INVALID_TOKEN"
	CodeTokenExpired   = "AUTH_TOKEN_EXPIRED"
	CodeTokenNotActive = "AUTH_TOKEN_NOT_ACTIVE"
	CodeForbidden      = "FORBIDDEN" // reserved; no current handler emits it
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeInternal       = "INTERNAL_SERVER_ERROR"
)

// AppError is the canonical error type for the Ledgerly API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and optional structured details.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to
// clients in production to avoid leaking internal implementation details
// (e.g., SQL queries).
type AppError struct {
	// Code is the machine-readable error kind (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"error"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message,omitempty"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds structured, client-safe context: per-field validation
	// errors, or the colliding columns of a unique-constraint violation.
	Details any `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Message
}

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	e := &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
	if len(details) > 0 {
		e.Details = details
	}
	return e
}

// BadRequest creates a 400 [AppError] for malformed request shape outside
// of body validation (e.g. a missing path segment or bad query format).
func BadRequest(msg string) *AppError {
	return &AppError{
		Code:       CodeBadRequest,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// AuthRequired creates a 401 [AppError] for absent or unusable credentials.
func AuthRequired(msg string) *AppError {
	return &AppError{
		Code:       CodeAuthRequired,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidToken creates a 401 [AppError] for a structurally broken or
// tampered token.
func InvalidToken(cause error) *AppError {
	return &AppError{
		Code:       CodeInvalidToken,
		Message:    "Invalid authentication token",
		HTTPStatus: http.StatusUnauthorized,
		Cause:      cause,
	}
}

// TokenExpired creates a 401 [AppError] for a well-formed token past its expiry.
func TokenExpired(cause error) *AppError {
	return &AppError{
		Code:       CodeTokenExpired,
		Message:    "Authentication token has expired",
		HTTPStatus: http.StatusUnauthorized,
		Cause:      cause,
	}
}

// TokenNotActive creates a 401 [AppError] for a token used before its
// activation (nbf) time.
func TokenNotActive(cause error) *AppError {
	return &AppError{
		Code:       CodeTokenNotActive,
		Message:    "Authentication token is not active yet",
		HTTPStatus: http.StatusUnauthorized,
		Cause:      cause,
	}
}

// Forbidden creates a 403 [AppError].
//
// Reserved for future membership enforcement. Tenant-scope misses must use
// [NotFound] instead, so that existence is never confirmed across tenants.
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Transaction") // "Transaction not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Conflict creates a 409 [AppError] for duplicate or constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ConflictFields creates a 409 [AppError] carrying the colliding columns
// of a unique-constraint violation. Column names are safe to surface.
func ConflictFields(msg string, fields []string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"fields": fields},
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client in
// production mode.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

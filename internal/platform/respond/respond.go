// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package is the single chokepoint between Go errors and the wire.
// Every failure, from any component, passes through [Error] exactly once
// before reaching the client, producing the stable envelope
//
//	{ "error": <Kind>, "message"?: string, "details"?: <structured> }
//
// with the HTTP status owned by the [apperr] taxonomy. No handler writes
// its own error JSON, which is what keeps the contract identical across
// every endpoint.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ledgerly/api/internal/platform/apperr"
	"github.com/ledgerly/api/internal/platform/ctxutil"
)

// debugMode controls whether the envelope carries a debug block with the
// original cause. Enabled once at startup for non-production environments;
// never toggled at runtime.
var debugMode bool

// Configure sets the process-wide debug behavior. Call once from main.
func Configure(includeDebug bool) {
	debugMode = includeDebug
}

// ErrorEnvelope is the JSON envelope for error responses. The shape is
// part of the public API contract and must not vary by endpoint.
type ErrorEnvelope struct {
	Error   string     `json:"error"`
	Message string     `json:"message,omitempty"`
	Details any        `json:"details,omitempty"`
	Debug   *DebugInfo `json:"debug,omitempty"`
}

// DebugInfo carries the underlying cause in non-production responses only.
type DebugInfo struct {
	Cause string `json:"cause"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with the payload as the response body.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, data)
}

// Created writes a 201 Created response with the payload as the response body.
func Created(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusCreated, data)
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts any Go error into the standardized JSON API error response.
//
// # Rules
//
//  1. An error already carrying a recognized kind passes through with its
//     original status — never double-wrapped.
//  2. Anything else becomes INTERNAL_SERVER_ERROR with a generic message.
//  3. The failure is logged here, exactly once, never at the point of origin.
//  4. The underlying cause reaches the client only when debug mode is on.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		appError = apperr.Internal(err)
	}

	logFailure(request, appError)

	envelope := ErrorEnvelope{
		Error:   appError.Code,
		Message: appError.Message,
		Details: appError.Details,
	}

	if debugMode && appError.Cause != nil {
		envelope.Debug = &DebugInfo{Cause: appError.Cause.Error()}
	}

	JSON(writer, appError.HTTPStatus, envelope)
}

// logFailure writes the single server-side log line for a failed request.
// 5xx failures log at error level with their cause; 4xx at warn.
func logFailure(request *http.Request, appError *apperr.AppError) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	attrs := []any{
		slog.String("code", appError.Code),
		slog.Int("status", appError.HTTPStatus),
		slog.String("request_id", ctxutil.GetRequestID(ctx)),
	}

	if appError.HTTPStatus >= 500 {
		if appError.Cause != nil {
			attrs = append(attrs, slog.String("cause", appError.Cause.Error()))
		}
		logger.ErrorContext(ctx, "request_failed", attrs...)
		return
	}

	logger.WarnContext(ctx, "request_rejected", attrs...)
}

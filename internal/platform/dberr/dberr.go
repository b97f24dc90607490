// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Architecture
//
// Repositories funnel every pgx failure through [Wrap], so the rest of the
// system only ever sees [apperr.AppError] kinds: NOT_FOUND for missing
// rows, CONFLICT for unique/foreign-key violations (classified by Postgres
// SQLSTATE), and INTERNAL_SERVER_ERROR for everything else. Raw driver
// errors never cross the storage boundary.
package dberr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ledgerly/api/internal/platform/apperr"
)

// ErrNotFound is a standard error returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Resource")

// uniqueDetailRegex extracts column names from the standard Postgres
// unique-violation detail: `Key (email)=(a@b.com) already exists.`
var uniqueDetailRegex = regexp.MustCompile(`Key \(([^)]+)\)=`)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the
// error type. The action string annotates the internal cause for logs only.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Errors already classified upstream pass through untouched.
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations mapped by SQLSTATE
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			// Which columns collided is safe to surface structurally.
			return apperr.ConflictFields("Unique constraint violated", uniqueFields(pgErr))
		case pgerrcode.ForeignKeyViolation:
			return apperr.Conflict("Foreign key constraint failed")
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// uniqueFields pulls the colliding column names out of a unique-violation
// error. Falls back to the constraint name when the detail is unavailable.
func uniqueFields(pgErr *pgconn.PgError) []string {
	if match := uniqueDetailRegex.FindStringSubmatch(pgErr.Detail); match != nil {
		columns := strings.Split(match[1], ",")
		for i := range columns {
			columns[i] = strings.TrimSpace(columns[i])
		}
		return columns
	}

	if pgErr.ConstraintName != "" {
		return []string{pgErr.ConstraintName}
	}

	return nil
}

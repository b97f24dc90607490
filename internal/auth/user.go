// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package auth

import "time"

// # Entities

// User represents a registered account in the identity store.
//
// The password hash is intentionally excluded from JSON marshaling so an
// entity can be returned from a handler without a sanitization step.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// # Field Identifiers

// JSON field names used in validation error details.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
)

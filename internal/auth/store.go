// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package auth

import "context"

// # Repository Contracts

// UserRepository abstracts persistent storage for user accounts.
//
// Implementations must return apperr.NotFound-kinded errors for missing
// rows so the service layer can branch on error kind, not storage detail.
type UserRepository interface {
	// Create persists a new account.
	Create(ctx context.Context, user *User) error

	// FindByEmail retrieves an account by its unique email address.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID retrieves an account by primary key.
	FindByID(ctx context.Context, id string) (*User, error)
}

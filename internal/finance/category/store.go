// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package category

import "context"

// # Repository Contracts

// Repository abstracts persistent storage for categories.
//
// Every method takes the owning org id; implementations must scope each
// query to it so a category is invisible outside its tenant.
type Repository interface {
	// Create persists a new category under the given org.
	Create(ctx context.Context, cat *Category) error

	// List returns all categories of the org, ordered by name.
	List(ctx context.Context, orgID string) ([]*Category, error)

	// Delete removes the category only if it belongs to the org.
	// A miss (wrong id or wrong org) is apperr.NotFound.
	Delete(ctx context.Context, orgID, id string) error
}

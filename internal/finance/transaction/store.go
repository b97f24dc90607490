// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package transaction

import (
	"context"
	"time"

	"github.com/ledgerly/api/pkg/patch"
)

// # Repository Contracts

// UpdateSet is the storage-level form of a validated [Patch]: raw strings
// have been parsed, and each field keeps its tri-state so the UPDATE
// statement only touches columns the client actually sent.
type UpdateSet struct {
	Type        patch.Field[Type]
	Amount      patch.Field[float64]
	Currency    patch.Field[string]
	Date        patch.Field[time.Time]
	Notes       patch.Field[string]
	CategoryID  patch.Field[string]
	IsRecurring patch.Field[bool]
	NextDueDate patch.Field[time.Time]
}

// Empty reports whether no field of the set is present.
func (set UpdateSet) Empty() bool {
	return !set.Type.Present() &&
		!set.Amount.Present() &&
		!set.Currency.Present() &&
		!set.Date.Present() &&
		!set.Notes.Present() &&
		!set.CategoryID.Present() &&
		!set.IsRecurring.Present() &&
		!set.NextDueDate.Present()
}

// Repository abstracts persistent storage for transactions.
//
// Every method is scoped to an org id; a miss caused by a cross-tenant id
// must be indistinguishable from a nonexistent id (apperr.NotFound).
type Repository interface {
	// Create persists a new transaction.
	Create(ctx context.Context, txn *Transaction) error

	// List returns the org's transactions matching the filter, newest
	// date first, capped at the platform list limit.
	List(ctx context.Context, orgID string, filter ListFilter) ([]*Transaction, error)

	// FindByID retrieves a single transaction belonging to the org.
	FindByID(ctx context.Context, orgID, id string) (*Transaction, error)

	// Update applies the present fields of the set to the transaction,
	// only if it belongs to the org. A miss is apperr.NotFound.
	Update(ctx context.Context, orgID, id string, set UpdateSet) error

	// Delete removes the transaction only if it belongs to the org.
	Delete(ctx context.Context, orgID, id string) error
}

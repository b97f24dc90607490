// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

/*
Package transaction implements the org-scoped transaction ledger.

A transaction is a dated money movement, INCOME or EXPENSE, optionally
labeled with a category. The package owns the full lifecycle: validated
creation, a filtered capped listing, tri-state partial updates, and
ownership-scoped deletion.

Architecture:

  - Service: Validation, date parsing, and cache invalidation.
  - Repository: Abstracted interface for Postgres storage.
  - Handler: Thin REST layer mounted under the org subtree.
*/
package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/ledgerly/api/internal/platform/constants"
	"github.com/ledgerly/api/internal/platform/ctxutil"
	"github.com/ledgerly/api/internal/platform/validate"
	"github.com/ledgerly/api/pkg/patch"
	"github.com/ledgerly/api/pkg/pointer"
	"github.com/ledgerly/api/pkg/uuidv7"
)

// # Contracts & Types

// CacheInvalidator drops derived read models when the ledger changes.
//
// The monthly summary cache implements it. Invalidation is best-effort:
// a failure is logged, never surfaced, because the cache entries carry a
// short TTL as a backstop.
type CacheInvalidator interface {
	InvalidateOrg(ctx context.Context, orgID string) error
}

// Service implements transaction use cases.
type Service struct {
	repository Repository
	cache      CacheInvalidator
}

// NewService constructs a new [Service]. The invalidator may be nil in
// tests that do not exercise caching.
func NewService(repo Repository, cache CacheInvalidator) *Service {
	return &Service{repository: repo, cache: cache}
}

// # Creation

/*
Create validates and persists a new transaction under the org.

The currency defaults when omitted; date fields accept RFC 3339 or plain
YYYY-MM-DD values.

Parameters:
  - ctx: context.Context
  - orgID: string (Resolved tenant scope)
  - userID: string (Authenticated creator)
  - input: CreateInput

Returns:
  - *Transaction: Created entity
  - error: Validation failures, Conflict on a broken category reference, or storage errors
*/
func (service *Service) Create(ctx context.Context, orgID, userID string, input CreateInput) (*Transaction, error) {

	// ── 1. Validate scalar fields ─────────────────────────────────────────
	currencyCode := pointer.Fallback(input.Currency, constants.DefaultCurrency)

	validator := &validate.Validator{}
	validator.Required(FieldType, input.Type).
		OneOf(FieldType, input.Type, string(TypeIncome), string(TypeExpense)).
		Positive(FieldAmount, input.Amount).
		Currency(FieldCurrency, currencyCode).
		Required(FieldDate, input.Date)
	if input.Notes != nil {
		validator.MaxLen(FieldNotes, *input.Notes, constants.MaxNotesLength)
	}
	if input.CategoryID != nil {
		validator.UUID(FieldCategoryID, *input.CategoryID)
	}

	// ── 2. Parse date fields ──────────────────────────────────────────────
	date, err := validate.ParseDate(input.Date)
	if err != nil && input.Date != "" {
		validator.Custom(FieldDate, true, "Must be an RFC 3339 timestamp or YYYY-MM-DD date")
	}

	var nextDueDate *time.Time
	if input.NextDueDate != nil {
		parsed, err := validate.ParseDate(*input.NextDueDate)
		if err != nil {
			validator.Custom(FieldNextDueDate, true, "Must be an RFC 3339 timestamp or YYYY-MM-DD date")
		} else {
			nextDueDate = &parsed
		}
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 3. Persist ────────────────────────────────────────────────────────
	txn := &Transaction{
		ID:          uuidv7.New(),
		OrgID:       orgID,
		UserID:      userID,
		Type:        Type(input.Type),
		Amount:      input.Amount,
		Currency:    currencyCode,
		Date:        date,
		Notes:       input.Notes,
		CategoryID:  input.CategoryID,
		IsRecurring: input.IsRecurring,
		NextDueDate: nextDueDate,
	}

	if err := service.repository.Create(ctx, txn); err != nil {
		return nil, err
	}

	service.invalidate(ctx, orgID)
	return txn, nil
}

// # Listing

/*
List returns the org's transactions matching the raw filters, newest date
first, capped at the platform list limit.

Parameters:
  - ctx: context.Context
  - orgID: string
  - input: ListInput (raw query values, all optional)

Returns:
  - []*Transaction: Possibly empty slice
  - error: Validation failures or storage errors
*/
func (service *Service) List(ctx context.Context, orgID string, input ListInput) ([]*Transaction, error) {
	filter, err := service.parseFilter(input)
	if err != nil {
		return nil, err
	}

	return service.repository.List(ctx, orgID, filter)
}

// parseFilter validates the raw query values into a [ListFilter].
func (service *Service) parseFilter(input ListInput) (ListFilter, error) {
	validator := &validate.Validator{}
	filter := ListFilter{}

	if input.From != "" {
		from, err := validate.ParseDate(input.From)
		if err != nil {
			validator.Custom(FieldFrom, true, "Must be an RFC 3339 timestamp or YYYY-MM-DD date")
		} else {
			filter.From = &from
		}
	}

	if input.To != "" {
		to, err := validate.ParseDate(input.To)
		if err != nil {
			validator.Custom(FieldTo, true, "Must be an RFC 3339 timestamp or YYYY-MM-DD date")
		} else {
			filter.To = &to
		}
	}

	if input.Type != "" {
		validator.OneOf(FieldType, input.Type, string(TypeIncome), string(TypeExpense))
		filter.Type = Type(input.Type)
	}

	if input.CategoryID != "" {
		validator.UUID(FieldCategoryID, input.CategoryID)
		filter.CategoryID = input.CategoryID
	}

	if err := validator.Err(); err != nil {
		return ListFilter{}, err
	}

	return filter, nil
}

// # Partial Update

/*
Update applies a tri-state patch to a transaction the org owns and returns
the fresh row.

Field semantics: an absent field keeps its stored value; explicit null
clears a nullable field (notes, categoryId, nextDueDate); a concrete value
replaces. Null on a required field is a validation error, never a silent
clear. An empty patch is a no-op that returns the current row.

Parameters:
  - ctx: context.Context
  - orgID: string
  - id: string
  - input: Patch

Returns:
  - *Transaction: Updated entity, re-read after the write
  - error: Validation failures, NotFound on a miss, or storage errors
*/
func (service *Service) Update(ctx context.Context, orgID, id string, input Patch) (*Transaction, error) {
	set, err := service.buildUpdateSet(input)
	if err != nil {
		return nil, err
	}

	if !set.Empty() {
		if err := service.repository.Update(ctx, orgID, id, set); err != nil {
			return nil, err
		}
		service.invalidate(ctx, orgID)
	}

	// Re-read so the response reflects exactly what is stored, including
	// the refreshed updatedat timestamp.
	return service.repository.FindByID(ctx, orgID, id)
}

// buildUpdateSet validates a [Patch] field by field and parses raw strings
// into their storage types.
func (service *Service) buildUpdateSet(input Patch) (UpdateSet, error) {
	validator := &validate.Validator{}
	set := UpdateSet{}

	// Required columns reject explicit null.
	if input.Type.Present() {
		if value, ok := input.Type.Get(); ok {
			validator.OneOf(FieldType, value, string(TypeIncome), string(TypeExpense))
			set.Type = patch.Of(Type(value))
		} else {
			validator.Custom(FieldType, true, "Must not be null")
		}
	}

	if input.Amount.Present() {
		if value, ok := input.Amount.Get(); ok {
			validator.Positive(FieldAmount, value)
			set.Amount = patch.Of(value)
		} else {
			validator.Custom(FieldAmount, true, "Must not be null")
		}
	}

	if input.Currency.Present() {
		if value, ok := input.Currency.Get(); ok {
			validator.Currency(FieldCurrency, value)
			set.Currency = patch.Of(value)
		} else {
			validator.Custom(FieldCurrency, true, "Must not be null")
		}
	}

	if input.Date.Present() {
		if value, ok := input.Date.Get(); ok {
			parsed, err := validate.ParseDate(value)
			if err != nil {
				validator.Custom(FieldDate, true, "Must be an RFC 3339 timestamp or YYYY-MM-DD date")
			} else {
				set.Date = patch.Of(parsed)
			}
		} else {
			validator.Custom(FieldDate, true, "Must not be null")
		}
	}

	if input.IsRecurring.Present() {
		if value, ok := input.IsRecurring.Get(); ok {
			set.IsRecurring = patch.Of(value)
		} else {
			validator.Custom(FieldIsRecurring, true, "Must not be null")
		}
	}

	// Nullable columns accept explicit null as "clear".
	if input.Notes.Present() {
		if value, ok := input.Notes.Get(); ok {
			validator.MaxLen(FieldNotes, value, constants.MaxNotesLength)
			set.Notes = patch.Of(value)
		} else {
			set.Notes = patch.NullField[string]()
		}
	}

	if input.CategoryID.Present() {
		if value, ok := input.CategoryID.Get(); ok {
			validator.UUID(FieldCategoryID, value)
			set.CategoryID = patch.Of(value)
		} else {
			set.CategoryID = patch.NullField[string]()
		}
	}

	if input.NextDueDate.Present() {
		if value, ok := input.NextDueDate.Get(); ok {
			parsed, err := validate.ParseDate(value)
			if err != nil {
				validator.Custom(FieldNextDueDate, true, "Must be an RFC 3339 timestamp or YYYY-MM-DD date")
			} else {
				set.NextDueDate = patch.Of(parsed)
			}
		} else {
			set.NextDueDate = patch.NullField[time.Time]()
		}
	}

	if err := validator.Err(); err != nil {
		return UpdateSet{}, err
	}

	return set, nil
}

// # Deletion

/*
Delete removes a transaction belonging to the org.

Parameters:
  - ctx: context.Context
  - orgID: string
  - id: string

Returns:
  - error: NotFound on a miss (including cross-tenant ids), or storage errors
*/
func (service *Service) Delete(ctx context.Context, orgID, id string) error {
	if err := service.repository.Delete(ctx, orgID, id); err != nil {
		return err
	}

	service.invalidate(ctx, orgID)
	return nil
}

// invalidate drops the org's derived caches after a write. Best-effort.
func (service *Service) invalidate(ctx context.Context, orgID string) {
	if service.cache == nil {
		return
	}

	if err := service.cache.InvalidateOrg(ctx, orgID); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "summary_cache_invalidation_failed",
			slog.String("org_id", orgID),
			slog.String("error", err.Error()),
		)
	}
}

// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

/*
Package summary implements the monthly ledger aggregation read model.

It answers one question: for a given org and calendar month, how much came
in and how much went out. The answer is computed with a grouped SQL
aggregate, zero-filled so both totals are always present, and cached per
org and month in Redis.

Architecture:

  - Service: Month parsing, zero-fill, cache orchestration.
  - Store: Single grouped aggregate against Postgres.
  - Cache: Volatile per-org read model, dropped on every ledger write.
*/
package summary

import (
	"context"
	"log/slog"

	"github.com/ledgerly/api/internal/platform/apperr"
	"github.com/ledgerly/api/internal/platform/ctxutil"
	"github.com/ledgerly/api/internal/platform/validate"
)

// Service implements the monthly summary use case.
type Service struct {
	store Store
	cache Cache
}

// NewService constructs a new [Service]. The cache may be nil in tests
// that only exercise the aggregation path.
func NewService(store Store, cache Cache) *Service {
	return &Service{store: store, cache: cache}
}

/*
Monthly returns the org's income and expense totals for one calendar month.

The month selector is strict YYYY-MM; out-of-range values like 2026-13 are
rejected before any storage access. The window is half-open: the first
instant of the next month is excluded.

Parameters:
  - ctx: context.Context
  - orgID: string (Resolved tenant scope)
  - month: string (YYYY-MM)

Returns:
  - *MonthlySummary: Zero-filled totals
  - error: BadRequest on a malformed selector, or storage errors
*/
func (service *Service) Monthly(ctx context.Context, orgID, month string) (*MonthlySummary, error) {

	// ── 1. Parse the month selector ──────────────────────────────────────
	start, err := validate.ParseMonth(month)
	if err != nil {
		return nil, apperr.BadRequest("Invalid month format, expected YYYY-MM")
	}
	end := start.AddDate(0, 1, 0)

	// ── 2. Serve from cache when possible ────────────────────────────────
	if service.cache != nil {
		cached, err := service.cache.Get(ctx, orgID, month)
		if err != nil {
			service.logCacheFailure(ctx, orgID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	// ── 3. Aggregate and zero-fill ───────────────────────────────────────
	income, expense, err := service.store.Totals(ctx, orgID, start, end)
	if err != nil {
		return nil, err
	}

	sum := &MonthlySummary{
		Month:        month,
		IncomeTotal:  income,
		ExpenseTotal: expense,
	}

	// ── 4. Populate the cache, best-effort ───────────────────────────────
	if service.cache != nil {
		if err := service.cache.Set(ctx, orgID, month, sum); err != nil {
			service.logCacheFailure(ctx, orgID, err)
		}
	}

	return sum, nil
}

func (service *Service) logCacheFailure(ctx context.Context, orgID string, err error) {
	ctxutil.GetLogger(ctx).WarnContext(ctx, "summary_cache_degraded",
		slog.String("org_id", orgID),
		slog.String("error", err.Error()),
	)
}

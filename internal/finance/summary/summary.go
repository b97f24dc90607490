// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package summary

import (
	"context"
	"time"
)

// # Entities

// MonthlySummary is the aggregated view of one calendar month of the
// org's ledger. Both totals are always present and zero-filled: a month
// with no income still reports incomeTotal 0.
type MonthlySummary struct {
	Month        string  `json:"month"`
	IncomeTotal  float64 `json:"incomeTotal"`
	ExpenseTotal float64 `json:"expenseTotal"`
}

// # Contracts

// Store computes raw totals from persistent storage.
type Store interface {
	// Totals sums transaction amounts per type over [from, to).
	Totals(ctx context.Context, orgID string, from, to time.Time) (income, expense float64, err error)
}

// Cache is a volatile read-through layer in front of [Store].
//
// A miss is (nil, nil); cache failures are soft and never block the
// database path.
type Cache interface {
	Get(ctx context.Context, orgID, month string) (*MonthlySummary, error)
	Set(ctx context.Context, orgID, month string, sum *MonthlySummary) error
	InvalidateOrg(ctx context.Context, orgID string) error
}

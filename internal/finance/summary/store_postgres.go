// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package summary

import (
	"context"
	"time"

	"github.com/ledgerly/api/internal/platform/dberr"
	"github.com/ledgerly/api/internal/platform/postgres"
)

// PostgresStore computes monthly totals with a single grouped aggregate.
type PostgresStore struct {
	db postgres.DB
}

// NewStore creates a new PostgreSQL implementation of the Store.
func NewStore(db postgres.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

/*
Totals sums transaction amounts per type over the half-open window [from, to).

Missing groups simply do not appear in the result set; the service layer
zero-fills them. The upper bound is exclusive so a transaction stamped at
the first instant of the next month never leaks into this one.

Parameters:
  - ctx: context.Context
  - orgID: string
  - from: time.Time (inclusive)
  - to: time.Time (exclusive)

Returns:
  - income, expense: float64 totals, zero when the group is absent
  - err: Execution errors
*/
func (store *PostgresStore) Totals(ctx context.Context, orgID string, from, to time.Time) (float64, float64, error) {
	const query = `
		SELECT type, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE orgid = $1 AND date >= $2 AND date < $3
		GROUP BY type`

	rows, err := store.db.Query(ctx, query, orgID, from, to)
	if err != nil {
		return 0, 0, dberr.Wrap(err, "summary_store_totals")
	}
	defer rows.Close()

	var income, expense float64
	for rows.Next() {
		var transactionType string
		var total float64
		if err := rows.Scan(&transactionType, &total); err != nil {
			return 0, 0, dberr.Wrap(err, "summary_store_totals_scan")
		}

		switch transactionType {
		case "INCOME":
			income = total
		case "EXPENSE":
			expense = total
		}
	}

	if err := rows.Err(); err != nil {
		return 0, 0, dberr.Wrap(err, "summary_store_totals_rows")
	}

	return income, expense, nil
}

// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package summary

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewStore(mock), mock
}

func TestPostgresStore_Totals_BothGroups(t *testing.T) {
	store, mock := newMockStore(t)
	defer mock.Close()

	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{"type", "coalesce"}).
		AddRow("INCOME", 1500.0).
		AddRow("EXPENSE", 320.75)

	mock.ExpectQuery(`SELECT type, COALESCE\(SUM\(amount\), 0\) FROM transactions WHERE orgid = \$1 AND date >= \$2 AND date < \$3 GROUP BY type`).
		WithArgs("org-1", from, to).
		WillReturnRows(rows)

	income, expense, err := store.Totals(context.Background(), "org-1", from, to)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, income)
	assert.Equal(t, 320.75, expense)
	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresStore_Totals_MissingGroup verifies an absent GROUP BY bucket
yields a zero total rather than an error.
*/
func TestPostgresStore_Totals_MissingGroup(t *testing.T) {
	store, mock := newMockStore(t)
	defer mock.Close()

	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT type, COALESCE\(SUM\(amount\), 0\) FROM transactions`).
		WithArgs("org-1", from, to).
		WillReturnRows(pgxmock.NewRows([]string{"type", "coalesce"}).AddRow("EXPENSE", 42.0))

	income, expense, err := store.Totals(context.Background(), "org-1", from, to)
	require.NoError(t, err)
	assert.Zero(t, income)
	assert.Equal(t, 42.0, expense)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

// PostgreSQL implementation of the transaction repository.
//
// # Tenant Isolation
//
// Every statement filters on orgid. Update and Delete fold the ownership
// check into the statement itself (WHERE id AND orgid), so a cross-tenant
// id and a nonexistent id both report zero rows and surface as NOT_FOUND.

package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ledgerly/api/internal/platform/apperr"
	"github.com/ledgerly/api/internal/platform/constants"
	"github.com/ledgerly/api/internal/platform/dberr"
	"github.com/ledgerly/api/internal/platform/postgres"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const transactionColumns = `id, orgid, userid, type, amount, currency, date, notes, categoryid, isrecurring, nextduedate, createdat, updatedat`

/*
Create persists a new transaction record.

Parameters:
  - ctx: context.Context
  - txn: *Transaction (Entity to persist)

Returns:
  - error: apperr.Conflict on a broken category reference, or execution errors
*/
func (repository *PostgresRepository) Create(ctx context.Context, txn *Transaction) error {
	const query = `
		INSERT INTO transactions (
			id, orgid, userid, type, amount, currency, date, notes, categoryid, isrecurring, nextduedate, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	now := time.Now().UTC()
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = now
	}
	txn.UpdatedAt = now

	_, err := repository.db.Exec(ctx, query,
		txn.ID,
		txn.OrgID,
		txn.UserID,
		txn.Type,
		txn.Amount,
		txn.Currency,
		txn.Date,
		txn.Notes,
		txn.CategoryID,
		txn.IsRecurring,
		txn.NextDueDate,
		txn.CreatedAt,
		txn.UpdatedAt,
	)

	return dberr.Wrap(err, "transaction_repo_create")
}

/*
List returns the org's transactions matching the filter, newest date first.

The result is hard-capped at the platform list limit; callers wanting older
rows must narrow the date window.

Parameters:
  - ctx: context.Context
  - orgID: string
  - filter: ListFilter (parsed, optional bounds)

Returns:
  - []*Transaction: Possibly empty slice, never nil
  - error: Execution errors
*/
func (repository *PostgresRepository) List(ctx context.Context, orgID string, filter ListFilter) ([]*Transaction, error) {

	// ── 1. Assemble the WHERE clause from the optional filters ───────────
	conditions := []string{"orgid = $1"}
	args := []any{orgID}

	addCondition := func(expr string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(expr, len(args)))
	}

	if filter.From != nil {
		addCondition("date >= $%d", *filter.From)
	}
	if filter.To != nil {
		addCondition("date <= $%d", *filter.To)
	}
	if filter.Type != "" {
		addCondition("type = $%d", filter.Type)
	}
	if filter.CategoryID != "" {
		addCondition("categoryid = $%d", filter.CategoryID)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE %s
		ORDER BY date DESC
		LIMIT %d`,
		transactionColumns,
		strings.Join(conditions, " AND "),
		constants.TransactionListCap,
	)

	// ── 2. Execute and hydrate ───────────────────────────────────────────
	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "transaction_repo_list")
	}
	defer rows.Close()

	transactions := make([]*Transaction, 0)
	for rows.Next() {
		txn := &Transaction{}
		if err := rows.Scan(
			&txn.ID,
			&txn.OrgID,
			&txn.UserID,
			&txn.Type,
			&txn.Amount,
			&txn.Currency,
			&txn.Date,
			&txn.Notes,
			&txn.CategoryID,
			&txn.IsRecurring,
			&txn.NextDueDate,
			&txn.CreatedAt,
			&txn.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "transaction_repo_list_scan")
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "transaction_repo_list_rows")
	}

	return transactions, nil
}

/*
FindByID retrieves a single transaction belonging to the org.

Parameters:
  - ctx: context.Context
  - orgID: string
  - id: string

Returns:
  - *Transaction: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(ctx context.Context, orgID, id string) (*Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE id = $1 AND orgid = $2`, transactionColumns)

	txn := &Transaction{}
	err := repository.db.QueryRow(ctx, query, id, orgID).Scan(
		&txn.ID,
		&txn.OrgID,
		&txn.UserID,
		&txn.Type,
		&txn.Amount,
		&txn.Currency,
		&txn.Date,
		&txn.Notes,
		&txn.CategoryID,
		&txn.IsRecurring,
		&txn.NextDueDate,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)

	if err != nil {
		wrapped := dberr.Wrap(err, "transaction_repo_find_by_id")
		if appError := apperr.As(wrapped); appError != nil && appError.Code == apperr.CodeNotFound {
			return nil, apperr.NotFound("Transaction")
		}
		return nil, wrapped
	}

	return txn, nil
}

/*
Update applies the present fields of the set to a transaction the org owns.

The SET clause is assembled only from fields the client actually sent, so
an absent field can never overwrite a stored value. An explicit null on a
nullable column writes SQL NULL.

Parameters:
  - ctx: context.Context
  - orgID: string
  - id: string
  - set: UpdateSet (validated tri-state fields)

Returns:
  - error: apperr.NotFound on a miss, apperr.Conflict on a broken category
    reference, or execution errors
*/
func (repository *PostgresRepository) Update(ctx context.Context, orgID, id string, set UpdateSet) error {
	if set.Empty() {
		return nil
	}

	// ── 1. Assemble the SET clause from present fields only ──────────────
	assignments := []string{}
	args := []any{id, orgID}

	assign := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if set.Type.Present() {
		value, _ := set.Type.Get()
		assign("type", value)
	}
	if set.Amount.Present() {
		value, _ := set.Amount.Get()
		assign("amount", value)
	}
	if set.Currency.Present() {
		value, _ := set.Currency.Get()
		assign("currency", value)
	}
	if set.Date.Present() {
		value, _ := set.Date.Get()
		assign("date", value)
	}
	if set.IsRecurring.Present() {
		value, _ := set.IsRecurring.Get()
		assign("isrecurring", value)
	}

	// Nullable columns: Ptr is nil for explicit null, writing SQL NULL.
	if set.Notes.Present() {
		assign("notes", set.Notes.Ptr())
	}
	if set.CategoryID.Present() {
		assign("categoryid", set.CategoryID.Ptr())
	}
	if set.NextDueDate.Present() {
		assign("nextduedate", set.NextDueDate.Ptr())
	}

	assign("updatedat", time.Now().UTC())

	query := fmt.Sprintf(
		`UPDATE transactions SET %s WHERE id = $1 AND orgid = $2`,
		strings.Join(assignments, ", "),
	)

	// ── 2. Execute and check the ownership-scoped row count ──────────────
	commandTag, err := repository.db.Exec(ctx, query, args...)
	if err != nil {
		return dberr.Wrap(err, "transaction_repo_update")
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Transaction")
	}

	return nil
}

/*
Delete removes a transaction, but only when it belongs to the org.

Parameters:
  - ctx: context.Context
  - orgID: string
  - id: string

Returns:
  - error: apperr.NotFound on a miss, or execution errors
*/
func (repository *PostgresRepository) Delete(ctx context.Context, orgID, id string) error {
	const query = `DELETE FROM transactions WHERE id = $1 AND orgid = $2`

	commandTag, err := repository.db.Exec(ctx, query, id, orgID)
	if err != nil {
		return dberr.Wrap(err, "transaction_repo_delete")
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Transaction")
	}

	return nil
}

// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package transaction

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/api/internal/platform/apperr"
	"github.com/ledgerly/api/pkg/pointer"
)

// # Test Doubles

// memoryRepository is an in-memory Repository keyed by org.
type memoryRepository struct {
	rows map[string]map[string]*Transaction
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: make(map[string]map[string]*Transaction)}
}

func (repo *memoryRepository) Create(_ context.Context, txn *Transaction) error {
	if repo.rows[txn.OrgID] == nil {
		repo.rows[txn.OrgID] = make(map[string]*Transaction)
	}
	stored := *txn
	repo.rows[txn.OrgID][txn.ID] = &stored
	return nil
}

func (repo *memoryRepository) List(_ context.Context, orgID string, filter ListFilter) ([]*Transaction, error) {
	matched := make([]*Transaction, 0)
	for _, txn := range repo.rows[orgID] {
		if filter.From != nil && txn.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && txn.Date.After(*filter.To) {
			continue
		}
		if filter.Type != "" && txn.Type != filter.Type {
			continue
		}
		if filter.CategoryID != "" && (txn.CategoryID == nil || *txn.CategoryID != filter.CategoryID) {
			continue
		}
		copied := *txn
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })
	return matched, nil
}

func (repo *memoryRepository) FindByID(_ context.Context, orgID, id string) (*Transaction, error) {
	txn, ok := repo.rows[orgID][id]
	if !ok {
		return nil, apperr.NotFound("Transaction")
	}
	copied := *txn
	return &copied, nil
}

func (repo *memoryRepository) Update(_ context.Context, orgID, id string, set UpdateSet) error {
	txn, ok := repo.rows[orgID][id]
	if !ok {
		return apperr.NotFound("Transaction")
	}

	if value, ok := set.Type.Get(); ok {
		txn.Type = value
	}
	if value, ok := set.Amount.Get(); ok {
		txn.Amount = value
	}
	if value, ok := set.Currency.Get(); ok {
		txn.Currency = value
	}
	if value, ok := set.Date.Get(); ok {
		txn.Date = value
	}
	if value, ok := set.IsRecurring.Get(); ok {
		txn.IsRecurring = value
	}
	if set.Notes.Present() {
		txn.Notes = set.Notes.Ptr()
	}
	if set.CategoryID.Present() {
		txn.CategoryID = set.CategoryID.Ptr()
	}
	if set.NextDueDate.Present() {
		txn.NextDueDate = set.NextDueDate.Ptr()
	}
	txn.UpdatedAt = time.Now().UTC()
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, orgID, id string) error {
	if _, ok := repo.rows[orgID][id]; !ok {
		return apperr.NotFound("Transaction")
	}
	delete(repo.rows[orgID], id)
	return nil
}

// countingInvalidator records cache invalidations per org.
type countingInvalidator struct {
	calls map[string]int
}

func (inv *countingInvalidator) InvalidateOrg(_ context.Context, orgID string) error {
	if inv.calls == nil {
		inv.calls = make(map[string]int)
	}
	inv.calls[orgID]++
	return nil
}

func newTestService() (*Service, *memoryRepository, *countingInvalidator) {
	repo := newMemoryRepository()
	inv := &countingInvalidator{}
	return NewService(repo, inv), repo, inv
}

func mustCreate(t *testing.T, service *Service, orgID string, input CreateInput) *Transaction {
	t.Helper()
	txn, err := service.Create(context.Background(), orgID, "user-1", input)
	require.NoError(t, err)
	return txn
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeValidation, appError.Code)
}

// # Creation

/*
TestCreate_Defaults verifies omitted optional fields receive their defaults
and the date parses from plain YYYY-MM-DD.
*/
func TestCreate_Defaults(t *testing.T) {
	service, _, _ := newTestService()

	txn := mustCreate(t, service, "org-1", CreateInput{
		Type:   "EXPENSE",
		Amount: 120.50,
		Date:   "2026-03-15",
	})

	assert.Equal(t, "ZAR", txn.Currency)
	assert.Equal(t, TypeExpense, txn.Type)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), txn.Date)
	assert.Nil(t, txn.Notes)
	assert.Nil(t, txn.CategoryID)
	assert.Nil(t, txn.NextDueDate)
	assert.False(t, txn.IsRecurring)
	assert.Equal(t, "user-1", txn.UserID)
}

/*
TestCreate_Validation covers the rejection table for new transactions.
*/
func TestCreate_Validation(t *testing.T) {
	service, _, _ := newTestService()

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"missing_type", CreateInput{Amount: 10, Date: "2026-01-01"}},
		{"unknown_type", CreateInput{Type: "TRANSFER", Amount: 10, Date: "2026-01-01"}},
		{"zero_amount", CreateInput{Type: "INCOME", Amount: 0, Date: "2026-01-01"}},
		{"negative_amount", CreateInput{Type: "EXPENSE", Amount: -5, Date: "2026-01-01"}},
		{"missing_date", CreateInput{Type: "INCOME", Amount: 10}},
		{"malformed_date", CreateInput{Type: "INCOME", Amount: 10, Date: "15/03/2026"}},
		{"bad_currency", CreateInput{Type: "INCOME", Amount: 10, Date: "2026-01-01", Currency: pointer.To("ZZZZ")}},
		{"oversized_notes", CreateInput{Type: "INCOME", Amount: 10, Date: "2026-01-01", Notes: pointer.To(strings.Repeat("n", 501))}},
		{"bad_category_id", CreateInput{Type: "INCOME", Amount: 10, Date: "2026-01-01", CategoryID: pointer.To("not-a-uuid")}},
		{"bad_next_due", CreateInput{Type: "INCOME", Amount: 10, Date: "2026-01-01", NextDueDate: pointer.To("soon")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), "org-1", "user-1", tt.input)
			assertValidationError(t, err)
		})
	}
}

/*
TestCreate_InvalidatesSummaryCache verifies every successful write drops
the org's cached summaries.
*/
func TestCreate_InvalidatesSummaryCache(t *testing.T) {
	service, _, inv := newTestService()

	mustCreate(t, service, "org-1", CreateInput{Type: "INCOME", Amount: 10, Date: "2026-01-01"})
	assert.Equal(t, 1, inv.calls["org-1"])

	// A failed create must not invalidate.
	_, err := service.Create(context.Background(), "org-1", "user-1", CreateInput{Type: "INCOME", Amount: -1, Date: "2026-01-01"})
	require.Error(t, err)
	assert.Equal(t, 1, inv.calls["org-1"])
}

// # Listing

func TestList_NewestFirstAndFiltered(t *testing.T) {
	service, _, _ := newTestService()

	older := mustCreate(t, service, "org-1", CreateInput{Type: "EXPENSE", Amount: 10, Date: "2026-01-05"})
	newer := mustCreate(t, service, "org-1", CreateInput{Type: "INCOME", Amount: 20, Date: "2026-02-10"})
	mustCreate(t, service, "org-other", CreateInput{Type: "INCOME", Amount: 99, Date: "2026-02-11"})

	listed, err := service.List(context.Background(), "org-1", ListInput{})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, newer.ID, listed[0].ID)
	assert.Equal(t, older.ID, listed[1].ID)

	incomeOnly, err := service.List(context.Background(), "org-1", ListInput{Type: "INCOME"})
	require.NoError(t, err)
	require.Len(t, incomeOnly, 1)
	assert.Equal(t, newer.ID, incomeOnly[0].ID)

	windowed, err := service.List(context.Background(), "org-1", ListInput{From: "2026-02-01", To: "2026-02-28"})
	require.NoError(t, err)
	require.Len(t, windowed, 1)
	assert.Equal(t, newer.ID, windowed[0].ID)
}

func TestList_MalformedFilter(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.List(context.Background(), "org-1", ListInput{From: "yesterday"})
	assertValidationError(t, err)

	_, err = service.List(context.Background(), "org-1", ListInput{Type: "TRANSFER"})
	assertValidationError(t, err)
}

// # Partial Update

/*
TestUpdate_TriStateNotes pins the three observable patch states for a
nullable field: absent keeps, null clears, value replaces.
*/
func TestUpdate_TriStateNotes(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	txn := mustCreate(t, service, "org-1", CreateInput{
		Type:  "EXPENSE",
		Amount: 50,
		Date:  "2026-01-01",
		Notes: pointer.To("original"),
	})

	// Absent: a patch that does not mention notes leaves them untouched.
	var absentPatch Patch
	require.NoError(t, json.Unmarshal([]byte(`{"amount": 75}`), &absentPatch))
	updated, err := service.Update(ctx, "org-1", txn.ID, absentPatch)
	require.NoError(t, err)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "original", *updated.Notes)
	assert.Equal(t, 75.0, updated.Amount)

	// Value: replaces.
	var valuePatch Patch
	require.NoError(t, json.Unmarshal([]byte(`{"notes": "revised"}`), &valuePatch))
	updated, err = service.Update(ctx, "org-1", txn.ID, valuePatch)
	require.NoError(t, err)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "revised", *updated.Notes)

	// Null: clears.
	var nullPatch Patch
	require.NoError(t, json.Unmarshal([]byte(`{"notes": null}`), &nullPatch))
	updated, err = service.Update(ctx, "org-1", txn.ID, nullPatch)
	require.NoError(t, err)
	assert.Nil(t, updated.Notes)
}

/*
TestUpdate_NullOnRequiredField verifies null can never silently clear a
required column.
*/
func TestUpdate_NullOnRequiredField(t *testing.T) {
	service, _, _ := newTestService()
	txn := mustCreate(t, service, "org-1", CreateInput{Type: "INCOME", Amount: 10, Date: "2026-01-01"})

	for _, payload := range []string{
		`{"type": null}`,
		`{"amount": null}`,
		`{"currency": null}`,
		`{"date": null}`,
		`{"isRecurring": null}`,
	} {
		var p Patch
		require.NoError(t, json.Unmarshal([]byte(payload), &p))
		_, err := service.Update(context.Background(), "org-1", txn.ID, p)
		assertValidationError(t, err)
	}
}

/*
TestUpdate_Idempotent verifies applying the same patch twice converges on
the same stored state.
*/
func TestUpdate_Idempotent(t *testing.T) {
	service, _, _ := newTestService()
	txn := mustCreate(t, service, "org-1", CreateInput{Type: "EXPENSE", Amount: 10, Date: "2026-01-01"})

	var p Patch
	require.NoError(t, json.Unmarshal([]byte(`{"amount": 42.5, "notes": "fixed", "isRecurring": true}`), &p))

	first, err := service.Update(context.Background(), "org-1", txn.ID, p)
	require.NoError(t, err)
	second, err := service.Update(context.Background(), "org-1", txn.ID, p)
	require.NoError(t, err)

	assert.Equal(t, first.Amount, second.Amount)
	assert.Equal(t, pointer.Val(first.Notes), pointer.Val(second.Notes))
	assert.Equal(t, first.IsRecurring, second.IsRecurring)
}

/*
TestUpdate_EmptyPatchIsNoOp verifies an empty body returns the current row
without writing or invalidating caches.
*/
func TestUpdate_EmptyPatchIsNoOp(t *testing.T) {
	service, _, inv := newTestService()
	txn := mustCreate(t, service, "org-1", CreateInput{Type: "EXPENSE", Amount: 10, Date: "2026-01-01"})
	writesAfterCreate := inv.calls["org-1"]

	var empty Patch
	require.NoError(t, json.Unmarshal([]byte(`{}`), &empty))

	current, err := service.Update(context.Background(), "org-1", txn.ID, empty)
	require.NoError(t, err)
	assert.Equal(t, txn.ID, current.ID)
	assert.Equal(t, 10.0, current.Amount)
	assert.Equal(t, writesAfterCreate, inv.calls["org-1"])
}

/*
TestUpdate_CrossTenantIsNotFound verifies a transaction id is invisible
outside its tenant.
*/
func TestUpdate_CrossTenantIsNotFound(t *testing.T) {
	service, _, _ := newTestService()
	txn := mustCreate(t, service, "org-a", CreateInput{Type: "EXPENSE", Amount: 10, Date: "2026-01-01"})

	var p Patch
	require.NoError(t, json.Unmarshal([]byte(`{"amount": 99}`), &p))

	_, err := service.Update(context.Background(), "org-b", txn.ID, p)
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeNotFound, appError.Code)

	// The row is unchanged in its own tenant.
	unchanged, err := service.Update(context.Background(), "org-a", txn.ID, Patch{})
	require.NoError(t, err)
	assert.Equal(t, 10.0, unchanged.Amount)
}

// # Deletion

func TestDelete_SecondCallIsNotFound(t *testing.T) {
	service, _, _ := newTestService()
	txn := mustCreate(t, service, "org-1", CreateInput{Type: "EXPENSE", Amount: 10, Date: "2026-01-01"})

	require.NoError(t, service.Delete(context.Background(), "org-1", txn.ID))

	err := service.Delete(context.Background(), "org-1", txn.ID)
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeNotFound, appError.Code)
}

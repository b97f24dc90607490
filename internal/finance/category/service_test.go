// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package category

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/api/internal/platform/apperr"
)

// memoryRepository is an in-memory Repository keyed by org.
type memoryRepository struct {
	rows map[string][]*Category
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: make(map[string][]*Category)}
}

func (repo *memoryRepository) Create(_ context.Context, cat *Category) error {
	repo.rows[cat.OrgID] = append(repo.rows[cat.OrgID], cat)
	return nil
}

func (repo *memoryRepository) List(_ context.Context, orgID string) ([]*Category, error) {
	listed := make([]*Category, len(repo.rows[orgID]))
	copy(listed, repo.rows[orgID])
	sort.Slice(listed, func(i, j int) bool { return listed[i].Name < listed[j].Name })
	return listed, nil
}

func (repo *memoryRepository) Delete(_ context.Context, orgID, id string) error {
	owned := repo.rows[orgID]
	for i, cat := range owned {
		if cat.ID == id {
			repo.rows[orgID] = append(owned[:i], owned[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Category")
}

/*
TestCreate_Valid verifies a category is persisted with a generated id and
the caller's tenant scope.
*/
func TestCreate_Valid(t *testing.T) {
	service := NewService(newMemoryRepository())
	code := "GROC"

	cat, err := service.Create(context.Background(), "org-1", CreateInput{
		Name: "Groceries",
		Code: &code,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, cat.ID)
	assert.Equal(t, "org-1", cat.OrgID)
	assert.Equal(t, "Groceries", cat.Name)
	require.NotNil(t, cat.Code)
	assert.Equal(t, "GROC", *cat.Code)
}

/*
TestCreate_Validation covers the name and code boundary rules.
*/
func TestCreate_Validation(t *testing.T) {
	service := NewService(newMemoryRepository())
	longCode := strings.Repeat("x", 51)

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"empty_name", CreateInput{Name: ""}},
		{"blank_name", CreateInput{Name: "   "}},
		{"name_too_long", CreateInput{Name: strings.Repeat("a", 101)}},
		{"code_too_long", CreateInput{Name: "Rent", Code: &longCode}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), "org-1", tt.input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, apperr.CodeValidation, appError.Code)
		})
	}
}

/*
TestCreate_BoundaryLengths verifies the inclusive maximums are accepted.
*/
func TestCreate_BoundaryLengths(t *testing.T) {
	service := NewService(newMemoryRepository())
	maxCode := strings.Repeat("c", 50)

	_, err := service.Create(context.Background(), "org-1", CreateInput{
		Name: strings.Repeat("n", 100),
		Code: &maxCode,
	})
	assert.NoError(t, err)
}

/*
TestDelete_CrossTenantIsNotFound verifies a category id from another org is
reported as NOT_FOUND, never as a permission failure.
*/
func TestDelete_CrossTenantIsNotFound(t *testing.T) {
	repo := newMemoryRepository()
	service := NewService(repo)

	cat, err := service.Create(context.Background(), "org-a", CreateInput{Name: "Travel"})
	require.NoError(t, err)

	err = service.Delete(context.Background(), "org-b", cat.ID)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeNotFound, appError.Code)

	// The category is untouched in its own tenant.
	remaining, err := service.List(context.Background(), "org-a")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

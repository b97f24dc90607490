// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

/*
Package category implements tenant-scoped transaction categories.

Categories are simple labels with an optional short code. They belong to
exactly one org; every operation requires the caller's resolved tenant
scope and can never observe another tenant's rows.

Architecture:

  - Service: Validation and orchestration.
  - Repository: Abstracted interface for Postgres storage.
  - Handler: Thin REST layer mounted under the org subtree.
*/
package category

import (
	"context"

	"github.com/ledgerly/api/internal/platform/constants"
	"github.com/ledgerly/api/internal/platform/validate"
	"github.com/ledgerly/api/pkg/uuidv7"
)

// Service implements category use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its storage dependency.
func NewService(repo Repository) *Service {
	return &Service{repository: repo}
}

/*
Create validates and persists a new category under the org.

Parameters:
  - ctx: context.Context
  - orgID: string (Resolved tenant scope)
  - input: CreateInput

Returns:
  - *Category: Created entity
  - error: Validation failures or storage errors
*/
func (service *Service) Create(ctx context.Context, orgID string, input CreateInput) (*Category, error) {

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, constants.MaxCategoryNameLength)
	if input.Code != nil {
		validator.MaxLen(FieldCode, *input.Code, constants.MaxCategoryCodeLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	cat := &Category{
		ID:    uuidv7.New(),
		OrgID: orgID,
		Name:  input.Name,
		Code:  input.Code,
	}

	if err := service.repository.Create(ctx, cat); err != nil {
		return nil, err
	}

	return cat, nil
}

/*
List returns all categories of the org, ordered by name.

Parameters:
  - ctx: context.Context
  - orgID: string

Returns:
  - []*Category: Possibly empty slice
  - error: Storage errors
*/
func (service *Service) List(ctx context.Context, orgID string) ([]*Category, error) {
	return service.repository.List(ctx, orgID)
}

/*
Delete removes a category belonging to the org.

A category still referenced by transactions surfaces as CONFLICT from the
foreign key constraint; a cross-tenant or unknown id is NOT_FOUND.

Parameters:
  - ctx: context.Context
  - orgID: string
  - id: string

Returns:
  - error: NotFound, Conflict, or storage errors
*/
func (service *Service) Delete(ctx context.Context, orgID, id string) error {
	return service.repository.Delete(ctx, orgID, id)
}

// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

// PostgreSQL implementation of the category repository.
//
// # Tenant Isolation
//
// Every statement filters on orgid. The conditional delete folds the
// ownership check into the statement itself, so a cross-tenant id and a
// nonexistent id are indistinguishable (both report zero rows).

package category

import (
	"context"
	"time"

	"github.com/ledgerly/api/internal/platform/apperr"
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

/*
Create persists a new category record into the categories table.

Parameters:
  - ctx: context.Context
  - cat: *Category (Entity to persist)

Returns:
  - error: apperr.Conflict on a duplicate name within the org, or execution errors
*/
func (repository *PostgresRepository) Create(ctx context.Context, cat *Category) error {
	const query = `
		INSERT INTO categories (
			id, orgid, name, code, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now().UTC()
	if cat.CreatedAt.IsZero() {
		cat.CreatedAt = now
	}
	cat.UpdatedAt = now

	_, err := repository.db.Exec(ctx, query,
		cat.ID,
		cat.OrgID,
		cat.Name,
		cat.Code,
		cat.CreatedAt,
		cat.UpdatedAt,
	)

	return dberr.Wrap(err, "category_repo_create")
}

/*
List returns every category belonging to the org, ordered by name.

Parameters:
  - ctx: context.Context
  - orgID: string

Returns:
  - []*Category: Possibly empty slice, never nil
  - error: Execution errors
*/
func (repository *PostgresRepository) List(ctx context.Context, orgID string) ([]*Category, error) {
	const query = `
		SELECT id, orgid, name, code, createdat, updatedat
		FROM categories
		WHERE orgid = $1
		ORDER BY name ASC`

	rows, err := repository.db.Query(ctx, query, orgID)
	if err != nil {
		return nil, dberr.Wrap(err, "category_repo_list")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		cat := &Category{}
		if err := rows.Scan(
			&cat.ID,
			&cat.OrgID,
			&cat.Name,
			&cat.Code,
			&cat.CreatedAt,
			&cat.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "category_repo_list_scan")
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "category_repo_list_rows")
	}

	return categories, nil
}

/*
Delete removes a category, but only when it belongs to the org.

A zero row count means the id does not exist or belongs to another tenant;
both cases surface as NOT_FOUND so existence is never confirmed across orgs.

Parameters:
  - ctx: context.Context
  - orgID: string
  - id: string

Returns:
  - error: apperr.NotFound, apperr.Conflict (referencing transactions), or execution errors
*/
func (repository *PostgresRepository) Delete(ctx context.Context, orgID, id string) error {
	const query = `DELETE FROM categories WHERE id = $1 AND orgid = $2`

	commandTag, err := repository.db.Exec(ctx, query, id, orgID)
	if err != nil {
		return dberr.Wrap(err, "category_repo_delete")
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}

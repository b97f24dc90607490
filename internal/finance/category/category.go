// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package category

import "time"

// # Entities

// Category is a tenant-owned label for classifying transactions.
type Category struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"orgId"`
	Name      string    `json:"name"`
	Code      *string   `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateInput holds the data required to create a new category.
type CreateInput struct {
	Name string
	Code *string
}

// # Field Identifiers

// JSON field names used in validation error details.
const (
	FieldName = "name"
	FieldCode = "code"
)

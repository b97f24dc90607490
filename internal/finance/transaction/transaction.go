// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package transaction

import (
	"time"

	"github.com/ledgerly/api/pkg/patch"
)

// # Entities

// Type discriminates money movement direction.
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// Transaction is a single dated money movement owned by an org.
//
// UserID records which member created the row; authorization is by org, so
// any member of the org can read or modify it.
type Transaction struct {
	ID          string     `json:"id"`
	OrgID       string     `json:"orgId"`
	UserID      string     `json:"userId"`
	Type        Type       `json:"type"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	Date        time.Time  `json:"date"`
	Notes       *string    `json:"notes"`
	CategoryID  *string    `json:"categoryId"`
	IsRecurring bool       `json:"isRecurring"`
	NextDueDate *time.Time `json:"nextDueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// # Service Inputs

// CreateInput carries raw client data for a new transaction. Date fields
// stay strings until validation so parse failures surface as field errors.
type CreateInput struct {
	Type        string
	Amount      float64
	Currency    *string
	Date        string
	Notes       *string
	CategoryID  *string
	IsRecurring bool
	NextDueDate *string
}

// Patch carries a partial update where every field is tri-state: absent
// keeps the stored value, explicit null clears a nullable column, and a
// concrete value replaces it.
type Patch struct {
	Type        patch.Field[string]  `json:"type"`
	Amount      patch.Field[float64] `json:"amount"`
	Currency    patch.Field[string]  `json:"currency"`
	Date        patch.Field[string]  `json:"date"`
	Notes       patch.Field[string]  `json:"notes"`
	CategoryID  patch.Field[string]  `json:"categoryId"`
	IsRecurring patch.Field[bool]    `json:"isRecurring"`
	NextDueDate patch.Field[string]  `json:"nextDueDate"`
}

// ListInput carries raw query filters for the list endpoint.
type ListInput struct {
	From       string
	To         string
	Type       string
	CategoryID string
}

// ListFilter is the validated, parsed form of [ListInput].
type ListFilter struct {
	From       *time.Time
	To         *time.Time
	Type       Type
	CategoryID string
}

// # Field Identifiers

// JSON field names used in validation error details.
const (
	FieldType        = "type"
	FieldAmount      = "amount"
	FieldCurrency    = "currency"
	FieldDate        = "date"
	FieldNotes       = "notes"
	FieldCategoryID  = "categoryId"
	FieldIsRecurring = "isRecurring"
	FieldNextDueDate = "nextDueDate"
	FieldFrom        = "from"
	FieldTo          = "to"
)

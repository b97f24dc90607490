// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

/*
Package pointer provides utilities for working with pointers in Go.

Nullable entity fields (notes, category link, next due date) are modelled
as pointers throughout the storage layer; this package removes the
boilerplate of taking addresses of literals and of nil-safe dereferencing.
*/
package pointer

// To returns a pointer to the provided value.
// It is useful when a struct field or test fixture expects a pointer to a
// literal (e.g. pointer.To("groceries")).
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback safely dereferences a pointer.
// If the pointer is nil, it returns the provided fallback value instead.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

/*
Package patch models tri-state fields for partial-update (PATCH) payloads.

A JSON merge-style patch has three distinguishable states per field:

  - absent        : do not change the stored value
  - present null  : clear the stored (nullable) value
  - present value : replace the stored value

A plain map or pointer field collapses "absent" and "null" into one state,
which silently turns "leave my notes alone" into "erase my notes". Field
keeps the two observable all the way from JSON decoding into the storage
layer's UPDATE builder.
*/
package patch

import "encoding/json"

// Field is a tri-state patch value for a field of type T.
//
// The zero Field means "absent": encoding/json only invokes UnmarshalJSON
// for keys that are present in the payload, so an omitted key leaves the
// Field untouched.
type Field[T any] struct {
	present bool
	value   *T
}

// UnmarshalJSON implements [json.Unmarshaler].
//
// It is only called when the key exists in the payload, so reaching this
// method at all moves the field out of the "absent" state.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true

	if string(data) == "null" {
		f.value = nil
		return nil
	}

	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	f.value = &decoded
	return nil
}

// Present reports whether the field appeared in the payload at all
// (either as null or as a concrete value).
func (f Field[T]) Present() bool {
	return f.present
}

// Null reports whether the field was explicitly supplied as JSON null.
func (f Field[T]) Null() bool {
	return f.present && f.value == nil
}

// Get returns the concrete value and true when the field was supplied
// with a non-null value. The returned flag is false for both the absent
// and explicit-null states.
func (f Field[T]) Get() (T, bool) {
	if !f.present || f.value == nil {
		var zero T
		return zero, false
	}
	return *f.value, true
}

// Ptr returns the value as a nullable pointer: nil for both the absent
// and explicit-null states. Callers must check [Field.Present] first when
// the distinction matters.
func (f Field[T]) Ptr() *T {
	return f.value
}

// # Constructors (used by services and tests)

// Of returns a Field in the present-with-value state.
func Of[T any](v T) Field[T] {
	return Field[T]{present: true, value: &v}
}

// Null returns a Field in the explicit-null state.
func NullField[T any]() Field[T] {
	return Field[T]{present: true}
}

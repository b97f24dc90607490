// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/api/internal/platform/sec"
)

/*
TestPasswordHash_RoundTrip verifies hashing and verification with the
correct and an incorrect password.
*/
func TestPasswordHash_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("Password123!")
	require.NoError(t, err)
	require.NotEqual(t, "Password123!", hash)

	ok, err := sec.CheckPasswordHash("Password123!", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = sec.CheckPasswordHash("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

/*
TestCheckPasswordHash_MalformedHash ensures a corrupted stored hash is an
error, not a silent mismatch: it indicates server-side data corruption.
*/
func TestCheckPasswordHash_MalformedHash(t *testing.T) {
	ok, err := sec.CheckPasswordHash("Password123!", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.Error(t, err)
}

/*
TestHashPassword_UniqueSalts checks two hashes of the same password differ.
*/
func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := sec.HashPassword("Password123!")
	require.NoError(t, err)
	second, err := sec.HashPassword("Password123!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

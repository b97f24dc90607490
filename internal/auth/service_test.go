// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/api/internal/platform/apperr"
)

// # Test Doubles

// memoryUserRepository is an in-memory UserRepository for service tests.
type memoryUserRepository struct {
	byEmail map[string]*User
	byID    map[string]*User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{
		byEmail: make(map[string]*User),
		byID:    make(map[string]*User),
	}
}

func (repo *memoryUserRepository) Create(_ context.Context, user *User) error {
	if _, exists := repo.byEmail[user.Email]; exists {
		return apperr.ConflictFields("Unique constraint failed", []string{"email"})
	}
	repo.byEmail[user.Email] = user
	repo.byID[user.ID] = user
	return nil
}

func (repo *memoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	user, ok := repo.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repo *memoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	user, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

// failingUserRepository simulates a store outage on every lookup.
type failingUserRepository struct {
	err error
}

func (repo *failingUserRepository) Create(_ context.Context, _ *User) error {
	return repo.err
}

func (repo *failingUserRepository) FindByEmail(_ context.Context, _ string) (*User, error) {
	return nil, repo.err
}

func (repo *failingUserRepository) FindByID(_ context.Context, _ string) (*User, error) {
	return nil, repo.err
}

// staticTokenProvider mints predictable tokens keyed by user ID.
type staticTokenProvider struct{}

func (staticTokenProvider) GenerateAccessToken(userID string) (string, error) {
	return "token-for-" + userID, nil
}

func newTestService() (*Service, *memoryUserRepository) {
	repo := newMemoryUserRepository()
	return NewService(repo, staticTokenProvider{}), repo
}

// # Registration

/*
TestRegister_CreatesAccountAndSession verifies a successful enrollment hashes
the password, persists the account, and returns a usable session.
*/
func TestRegister_CreatesAccountAndSession(t *testing.T) {
	service, repo := newTestService()
	name := "Thandi"

	session, err := service.Register(context.Background(), RegisterInput{
		Email:    "thandi@example.com",
		Password: "correct horse battery",
		Name:     &name,
	})
	require.NoError(t, err)

	require.NotNil(t, session.User)
	assert.NotEmpty(t, session.User.ID)
	assert.Equal(t, "thandi@example.com", session.User.Email)
	assert.Equal(t, "token-for-"+session.User.ID, session.AccessToken)

	stored := repo.byEmail["thandi@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct horse battery", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

/*
TestRegister_DuplicateEmail verifies a second registration with the same
email yields a CONFLICT kind.
*/
func TestRegister_DuplicateEmail(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "dup@example.com",
		Password: "password-one",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), RegisterInput{
		Email:    "dup@example.com",
		Password: "password-two",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeConflict, appError.Code)
}

// # Login

/*
TestLogin_Success verifies a registered user can authenticate with the
original plain-text password.
*/
func TestLogin_Success(t *testing.T) {
	service, _ := newTestService()

	registered, err := service.Register(context.Background(), RegisterInput{
		Email:    "sipho@example.com",
		Password: "s3cret-enough",
	})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), LoginInput{
		Email:    "sipho@example.com",
		Password: "s3cret-enough",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, session.User.ID)
	assert.NotEmpty(t, session.AccessToken)
}

/*
TestLogin_InvalidCredentials verifies the unknown-email and wrong-password
paths return the identical error, preventing account enumeration.
*/
func TestLogin_InvalidCredentials(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "known@example.com",
		Password: "the-right-password",
	})
	require.NoError(t, err)

	_, unknownErr := service.Login(context.Background(), LoginInput{
		Email:    "unknown@example.com",
		Password: "whatever",
	})
	_, wrongErr := service.Login(context.Background(), LoginInput{
		Email:    "known@example.com",
		Password: "the-wrong-password",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)

	unknownApp := apperr.As(unknownErr)
	wrongApp := apperr.As(wrongErr)
	require.NotNil(t, unknownApp)
	require.NotNil(t, wrongApp)

	assert.Equal(t, apperr.CodeAuthRequired, unknownApp.Code)
	assert.Equal(t, apperr.CodeAuthRequired, wrongApp.Code)
	assert.Equal(t, unknownApp.Message, wrongApp.Message)
}

/*
TestLogin_StoreOutage verifies a lookup failure that is not a missing user
propagates as an internal error rather than masquerading as bad credentials.
*/
func TestLogin_StoreOutage(t *testing.T) {
	repo := &failingUserRepository{err: apperr.Internal(errors.New("connection refused"))}
	service := NewService(repo, staticTokenProvider{})

	_, err := service.Login(context.Background(), LoginInput{
		Email:    "sipho@example.com",
		Password: "s3cret-enough",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeInternal, appError.Code)
}

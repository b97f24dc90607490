// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

/*
Package auth implements the identity and access management core.

It handles user registration, secure password hashing, and stateless session
establishment via signed JWTs.

Architecture:

  - Service: Orchestrates business logic (Register, Login).
  - Repository: Abstracted interface for Postgres (Users).
  - Security: Leverages bcrypt hashing and HMAC-signed JWTs.

Sessions are fully stateless: the server keeps no token registry, so logout
is a client-side token discard and revocation is bounded by the token TTL.
*/
package auth

import (
	"context"
	"fmt"

	"github.com/ledgerly/api/internal/platform/apperr"
	"github.com/ledgerly/api/internal/platform/sec"
	"github.com/ledgerly/api/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//
	// # Returns
	//   - A signed JWT string, or an error if signing fails.
	GenerateAccessToken(userID string) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing or login
// logic must be reviewed before merging.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Email    string
	Password string
	Name     *string
}

// Session represents a successfully established stateless session.
type Session struct {
	AccessToken string
	User        *User
}

/*
Register validates, hashes, and persists a brand new user account, then
establishes a session so the client can act immediately.

Parameters:
  - ctx: context.Context
  - input: RegisterInput

Returns:
  - *Session: Access token plus the created profile
  - error: Conflict (if the email exists) or storage errors
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {

	// Verify email uniqueness. Return a client-safe Conflict error.
	_, err := service.userRepository.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email already in use")
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
	}

	// Prevent storing plain-text passwords. Default cost balances security
	// against CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hashedPassword,
	}

	// Persist the user to the database. A concurrent registration with the
	// same email surfaces here as a unique violation (mapped to Conflict).
	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	return service.establishSession(user)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues a stateless access token.

Unknown emails and wrong passwords yield the identical error so the
endpoint cannot be used to enumerate registered accounts.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - *Session: Access token plus the authenticated profile
  - error: AuthRequired or internal failures
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {

	// Only an unknown email collapses into the generic credentials failure;
	// a store outage must surface as an internal error, not a 401.
	user, err := service.userRepository.FindByEmail(ctx, input.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.AuthRequired("Invalid credentials")
		}
		return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
	}

	// bcrypt comparison is constant-time against the stored hash.
	matches, err := sec.CheckPasswordHash(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_compare_failed: %w", err)
	}
	if !matches {
		return nil, apperr.AuthRequired("Invalid credentials")
	}

	return service.establishSession(user)
}

// establishSession mints an access token for the given account.
func (service *Service) establishSession(user *User) (*Session, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &Session{
		AccessToken: accessToken,
		User:        user,
	}, nil
}

// isNotFound reports whether err carries the NOT_FOUND kind.
func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.Code == apperr.CodeNotFound
}

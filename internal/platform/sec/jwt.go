// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. The signing secret and token lifetime are injected once
// at construction, never read ambiently at call time, which keeps the
// component testable with throwaway secrets.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ledgerly/api/internal/platform/apperr"
)

// AuthClaims represents the payload embedded inside a JWT access token.
//
// # Why custom claims?
//
// By embedding the UserID directly inside the JWT, the authentication
// middleware can establish the request principal WITHOUT querying the
// database on every single API request.
type AuthClaims struct {
	jwt.RegisteredClaims

	// UserID is the principal's account id, duplicated from Subject for
	// explicit access at call sites.
	UserID string `json:"uid"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// Tokens are stateless: there is no server-side revocation list, so expiry
// is the only invalidation mechanism.
type TokenService struct {
	secret   []byte
	issuer   string
	tokenTTL time.Duration
}

// NewTokenService creates a new TokenService with an immutable secret,
// issuer, and token lifetime. A non-positive tokenTTL falls back to the
// provided default so a missing ACCESS_TOKEN_TTL never mints eternal tokens.
func NewTokenService(secret, issuer string, tokenTTL, defaultTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: signing secret must not be empty")
	}
	if tokenTTL <= 0 {
		tokenTTL = defaultTTL
	}

	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		tokenTTL: tokenTTL,
	}, nil
}

// GenerateAccessToken creates a new signed JWT access token for a user.
func (service *TokenService) GenerateAccessToken(userID string) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.tokenTTL)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string.
//
// # Failure Taxonomy
//
// The three failure kinds stay distinguishable because clients react
// differently to each:
//   - AUTH_TOKEN_EXPIRED     : well-formed token past its expiry.
//   - AUTH_TOKEN_NOT_ACTIVE  : well-formed token before its nbf time.
//   - AUTH_INVALID_TOKEN     : any structural or signature failure.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperr.TokenExpired(err)
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, apperr.TokenNotActive(err)
		default:
			return nil, apperr.InvalidToken(err)
		}
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, apperr.InvalidToken(errors.New("sec: invalid token claims"))
	}

	return claims, nil
}

// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer and token lifetime defaults.
  - Finance: Result caps and currency defaults for the ledger domain.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "ledgerly-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "ledgerly.app"

	// DefaultAccessTokenTTL is the access token lifetime when
	// ACCESS_TOKEN_TTL is not configured. Tokens are stateless, so the
	// short window is the only revocation mechanism.
	DefaultAccessTokenTTL = 15 * time.Minute
)

// # Finance Domain

const (
	// TransactionListCap is the hard upper bound on rows returned by the
	// transaction list endpoint. This is a deliberate simplicity/safety
	// tradeoff to bound response size; it is NOT a pagination mechanism.
	TransactionListCap = 100

	// DefaultCurrency is stamped on transactions created without an
	// explicit currency code.
	DefaultCurrency = "ZAR"

	// MaxNotesLength bounds the free-text notes field on transactions.
	MaxNotesLength = 500

	// MaxCategoryNameLength bounds category display names.
	MaxCategoryNameLength = 100

	// MaxCategoryCodeLength bounds the optional short category code.
	MaxCategoryCodeLength = 50
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldError   = "error"
	FieldMessage = "message"
	FieldDetails = "details"
	FieldDebug   = "debug"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixSummary keys the per-org monthly summary cache:
	// finance:summary:<orgID>:<YYYY-MM>.
	RedisPrefixSummary = "finance:summary:"
)

// # Cache Lifetimes

const (
	// SummaryCacheTTL is the freshness window of a cached monthly summary.
	// Kept short because explicit invalidation on writes is best-effort.
	SummaryCacheTTL = 5 * time.Minute
)

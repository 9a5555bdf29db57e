// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// StatusCachePrefix is the prefix for cached per-provider status snapshots.
const StatusCachePrefix = "unitstatus:"

// StatusCacheTTL bounds staleness of a snapshot that missed an invalidation.
const StatusCacheTTL = 5 * time.Minute

// FCMTokenPrefix is the prefix for registered push tokens, keyed by identity.
const FCMTokenPrefix = "fcmtoken:"

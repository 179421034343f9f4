package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// LocalTokenTTL is the lifetime of tokens issued in local auth mode.
const LocalTokenTTL = 24 * time.Hour

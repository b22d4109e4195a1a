package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache defines the interface for caching operations
type Cache interface {
	// Get retrieves a value from the cache
	// Returns the value and a boolean indicating whether the key was found
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set adds a value to the cache with the specified expiration
	// If expiration is 0, the item never expires (but may be evicted)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)

	// Delete removes a key from the cache
	Delete(ctx context.Context, key string)

	// DeleteByPrefix removes all keys with the given prefix
	DeleteByPrefix(ctx context.Context, prefix string)

	// Flush removes all items from the cache
	Flush(ctx context.Context)
}

// Predefined cache key prefixes for different entity types
const (
	PrefixService  = "service:v1:"
	PrefixProduct  = "product:v1:"
	PrefixCustomer = "customer:v1:"
	PrefixVehicle  = "vehicle:v1:"
	PrefixCoupon   = "coupon:v1:"
)

// GenerateKey creates a cache key from a prefix and parts
func GenerateKey(prefix string, parts ...interface{}) string {
	if len(parts) == 0 {
		return prefix
	}

	strParts := make([]string, len(parts))
	for i, part := range parts {
		strParts[i] = fmt.Sprintf("%v", part)
	}

	return prefix + strings.Join(strParts, ":")
}

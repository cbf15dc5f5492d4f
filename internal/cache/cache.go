package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for caching computed responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
	Len() int
}

// CacheKey generates a cache key from the request inputs. Parts are
// separated by NUL so ("ab", "c") and ("a", "bc") hash differently.
func CacheKey(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "greenlie:v1:" + hex.EncodeToString(hash[:])
}

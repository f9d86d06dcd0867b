// FILE: internal/querycache/cache.go
//
// In-memory query cache binding one entry per logical resource, mirroring
// the invalidation relationships between mutations and reads. Entries are
// scoped: user-owned resources live under a per-token scope so a session
// switch can drop them wholesale, shared procurement snapshots live under
// the public scope.
package querycache

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// ScopePublic holds resources that are not tied to a session (procurement
// bodies are immutable snapshots keyed by purchase id).
const ScopePublic = "pub"

// Resource names double as query keys; parameters are appended segments.
const (
	ResourceUser          = "user"
	ResourceTariffs       = "tariffs"
	ResourceCurrentTariff = "currentTariff"
	ResourcePayments      = "payments"
	ResourceTransactions  = "tokenTransactions"
	ResourceBody          = "procurementBody"
	ResourceTaskResult    = "taskResult"
	ResourceTaskAnalysis  = "taskAnalysis"
	ResourceAnalyses      = "analyses"
	ResourceRSS           = "rss"
)

type Cache struct {
	store *cache.Cache
}

func New() *Cache {
	// Default expiration of 5 minutes keeps reads fresh without hammering
	// the backend; expired items are purged every 10 minutes.
	return &Cache{store: cache.New(5*time.Minute, 10*time.Minute)}
}

// TokenScope derives the cache scope for a bearer token. The token itself
// never becomes part of a key.
func TokenScope(token string) string {
	if token == "" {
		return "anon"
	}
	sum := md5.Sum([]byte(token))
	return hex.EncodeToString(sum[:])[:12]
}

func Key(scope, resource string, params ...string) string {
	parts := append([]string{scope, resource}, params...)
	return strings.Join(parts, ":")
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *Cache) Set(key string, value interface{}) {
	c.store.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Invalidate removes every entry of the given resource within a scope,
// regardless of parameters.
func (c *Cache) Invalidate(scope, resource string) {
	prefix := Key(scope, resource)
	for k := range c.store.Items() {
		if k == prefix || strings.HasPrefix(k, prefix+":") {
			c.store.Delete(k)
		}
	}
}

// ClearScope drops all entries of one session scope; called on logout so no
// stale per-user data survives a session switch.
func (c *Cache) ClearScope(scope string) {
	prefix := scope + ":"
	for k := range c.store.Items() {
		if strings.HasPrefix(k, prefix) {
			c.store.Delete(k)
		}
	}
}

// Flush drops everything, shared snapshots included.
func (c *Cache) Flush() {
	c.store.Flush()
}

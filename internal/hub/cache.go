package hub

import (
	"encoding/json"
	"net/url"
	"sync"
	"time"
)

const (
	cacheNamespace = "v1"
	cacheSeparator = "::"

	// DefaultCacheCapacity bounds each store to a handful of recent queries.
	DefaultCacheCapacity = 10
	// DefaultCacheTTL is how long an entry counts as fresh.
	DefaultCacheTTL = 30 * time.Minute
)

type cacheEntry struct {
	value      any
	insertedAt time.Time
}

// CacheStore is a small bounded key-value store for recent query results.
// Eviction is oldest-inserted-first; expiry is checked lazily at read time,
// there is no background sweep. Each facade owns an independent store, so
// invalidation never crosses entity kinds.
type CacheStore struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	now      func() time.Time

	entries map[string]cacheEntry
	order   []string // insertion order, oldest first
}

// NewCacheStore creates a store with the given capacity and TTL.
func NewCacheStore(capacity int, ttl time.Duration) *CacheStore {
	return &CacheStore{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[string]cacheEntry),
	}
}

// Get returns the stored value for key. An entry older than the TTL is
// dropped and reported as a miss, so a refetch overwrites it.
func (s *CacheStore) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(entry.insertedAt) >= s.ttl {
		s.removeLocked(key)
		return nil, false
	}
	return entry.value, true
}

// Set inserts value under key with the current timestamp. At capacity the
// single oldest-inserted entry is evicted first. Re-setting an existing key
// refreshes its value and timestamp but keeps its insertion position.
func (s *CacheStore) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; ok {
		s.entries[key] = cacheEntry{value: value, insertedAt: s.now()}
		return
	}
	if len(s.entries) >= s.capacity && len(s.order) > 0 {
		s.removeLocked(s.order[0])
	}
	s.entries[key] = cacheEntry{value: value, insertedAt: s.now()}
	s.order = append(s.order, key)
}

// Clear empties the store. Called after every successful mutation: precise
// invalidation of filter-keyed entries is not attempted.
func (s *CacheStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]cacheEntry)
	s.order = s.order[:0]
}

// Len reports the number of stored entries, expired or not.
func (s *CacheStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *CacheStore) removeLocked(key string) {
	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Filters narrow a list fetch; they are sent as query parameters and form
// part of the cache key.
type Filters map[string]string

// query converts the filter set into URL query parameters.
func (f Filters) query() url.Values {
	if len(f) == 0 {
		return nil
	}
	q := make(url.Values, len(f))
	for k, v := range f {
		q.Set(k, v)
	}
	return q
}

// without copies the filter set minus one key, for filters that select the
// endpoint path instead of a query parameter.
func (f Filters) without(key string) Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		if k != key {
			out[k] = v
		}
	}
	return out
}

// canonical returns a deterministic serialization of the filter set.
// encoding/json writes map keys in sorted order, which is exactly the
// stability the cache key needs.
func (f Filters) canonical() string {
	if len(f) == 0 {
		return "{}"
	}
	b, err := json.Marshal(f)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func listKey(kind string, filters Filters) string {
	return cacheNamespace + cacheSeparator + kind + cacheSeparator + "list" + cacheSeparator + filters.canonical()
}

func detailKey(kind, id string) string {
	return cacheNamespace + cacheSeparator + kind + cacheSeparator + "detail" + cacheSeparator + id
}

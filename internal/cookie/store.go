package cookie

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/oshokin/advanced-http/internal/header"
)

// DefaultSize is the number of origins kept when no explicit size is configured.
const DefaultSize = 1024

// Store maps origins to raw cookie strings.
// The least recently used origin is evicted once the store is full.
type Store struct {
	// entries holds the cookie string for each origin.
	entries *lru.Cache[string, string]
}

// NewStore creates an empty Store holding at most size origins.
// A non-positive size falls back to DefaultSize.
func NewStore(size int) (*Store, error) {
	if size <= 0 {
		size = DefaultSize
	}

	entries, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie cache: %w", err)
	}

	return &Store{entries: entries}, nil
}

// Get returns the cookie string stored for the origin of rawURL.
func (s *Store) Get(rawURL string) (string, bool) {
	origin, ok := Origin(rawURL)
	if !ok {
		return "", false
	}

	return s.entries.Get(origin)
}

// Set replaces the cookie string stored for the origin of rawURL.
// Empty values and URLs without a host are ignored.
func (s *Store) Set(rawURL, value string) {
	if value == "" {
		return
	}

	origin, ok := Origin(rawURL)
	if !ok {
		return
	}

	s.entries.Add(origin, value)
}

// Clear removes every stored cookie.
func (s *Store) Clear() {
	s.entries.Purge()
}

// Len returns the number of origins with a stored cookie.
func (s *Store) Len() int {
	return s.entries.Len()
}

// Snapshot returns a copy of the jar keyed by origin.
func (s *Store) Snapshot() map[string]string {
	result := make(map[string]string, s.entries.Len())

	for _, origin := range s.entries.Keys() {
		if value, ok := s.entries.Peek(origin); ok {
			result[origin] = value
		}
	}

	return result
}

// Restore loads origin-keyed cookies, typically from a Snapshot.
// Existing entries for the same origins are replaced.
func (s *Store) Restore(cookies map[string]string) {
	for origin, value := range cookies {
		if origin == "" || value == "" {
			continue
		}

		s.entries.Add(origin, value)
	}
}

// ResolveSetCookie returns the value of the Set-Cookie header, matched case-insensitively.
func ResolveSetCookie(headers header.Map) (string, bool) {
	return headers.Get(header.SetCookie)
}

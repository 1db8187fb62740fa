package header

import (
	"maps"
	"net/http"
	"strings"
)

// Map holds request or response headers keyed by header name.
// Lookups and merges treat names case-insensitively; the spelling of the first
// writer is preserved.
type Map map[string]string

const (
	// Authorization is the name of the credentials header.
	Authorization = "Authorization"
	// Cookie is the name of the request cookie header.
	Cookie = "Cookie"
	// SetCookie is the name of the response cookie header.
	SetCookie = "Set-Cookie"
	// ContentType is the name of the body media type header.
	ContentType = "Content-Type"
)

// Merge copies every entry of base whose name is absent from overrides into overrides
// and returns overrides. Entries already present in overrides are never touched.
// A nil overrides is allocated.
func Merge(base, overrides Map) Map {
	if overrides == nil {
		overrides = make(Map, len(base))
	}

	for name, value := range base {
		if _, ok := overrides.lookup(name); ok {
			continue
		}

		overrides[name] = value
	}

	return overrides
}

// Get returns the value stored under name, compared case-insensitively.
func (m Map) Get(name string) (string, bool) {
	key, ok := m.lookup(name)
	if !ok {
		return "", false
	}

	return m[key], true
}

// Has reports whether a header with the given name is present.
func (m Map) Has(name string) bool {
	_, ok := m.lookup(name)

	return ok
}

// Set stores value under name, replacing any entry whose name differs only in case.
func (m Map) Set(name, value string) {
	if key, ok := m.lookup(name); ok {
		m[key] = value

		return
	}

	m[name] = value
}

// Clone returns a shallow copy of m. A nil Map clones to an empty one.
func (m Map) Clone() Map {
	if m == nil {
		return Map{}
	}

	return maps.Clone(m)
}

// HTTPHeader converts m into net/http headers.
func (m Map) HTTPHeader() http.Header {
	result := make(http.Header, len(m))
	for name, value := range m {
		result.Set(name, value)
	}

	return result
}

// FromHTTPHeader flattens net/http headers. Repeated values are joined with ", ".
func FromHTTPHeader(h http.Header) Map {
	result := make(Map, len(h))
	for name, values := range h {
		result[name] = strings.Join(values, ", ")
	}

	return result
}

func (m Map) lookup(name string) (string, bool) {
	if _, ok := m[name]; ok {
		return name, true
	}

	for key := range m {
		if strings.EqualFold(key, name) {
			return key, true
		}
	}

	return "", false
}

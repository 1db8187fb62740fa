package serializer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"unicode/utf8"
)

// Kind names a request body encoding.
type Kind string

const (
	// URLEncoded encodes the body as application/x-www-form-urlencoded.
	URLEncoded Kind = "urlencoded"
	// JSON encodes the body as application/json.
	JSON Kind = "json"

	// Default is the encoding used until another one is selected.
	Default = URLEncoded
)

const (
	// ContentTypeURLEncoded is the media type of URLEncoded bodies.
	ContentTypeURLEncoded = "application/x-www-form-urlencoded"
	// ContentTypeJSON is the media type of JSON bodies.
	ContentTypeJSON = "application/json"
)

// Static error definitions for better error handling.
var (
	// ErrInvalidSerializer indicates that the requested name matches no known encoding.
	ErrInvalidSerializer = errors.New("invalid serializer")
	// ErrUnsupportedSerializer indicates that a body cannot be encoded with the given kind.
	ErrUnsupportedSerializer = errors.New("unsupported serializer")
)

// Kinds returns every known encoding.
func Kinds() []Kind {
	return []Kind{URLEncoded, JSON}
}

// Valid reports whether k is a known encoding.
func (k Kind) Valid() bool {
	return k == URLEncoded || k == JSON
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}

// Select normalizes requested by trimming and lower-casing it.
// Known names are returned as is. Any other name is reduced to its first character,
// which is kept for compatibility with existing clients and is never a valid kind.
// An empty name yields the empty Kind.
func Select(requested string) Kind {
	normalized := Kind(strings.ToLower(strings.TrimSpace(requested)))
	if normalized.Valid() || normalized == "" {
		return normalized
	}

	first, size := utf8.DecodeRuneInString(string(normalized))
	if first == utf8.RuneError && size <= 1 {
		return Kind(normalized[:1])
	}

	return Kind(normalized[:size])
}

// SelectStrict normalizes requested like Select but rejects unknown names.
func SelectStrict(requested string) (Kind, error) {
	normalized := Kind(strings.ToLower(strings.TrimSpace(requested)))
	if !normalized.Valid() {
		return "", fmt.Errorf("%w: %q (expected one of %v)", ErrInvalidSerializer, requested, Kinds())
	}

	return normalized, nil
}

// Encode renders data with the given encoding and returns the body with its media type.
func Encode(kind Kind, data map[string]any) ([]byte, string, error) {
	if data == nil {
		data = map[string]any{}
	}

	switch kind {
	case URLEncoded:
		return []byte(FormValues(data).Encode()), ContentTypeURLEncoded, nil
	case JSON:
		body, err := json.Marshal(data)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode JSON body: %w", err)
		}

		return body, ContentTypeJSON, nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedSerializer, kind)
	}
}

// FormValues flattens data into form values.
// Slices and arrays produce one value per element; nil values are skipped.
func FormValues(data map[string]any) url.Values {
	values := make(url.Values, len(data))

	for key, value := range data {
		if value == nil {
			continue
		}

		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := range rv.Len() {
				values.Add(key, fmt.Sprint(rv.Index(i).Interface()))
			}

			continue
		}

		values.Add(key, fmt.Sprint(value))
	}

	return values
}

package utils

import (
	"errors"
	"fmt"
	"mime"
	"regexp"
	"strings"
)

// Static error definitions for better error handling.
var (
	// ErrInvalidKeyValue indicates that a key=value pair has no separator or no key.
	ErrInvalidKeyValue = errors.New("expected key=value")
	// ErrInvalidHeaderLine indicates that a header line has no separator or no name.
	ErrInvalidHeaderLine = errors.New("expected \"Name: value\"")
)

var (
	// invalidCharsPattern includes ASCII control characters (0-31) and Windows-restricted characters: < > : " / \ | ? *.
	//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
	invalidCharsPattern = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

	// textContentTypePatterns is a slice of regular expressions that match content types
	// considered to be text-based: "text/*", JSON and XML documents and form bodies.
	//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
	textContentTypePatterns = []*regexp.Regexp{
		regexp.MustCompile("^text/.+"),
		regexp.MustCompile(`^application/([a-z0-9.\-]+\+)?json$`),
		regexp.MustCompile(`^application/([a-z0-9.\-]+\+)?xml$`),
		regexp.MustCompile("^application/x-www-form-urlencoded$"),
	}

	// windowsReservedNames is a map of filenames that are reserved on Windows systems.
	// These names are case-insensitive and cannot be used as filenames or folder names.
	// Examples include "CON", "PRN", "AUX", "NUL", and COM1-COM9, LPT1-LPT9.
	//nolint:gochecknoglobals // This is an immutable map used as a constant for validation purposes.
	windowsReservedNames = map[string]struct{}{
		"CON":  {},
		"PRN":  {},
		"AUX":  {},
		"NUL":  {},
		"COM1": {},
		"COM2": {},
		"COM3": {},
		"COM4": {},
		"COM5": {},
		"COM6": {},
		"COM7": {},
		"COM8": {},
		"COM9": {},
		"LPT1": {},
		"LPT2": {},
		"LPT3": {},
		"LPT4": {},
		"LPT5": {},
		"LPT6": {},
		"LPT7": {},
		"LPT8": {},
		"LPT9": {},
	}
)

// SanitizeFilename sanitizes a filename or folder name to be valid on both Windows and Unix-like systems.
// It removes or replaces invalid characters, handles Windows reserved names, and ensures the filename is not empty.
func SanitizeFilename(name string) string {
	if name == "" {
		return ""
	}

	result := invalidCharsPattern.ReplaceAllString(name, "_")

	// Extract base filename (without extension) for comparison
	baseName := result
	if dotIndex := strings.LastIndex(result, "."); dotIndex != -1 {
		baseName = result[:dotIndex]
	}

	// If base name is a Windows reserved name, prepend an underscore.
	if _, ok := windowsReservedNames[strings.ToUpper(baseName)]; ok {
		result = "_" + result
	}

	// Remove trailing dots from the filename.
	result = strings.TrimRight(result, ".")

	// Ensure the filename is not empty.
	if result == "" {
		result = "_"
	}

	return result
}

// IsTextContentType checks if the given content type represents a text-based format.
// It supports "text/*", JSON and XML types (including "+json" and "+xml" suffixes) and form bodies.
// It also checks that the charset, if present, is either "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}

// ParseKeyValue splits "key=value" at the first '='. The value may be empty.
func ParseKeyValue(pair string) (string, string, error) {
	key, value, found := strings.Cut(pair, "=")

	key = strings.TrimSpace(key)
	if !found || key == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidKeyValue, pair)
	}

	return key, value, nil
}

// ParseHeaderLine splits "Name: value" at the first ':' and trims both parts.
func ParseHeaderLine(line string) (string, string, error) {
	name, value, found := strings.Cut(line, ":")

	name = strings.TrimSpace(name)
	if !found || name == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidHeaderLine, line)
	}

	return name, strings.TrimSpace(value), nil
}

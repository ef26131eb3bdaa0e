package pagination

import (
	"encoding/base64"
	"fmt"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ClampLimit normalizes a caller-supplied page size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// EncodeCursor wraps the last key of a page into an opaque continuation token.
func EncodeCursor(lastKey string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(lastKey))
}

// DecodeCursor unwraps a continuation token back into the key it carries.
// An empty token is valid and means "start from the beginning".
func DecodeCursor(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("malformed continuation token: %w", err)
	}
	return string(raw), nil
}

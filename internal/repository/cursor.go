package repository

import (
	"encoding/base64"
	"strings"
	"time"
)

// cursor identifica o último registro da página anterior na ordenação
// (created_at DESC, id DESC). O id desempata timestamps idênticos.
type cursor struct {
	CreatedAt time.Time
	ID        string
}

// EncodeCursor serializes a page position into an opaque URL-safe string.
func EncodeCursor(createdAt time.Time, id string) string {
	raw := createdAt.UTC().Format(time.RFC3339Nano) + "|" + id
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(s string) (cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return cursor{}, ErrInvalidCursor
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return cursor{}, ErrInvalidCursor
	}
	t, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return cursor{}, ErrInvalidCursor
	}
	return cursor{CreatedAt: t, ID: parts[1]}, nil
}

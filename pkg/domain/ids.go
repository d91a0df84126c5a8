// Package domain defines the typed identifiers shared across modules.
//
// Toilet ids are opaque tokens: newly minted ids are UUIDs, while records
// persisted by older clients may carry any short token. User ids come from
// the authentication provider and are equally opaque.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "looview/pkg/domain-errors"
)

// maxIDLength bounds identifiers accepted at trust boundaries.
const maxIDLength = 128

type (
	ToiletID string
	UserID   string
)

func (id ToiletID) String() string { return string(id) }
func (id UserID) String() string   { return string(id) }

// IsZero reports whether the id is unset.
func (id ToiletID) IsZero() bool { return id == "" }
func (id UserID) IsZero() bool   { return id == "" }

// NewToiletID mints a fresh, globally unique toilet id.
func NewToiletID() ToiletID {
	return ToiletID(uuid.NewString())
}

// ParseToiletID validates a toilet id received from a client.
func ParseToiletID(s string) (ToiletID, error) {
	v, err := parseToken(s, "toilet id")
	return ToiletID(v), err
}

// ParseUserID validates a user id received from the auth provider.
func ParseUserID(s string) (UserID, error) {
	v, err := parseToken(s, "user id")
	return UserID(v), err
}

func parseToken(s, label string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, label+" is required")
	}
	if len(s) > maxIDLength {
		return "", dErrors.New(dErrors.CodeBadRequest, label+" is too long")
	}
	for _, r := range s {
		if !isTokenRune(r) {
			return "", dErrors.New(dErrors.CodeBadRequest, label+" contains invalid characters")
		}
	}
	return s, nil
}

func isTokenRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return false
}

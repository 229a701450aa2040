package utils

import (
	"strings"

	"github.com/google/uuid"
)

var newV7 = uuid.NewV7

// GenerateUUIDv7 generates a time-ordered UUID, falling back to v4
func GenerateUUIDv7() uuid.UUID {
	id, err := newV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// ParseOptionalUUID parses s, returning nil for blank input
func ParseOptionalUUID(s string) (*uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

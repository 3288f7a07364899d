package models

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns an opaque identifier of the form "<prefix>_<12 hex chars>",
// e.g. "board_3f9c1a2b7d40". Identifiers are never parsed back; the prefix
// only aids debugging.
func NewID(prefix string) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix + "_" + hex[:12]
}

package keys

import (
	"fmt"
	"strings"
)

// sanitizeKey replaces spaces with hyphens and lowercases the string.
func sanitizeKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
}

// User returns the canonical object key for a user record.
func User(id string) string {
	return fmt.Sprintf("users/%s.json", sanitizeKey(id))
}

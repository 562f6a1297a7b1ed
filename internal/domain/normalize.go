package domain

import (
	"strings"
)

// NormalizeHandle prepares an agent handle for storage and lookup:
//   - trims leading/trailing whitespace
//   - strips a single leading "@" if present
//   - converts to lowercase
//
// Hyphens, underscores, and digits are preserved.
func NormalizeHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	handle = strings.TrimPrefix(handle, "@")
	if handle == "" {
		return ""
	}
	return strings.ToLower(handle)
}

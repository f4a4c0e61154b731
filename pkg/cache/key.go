package cache

import (
	"fmt"
	"strings"
)

// Key identifies one cached page response.
type Key struct {
	// Resource is the API collection name (e.g., "users", "posts")
	Resource string

	// Page is the pagination page number (1-based)
	Page int

	// Limit is the page size the request was made with
	Limit int
}

// String generates a deterministic cache key string.
// Format: analytics:resource:page=N:limit=M
//
// Example:
//
//	analytics:users:page=1:limit=100
func (k Key) String() string {
	parts := []string{"analytics"}

	resource := strings.Trim(k.Resource, "/")
	if resource != "" {
		parts = append(parts, resource)
	}

	parts = append(parts, fmt.Sprintf("page=%d", k.Page))
	parts = append(parts, fmt.Sprintf("limit=%d", k.Limit))

	return strings.Join(parts, ":")
}

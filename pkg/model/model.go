// Package model defines the domain types shared across the analytics pipeline.
package model

// User is the primary aggregated subject. Posts, PostCount and AvgChars start
// empty and are populated exactly once by the aggregation pass; everything
// else is set during normalization and never changes afterwards.
type User struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Posts     []*Post `json:"posts,omitempty"`
	PostCount int     `json:"post_count"`
	AvgChars  float64 `json:"avg_chars"`
}

// Post is a subordinate record owned by exactly one User via UserID.
// Posts are created once during normalization and never mutated; the same
// *Post is shared into its owner's Posts slice.
type Post struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

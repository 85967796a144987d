package model

import (
	"time"
)

const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Vote records one user's vote on one post. At most one row exists per
// (UserID, PostSlug) pair; the database enforces this with a unique index.
type Vote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PostSlug  string    `json:"post_slug"`
	Kind      string    `json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidVoteKind reports whether s is one of the accepted vote kinds.
func ValidVoteKind(s string) bool {
	return s == VoteUp || s == VoteDown
}

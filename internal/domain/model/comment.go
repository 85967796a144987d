package model

import (
	"time"
)

// Comment is owned by exactly one user and immutable once created, except
// for deletion by its author.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PostSlug  string    `json:"post_slug"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentWithAuthor is the read model for comment listings: a comment row
// joined with its author's username.
type CommentWithAuthor struct {
	Comment
	Username string
}

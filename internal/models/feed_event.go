package models

import "time"

// Feed event types published after successful writes.
const (
	FeedEventPostCreated    = "post.created"
	FeedEventPostLiked      = "post.liked"
	FeedEventCommentCreated = "comment.created"
)

// FeedEvent is the payload pushed to feed stream subscribers.
type FeedEvent struct {
	Type      string    `json:"type"`
	PostID    uint      `json:"postId"`
	UserID    uint      `json:"userId"`
	CommentID uint      `json:"commentId,omitempty"`
	LikeID    uint      `json:"likeId,omitempty"`
	At        time.Time `json:"at"`
}

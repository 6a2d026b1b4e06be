package dto

import "time"

// AddCommentRequest payload.
type AddCommentRequest struct {
	Content string `json:"content"`
}

// CommentResponse represents one ticket comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

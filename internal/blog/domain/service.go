package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type AuthorView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type CommentView struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	User      AuthorView `json:"user"`
}

type BlogView struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Likes     int           `json:"likes"`
	Dislikes  int           `json:"dislikes"`
	CreatedAt time.Time     `json:"created_at"`
	Author    AuthorView    `json:"author"`
	Comments  []CommentView `json:"comments"`
}

type CreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ReactionResult reports the counters after a like or dislike.
type ReactionResult struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

type Service interface {
	Create(ctx context.Context, userID snowflake.ID, req CreateRequest) (*BlogView, error)
	List(ctx context.Context) ([]BlogView, error)
	Update(ctx context.Context, userID snowflake.ID, blogID string, req UpdateRequest) error
	Delete(ctx context.Context, userID snowflake.ID, blogID string) error
	Like(ctx context.Context, blogID string) (*ReactionResult, error)
	Dislike(ctx context.Context, blogID string) (*ReactionResult, error)
	AddComment(ctx context.Context, userID snowflake.ID, blogID, text string) (*CommentView, error)
	ListComments(ctx context.Context, blogID string) ([]CommentView, error)
}

package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Blog struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	UserID    snowflake.ID `json:"user_id" gorm:"not null;index"`
	Title     string       `json:"title" gorm:"size:200;not null"`
	Content   string       `json:"content" gorm:"type:text;not null"`
	Likes     int          `json:"likes" gorm:"not null;default:0"`
	Dislikes  int          `json:"dislikes" gorm:"not null;default:0"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (Blog) TableName() string { return "blogs" }

type Comment struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	BlogID    snowflake.ID `json:"blog_id" gorm:"not null;index"`
	UserID    snowflake.ID `json:"user_id" gorm:"not null"`
	Text      string       `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time    `json:"created_at"`
}

func (Comment) TableName() string { return "comments" }

var (
	ErrNotFound     = errors.New("blog_not_found")
	ErrForbidden    = errors.New("blog_access_denied")
	ErrInvalidID    = errors.New("invalid_blog_id")
	ErrInvalidInput = errors.New("invalid_blog_input")
)

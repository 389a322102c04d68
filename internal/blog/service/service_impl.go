package service

import (
	"context"
	"strings"
	"time"

	authdomain "github.com/agrimart/agrimart/internal/auth/domain"
	"github.com/agrimart/agrimart/internal/blog/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Users authdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	users authdomain.Repository
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("blog.service"),
		repo:  p.Repo,
		users: p.Users,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, userID snowflake.ID, req domain.CreateRequest) (*domain.BlogView, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	blog := &domain.Blog{
		ID:        s.genID.Generate(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, s.db, blog); err != nil {
		return nil, err
	}

	view := s.toView(ctx, blog, []domain.CommentView{})
	return &view, nil
}

func (s *Service) List(ctx context.Context) ([]domain.BlogView, error) {
	blogs, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	views := make([]domain.BlogView, 0, len(blogs))
	for _, blog := range blogs {
		comments, err := s.commentViews(ctx, blog.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, s.toView(ctx, &blog, comments))
	}
	return views, nil
}

func (s *Service) Update(ctx context.Context, userID snowflake.ID, blogID string, req domain.UpdateRequest) error {
	blog, err := s.findOwned(ctx, userID, blogID)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return domain.ErrInvalidInput
	}

	return s.repo.Update(ctx, s.db, blog.ID, map[string]any{
		"title":      title,
		"content":    content,
		"updated_at": time.Now().UTC(),
	})
}

// Delete removes the blog and its comments, mirroring the cascade on
// the blogs relation.
func (s *Service) Delete(ctx context.Context, userID snowflake.ID, blogID string) error {
	blog, err := s.findOwned(ctx, userID, blogID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteComments(ctx, tx, blog.ID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, blog.ID)
	})
}

func (s *Service) Like(ctx context.Context, blogID string) (*domain.ReactionResult, error) {
	return s.react(ctx, blogID, "likes")
}

func (s *Service) Dislike(ctx context.Context, blogID string) (*domain.ReactionResult, error) {
	return s.react(ctx, blogID, "dislikes")
}

func (s *Service) react(ctx context.Context, blogID, column string) (*domain.ReactionResult, error) {
	id, err := snowflake.ParseString(blogID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	blog, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, s.db, blog.ID, map[string]any{
		column: gorm.Expr(column+" + 1"),
	}); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, s.db, blog.ID)
	if err != nil {
		return nil, err
	}
	return &domain.ReactionResult{Likes: updated.Likes, Dislikes: updated.Dislikes}, nil
}

func (s *Service) AddComment(ctx context.Context, userID snowflake.ID, blogID, text string) (*domain.CommentView, error) {
	id, err := snowflake.ParseString(blogID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.repo.FindByID(ctx, s.db, id); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:        s.genID.Generate(),
		BlogID:    id,
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateComment(ctx, s.db, comment); err != nil {
		return nil, err
	}

	view := domain.CommentView{
		ID:        comment.ID.String(),
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
		User:      s.authorView(ctx, userID),
	}
	return &view, nil
}

func (s *Service) ListComments(ctx context.Context, blogID string) ([]domain.CommentView, error) {
	id, err := snowflake.ParseString(blogID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	if _, err := s.repo.FindByID(ctx, s.db, id); err != nil {
		return nil, err
	}

	return s.commentViews(ctx, id)
}

func (s *Service) findOwned(ctx context.Context, userID snowflake.ID, blogID string) (*domain.Blog, error) {
	id, err := snowflake.ParseString(blogID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	blog, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if blog.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return blog, nil
}

func (s *Service) commentViews(ctx context.Context, blogID snowflake.ID) ([]domain.CommentView, error) {
	comments, err := s.repo.FindComments(ctx, s.db, blogID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.CommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, domain.CommentView{
			ID:        comment.ID.String(),
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
			User:      s.authorView(ctx, comment.UserID),
		})
	}
	return views, nil
}

func (s *Service) authorView(ctx context.Context, userID snowflake.ID) domain.AuthorView {
	view := domain.AuthorView{ID: userID.String()}
	if user, err := s.users.FindByID(ctx, userID); err == nil {
		view.Username = user.Username
	}
	return view
}

func (s *Service) toView(ctx context.Context, blog *domain.Blog, comments []domain.CommentView) domain.BlogView {
	return domain.BlogView{
		ID:        blog.ID.String(),
		Title:     blog.Title,
		Content:   blog.Content,
		Likes:     blog.Likes,
		Dislikes:  blog.Dislikes,
		CreatedAt: blog.CreatedAt,
		Author:    s.authorView(ctx, blog.UserID),
		Comments:  comments,
	}
}

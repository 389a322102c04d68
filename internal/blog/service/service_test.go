package service

import (
	"context"
	"testing"

	authdomain "github.com/agrimart/agrimart/internal/auth/domain"
	authrepo "github.com/agrimart/agrimart/internal/auth/repository"
	"github.com/agrimart/agrimart/internal/blog/domain"
	"github.com/agrimart/agrimart/internal/blog/repository"
	"github.com/agrimart/agrimart/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc  domain.Service
	db   *gorm.DB
	node *snowflake.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&domain.Blog{},
		&domain.Comment{},
		&authdomain.User{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	users, _ := authrepo.New(dbConn)
	svc := New(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.New(),
		Users: users,
	})

	return &fixture{svc: svc, db: dbConn, node: node}
}

func (f *fixture) seedUser(t *testing.T, username string) snowflake.ID {
	t.Helper()
	user := &authdomain.User{
		ID:           f.node.Generate(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, f.db.Create(user).Error)
	return user.ID
}

func TestCreateAndListNewestFirst(t *testing.T) {
	f := newFixture(t)
	author := f.seedUser(t, "alice")

	first, err := f.svc.Create(context.Background(), author, domain.CreateRequest{
		Title:   "Crop rotation basics",
		Content: "Rotate legumes with cereals.",
	})
	require.NoError(t, err)
	require.Equal(t, "alice", first.Author.Username)

	_, err = f.svc.Create(context.Background(), author, domain.CreateRequest{
		Title:   "Drip irrigation",
		Content: "Save water with drip lines.",
	})
	require.NoError(t, err)

	blogs, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, blogs, 2)
}

func TestUpdateOwnership(t *testing.T) {
	f := newFixture(t)
	author := f.seedUser(t, "alice")
	stranger := f.seedUser(t, "bob")

	blog, err := f.svc.Create(context.Background(), author, domain.CreateRequest{
		Title:   "Crop rotation basics",
		Content: "Rotate legumes with cereals.",
	})
	require.NoError(t, err)

	err = f.svc.Update(context.Background(), stranger, blog.ID, domain.UpdateRequest{
		Title:   "Hijacked",
		Content: "Nope.",
	})
	require.ErrorIs(t, err, domain.ErrForbidden)

	err = f.svc.Update(context.Background(), author, blog.ID, domain.UpdateRequest{
		Title:   "Crop rotation, revised",
		Content: "Rotate legumes with cereals and brassicas.",
	})
	require.NoError(t, err)
}

func TestDeleteCascadesComments(t *testing.T) {
	f := newFixture(t)
	author := f.seedUser(t, "alice")
	commenter := f.seedUser(t, "bob")

	blog, err := f.svc.Create(context.Background(), author, domain.CreateRequest{
		Title:   "Crop rotation basics",
		Content: "Rotate legumes with cereals.",
	})
	require.NoError(t, err)

	_, err = f.svc.AddComment(context.Background(), commenter, blog.ID, "Very helpful!")
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), author, blog.ID))

	var commentCount int64
	require.NoError(t, f.db.Model(&domain.Comment{}).Count(&commentCount).Error)
	require.Zero(t, commentCount)
}

func TestLikeDislikeCounters(t *testing.T) {
	f := newFixture(t)
	author := f.seedUser(t, "alice")

	blog, err := f.svc.Create(context.Background(), author, domain.CreateRequest{
		Title:   "Crop rotation basics",
		Content: "Rotate legumes with cereals.",
	})
	require.NoError(t, err)

	res, err := f.svc.Like(context.Background(), blog.ID)
	require.NoError(t, err)
	require.Equal(t, 1, res.Likes)

	res, err = f.svc.Like(context.Background(), blog.ID)
	require.NoError(t, err)
	require.Equal(t, 2, res.Likes)

	res, err = f.svc.Dislike(context.Background(), blog.ID)
	require.NoError(t, err)
	require.Equal(t, 2, res.Likes)
	require.Equal(t, 1, res.Dislikes)
}

func TestCommentsOnMissingBlog(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "alice")

	missing := f.node.Generate().String()
	_, err := f.svc.AddComment(context.Background(), user, missing, "hello")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.ListComments(context.Background(), missing)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	blogdomain "github.com/agrimart/agrimart/internal/blog/domain"
)

type commentRequest struct {
	Text string `json:"text"`
}

func (s *Server) ListBlogs(c *gin.Context) {
	blogs, err := s.blogSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

func (s *Server) CreateBlog(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	var req blogdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	view, err := s.blogSvc.Create(c.Request.Context(), userID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (s *Server) UpdateBlog(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	var req blogdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.blogSvc.Update(c.Request.Context(), userID, c.Param("id"), req); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog updated"})
}

func (s *Server) DeleteBlog(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	if err := s.blogSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog deleted"})
}

func (s *Server) LikeBlog(c *gin.Context) {
	result, err := s.blogSvc.Like(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) DislikeBlog(c *gin.Context) {
	result, err := s.blogSvc.Dislike(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) AddComment(c *gin.Context) {
	userID, ok := s.mustUserID(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		AbortWithError(c, newValidationError("text", "required", "comment text is required"))
		return
	}

	comment, err := s.blogSvc.AddComment(c.Request.Context(), userID, c.Param("id"), req.Text)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (s *Server) ListComments(c *gin.Context) {
	comments, err := s.blogSvc.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

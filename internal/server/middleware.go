package server

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

const ctxUserIDKey = "user_id"

// AuthRequired resolves the session cookie into a user and stores the
// user ID on the context. Requests without a valid session are rejected.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		sess, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(ctxUserIDKey, sess.UserID)
		c.Next()
	}
}

// AnalyzeRateLimit throttles the analysis endpoint per client address.
func (s *Server) AnalyzeRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.analyzeLimiter.Enabled() {
			c.Next()
			return
		}

		allowed, err := s.analyzeLimiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Redis being down must not take the endpoint with it.
			c.Next()
			return
		}
		s.obsMetrics.RecordRateLimit(c.Request.Context(), allowed)
		if !allowed {
			AbortWithError(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) (snowflake.ID, bool) {
	value, ok := c.Get(ctxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := value.(snowflake.ID)
	return id, ok
}

// mustUserID is used behind AuthRequired, where the user ID is always set.
func (s *Server) mustUserID(c *gin.Context) (snowflake.ID, bool) {
	id, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return 0, false
	}
	return id, true
}

package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func parseIntQuery(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newValidationError(name, "invalid_integer", name+" must be an integer")
	}
	return value, nil
}

// parsePagination reads skip/limit query params with sane bounds.
func parsePagination(c *gin.Context, defaultLimit, maxLimit int) (int, int, error) {
	skip, err := parseIntQuery(c, "skip", 0)
	if err != nil {
		return 0, 0, err
	}
	if skip < 0 {
		skip = 0
	}

	limit, err := parseIntQuery(c, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return skip, limit, nil
}

package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	diagnosisdomain "github.com/agrimart/agrimart/internal/diagnosis/domain"
)

// Analyze accepts a multipart image upload plus a plant_type form field
// and returns the classifier's prediction.
func (s *Server) Analyze(c *gin.Context) {
	plantType := strings.TrimSpace(c.PostForm("plant_type"))
	if plantType == "" {
		AbortWithError(c, newValidationError("plant_type", "required", "plant_type is required"))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		AbortWithError(c, newValidationError("image", "required", "image file is required"))
		return
	}
	if fileHeader.Size > diagnosisdomain.MaxImageBytes {
		AbortWithError(c, diagnosisdomain.ErrImageTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		AbortWithError(c, diagnosisdomain.ErrInvalidImage)
		return
	}
	defer file.Close()

	// The declared size is advisory; cap the actual read too.
	data, err := io.ReadAll(io.LimitReader(file, diagnosisdomain.MaxImageBytes+1))
	if err != nil {
		AbortWithError(c, diagnosisdomain.ErrInvalidImage)
		return
	}
	if len(data) > diagnosisdomain.MaxImageBytes {
		AbortWithError(c, diagnosisdomain.ErrImageTooLarge)
		return
	}

	result, err := s.diagnosisSvc.Analyze(c.Request.Context(), plantType, data)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

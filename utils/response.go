// File: /utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"livewall-api/models"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SendServiceError maps the typed service outcomes onto HTTP statuses.
// Anything unrecognized is a plain 500.
func SendServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		SendError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		SendError(c, http.StatusNotFound, "Post not found")
	case errors.Is(err, models.ErrForbidden):
		SendError(c, http.StatusForbidden, "Insufficient privileges")
	case errors.Is(err, models.ErrStorageFailure):
		// Transient: the client may retry.
		SendError(c, http.StatusServiceUnavailable, "Storage temporarily unavailable")
	default:
		SendError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func SendError(c *gin.Context, status int, err string) {
	c.JSON(status, ErrorResponse{
		Error: err,
		Code:  status,
	})
}

func SendSuccess(c *gin.Context, message string, data interface{}) {
	response := SuccessResponse{
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(http.StatusOK, response)
}

func SendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

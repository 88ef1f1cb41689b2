package controllers

import (
	"errors"
	"net/http"

	"qrstudio/internal/service"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyPayload), errors.Is(err, service.ErrInvalidSettings):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotEditing), errors.Is(err, service.ErrRedirectRecord):
		return http.StatusConflict
	case errors.Is(err, service.ErrRenderFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrShortenerFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "Internal server error"
	}
	c.JSON(status, gin.H{
		"error": msg,
	})
}

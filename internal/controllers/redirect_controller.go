package controllers

import (
	"net/http"

	"qrstudio/internal/service"

	"github.com/gin-gonic/gin"
)

type RedirectController struct {
	editor service.EditorService
}

func NewRedirectController(editor service.EditorService) *RedirectController {
	return &RedirectController{
		editor: editor,
	}
}

// Resolve handles GET /redirect?id= - sends a scanned redirect QR code to its current destination
func (rc *RedirectController) Resolve(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "QR code id is required",
		})
		return
	}

	dest, err := rc.editor.RedirectDestination(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if dest == "" {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "QR code not found",
		})
		return
	}

	// 302 so browsers don't cache a destination that can change
	c.Redirect(http.StatusFound, service.NormalizeURL(dest))
}

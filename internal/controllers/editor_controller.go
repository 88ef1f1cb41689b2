package controllers

import (
	"context"
	"net/http"
	"strconv"

	"qrstudio/internal/models"
	"qrstudio/internal/service"

	"github.com/gin-gonic/gin"
)

type EditorController struct {
	editor       service.EditorService
	redirectBase string
}

func NewEditorController(editor service.EditorService, redirectBase string) *EditorController {
	return &EditorController{
		editor:       editor,
		redirectBase: redirectBase,
	}
}

// GetState handles GET /api/v1/editor
func (ec *EditorController) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, models.EditorResponse{Editor: ec.editor.State()})
}

// UpdateState handles PUT /api/v1/editor - replaces editor fields and re-renders the preview
func (ec *EditorController) UpdateState(c *gin.Context) {
	var req models.UpdateEditorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	state, status, err := ec.editor.Update(req.Settings())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.EditorResponse{Editor: state, Render: status})
}

// CreateNew handles POST /api/v1/editor/new
func (ec *EditorController) CreateNew(c *gin.Context) {
	c.JSON(http.StatusOK, models.EditorResponse{Editor: ec.editor.CreateNew()})
}

// Save handles POST /api/v1/editor/save
func (ec *EditorController) Save(c *gin.Context) {
	rec, err := ec.editor.Save(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// UpdateDestination handles PUT /api/v1/editor/destination - points the current redirect QR code at the editor's destination
func (ec *EditorController) UpdateDestination(c *gin.Context) {
	rec, err := ec.editor.UpdateRedirectDestination(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// ListRecords handles GET /api/v1/qrcodes
func (ec *EditorController) ListRecords(c *gin.Context) {
	records := ec.editor.Records()
	c.JSON(http.StatusOK, models.RecordListResponse{
		Records: records,
		Count:   len(records),
	})
}

// Load handles POST /api/v1/qrcodes/:id/load
func (ec *EditorController) Load(c *gin.Context) {
	state, err := ec.editor.Load(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.EditorResponse{Editor: state})
}

// Duplicate handles POST /api/v1/qrcodes/:id/duplicate
func (ec *EditorController) Duplicate(c *gin.Context) {
	rec, err := ec.editor.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// Delete handles DELETE /api/v1/qrcodes/:id?confirm=true
// Without confirm=true the request is treated as a declined prompt.
func (ec *EditorController) Delete(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	confirmer := service.ConfirmFunc(func(ctx context.Context, prompt string) bool {
		return confirmed
	})

	status, err := ec.editor.Delete(c.Request.Context(), c.Param("id"), confirmer)
	if err != nil {
		respondError(c, err)
		return
	}

	if status == service.DeleteCancelled {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": status,
	})
}

// GetRedirect handles GET /api/v1/qrcodes/:id/redirect
func (ec *EditorController) GetRedirect(c *gin.Context) {
	id := c.Param("id")
	dest, err := ec.editor.RedirectDestination(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if dest == "" {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No redirect destination for this QR code",
		})
		return
	}

	c.JSON(http.StatusOK, models.RedirectResponse{
		ID:          id,
		Destination: dest,
		RedirectURL: service.RedirectURL(ec.redirectBase, id),
	})
}

// GetShortURL handles GET /api/v1/qrcodes/:id/short-url
func (ec *EditorController) GetShortURL(c *gin.Context) {
	id := c.Param("id")
	m, err := ec.editor.ShortURLMapping(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No short URL for this QR code",
		})
		return
	}

	c.JSON(http.StatusOK, models.ShortURLResponse{ID: id, ShortURLMapping: *m})
}

// CreateShortURL handles POST /api/v1/qrcodes/:id/short-url
func (ec *EditorController) CreateShortURL(c *gin.Context) {
	var req models.ShortURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	id := c.Param("id")
	m, err := ec.editor.CreateShortURL(c.Request.Context(), id, req.Destination)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ShortURLResponse{ID: id, ShortURLMapping: *m})
}

// UpdateShortURL handles PUT /api/v1/qrcodes/:id/short-url - replaces the short URL with one for the new destination
func (ec *EditorController) UpdateShortURL(c *gin.Context) {
	var req models.ShortURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	id := c.Param("id")
	existing, err := ec.editor.ShortURLMapping(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No short URL for this QR code",
		})
		return
	}

	short, ok := ec.editor.UpdateShortURLDestination(c.Request.Context(), id, req.Destination)
	if !ok {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to update short URL",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       id,
		"shortUrl": short,
	})
}

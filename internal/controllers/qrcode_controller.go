package controllers

import (
	"net/http"

	"qrstudio/internal/service"

	"github.com/gin-gonic/gin"
)

type QRCodeController struct {
	editor service.EditorService
}

func NewQRCodeController(editor service.EditorService) *QRCodeController {
	return &QRCodeController{
		editor: editor,
	}
}

// Preview handles GET /api/v1/editor/preview.svg - returns the displayed preview, 204 if nothing is rendered
func (qc *QRCodeController) Preview(c *gin.Context) {
	img, status := qc.editor.Preview()
	if status == service.RenderSkipped {
		c.Status(http.StatusNoContent)
		return
	}

	c.Header("Content-Disposition", "inline; filename=preview.svg")
	c.Data(http.StatusOK, "image/svg+xml", img.MarshalSVG())
}

// ExportPNG handles GET /api/v1/editor/export.png
func (qc *QRCodeController) ExportPNG(c *gin.Context) {
	out, status, err := qc.editor.ExportRaster(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if status == service.RenderSkipped {
		c.Status(http.StatusNoContent)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+out.FileName)
	c.Data(http.StatusOK, "image/png", out.PNG)
}

// ExportSVG handles GET /api/v1/editor/export.svg - the displayed preview as a download
func (qc *QRCodeController) ExportSVG(c *gin.Context) {
	out, status := qc.editor.ExportVector()
	if status == service.RenderSkipped {
		c.Status(http.StatusNoContent)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+out.FileName)
	c.Data(http.StatusOK, "image/svg+xml", out.SVG)
}

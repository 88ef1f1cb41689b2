package main

import (
	"net/http"

	"qrstudio/internal/controllers"
	"qrstudio/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type routerDeps struct {
	logger               *zap.Logger
	editorController     *controllers.EditorController
	qrcodeController     *controllers.QRCodeController
	redirectController   *controllers.RedirectController
	preferenceController *controllers.PreferenceController
	generalRateLimiter   *middleware.RateLimiter
	redirectRateLimiter  *middleware.RateLimiter
}

func setupRouter(d routerDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(d.logger))

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Redirect resolver for scanned redirect-mode QR codes
	router.GET("/redirect", d.redirectRateLimiter.LimitMiddleware(), d.redirectController.Resolve)

	api := router.Group("/api/v1")
	api.Use(d.generalRateLimiter.LimitMiddleware())
	{
		editor := api.Group("/editor")
		{
			editor.GET("", d.editorController.GetState)
			editor.PUT("", d.editorController.UpdateState)
			editor.POST("/new", d.editorController.CreateNew)
			editor.POST("/save", d.editorController.Save)
			editor.PUT("/destination", d.editorController.UpdateDestination)

			editor.GET("/preview.svg", d.qrcodeController.Preview)
			editor.GET("/export.png", d.qrcodeController.ExportPNG)
			editor.GET("/export.svg", d.qrcodeController.ExportSVG)
		}

		qrcodes := api.Group("/qrcodes")
		{
			qrcodes.GET("", d.editorController.ListRecords)
			qrcodes.POST("/:id/load", d.editorController.Load)
			qrcodes.POST("/:id/duplicate", d.editorController.Duplicate)
			qrcodes.DELETE("/:id", d.editorController.Delete)
			qrcodes.GET("/:id/redirect", d.editorController.GetRedirect)
			qrcodes.GET("/:id/short-url", d.editorController.GetShortURL)
			qrcodes.POST("/:id/short-url", d.editorController.CreateShortURL)
			qrcodes.PUT("/:id/short-url", d.editorController.UpdateShortURL)
		}

		api.GET("/preferences/dark-mode", d.preferenceController.GetDarkMode)
		api.PUT("/preferences/dark-mode", d.preferenceController.SetDarkMode)
	}

	return router
}

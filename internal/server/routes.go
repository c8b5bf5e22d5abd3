package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/time/rate"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.Use(otelecho.Middleware("skinvault"))
	e.Use(middleware.RequestID())
	e.Use(NewEchoLogger(s.logger))
	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.Use(middleware.BodyLimit("64M"))

	e.GET("/api/health", s.healthHandler)
	e.GET("/api/events", s.manifestEventsHandler)

	var manifestGroup = e.Group("/api/v1/manifest")
	manifestGroup.GET("", s.GetManifest)
	manifestGroup.POST("/refresh", s.RefreshManifest)

	uploadLimiter := middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(5),
			Burst:     10,
			ExpiresIn: time.Minute,
		}),
	})

	var assetGroup = e.Group("/api/v1/assets")
	assetGroup.POST("/skin", s.UploadSkin, uploadLimiter)
	assetGroup.POST("/model", s.UploadModel, uploadLimiter)
	assetGroup.POST("/special", s.UploadSpecial, uploadLimiter)
	assetGroup.POST("/preview", s.SavePreview, uploadLimiter)
	assetGroup.DELETE("", s.DeleteAsset)

	e.POST("/api/v1/export", s.ExportAssets)

	e.GET("/files/*", s.GetFile)

	return e
}

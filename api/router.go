package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/faleproxy/api/handler"
	"github.com/use-agent/faleproxy/api/middleware"
	"github.com/use-agent/faleproxy/config"
	"github.com/use-agent/faleproxy/fetcher"
	"github.com/use-agent/faleproxy/rewriter"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → RequestID → Logger
func NewRouter(f fetcher.Fetcher, rw *rewriter.Rewriter, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(gin.Logger())

	r.GET("/health", handler.Health(rw, startTime))
	r.POST("/fetch", handler.Fetch(f, rw))

	return r
}

package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/umedrahimoff/techstan/app/cfg"
)

// NewServer creates the HTTP server with all routes configured.
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	r.GET("/health", handler.GetHealth)
	r.GET("/stats", handler.GetStats)
	r.GET("/report", handler.GetReport)
	r.GET("/sources", handler.GetSources)
	r.POST("/scan", handler.PostScan)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "Techstan News Bot",
			"version":     cfg.GetVersion(),
			"description": "Tech news monitoring with moderated publication to Telegram",
			"endpoints": map[string]string{
				"health":  "/health",
				"stats":   "/stats",
				"report":  "/report?hours=24",
				"sources": "/sources",
				"scan":    "/scan (POST)",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

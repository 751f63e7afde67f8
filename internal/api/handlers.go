package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsum/internal/config"
	"newsum/internal/summary"
)

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GET /config
func configHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only return non-sensitive config fields
		levels := make([]gin.H, 0, 3)
		for _, l := range summary.Levels() {
			levels = append(levels, gin.H{"level": int(l), "label": l.Label()})
		}
		c.JSON(http.StatusOK, gin.H{
			"server": gin.H{
				"subpath": cfg.Server.Subpath,
			},
			"api": gin.H{
				"base_url": cfg.API.BaseURL,
				"path":     cfg.API.Path,
			},
			"display": gin.H{
				"reflow_width":  cfg.Display.ReflowWidth,
				"default_level": cfg.Display.DefaultLevel,
			},
			"levels":  levels,
			"preview": cfg.Preview.Enabled,
		})
	}
}

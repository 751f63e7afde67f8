package api

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"newsum/internal/config"
)

// rootPath turns the configured subpath into the page route ("/" or "/news").
func rootPath(subpath string) string {
	return path.Join("/", subpath)
}

func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.Default()
	root := rootPath(cfg.Server.Subpath)

	r.SetHTMLTemplate(pageTemplate)

	page := &pageHandler{cfg: cfg, deps: deps, root: root}

	// Single page
	r.GET(root, page.Show)
	if root != "/" {
		// Redirect /subpath/ to /subpath (no duplicate panic)
		r.GET(root+"/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, root)
		})
	}

	group := r.Group(root)
	{
		group.GET("/health", healthHandler)
		group.GET("/config", configHandler(cfg))

		// Plain form submission (works without JavaScript)
		group.POST("/summarize", page.Submit)

		// JSON and websocket flows used by the page script
		group.POST("/api/summarize", SummarizeHandler(cfg, deps))
		group.GET("/api/view/:id", ViewHandler(cfg, deps))
		group.GET("/ws/summarize", WSSummarizeHandler(cfg, deps))
	}
	return r
}

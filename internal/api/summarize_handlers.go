package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"newsum/internal/config"
	"newsum/internal/summarizer"
	"newsum/internal/summary"
	"newsum/internal/view"
)

type SummarizeRequest struct {
	URL string `json:"url"`
}

// SummarizeResponse is the success body of POST /api/summarize and GET /api/view/:id.
type SummarizeResponse struct {
	ViewID  string           `json:"view_id"`
	PageURL string           `json:"page_url"`
	Level   int              `json:"level"`
	Width   int              `json:"width"`
	Content string           `json:"content"`
	Summary *summary.Summary `json:"summary"`
	Preview *view.Preview    `json:"preview,omitempty"`
}

func cardResponse(cfg *config.Config, root, viewID string, e *view.Entry, level summary.Level) SummarizeResponse {
	card := buildCard(cfg, root, viewID, e, level)
	return SummarizeResponse{
		ViewID:  viewID,
		PageURL: pageURL(root, viewID, summary.Level(card.Level)),
		Level:   card.Level,
		Width:   cfg.Display.ReflowWidth,
		Content: card.Content,
		Summary: e.Summary,
		Preview: e.Preview,
	}
}

// POST /api/summarize
func SummarizeHandler(cfg *config.Config, deps Deps) gin.HandlerFunc {
	root := rootPath(cfg.Server.Subpath)
	return func(c *gin.Context) {
		var req SummarizeRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
			return
		}

		id, entry, err := deps.submit(c.Request.Context(), strings.TrimSpace(req.URL))
		if err != nil {
			log.Printf("[API] summarize failed for %s: %v", req.URL, err)
			c.JSON(errorStatus(err), gin.H{
				"error":   err.Error(),
				"message": summarizer.UserMessage(err),
				"status":  summarizer.StatusCode(err),
			})
			return
		}
		c.JSON(http.StatusOK, cardResponse(cfg, root, id, entry, defaultLevel(cfg)))
	}
}

// GET /api/view/:id?level=200
func ViewHandler(cfg *config.Config, deps Deps) gin.HandlerFunc {
	root := rootPath(cfg.Server.Subpath)
	return func(c *gin.Context) {
		id := c.Param("id")
		e, err := deps.Store.Get(c.Request.Context(), id)
		if errors.Is(err, view.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			log.Printf("[API] view %s unavailable: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load view"})
			return
		}

		level := defaultLevel(cfg)
		if raw := c.Query("level"); raw != "" {
			l, err := summary.ParseLevel(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			level = l
		}
		c.JSON(http.StatusOK, cardResponse(cfg, root, id, e, level))
	}
}

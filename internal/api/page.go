package api

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"newsum/internal/config"
	"newsum/internal/summarizer"
	"newsum/internal/summary"
	"newsum/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type pageHandler struct {
	cfg  *config.Config
	deps Deps
	root string
}

type pageData struct {
	Root       string
	SubmitPath string
	WSPath     string
	URL        string
	Error      string
	Notice     string
	Card       *cardData
}

type levelButton struct {
	Level  int
	Label  string
	Active bool
	Href   string
}

type cardData struct {
	ViewID  string
	Level   int
	Content string
	Levels  []levelButton
	Preview *view.Preview
}

func (h *pageHandler) data() pageData {
	return pageData{
		Root:       h.root,
		SubmitPath: path.Join(h.root, "summarize"),
		WSPath:     path.Join(h.root, "ws/summarize"),
	}
}

// pageURL links to the page showing a stored result at a preset.
func pageURL(root, viewID string, level summary.Level) string {
	q := url.Values{}
	q.Set("id", viewID)
	q.Set("level", level.String())
	return root + "?" + q.Encode()
}

func defaultLevel(cfg *config.Config) summary.Level {
	l := summary.Level(cfg.Display.DefaultLevel)
	if !l.Valid() {
		return summary.DefaultLevel
	}
	return l
}

// levelParam reads ?level=, falling back to the configured default.
func levelParam(c *gin.Context, cfg *config.Config) summary.Level {
	if raw := c.Query("level"); raw != "" {
		if l, err := summary.ParseLevel(raw); err == nil {
			return l
		}
	}
	return defaultLevel(cfg)
}

// buildCard renders a stored entry at level. Only the display changes
// between presets; the entry is never re-requested.
func buildCard(cfg *config.Config, root, viewID string, e *view.Entry, level summary.Level) *cardData {
	card := view.NewCard(e.Summary, cfg.Display.ReflowWidth)
	if err := card.Select(level); err != nil {
		card.Select(defaultLevel(cfg))
	}
	data := &cardData{
		ViewID:  viewID,
		Level:   int(card.Level()),
		Content: card.Content(),
		Preview: e.Preview,
	}
	for _, l := range summary.Levels() {
		data.Levels = append(data.Levels, levelButton{
			Level:  int(l),
			Label:  l.Label(),
			Active: l == card.Level(),
			Href:   pageURL(root, viewID, l),
		})
	}
	return data
}

// GET /
func (h *pageHandler) Show(c *gin.Context) {
	data := h.data()
	if id := c.Query("id"); id != "" {
		e, err := h.deps.Store.Get(c.Request.Context(), id)
		switch {
		case err == nil:
			data.URL = e.ArticleURL
			data.Card = buildCard(h.cfg, h.root, id, e, levelParam(c, h.cfg))
		case errors.Is(err, view.ErrNotFound):
			data.Notice = "요약 결과가 만료되었습니다. 다시 요약해 주세요."
		default:
			log.Printf("[API] view %s unavailable: %v", id, err)
			data.Error = summarizer.MessagePrefix + summarizer.MessageServerError
		}
	}
	c.HTML(http.StatusOK, "index.html", data)
}

// POST /summarize
func (h *pageHandler) Submit(c *gin.Context) {
	articleURL := strings.TrimSpace(c.PostForm("url"))
	if articleURL == "" {
		c.Redirect(http.StatusSeeOther, h.root)
		return
	}

	id, _, err := h.deps.submit(c.Request.Context(), articleURL)
	if err != nil {
		log.Printf("[API] summarize failed for %s: %v", articleURL, err)
		data := h.data()
		data.URL = articleURL
		data.Error = summarizer.MessagePrefix + summarizer.UserMessage(err)
		c.HTML(errorStatus(err), "index.html", data)
		return
	}
	c.Redirect(http.StatusSeeOther, pageURL(h.root, id, defaultLevel(h.cfg)))
}

// errorStatus keeps 422 from the API and reports every other failure as 502.
func errorStatus(err error) int {
	if summarizer.StatusCode(err) == http.StatusUnprocessableEntity {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

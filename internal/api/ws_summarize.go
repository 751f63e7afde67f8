package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"newsum/internal/config"
	"newsum/internal/summarizer"
)

// Websocket frame states. Every submission gets "pending" followed by
// exactly one of "success" or "error".
const (
	StatePending = "pending"
	StateSuccess = "success"
	StateError   = "error"
)

// ErrorBusy marks a submission refused because another one is still pending.
const ErrorBusy = "busy"

type WSSummarizeRequest struct {
	URL string `json:"url"`
}

type WSSummarizeEvent struct {
	State     string             `json:"state"`
	RequestID string             `json:"request_id,omitempty"`
	Message   string             `json:"message,omitempty"`
	Error     string             `json:"error,omitempty"`
	Status    int                `json:"status,omitempty"`
	Result    *SummarizeResponse `json:"result,omitempty"`
	PageURL   string             `json:"page_url,omitempty"`
}

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocket connection wrapper with mutex for thread-safe writes
type safeWSConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *safeWSConn) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

// GET /ws/summarize
func WSSummarizeHandler(cfg *config.Config, deps Deps) gin.HandlerFunc {
	root := rootPath(cfg.Server.Subpath)
	return func(c *gin.Context) {
		rawConn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] upgrade failed: %v", err)
			return
		}
		defer rawConn.Close()
		conn := &safeWSConn{conn: rawConn}

		var busy atomic.Bool
		var wg sync.WaitGroup
		defer wg.Wait()

		// Canceled when the socket closes, abandoning any pending request.
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		for {
			_, msg, err := rawConn.ReadMessage()
			if err != nil {
				return
			}

			var req WSSummarizeRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				conn.WriteJSON(WSSummarizeEvent{State: StateError, Error: "invalid JSON", Message: summarizer.MessageServerError})
				continue
			}
			articleURL := strings.TrimSpace(req.URL)
			if articleURL == "" {
				conn.WriteJSON(WSSummarizeEvent{State: StateError, Error: "missing url", Message: summarizer.MessageServerError})
				continue
			}
			if !busy.CompareAndSwap(false, true) {
				conn.WriteJSON(WSSummarizeEvent{State: StateError, Error: ErrorBusy})
				continue
			}

			requestID := uuid.NewString()
			conn.WriteJSON(WSSummarizeEvent{State: StatePending, RequestID: requestID})

			wg.Add(1)
			go func() {
				defer wg.Done()
				defer busy.Store(false)

				id, entry, err := deps.submit(ctx, articleURL)
				if err != nil {
					log.Printf("[WS] %s summarize failed for %s: %v", requestID, articleURL, err)
					conn.WriteJSON(WSSummarizeEvent{
						State:     StateError,
						RequestID: requestID,
						Error:     err.Error(),
						Status:    summarizer.StatusCode(err),
						Message:   summarizer.UserMessage(err),
					})
					return
				}
				resp := cardResponse(cfg, root, id, entry, defaultLevel(cfg))
				conn.WriteJSON(WSSummarizeEvent{
					State:     StateSuccess,
					RequestID: requestID,
					Result:    &resp,
					PageURL:   resp.PageURL,
				})
			}()
		}
	}
}

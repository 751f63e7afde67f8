package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialWS(t *testing.T, s Summarizer) (*websocket.Conn, func()) {
	t.Helper()
	r, _ := testRouter(t, testConfig(), s)
	srv := httptest.NewServer(r)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/summarize"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("WebSocket dial failed: %v", err)
	}
	return ws, func() {
		ws.Close()
		srv.Close()
	}
}

func readEvent(t *testing.T, ws *websocket.Conn) WSSummarizeEvent {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	var ev WSSummarizeEvent
	if err := ws.ReadJSON(&ev); err != nil {
		t.Fatalf("WebSocket read failed: %v", err)
	}
	return ev
}

func TestWSSummarize_PendingThenSuccess(t *testing.T) {
	ws, done := dialWS(t, &fakeSummarizer{})
	defer done()

	if err := ws.WriteJSON(WSSummarizeRequest{URL: "https://news.example.com/a/1"}); err != nil {
		t.Fatalf("WebSocket write failed: %v", err)
	}
	ev := readEvent(t, ws)
	if ev.State != StatePending || ev.RequestID == "" {
		t.Fatalf("expected pending first, got %+v", ev)
	}
	ev2 := readEvent(t, ws)
	if ev2.State != StateSuccess || ev2.RequestID != ev.RequestID {
		t.Fatalf("expected success for the same request, got %+v", ev2)
	}
	if ev2.Result == nil || ev2.Result.Content != "the quick\n brown fox\n jumps\n over the\n lazy dog" {
		t.Errorf("unexpected result %+v", ev2.Result)
	}
	if !strings.Contains(ev2.PageURL, "level=100") {
		t.Errorf("unexpected page url %q", ev2.PageURL)
	}
}

func TestWSSummarize_ErrorMessages(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{apiError(http.StatusUnprocessableEntity), http.StatusUnprocessableEntity, "기사 본문을 가져올 수 없거나 너무 짧습니다."},
		{apiError(http.StatusServiceUnavailable), http.StatusServiceUnavailable, "서버 오류가 발생했습니다."},
		{errTransport, 0, "서버 오류가 발생했습니다."},
	}
	for _, tc := range cases {
		ws, done := dialWS(t, &fakeSummarizer{err: tc.err})
		ws.WriteJSON(WSSummarizeRequest{URL: "https://news.example.com/a/1"})
		if ev := readEvent(t, ws); ev.State != StatePending {
			t.Errorf("expected pending, got %+v", ev)
		}
		ev := readEvent(t, ws)
		if ev.State != StateError || ev.Status != tc.status || ev.Message != tc.msg {
			t.Errorf("unexpected error event %+v", ev)
		}
		done()
	}
}

func TestWSSummarize_BusyWhilePending(t *testing.T) {
	s := &fakeSummarizer{release: make(chan struct{})}
	ws, done := dialWS(t, s)
	defer done()

	ws.WriteJSON(WSSummarizeRequest{URL: "https://news.example.com/a/1"})
	if ev := readEvent(t, ws); ev.State != StatePending {
		t.Fatalf("expected pending, got %+v", ev)
	}

	ws.WriteJSON(WSSummarizeRequest{URL: "https://news.example.com/a/2"})
	if ev := readEvent(t, ws); ev.State != StateError || ev.Error != ErrorBusy {
		t.Fatalf("expected busy rejection, got %+v", ev)
	}

	close(s.release)
	if ev := readEvent(t, ws); ev.State != StateSuccess {
		t.Fatalf("expected first request to finish, got %+v", ev)
	}
	if s.Calls() != 1 {
		t.Errorf("busy submission must not reach the API, calls=%d", s.Calls())
	}
}

func TestWSSummarize_InvalidPayloads(t *testing.T) {
	ws, done := dialWS(t, &fakeSummarizer{})
	defer done()

	ws.WriteMessage(websocket.TextMessage, []byte("{nope"))
	if ev := readEvent(t, ws); ev.State != StateError || ev.Error != "invalid JSON" {
		t.Errorf("expected invalid JSON error, got %+v", ev)
	}
	ws.WriteJSON(WSSummarizeRequest{URL: ""})
	if ev := readEvent(t, ws); ev.State != StateError || ev.Error != "missing url" {
		t.Errorf("expected missing url error, got %+v", ev)
	}
}

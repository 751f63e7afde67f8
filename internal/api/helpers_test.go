package api

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"newsum/internal/config"
	"newsum/internal/preview"
	"newsum/internal/summarizer"
	"newsum/internal/summary"
	"newsum/internal/view"
)

type fakeSummarizer struct {
	calls   int32
	err     error
	release chan struct{}
}

func (f *fakeSummarizer) Summarize(ctx context.Context, articleURL string) (*summary.Summary, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &summary.Summary{
		ID: "sum-1",
		Variants: map[summary.Level]string{
			summary.Level100: "the quick brown fox jumps over the lazy dog",
			summary.Level200: "two hundred character variant of the article summary",
			summary.Level300: "three hundred character variant of the article summary with more detail",
		},
	}, nil
}

func (f *fakeSummarizer) Calls() int {
	return int(atomic.LoadInt32(&f.calls))
}

type fakePreview struct {
	err   error
	block chan struct{}
}

func (f fakePreview) Fetch(ctx context.Context, pageURL string) (*preview.Article, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &preview.Article{URL: pageURL, Title: "Fox news of the day", SiteName: "Example Daily"}, nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Display.ReflowWidth = 10
	return cfg
}

func testRouter(t *testing.T, cfg *config.Config, s Summarizer) (*gin.Engine, view.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := view.NewMemoryStore(time.Minute)
	r := SetupRouter(cfg, Deps{Summarizer: s, Store: store, Preview: fakePreview{}})
	return r, store
}

func apiError(status int) error {
	return &summarizer.APIError{StatusCode: status, Body: `{"detail":"x"}`}
}

var errTransport = errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")

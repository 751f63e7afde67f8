package api

import (
	"context"
	"log"
	"time"

	"newsum/internal/preview"
	"newsum/internal/summary"
	"newsum/internal/view"
)

// Summarizer turns an article URL into its summary variants.
type Summarizer interface {
	Summarize(ctx context.Context, articleURL string) (*summary.Summary, error)
}

// PreviewFetcher loads the article header shown above the card.
type PreviewFetcher interface {
	Fetch(ctx context.Context, pageURL string) (*preview.Article, error)
}

// DefaultPreviewWait is how long a finished summary waits for its preview.
const DefaultPreviewWait = 1500 * time.Millisecond

// Deps are the collaborators the web client needs. Preview may be nil.
type Deps struct {
	Summarizer Summarizer
	Store      view.Store
	Preview    PreviewFetcher

	// PreviewWait bounds the wait for the preview once the summary is in.
	// Zero means DefaultPreviewWait.
	PreviewWait time.Duration
}

// submit runs one summarize request (with the preview fetched alongside)
// and stores the result for later renders. A preview that is not ready
// shortly after the summary is dropped.
func (d Deps) submit(ctx context.Context, articleURL string) (string, *view.Entry, error) {
	previewCh := make(chan *view.Preview, 1)
	go func() {
		previewCh <- d.fetchPreview(ctx, articleURL)
	}()

	result, err := d.Summarizer.Summarize(ctx, articleURL)
	if err != nil {
		return "", nil, err
	}

	entry := &view.Entry{
		ArticleURL: articleURL,
		Summary:    result,
		Preview:    d.awaitPreview(ctx, previewCh),
		CreatedAt:  time.Now(),
	}
	id, err := d.Store.Put(ctx, entry)
	if err != nil {
		return "", nil, err
	}
	return id, entry, nil
}

func (d Deps) awaitPreview(ctx context.Context, previewCh <-chan *view.Preview) *view.Preview {
	wait := d.PreviewWait
	if wait <= 0 {
		wait = DefaultPreviewWait
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case p := <-previewCh:
		return p
	case <-timer.C:
		log.Printf("[API] preview not ready after %s, rendering without it", wait)
		return nil
	case <-ctx.Done():
		return nil
	}
}

// fetchPreview is best effort: failures only cost the header.
func (d Deps) fetchPreview(ctx context.Context, articleURL string) *view.Preview {
	if d.Preview == nil {
		return nil
	}
	a, err := d.Preview.Fetch(ctx, articleURL)
	if err != nil {
		log.Printf("[API] preview skipped for %s: %v", articleURL, err)
		return nil
	}
	return &view.Preview{Title: a.Title, SiteName: a.SiteName, Excerpt: a.Excerpt}
}

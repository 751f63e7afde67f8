// Package preview fetches the header information of a news article
// (title, site, excerpt) for display above the summary card.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"newsum/internal/config"
)

const maxExcerptRunes = 160

// ErrBlockedAddress is returned when a page resolves to a loopback, private
// or link-local address.
var ErrBlockedAddress = errors.New("address not allowed for preview")

// Article is the preview of one page.
type Article struct {
	URL      string
	Title    string
	SiteName string
	Excerpt  string
}

// Fetcher downloads pages and extracts their preview.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxSizeMB  int

	// allowPrivate skips the address check (tests against httptest servers).
	allowPrivate bool
}

// NewFetcher creates a fetcher with the given timeout, User-Agent and body size limit.
func NewFetcher(timeout time.Duration, userAgent string, maxSizeMB int) *Fetcher {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	f := &Fetcher{
		userAgent: userAgent,
		maxSizeMB: maxSizeMB,
	}
	dialer := &net.Dialer{
		Timeout: timeout,
		Control: f.checkAddress,
	}
	f.httpClient = &http.Client{
		Timeout: timeout,
		// No proxy: the dial check must see the page's own address.
		Transport: &http.Transport{
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: timeout,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
	return f
}

// checkAddress runs after DNS resolution for every connection, redirects included.
func (f *Fetcher) checkAddress(network, address string, _ syscall.RawConn) error {
	if f.allowPrivate {
		return nil
	}
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || !publicIP(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
	}
	return nil
}

func publicIP(ip net.IP) bool {
	return !(ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast())
}

// NewFetcherFromConfig returns nil when previews are disabled.
func NewFetcherFromConfig(cfg *config.Config) *Fetcher {
	if !cfg.Preview.Enabled {
		return nil
	}
	return NewFetcher(
		time.Duration(cfg.Preview.TimeoutSeconds)*time.Second,
		cfg.Preview.UserAgent,
		cfg.Preview.MaxPageSizeMB,
	)
}

// Fetch downloads pageURL and extracts its preview.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Article, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") {
		return nil, fmt.Errorf("URL must start with http:// or https://")
	}

	html, err := f.fetchHTML(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}

	a, err := Extract(parsedURL, html)
	if err != nil {
		return nil, err
	}
	log.Printf("[Preview] %s → %q", pageURL, a.Title)
	return a, nil
}

func (f *Fetcher) fetchHTML(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "application/xhtml") {
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}

	maxBytes := int64(f.maxSizeMB * 1024 * 1024)
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(body)) >= maxBytes {
		return nil, fmt.Errorf("content exceeds size limit of %dMB", f.maxSizeMB)
	}
	return body, nil
}

// Extract reads the Open Graph tags and <title> of html, and fills whatever
// is still missing from the readability extraction of the page.
func Extract(pageURL *url.URL, html []byte) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	a := &Article{URL: pageURL.String()}
	a.Title = meta(doc, "og:title")
	if a.Title == "" {
		a.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	a.SiteName = meta(doc, "og:site_name")
	a.Excerpt = meta(doc, "og:description")
	if a.Excerpt == "" {
		a.Excerpt = meta(doc, "description")
	}

	if a.Title == "" || a.SiteName == "" || a.Excerpt == "" {
		article, err := readability.FromReader(bytes.NewReader(html), pageURL)
		if err != nil {
			log.Printf("[Preview] readability failed for %s: %v", pageURL, err)
		} else {
			if a.Title == "" {
				a.Title = strings.TrimSpace(article.Title)
			}
			if a.SiteName == "" {
				a.SiteName = strings.TrimSpace(article.SiteName)
			}
			if a.Excerpt == "" {
				a.Excerpt = strings.TrimSpace(article.Excerpt)
			}
		}
	}

	if a.SiteName == "" {
		a.SiteName = pageURL.Hostname()
	}
	a.Excerpt = truncate(collapseSpaces(a.Excerpt), maxExcerptRunes)
	return a, nil
}

// meta returns the content of <meta property=name> or <meta name=name>.
func meta(doc *goquery.Document, name string) string {
	sel := doc.Find(fmt.Sprintf(`meta[property=%q], meta[name=%q]`, name, name)).First()
	content, _ := sel.Attr("content")
	return strings.TrimSpace(content)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:max-1])) + "…"
}

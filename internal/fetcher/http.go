package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/williampepple1/index-scraper/internal/config"
	"github.com/williampepple1/index-scraper/internal/extraction"
	"github.com/williampepple1/index-scraper/internal/proxy"
	scrapeerrors "github.com/williampepple1/index-scraper/pkg/errors"
)

// HTTPBrowser fetches pages without executing JavaScript. It suits pages
// whose target element is present in the served HTML.
type HTTPBrowser struct {
	Config *config.ScraperConfig
	Proxy  *proxy.Manager
}

// NewHTTPBrowser creates a new plain HTTP browser
func NewHTTPBrowser(config *config.ScraperConfig, proxies *proxy.Manager) *HTTPBrowser {
	return &HTTPBrowser{
		Config: config,
		Proxy:  proxies,
	}
}

// Open prepares a client with its own transport
func (b *HTTPBrowser) Open(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, scrapeerrors.NewFetch("", "context done before session start", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if _, err := b.Proxy.ApplyToTransport(transport); err != nil {
		return nil, err
	}

	return &httpSession{
		client:     &http.Client{Transport: transport},
		transport:  transport,
		userAgents: b.Config.UserAgents,
	}, nil
}

type httpSession struct {
	client     *http.Client
	transport  *http.Transport
	userAgents []string
	closed     bool
}

func (s *httpSession) Render(ctx context.Context, url, classSelector string, wait time.Duration) (string, error) {
	if s.closed {
		return "", scrapeerrors.NewFetch(url, "browser session already closed", nil)
	}

	reqCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", fetchError(url, "failed to create request", err)
	}

	// Set a random user agent if available
	if len(s.userAgents) > 0 {
		req.Header.Set("User-Agent", s.userAgents[rand.Intn(len(s.userAgents))])
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fetchError(url, fmt.Sprintf("timed out after %s", wait), err)
		}
		return "", fetchError(url, "failed to fetch URL", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fetchError(url, fmt.Sprintf("received non-200 status code: %d", resp.StatusCode), nil)
	}

	// Convert to UTF-8 based on the Content-Type header and the body
	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fetchError(url, "failed to decode response body", err)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fetchError(url, "failed to read response body", err)
	}
	html := string(data)

	doc, err := extraction.Parse(html)
	if err != nil {
		return "", fetchError(url, "failed to parse response body", err)
	}
	if !extraction.HasElement(doc, classSelector) {
		return "", fetchError(url, fmt.Sprintf("element .%s not present in served HTML", strings.TrimSpace(classSelector)), nil)
	}

	return html, nil
}

func (s *httpSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.transport.CloseIdleConnections()
	return nil
}

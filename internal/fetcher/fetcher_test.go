package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williampepple1/index-scraper/internal/config"
	"github.com/williampepple1/index-scraper/internal/proxy"
	scrapeerrors "github.com/williampepple1/index-scraper/pkg/errors"
)

func TestNewSelectsEngine(t *testing.T) {
	cfg := config.CreateDefault()

	b, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &ChromedpBrowser{}, b)

	cfg.Browser.Engine = config.EngineRod
	b, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &RodBrowser{}, b)

	cfg.Browser.Engine = config.EngineHTTP
	b, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &HTTPBrowser{}, b)

	cfg.Browser.Engine = "phantomjs"
	_, err = New(cfg)
	assert.True(t, scrapeerrors.IsConfiguration(err))
}

func newHTTPBrowser() *HTTPBrowser {
	cfg := config.CreateDefault()
	return NewHTTPBrowser(&cfg.Scraper, proxy.NewManager(&cfg.Proxies))
}

func TestHTTPSessionRender(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body><span class="value big">42</span></body></html>`))
	}))
	defer server.Close()

	session, err := newHTTPBrowser().Open(context.Background())
	require.NoError(t, err)
	defer session.Close()

	html, err := session.Render(context.Background(), server.URL, "value", time.Second)
	require.NoError(t, err)
	assert.Contains(t, html, `<span class="value big">42</span>`)
}

func TestHTTPSessionRenderConvertsCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// "Índice" in ISO-8859-1
		w.Write([]byte("<html><body><span class=\"value\">\xcdndice 17</span></body></html>"))
	}))
	defer server.Close()

	session, err := newHTTPBrowser().Open(context.Background())
	require.NoError(t, err)
	defer session.Close()

	html, err := session.Render(context.Background(), server.URL, "value", time.Second)
	require.NoError(t, err)
	assert.Contains(t, html, "Índice 17")
}

func TestHTTPSessionRenderFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/error":
			w.WriteHeader(http.StatusInternalServerError)
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`<span class="value">1</span>`))
		default:
			w.Write([]byte(`<html><body><p>loading...</p></body></html>`))
		}
	}))
	defer server.Close()

	session, err := newHTTPBrowser().Open(context.Background())
	require.NoError(t, err)
	defer session.Close()

	_, err = session.Render(context.Background(), server.URL+"/error", "value", time.Second)
	assert.True(t, scrapeerrors.IsFetch(err))
	assert.Contains(t, err.Error(), "non-200 status code: 500")

	_, err = session.Render(context.Background(), server.URL+"/missing", "value", time.Second)
	assert.True(t, scrapeerrors.IsFetch(err))
	assert.Contains(t, err.Error(), "not present")

	_, err = session.Render(context.Background(), server.URL+"/slow", "value", 20*time.Millisecond)
	assert.True(t, scrapeerrors.IsFetch(err))
	assert.Contains(t, err.Error(), "timed out")
}

func TestHTTPSessionClosed(t *testing.T) {
	session, err := newHTTPBrowser().Open(context.Background())
	require.NoError(t, err)

	require.NoError(t, session.Close())
	require.NoError(t, session.Close())

	_, err = session.Render(context.Background(), "http://127.0.0.1:1", "value", time.Second)
	assert.True(t, scrapeerrors.IsFetch(err))
}

func TestHTTPBrowserOpenCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newHTTPBrowser().Open(ctx)
	assert.True(t, scrapeerrors.IsFetch(err))
}

func TestChromedpAllocatorOptions(t *testing.T) {
	cfg := config.CreateDefault()
	cfg.Proxies.Enabled = true
	cfg.Proxies.List = []string{"http://127.0.0.1:3128"}

	b := NewChromedpBrowser(&cfg.Browser, proxy.NewManager(&cfg.Proxies))
	opts, err := b.allocatorOptions()
	require.NoError(t, err)
	assert.Greater(t, len(opts), 0)

	cfg.Proxies.List = []string{"not a proxy"}
	_, err = b.allocatorOptions()
	assert.True(t, scrapeerrors.IsConfiguration(err))
}

func TestRodLauncherFlags(t *testing.T) {
	cfg := config.CreateDefault()
	cfg.Proxies.Enabled = true
	cfg.Proxies.List = []string{"http://127.0.0.1:3128"}

	b := NewRodBrowser(&cfg.Browser, proxy.NewManager(&cfg.Proxies))
	l, err := b.launcher(context.Background())
	require.NoError(t, err)

	assert.True(t, l.Has("no-sandbox"))
	assert.True(t, l.Has("disable-dev-shm-usage"))
	assert.Equal(t, "http://127.0.0.1:3128", l.Get("proxy-server"))
}

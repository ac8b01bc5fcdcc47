package proxy

import (
	"math/rand"
	"net/http"
	"net/url"

	"github.com/williampepple1/index-scraper/internal/config"
	scrapeerrors "github.com/williampepple1/index-scraper/pkg/errors"
)

// Manager picks the proxy a session should go through
type Manager struct {
	Config *config.ProxyConfig
}

// NewManager creates a new proxy manager
func NewManager(config *config.ProxyConfig) *Manager {
	return &Manager{
		Config: config,
	}
}

// GetProxyURL returns a proxy URL from the configuration, or nil when
// proxies are disabled
func (m *Manager) GetProxyURL() (*url.URL, error) {
	if m == nil || m.Config == nil || !m.Config.Enabled || len(m.Config.List) == 0 {
		return nil, nil
	}

	proxyStr := m.Config.List[0]
	if m.Config.Rotate && len(m.Config.List) > 1 {
		proxyStr = m.Config.List[rand.Intn(len(m.Config.List))]
	}

	proxyURL, err := url.Parse(proxyStr)
	if err != nil {
		return nil, scrapeerrors.NewConfiguration("invalid proxy URL "+proxyStr, err)
	}
	if proxyURL.Scheme == "" || proxyURL.Host == "" {
		return nil, scrapeerrors.NewConfiguration("proxy URL needs a scheme and host: "+proxyStr, nil)
	}

	if m.Config.Auth.Username != "" && m.Config.Auth.Password != "" {
		proxyURL.User = url.UserPassword(m.Config.Auth.Username, m.Config.Auth.Password)
	}

	return proxyURL, nil
}

// ApplyToTransport applies the proxy to an HTTP transport and returns the
// proxy used, or "" when none
func (m *Manager) ApplyToTransport(transport *http.Transport) (string, error) {
	proxyURL, err := m.GetProxyURL()
	if err != nil {
		return "", err
	}

	if proxyURL != nil {
		transport.Proxy = http.ProxyURL(proxyURL)
		return proxyURL.Redacted(), nil
	}

	return "", nil
}

// ServerAddress returns the proxy in the scheme://host form Chrome's
// --proxy-server flag accepts. Chrome does not take credentials there.
func (m *Manager) ServerAddress() (string, error) {
	proxyURL, err := m.GetProxyURL()
	if err != nil || proxyURL == nil {
		return "", err
	}
	return proxyURL.Scheme + "://" + proxyURL.Host, nil
}

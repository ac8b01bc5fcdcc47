package feargreed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williampepple1/index-scraper/internal/config"
	"github.com/williampepple1/index-scraper/internal/fetcher"
	"github.com/williampepple1/index-scraper/internal/sites"
)

type stubBrowser struct {
	html      string
	gotURL    string
	gotSel    string
	gotWait   time.Duration
	sessions  int
	closeCall int
}

func (b *stubBrowser) Open(ctx context.Context) (fetcher.Session, error) {
	b.sessions++
	return b, nil
}

func (b *stubBrowser) Render(ctx context.Context, url, classSelector string, wait time.Duration) (string, error) {
	b.gotURL, b.gotSel, b.gotWait = url, classSelector, wait
	return b.html, nil
}

func (b *stubBrowser) Close() error {
	b.closeCall++
	return nil
}

func TestExtractNumber(t *testing.T) {
	v, ok := ExtractNumber("38")
	assert.True(t, ok)
	assert.Equal(t, 38, v)

	v, ok = ExtractNumber("Now: 71%")
	assert.True(t, ok)
	assert.Equal(t, 71, v)

	_, ok = ExtractNumber("420")
	assert.False(t, ok)

	_, ok = ExtractNumber("--")
	assert.False(t, ok)
}

func TestTarget(t *testing.T) {
	cfg := config.CreateDefault()
	target := Target(&cfg.Scraper)
	assert.Equal(t, URL, target.URL)
	assert.Equal(t, ClassSelector, target.ClassSelector)
	assert.Equal(t, 15*time.Second, target.WaitTimeout)
	assert.Equal(t, time.Hour, target.CacheTimeout)
	assert.NoError(t, target.Validate())
}

func TestNew(t *testing.T) {
	cfg := config.CreateDefault()
	b := &stubBrowser{html: `<div class="apexcharts-datalabels"><text class="apexcharts-text apexcharts-datalabel-value">46</text></div>`}

	s, err := New(&cfg.Scraper, b)
	require.NoError(t, err)

	v, ok := s.GetValue(context.Background())
	require.True(t, ok)
	assert.Equal(t, 46, v)
	assert.Equal(t, URL, b.gotURL)
	assert.Equal(t, ClassSelector, b.gotSel)
	assert.Equal(t, 15*time.Second, b.gotWait)
	assert.Equal(t, 1, b.sessions)
	assert.Equal(t, 1, b.closeCall)
}

func TestSentiment(t *testing.T) {
	tests := map[int]string{
		-1:  "Unknown",
		0:   "Extreme Fear",
		24:  "Extreme Fear",
		25:  "Fear",
		44:  "Fear",
		45:  "Neutral",
		55:  "Neutral",
		56:  "Greed",
		75:  "Greed",
		76:  "Extreme Greed",
		100: "Extreme Greed",
		101: "Unknown",
	}
	for value, want := range tests {
		assert.Equal(t, want, Sentiment(value), value)
	}
}

func TestRegistered(t *testing.T) {
	site, ok := sites.Get(Name)
	require.True(t, ok)
	assert.Equal(t, URL, site.URL)
	assert.Equal(t, ClassSelector, site.ClassSelector)
	assert.NotNil(t, site.New)
	assert.Equal(t, "Neutral", site.Label(50))
}

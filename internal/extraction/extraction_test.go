package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scrapeerrors "github.com/williampepple1/index-scraper/pkg/errors"
)

const page = `<html><body>
<div class="chart">
  <span class="label">Now</span>
  <span class="apexcharts-text apexcharts-datalabel-value">
     42
  </span>
  <span class="apexcharts-datalabel-value">99</span>
</div>
<p class="apexcharts-datalabel-value-old">7</p>
</body></html>`

func TestExtractText(t *testing.T) {
	text, err := ExtractText(page, "apexcharts-datalabel-value")
	require.NoError(t, err)
	assert.Equal(t, "42", text)
}

func TestExtractTextMatchesClassTokenOnly(t *testing.T) {
	text, err := ExtractText(page, "apexcharts-datalabel-value-old")
	require.NoError(t, err)
	assert.Equal(t, "7", text)

	_, err = ExtractText(page, "apexcharts-datalabel")
	assert.True(t, scrapeerrors.IsNotFound(err))
}

func TestExtractTextNestedText(t *testing.T) {
	html := `<div class="value"> Index: <b>17</b> (Fear) </div>`
	text, err := ExtractText(html, "value")
	require.NoError(t, err)
	assert.Equal(t, "Index: 17 (Fear)", text)
}

func TestExtractTextNotFound(t *testing.T) {
	_, err := ExtractText("<html><body><p>nothing</p></body></html>", "value")
	require.Error(t, err)
	assert.True(t, scrapeerrors.IsNotFound(err))
	assert.Contains(t, err.Error(), ".value")
}

func TestExtractorExtract(t *testing.T) {
	doc, err := Parse(page)
	require.NoError(t, err)

	e := NewExtractor("label")
	text, err := e.Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, "Now", text)

	assert.True(t, HasElement(doc, "chart"))
	assert.False(t, HasElement(doc, "missing"))
}

func TestClassQuery(t *testing.T) {
	assert.Equal(t, `[class~="apexcharts-datalabel-value"]`, ClassQuery("apexcharts-datalabel-value"))
	assert.Equal(t, `[class~="a\"b"]`, ClassQuery(`a"b`))

	doc, err := Parse(page)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Find(ClassQuery("apexcharts-datalabel-value")).Length())
}

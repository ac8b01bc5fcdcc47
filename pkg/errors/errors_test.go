package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrapeErrorMessage(t *testing.T) {
	cause := stderrors.New("context deadline exceeded")

	err := NewFetch("https://example.com", "failed to fetch page content", cause)
	assert.Equal(t, "[fetch] https://example.com: failed to fetch page content - context deadline exceeded", err.Error())
	assert.ErrorIs(t, err, cause)

	err = NewNotFound("https://example.com", "value")
	assert.Equal(t, "[not_found] https://example.com (.value): could not find the target element on the page", err.Error())

	err = NewConfiguration("unknown engine", nil)
	assert.Equal(t, "[configuration] -: unknown engine", err.Error())
}

func TestKindHelpers(t *testing.T) {
	wrapped := fmt.Errorf("scrape: %w", NewParse("https://example.com", "bad document", nil))

	assert.Equal(t, KindParse, KindOf(wrapped))
	assert.True(t, IsParse(wrapped))
	assert.False(t, IsFetch(wrapped))
	assert.False(t, IsNotFound(wrapped))

	assert.True(t, IsFetch(NewFetch("u", "m", nil)))
	assert.True(t, IsNotFound(NewNotFound("u", "s")))
	assert.True(t, IsConfiguration(NewConfiguration("m", nil)))

	assert.Equal(t, Kind(""), KindOf(stderrors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// Kind represents the kind of scrape failure
type Kind string

const (
	// KindFetch represents navigation, rendering or timeout failures
	KindFetch Kind = "fetch"
	// KindNotFound represents a loaded page without the target element
	KindNotFound Kind = "not_found"
	// KindParse represents a document that could not be parsed
	KindParse Kind = "parse"
	// KindConfiguration represents invalid configuration
	KindConfiguration Kind = "configuration"
)

// ScrapeError represents a scraper-specific error
type ScrapeError struct {
	Kind     Kind
	URL      string
	Selector string
	Message  string
	Err      error
	Time     time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	target := e.URL
	if e.Selector != "" {
		target = fmt.Sprintf("%s (.%s)", e.URL, e.Selector)
	}
	if target == "" {
		target = "-"
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Kind, target, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, target, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// New creates a new ScrapeError
func New(kind Kind, url, selector, message string, err error) *ScrapeError {
	return &ScrapeError{
		Kind:     kind,
		URL:      url,
		Selector: selector,
		Message:  message,
		Err:      err,
		Time:     time.Now(),
	}
}

// NewFetch creates a new fetch error carrying the underlying cause
func NewFetch(url, message string, err error) *ScrapeError {
	return New(KindFetch, url, "", message, err)
}

// NewNotFound creates a new element-not-found error
func NewNotFound(url, selector string) *ScrapeError {
	return New(KindNotFound, url, selector, "could not find the target element on the page", nil)
}

// NewParse creates a new parse error
func NewParse(url, message string, err error) *ScrapeError {
	return New(KindParse, url, "", message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(KindConfiguration, "", "", message, err)
}

// KindOf returns the kind of the first ScrapeError in err's chain, or ""
func KindOf(err error) Kind {
	var se *ScrapeError
	if stderrors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// IsFetch reports whether err is a fetch error
func IsFetch(err error) bool {
	return KindOf(err) == KindFetch
}

// IsNotFound reports whether err is an element-not-found error
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsParse reports whether err is a parse error
func IsParse(err error) bool {
	return KindOf(err) == KindParse
}

// IsConfiguration reports whether err is a configuration error
func IsConfiguration(err error) bool {
	return KindOf(err) == KindConfiguration
}

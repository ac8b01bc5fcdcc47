package models

import (
	"time"
)

// Reading represents one GetValue outcome as written to the output
type Reading struct {
	Site       string        `json:"site,omitempty" yaml:"site,omitempty"`
	URL        string        `json:"url" yaml:"url"`
	Selector   string        `json:"selector" yaml:"selector"`
	Value      *int          `json:"value" yaml:"value"`
	Label      string        `json:"label,omitempty" yaml:"label,omitempty"`
	Raw        string        `json:"raw,omitempty" yaml:"raw,omitempty"`
	Status     string        `json:"status" yaml:"status"`
	Cached     bool          `json:"cached" yaml:"cached"`
	CapturedAt *time.Time    `json:"captured_at,omitempty" yaml:"captured_at,omitempty"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
	Err        string        `json:"error,omitempty" yaml:"error,omitempty"`
	Timestamp  time.Time     `json:"timestamp" yaml:"timestamp"`
}

// HasValue reports whether the reading carries a value
func (r Reading) HasValue() bool {
	return r.Value != nil
}

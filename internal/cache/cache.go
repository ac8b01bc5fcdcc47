package cache

import (
	"time"
)

// Slot holds a single captured raw value and the time it was captured.
// It is not safe for concurrent use.
type Slot struct {
	raw        string
	capturedAt time.Time
	set        bool
}

// IsFresh reports whether a value exists and now - capturedAt < ttl
func (s *Slot) IsFresh(now time.Time, ttl time.Duration) bool {
	if !s.set {
		return false
	}
	return now.Sub(s.capturedAt) < ttl
}

// Store overwrites the raw text and capture time together
func (s *Slot) Store(raw string, now time.Time) {
	*s = Slot{raw: raw, capturedAt: now, set: true}
}

// Raw returns the last stored raw text
func (s *Slot) Raw() (string, bool) {
	return s.raw, s.set
}

// CapturedAt returns when the current value was stored
func (s *Slot) CapturedAt() (time.Time, bool) {
	return s.capturedAt, s.set
}

// Age returns how old the current value is at now, or 0 when empty
func (s *Slot) Age(now time.Time) time.Duration {
	if !s.set {
		return 0
	}
	return now.Sub(s.capturedAt)
}

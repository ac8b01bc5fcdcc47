package cleanup

import (
	"regexp"
	"strconv"
)

// Func maps raw extracted text to a value. Implementations must be total:
// malformed input yields (0, false), never a panic.
type Func func(text string) (int, bool)

var digitRun = regexp.MustCompile(`[0-9]+`)

// FirstInteger returns the first run of ASCII decimal digits in text.
// A run that does not fit in an int is treated as absent.
func FirstInteger(text string) (int, bool) {
	match := digitRun.FindString(text)
	if match == "" {
		return 0, false
	}

	value, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return value, true
}

// InRange wraps next and drops values outside [min, max]
func InRange(min, max int, next Func) Func {
	return func(text string) (int, bool) {
		value, ok := next(text)
		if !ok || value < min || value > max {
			return 0, false
		}
		return value, true
	}
}

// Apply runs fn, falling back to FirstInteger when fn is nil
func Apply(fn Func, text string) (int, bool) {
	if fn == nil {
		fn = FirstInteger
	}
	return fn(text)
}

package cleanup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstInteger(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
		ok    bool
	}{
		{"plain number", "42", 42, true},
		{"embedded", "Index: 17 (Fear)", 17, true},
		{"first run wins", "12 then 99", 12, true},
		{"leading zeros", "007", 7, true},
		{"no digits", "N/A", 0, false},
		{"empty", "", 0, false},
		{"minus sign ignored", "-5", 5, true},
		{"decimal takes integer part", "3.75", 3, true},
		{"non ascii digits ignored", "٤٢", 0, false},
		{"overflow is absent", "99999999999999999999999999", 0, false},
		{"whitespace", "  \n 8 \t", 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstInteger(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFirstIntegerNeverPanics(t *testing.T) {
	inputs := []string{"\x00", "\xff\xfe", "((((", "1e309", "0x1F", "🙂 5"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { FirstInteger(in) }, in)
	}
}

func TestInRange(t *testing.T) {
	fn := InRange(0, 100, FirstInteger)

	v, ok := fn("55")
	assert.True(t, ok)
	assert.Equal(t, 55, v)

	_, ok = fn("101")
	assert.False(t, ok)

	_, ok = fn("none")
	assert.False(t, ok)

	v, ok = fn("0")
	assert.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestApplyDefaultsToFirstInteger(t *testing.T) {
	v, ok := Apply(nil, "value 9")
	assert.True(t, ok)
	assert.Equal(t, 9, v)

	v, ok = Apply(func(string) (int, bool) { return 1, true }, "value 9")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

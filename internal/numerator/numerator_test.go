package numerator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		scope    string
		period   string
		counter  int64
		expected string
	}{
		{
			name:     "first checkin of a month",
			scope:    ScopeCheckin,
			period:   "202608",
			counter:  1,
			expected: "CI20260800001",
		},
		{
			name:     "checkout counter is zero padded",
			scope:    ScopeCheckout,
			period:   "202601",
			counter:  42,
			expected: "CO20260100042",
		},
		{
			name:     "counter wider than the pad",
			scope:    ScopeCheckin,
			period:   "202612",
			counter:  123456,
			expected: "CI202612123456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.scope, tt.period, tt.counter))
		})
	}
}

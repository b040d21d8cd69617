package format

import (
	"testing"
	"time"
)

func TestAge(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "now"},
		{5 * time.Minute, "5m"},
		{90 * time.Minute, "1h"},
		{26 * time.Hour, "1d"},
		{6 * 24 * time.Hour, "6d"},
		{10 * 24 * time.Hour, "1w"},
		{45 * 24 * time.Hour, "1mo"},
		{100 * 24 * time.Hour, "3mo"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Age(tt.d); got != tt.want {
				t.Errorf("Age(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

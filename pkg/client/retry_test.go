package client

import (
	"testing"
	"time"
)

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		statusCode int
		expected   bool
	}{
		{200, false},
		{201, false},
		{400, false},
		{401, false},
		{404, false},
		{429, true},
		{500, true},
		{502, true},
		{503, true},
	}

	for _, tt := range tests {
		if got := ShouldRetry(tt.statusCode); got != tt.expected {
			t.Errorf("ShouldRetry(%d) = %v, want %v", tt.statusCode, got, tt.expected)
		}
	}
}

func TestCalculateBackoffBounds(t *testing.T) {
	for attempt := 0; attempt < 10; attempt++ {
		d := CalculateBackoff(attempt)
		if d < 0 {
			t.Errorf("attempt %d: negative backoff %v", attempt, d)
		}
		// 30s cap times the maximum jitter factor.
		if d > time.Duration(float64(30*time.Second)*1.3) {
			t.Errorf("attempt %d: backoff %v exceeds jittered cap", attempt, d)
		}
	}
}

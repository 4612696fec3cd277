package services

import (
	"context"
	"fmt"
	"testing"
)

type fakeTimeoutError struct{}

func (fakeTimeoutError) Error() string   { return "i/o timeout" }
func (fakeTimeoutError) Timeout() bool   { return true }
func (fakeTimeoutError) Temporary() bool { return true }

func TestRetryableErrorClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled context", context.Canceled, false},
		{"expired context", context.DeadlineExceeded, false},
		{"wrapped canceled context", fmt.Errorf("chat: %w", context.Canceled), false},
		{"network timeout", fakeTimeoutError{}, true},
		{"rate limited", &aiHTTPError{StatusCode: 429, Body: "slow down"}, true},
		{"request timeout", &aiHTTPError{StatusCode: 408}, true},
		{"server error", &aiHTTPError{StatusCode: 503}, true},
		{"bad request", &aiHTTPError{StatusCode: 400, Body: "bad prompt"}, false},
		{"unauthorized", &aiHTTPError{StatusCode: 401}, false},
		{"plain error", fmt.Errorf("decode failed"), false},
	}
	for _, tc := range cases {
		if got := isRetryableErr(tc.err); got != tc.want {
			t.Fatalf("%s: isRetryableErr = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRetryableHTTPRange(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 599} {
		if !isRetryableHTTP(code) {
			t.Fatalf("status %d should be retryable", code)
		}
	}
	for _, code := range []int{200, 400, 401, 404, 422} {
		if isRetryableHTTP(code) {
			t.Fatalf("status %d should not be retryable", code)
		}
	}
}

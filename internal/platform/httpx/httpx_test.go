package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

type statusErr int

func (s statusErr) Error() string        { return fmt.Sprintf("status %d", int(s)) }
func (s statusErr) HTTPStatusCode() int { return int(s) }

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, true},
		{"429", statusErr(http.StatusTooManyRequests), true},
		{"503 wrapped", fmt.Errorf("call: %w", statusErr(http.StatusServiceUnavailable)), true},
		{"400", statusErr(http.StatusBadRequest), false},
		{"plain", errors.New("boom"), false},
	}
	for _, tc := range cases {
		if got := IsRetryableError(tc.err); got != tc.want {
			t.Fatalf("%s: want=%v got=%v", tc.name, tc.want, got)
		}
	}
}

func TestRetryAfterDurationCapped(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Retry-After", "30")
	if got := RetryAfterDuration(resp, time.Second, 5*time.Second); got != 5*time.Second {
		t.Fatalf("want cap 5s, got %s", got)
	}
	if got := RetryAfterDuration(nil, time.Second, 5*time.Second); got != time.Second {
		t.Fatalf("want fallback 1s, got %s", got)
	}
}

func TestSleepHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, time.Minute); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

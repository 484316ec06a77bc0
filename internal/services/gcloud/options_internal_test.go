package gcloud

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/api/googleapi"

	"audiocourse/internal/services"
)

func TestWrapAPIError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		marker error
	}{
		{name: "rate limited", err: &googleapi.Error{Code: 429}, marker: services.ErrTransient},
		{name: "server error", err: &googleapi.Error{Code: 503}, marker: services.ErrTransient},
		{name: "forbidden", err: &googleapi.Error{Code: 403}, marker: services.ErrExternalTool},
		{name: "deadline", err: fmt.Errorf("post: %w", context.DeadlineExceeded), marker: services.ErrTimeout},
		{name: "other", err: errors.New("dial failed"), marker: services.ErrExternalTool},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := wrapAPIError("translate", "translate", tc.err); !errors.Is(got, tc.marker) {
				t.Fatalf("expected %v, got %v", tc.marker, got)
			}
		})
	}
}

func TestBaseLanguage(t *testing.T) {
	cases := map[string]string{
		"es-MX": "es",
		"en-US": "en",
		"zh-TW": "zh-TW",
		"xx":    "xx",
	}
	for in, want := range cases {
		if got := baseLanguage(in); got != want {
			t.Fatalf("baseLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}

package errs

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorConstants(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "ErrNetwork", err: ErrNetwork, expected: "network failure"},
		{name: "ErrUnsupportedURL", err: ErrUnsupportedURL, expected: "unsupported url"},
		{name: "ErrRestricted", err: ErrRestricted, expected: "video restricted"},
		{name: "ErrUnknown", err: ErrUnknown, expected: "extraction failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Expected error message '%s', got '%s'", tt.expected, tt.err.Error())
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		msg  string
		want Kind
	}{
		{"ERROR: Unsupported URL: https://example.com/", KindUnsupportedURL},
		{"ERROR: 'not a url' is not a valid URL.", KindUnsupportedURL},
		{"ERROR: [youtube] abc: Private video. Sign in if you've been granted access", KindRestricted},
		{"ERROR: [youtube] abc: Video unavailable", KindRestricted},
		{"ERROR: [youtube] abc: Sign in to confirm your age", KindRestricted},
		{"ERROR: The uploader has not made this video available in your country", KindRestricted},
		{"ERROR: [youtube] abc: Unable to download webpage: <urlopen error [Errno -2] Name or service not known>", KindNetwork},
		{"ERROR: unable to download video data: HTTP Error 403: Forbidden", KindNetwork},
		{"read tcp: i/o timeout", KindNetwork},
		{"exec: \"yt-dlp\": executable file not found in $PATH", KindUnknown},
		{"something odd happened", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			if got := Classify(errors.New(tt.msg)); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.msg, got, tt.want)
			}
		})
	}
}

func TestClassify_Context(t *testing.T) {
	if got := Classify(fmt.Errorf("run: %w", context.Canceled)); got != KindNetwork {
		t.Errorf("canceled context should be network, got %v", got)
	}
	if got := Classify(context.DeadlineExceeded); got != KindNetwork {
		t.Errorf("deadline should be network, got %v", got)
	}
	if got := Classify(nil); got != KindUnknown {
		t.Errorf("nil should be unknown, got %v", got)
	}
}

func TestExtractionError_Is(t *testing.T) {
	cause := errors.New("ERROR: Private video")
	err := New("https://www.youtube.com/watch?v=x", cause)

	if err.Kind != KindRestricted {
		t.Fatalf("Expected restricted kind, got %v", err.Kind)
	}
	if !errors.Is(err, ErrRestricted) {
		t.Error("errors.Is should match ErrRestricted")
	}
	if errors.Is(err, ErrNetwork) {
		t.Error("errors.Is should not match ErrNetwork")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}

	wrapped := fmt.Errorf("resolve: %w", err)
	if KindOf(wrapped) != KindRestricted {
		t.Errorf("KindOf through wrapping = %v", KindOf(wrapped))
	}
	if got := Classify(wrapped); got != KindRestricted {
		t.Errorf("Classify of wrapped ExtractionError = %v", got)
	}
}

func TestExtractionError_Message(t *testing.T) {
	err := &ExtractionError{Kind: KindNetwork, URL: "u", Err: errors.New("boom")}
	if err.Error() != "network failure: u: boom" {
		t.Errorf("unexpected message %q", err.Error())
	}
	bare := &ExtractionError{Kind: KindUnknown, URL: "u"}
	if bare.Error() != "extraction failed: u" {
		t.Errorf("unexpected message %q", bare.Error())
	}
}

func TestKind_String(t *testing.T) {
	expected := map[Kind]string{
		KindUnknown:        "unknown",
		KindNetwork:        "network",
		KindUnsupportedURL: "unsupported-url",
		KindRestricted:     "restricted",
		Kind(42):           "unknown",
	}
	for k, want := range expected {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %s, want %s", k, k.String(), want)
		}
	}
}

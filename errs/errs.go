package errs

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNetwork indicates the extractor could not reach the video source.
	ErrNetwork = errors.New("network failure")
	// ErrUnsupportedURL indicates the extractor does not recognize the URL.
	ErrUnsupportedURL = errors.New("unsupported url")
	// ErrRestricted indicates the video exists but is not accessible
	// (private, age gated, geo blocked, removed).
	ErrRestricted = errors.New("video restricted")
	// ErrUnknown covers every other extraction failure.
	ErrUnknown = errors.New("extraction failed")
)

// Kind classifies why an extraction failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindUnsupportedURL
	KindRestricted
)

var kindNames = map[Kind]string{
	KindUnknown:        "unknown",
	KindNetwork:        "network",
	KindUnsupportedURL: "unsupported-url",
	KindRestricted:     "restricted",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// Sentinel returns the package-level error matching k.
func (k Kind) Sentinel() error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindUnsupportedURL:
		return ErrUnsupportedURL
	case KindRestricted:
		return ErrRestricted
	default:
		return ErrUnknown
	}
}

// ExtractionError is returned by a resolve call when the extractor fails.
// It matches its Kind's sentinel with errors.Is and unwraps to the cause.
type ExtractionError struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind.Sentinel(), e.URL)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind.Sentinel(), e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e.Kind.
func (e *ExtractionError) Is(target error) bool {
	return target == e.Kind.Sentinel()
}

// New wraps cause into an ExtractionError, classifying it from its message.
func New(videoURL string, cause error) *ExtractionError {
	return &ExtractionError{Kind: Classify(cause), URL: videoURL, Err: cause}
}

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return KindUnknown
}

var (
	unsupportedMarkers = []string{
		"unsupported url",
		"is not a valid url",
		"no suitable extractor",
		"invalid url",
	}
	restrictedMarkers = []string{
		"private video",
		"video is private",
		"video unavailable",
		"this video is unavailable",
		"has been removed",
		"geo restrict",
		"geo-restrict",
		"not available in your country",
		"available in your country",
		"sign in to confirm your age",
		"age-restricted",
		"age restricted",
		"members-only",
		"login required",
		"requires authentication",
		"copyright",
	}
	networkMarkers = []string{
		"unable to download",
		"http error",
		"timed out",
		"timeout",
		"connection refused",
		"connection reset",
		"network is unreachable",
		"name or service not known",
		"nodename nor servname",
		"temporary failure in name resolution",
		"getaddrinfo",
		"no such host",
		"ssl:",
		"certificate verify failed",
	}
)

// Classify maps a failure to a Kind by inspecting its message.
// Restrictions are checked before network markers because extractors often
// report a restriction as part of a failed page download.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee.Kind
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, unsupportedMarkers):
		return KindUnsupportedURL
	case containsAny(msg, restrictedMarkers):
		return KindRestricted
	case containsAny(msg, networkMarkers):
		return KindNetwork
	}
	return KindUnknown
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

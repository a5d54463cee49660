//go:build e2e

package e2e

import (
	"context"
	"os"
	"testing"

	"github.com/ytget/ytlinks"
)

func TestE2E_Resolve(t *testing.T) {
	if os.Getenv("YTLINKS_E2E") == "" {
		t.Skip("YTLINKS_E2E not set")
	}
	url := os.Getenv("YTLINKS_E2E_URL")
	if url == "" {
		url = "https://www.youtube.com/watch?v=odN890XAfek"
	}
	summary, err := ytlinks.New().Resolve(context.Background(), url)
	if err != nil {
		t.Fatalf("e2e resolve failed: %v", err)
	}
	if summary.Title == nil || len(summary.Formats) == 0 {
		t.Fatalf("expected title and formats, got %+v", summary)
	}
	for i, f := range summary.Formats {
		if f.URL == "" {
			t.Fatalf("format %d has empty URL", i)
		}
	}
}

// Command ytlinks resolves one hardcoded video, prints its 1080p MP4 link
// and then every available format.
package main

import (
	"context"
	"io"
	"os"

	"github.com/ytget/ytlinks"
	"github.com/ytget/ytlinks/logger"
	"github.com/ytget/ytlinks/internal/report"
)

const videoURL = "https://www.youtube.com/watch?v=odN890XAfek"

func main() {
	run(context.Background(), os.Stdout, os.Stderr, ytlinks.New())
}

// run performs a single resolution. Failure is already logged by the
// resolver, so it only skips the report.
func run(ctx context.Context, stdout, stderr io.Writer, r *ytlinks.Resolver) {
	cfg := logger.DefaultConfig()
	cfg.Output = stderr
	if report.IsTerminal(stderr) {
		cfg.Format = logger.FormatColor
	}
	l := logger.New(cfg)
	// Extractors built without an explicit logger fall back to the global one.
	logger.SetGlobalLogger(l)
	log := l.WithComponent(logger.ComponentApp)

	summary, err := r.WithLogger(l).Resolve(ctx, videoURL)
	if err != nil {
		return
	}
	if err := report.Write(stdout, summary, report.Options{ListAll: true, Logger: l}); err != nil {
		log.Error("write report failed", map[string]interface{}{"error": err.Error()})
	}
}

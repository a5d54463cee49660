// Package extractor defines the boundary to the external tool that turns a
// video page into metadata and stream URLs.
//
// The resolver treats an Extractor as a black box: it asks for the nested
// description of one video and never fetches media itself.
package extractor

import (
	"context"

	"github.com/ytget/ytlinks/types"
)

// Options controls a single metadata-only extraction.
type Options struct {
	// Verbose asks the tool for its debug output.
	Verbose bool
	// Warnings keeps the tool's warnings; false suppresses them.
	Warnings bool
	// Format is the selector the tool would use if it downloaded. It does not
	// limit the formats reported.
	Format string
}

// Extractor returns the description of one video without downloading it.
type Extractor interface {
	ExtractInfo(ctx context.Context, videoURL string, opts Options) (*types.Info, error)
}

// Func adapts an ordinary function to the Extractor interface.
type Func func(ctx context.Context, videoURL string, opts Options) (*types.Info, error)

// ExtractInfo calls f.
func (f Func) ExtractInfo(ctx context.Context, videoURL string, opts Options) (*types.Info, error) {
	return f(ctx, videoURL, opts)
}

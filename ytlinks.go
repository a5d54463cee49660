package ytlinks

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ytget/ytlinks/errs"
	"github.com/ytget/ytlinks/extractor"
	"github.com/ytget/ytlinks/logger"
	"github.com/ytget/ytlinks/types"
)

// DefaultFormat is the selector passed to the extractor unless overridden.
const DefaultFormat = "best"

// VideoSummary is the flattened result of a resolve call.
type VideoSummary = types.VideoSummary

// FormatEntry is a single resolved rendition.
type FormatEntry = types.FormatEntry

// ResolveOptions contains the extractor configuration for resolve calls.
//
// Use chainable setters on Resolver to populate these options.
type ResolveOptions struct {
	FormatSelector string
	Verbose        bool
	Warnings       bool
}

// Resolver turns a video URL into a VideoSummary by delegating to an extractor.
type Resolver struct {
	options   ResolveOptions
	extractor extractor.Extractor
	logger    *logger.Logger
}

// New creates a Resolver with verbose output and warnings enabled, the "best"
// format selector, and the yt-dlp extractor.
func New() *Resolver {
	return &Resolver{
		options: ResolveOptions{
			FormatSelector: DefaultFormat,
			Verbose:        true,
			Warnings:       true,
		},
	}
}

// WithExtractor sets the extractor used for metadata retrieval.
func (r *Resolver) WithExtractor(e extractor.Extractor) *Resolver {
	r.extractor = e
	return r
}

// WithFormat sets the format selector. An empty selector restores DefaultFormat.
func (r *Resolver) WithFormat(selector string) *Resolver {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		selector = DefaultFormat
	}
	r.options.FormatSelector = selector
	return r
}

// WithVerbose toggles the extractor's verbose output.
func (r *Resolver) WithVerbose(verbose bool) *Resolver {
	r.options.Verbose = verbose
	return r
}

// WithWarnings toggles the extractor's warnings.
func (r *Resolver) WithWarnings(warnings bool) *Resolver {
	r.options.Warnings = warnings
	return r
}

// WithLogger sets the logger for resolve diagnostics. It is also handed to the
// default extractor.
func (r *Resolver) WithLogger(l *logger.Logger) *Resolver {
	r.logger = l
	return r
}

// Options returns a copy of the current options.
func (r *Resolver) Options() ResolveOptions {
	return r.options
}

// Resolve retrieves metadata for videoURL and returns its flattened summary.
//
// The URL is handed to the extractor unvalidated. Formats without a URL are
// dropped; the rest keep the extractor's order. On failure the summary is nil
// and the error is an *errs.ExtractionError whose Kind tells why; one line is
// logged at ERROR level. Resolve never panics on behalf of the extractor.
func (r *Resolver) Resolve(ctx context.Context, videoURL string) (summary *VideoSummary, err error) {
	log := r.componentLogger()
	fields := map[string]interface{}{
		"request_id": uuid.NewString(),
		"url":        videoURL,
	}
	log.Debug("resolving", fields)

	defer func() {
		if rec := recover(); rec != nil {
			summary = nil
			err = &errs.ExtractionError{Kind: errs.KindUnknown, URL: videoURL, Err: fmt.Errorf("extractor panic: %v", rec)}
		}
		if err != nil {
			log.Error("failed to get links: "+err.Error(), fields, map[string]interface{}{"kind": errs.KindOf(err).String()})
		}
	}()

	info, xerr := r.extractorOrDefault().ExtractInfo(ctx, videoURL, extractor.Options{
		Verbose:  r.options.Verbose,
		Warnings: r.options.Warnings,
		Format:   r.options.FormatSelector,
	})
	if xerr != nil {
		return nil, errs.New(videoURL, xerr)
	}
	if info == nil {
		return nil, &errs.ExtractionError{Kind: errs.KindUnknown, URL: videoURL, Err: fmt.Errorf("extractor returned no description")}
	}

	summary, dropped := Summarize(info)
	log.Debug("resolved", fields, map[string]interface{}{
		"formats": len(summary.Formats),
		"dropped": dropped,
	})
	return summary, nil
}

// Summarize flattens an extractor description. It returns the summary and the
// number of formats dropped for lacking a URL.
func Summarize(info *types.Info) (*VideoSummary, int) {
	summary := &VideoSummary{
		Title:   info.Title,
		Formats: make([]FormatEntry, 0, len(info.Formats)),
	}
	if info.Duration != nil {
		d := int(*info.Duration)
		summary.Duration = &d
	}

	dropped := 0
	for _, f := range info.Formats {
		if !f.HasURL() {
			dropped++
			continue
		}
		summary.Formats = append(summary.Formats, f.Entry())
	}
	return summary, dropped
}

// Resolve resolves videoURL with a default Resolver.
func Resolve(ctx context.Context, videoURL string) (*VideoSummary, error) {
	return New().Resolve(ctx, videoURL)
}

func (r *Resolver) extractorOrDefault() extractor.Extractor {
	if r.extractor != nil {
		return r.extractor
	}
	return extractor.NewYTDLP().WithLogger(r.logger)
}

func (r *Resolver) componentLogger() *logger.ComponentLogger {
	if r.logger != nil {
		return r.logger.WithComponent(logger.ComponentResolver)
	}
	return logger.WithComponent(logger.ComponentResolver)
}

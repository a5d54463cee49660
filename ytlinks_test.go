package ytlinks

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ytget/ytlinks/errs"
	"github.com/ytget/ytlinks/extractor"
	"github.com/ytget/ytlinks/formats"
	"github.com/ytget/ytlinks/logger"
	"github.com/ytget/ytlinks/types"
)

func fixedExtractor(info *types.Info, err error, seen *extractor.Options) extractor.Extractor {
	return extractor.Func(func(ctx context.Context, videoURL string, opts extractor.Options) (*types.Info, error) {
		if seen != nil {
			*seen = opts
		}
		return info, err
	})
}

func captureLogger(buf *bytes.Buffer) *logger.Logger {
	cfg := logger.DefaultConfig()
	cfg.Output = buf
	return logger.New(cfg)
}

func TestResolve_TwoFormats(t *testing.T) {
	info := &types.Info{
		Title:    types.String("Sample"),
		Duration: func() *float64 { d := 212.0; return &d }(),
		Formats: []types.RawFormat{
			{Ext: types.String("mp4"), Resolution: types.String("1080p"), URL: types.String("u1"), Filesize: types.Float64(104857600), ACodec: types.String("aac"), VCodec: types.String("h264")},
			{Ext: types.String("m4a"), URL: types.String("u2"), ACodec: types.String("aac"), VCodec: types.String("none")},
		},
	}

	var buf bytes.Buffer
	var seen extractor.Options
	r := New().WithExtractor(fixedExtractor(info, nil, &seen)).WithLogger(captureLogger(&buf))

	summary, err := r.Resolve(context.Background(), "https://www.youtube.com/watch?v=odN890XAfek")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if seen != (extractor.Options{Verbose: true, Warnings: true, Format: "best"}) {
		t.Errorf("unexpected extractor options %+v", seen)
	}
	if summary.Title == nil || *summary.Title != "Sample" {
		t.Errorf("unexpected title %v", summary.Title)
	}
	if summary.Duration == nil || *summary.Duration != 212 {
		t.Errorf("unexpected duration %v", summary.Duration)
	}
	if len(summary.Formats) != 2 {
		t.Fatalf("expected 2 formats, got %d", len(summary.Formats))
	}
	if summary.Formats[0].URL != "u1" || summary.Formats[0].AudioOnly {
		t.Errorf("first format should be u1 with audio_only=false, got %+v", summary.Formats[0])
	}
	if summary.Formats[1].URL != "u2" || !summary.Formats[1].AudioOnly {
		t.Errorf("second format should be u2 with audio_only=true, got %+v", summary.Formats[1])
	}
	if summary.Formats[1].Resolution != nil {
		t.Errorf("absent resolution should stay absent, got %q", *summary.Formats[1].Resolution)
	}

	picked := formats.Filter(summary.Formats, formats.MP4At("1080p"))
	if len(picked) != 1 || picked[0].URL != "u1" {
		t.Fatalf("1080p mp4 filter should select only u1, got %+v", picked)
	}
	if got := formats.FormatMB(*picked[0].Filesize); got != "100.00 MB" {
		t.Errorf("filesize = %s, want 100.00 MB", got)
	}
	if buf.Len() != 0 {
		t.Errorf("successful resolve should not log at INFO, got %q", buf.String())
	}
}

func TestResolve_DropsFormatsWithoutURL(t *testing.T) {
	info := &types.Info{
		Formats: []types.RawFormat{
			{FormatID: types.String("a"), URL: types.String("u1")},
			{FormatID: types.String("b")},
			{FormatID: types.String("c"), URL: types.String("u3")},
			{FormatID: types.String("d"), URL: types.String("")},
			{FormatID: types.String("e"), URL: types.String("u5")},
		},
	}

	summary, err := New().WithExtractor(fixedExtractor(info, nil, nil)).WithLogger(logger.Discard()).
		Resolve(context.Background(), "u")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := []string{"u1", "u3", "u5"}
	if len(summary.Formats) != len(want) {
		t.Fatalf("expected %d formats, got %d", len(want), len(summary.Formats))
	}
	for i, f := range summary.Formats {
		if f.URL != want[i] {
			t.Errorf("format %d: URL %q, want %q", i, f.URL, want[i])
		}
	}
}

func TestResolve_AbsentTitleAndDuration(t *testing.T) {
	summary, err := New().WithExtractor(fixedExtractor(&types.Info{}, nil, nil)).WithLogger(logger.Discard()).
		Resolve(context.Background(), "u")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if summary.Title != nil {
		t.Errorf("absent title should be nil, got %q", *summary.Title)
	}
	if summary.Duration != nil {
		t.Errorf("absent duration should be nil, got %d", *summary.Duration)
	}
	if summary.Formats == nil || len(summary.Formats) != 0 {
		t.Errorf("empty format list should be an empty slice, got %#v", summary.Formats)
	}
}

func TestResolve_ExtractorError(t *testing.T) {
	tests := []struct {
		name     string
		cause    error
		sentinel error
		kind     errs.Kind
	}{
		{"network", errors.New("ERROR: Unable to download webpage: HTTP Error 503"), errs.ErrNetwork, errs.KindNetwork},
		{"unsupported", errors.New("ERROR: Unsupported URL: https://example.com"), errs.ErrUnsupportedURL, errs.KindUnsupportedURL},
		{"restricted", errors.New("ERROR: [youtube] x: Private video"), errs.ErrRestricted, errs.KindRestricted},
		{"unknown", errors.New("exit status 7"), errs.ErrUnknown, errs.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := New().WithExtractor(fixedExtractor(nil, tt.cause, nil)).WithLogger(captureLogger(&buf))

			summary, err := r.Resolve(context.Background(), "u")
			if summary != nil {
				t.Fatalf("failed resolve should return nil summary, got %+v", summary)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error %v should match %v", err, tt.sentinel)
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("error should wrap its cause")
			}
			var ee *errs.ExtractionError
			if !errors.As(err, &ee) || ee.Kind != tt.kind || ee.URL != "u" {
				t.Errorf("unexpected extraction error %#v", err)
			}

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) != 1 || !strings.Contains(lines[0], "[ERROR] [resolver] failed to get links:") {
				t.Errorf("expected one error line, got %q", buf.String())
			}
			if !strings.Contains(lines[0], "kind="+tt.kind.String()) {
				t.Errorf("error line should carry the kind, got %q", lines[0])
			}
		})
	}
}

func TestResolve_ExtractorPanics(t *testing.T) {
	boom := extractor.Func(func(ctx context.Context, videoURL string, opts extractor.Options) (*types.Info, error) {
		panic("boom")
	})

	summary, err := New().WithExtractor(boom).WithLogger(logger.Discard()).Resolve(context.Background(), "u")
	if summary != nil {
		t.Fatal("panicking extractor should yield nil summary")
	}
	if !errors.Is(err, errs.ErrUnknown) {
		t.Fatalf("expected unknown extraction error, got %v", err)
	}
}

func TestResolve_NilInfo(t *testing.T) {
	summary, err := New().WithExtractor(fixedExtractor(nil, nil, nil)).WithLogger(logger.Discard()).
		Resolve(context.Background(), "u")
	if summary != nil || !errors.Is(err, errs.ErrUnknown) {
		t.Fatalf("nil description should fail as unknown, got %v %v", summary, err)
	}
}

func TestResolverOptions(t *testing.T) {
	var seen extractor.Options
	r := New().WithFormat("bestvideo+bestaudio").WithVerbose(false).WithWarnings(false).
		WithExtractor(fixedExtractor(&types.Info{}, nil, &seen)).WithLogger(logger.Discard())

	if _, err := r.Resolve(context.Background(), "u"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if seen != (extractor.Options{Format: "bestvideo+bestaudio"}) {
		t.Errorf("unexpected options %+v", seen)
	}

	if got := New().WithFormat("  ").Options().FormatSelector; got != DefaultFormat {
		t.Errorf("empty selector should restore default, got %q", got)
	}
}

func TestSummarize_DurationTruncated(t *testing.T) {
	d := 61.9
	summary, dropped := Summarize(&types.Info{Duration: &d, Formats: []types.RawFormat{{}}})
	if summary.Duration == nil || *summary.Duration != 61 {
		t.Errorf("duration should be whole seconds, got %v", summary.Duration)
	}
	if dropped != 1 {
		t.Errorf("expected 1 dropped format, got %d", dropped)
	}
}

func TestResolve_LoggerFromTOML(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "ytlinks.log")
	cfgPath := filepath.Join(dir, "log.toml")
	data := "level = \"error\"\nformat = \"json\"\noutput = \"file:" + logPath + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := logger.LoadConfigFromFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfigFromFile: %v", err)
	}
	l, err := logger.CreateLoggerFromConfig(cfg)
	if err != nil {
		t.Fatalf("CreateLoggerFromConfig: %v", err)
	}

	cause := errors.New("ERROR: Unsupported URL: https://example.com")
	r := New().WithExtractor(fixedExtractor(nil, cause, nil)).WithLogger(l)
	if _, err := r.Resolve(context.Background(), "https://example.com"); !errors.Is(err, errs.ErrUnsupportedURL) {
		t.Fatalf("expected unsupported url, got %v", err)
	}

	out, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{`"level":"ERROR"`, `"component":"resolver"`, `failed to get links:`, `"kind":"unsupported-url"`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("log file missing %s:\n%s", want, out)
		}
	}
}

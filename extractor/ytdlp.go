package extractor

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/ytget/ytlinks/logger"
	"github.com/ytget/ytlinks/types"
)

// DefaultBinary is the executable looked up on PATH when YTDLP.Binary is empty.
const DefaultBinary = "yt-dlp"

const maxStderrLine = 1 << 20

// YTDLP runs the yt-dlp executable in metadata-only mode and decodes the
// info dictionary it prints.
type YTDLP struct {
	// Binary is the executable name or path. Empty means DefaultBinary.
	Binary string
	// ExtraArgs are appended before the URL, e.g. "--cookies", "jar.txt".
	ExtraArgs []string
	// Logger receives the tool's stderr. Nil uses the global logger.
	Logger *logger.Logger

	commandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewYTDLP returns a YTDLP backend using DefaultBinary.
func NewYTDLP() *YTDLP {
	return &YTDLP{Binary: DefaultBinary}
}

// WithBinary sets the executable name or path.
func (y *YTDLP) WithBinary(binary string) *YTDLP {
	y.Binary = strings.TrimSpace(binary)
	return y
}

// WithLogger sets the logger that receives the tool's diagnostics.
func (y *YTDLP) WithLogger(l *logger.Logger) *YTDLP {
	y.Logger = l
	return y
}

// WithExtraArgs appends raw arguments passed before the URL.
func (y *YTDLP) WithExtraArgs(args ...string) *YTDLP {
	y.ExtraArgs = append(y.ExtraArgs, args...)
	return y
}

// Args returns the argument list for one extraction.
func (y *YTDLP) Args(videoURL string, opts Options) []string {
	args := []string{"--dump-single-json"}
	if opts.Verbose {
		args = append(args, "--verbose")
	}
	if !opts.Warnings {
		args = append(args, "--no-warnings")
	}
	if f := strings.TrimSpace(opts.Format); f != "" {
		args = append(args, "--format", f)
	}
	args = append(args, y.ExtraArgs...)
	// "--" keeps a URL starting with "-" from being read as a flag.
	return append(args, "--", videoURL)
}

// ExtractInfo runs the tool and decodes its JSON output.
func (y *YTDLP) ExtractInfo(ctx context.Context, videoURL string, opts Options) (*types.Info, error) {
	binary := y.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	log := y.componentLogger()

	cmd := y.command(ctx, binary, y.Args(videoURL, opts)...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	log.Debug("starting extraction", map[string]interface{}{"binary": binary, "url": videoURL})
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", binary, err)
	}

	// The pipe must be drained before Wait.
	failures := relayStderr(stderr, log, opts.Verbose)
	waitErr := cmd.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%s interrupted: %w", binary, ctxErr)
	}
	if waitErr != nil {
		return nil, toolError(binary, waitErr, failures)
	}

	var info types.Info
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("decode %s output: %w", binary, err)
	}
	return &info, nil
}

func (y *YTDLP) command(ctx context.Context, name string, args ...string) *exec.Cmd {
	fn := y.commandContext
	if fn == nil {
		fn = exec.CommandContext
	}
	return fn(ctx, name, args...)
}

func (y *YTDLP) componentLogger() *logger.ComponentLogger {
	if y.Logger != nil {
		return y.Logger.WithComponent(logger.ComponentExtractor)
	}
	return logger.WithComponent(logger.ComponentExtractor)
}

// relayStderr forwards every stderr line to the logger and returns the
// ERROR lines, which describe why the tool failed. With verbose set, the
// tool's debug lines are logged at INFO so they show at the default level.
func relayStderr(r io.Reader, log *logger.ComponentLogger, verbose bool) []string {
	var failures []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxStderrLine)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		level, msg := classifyLine(line)
		if level == logger.ERROR {
			failures = append(failures, msg)
			// Reported once by the resolver.
			continue
		}
		if verbose && level == logger.DEBUG {
			level = logger.INFO
		}
		log.Log(level, msg)
	}
	if err := sc.Err(); err != nil {
		// Drain whatever is left so the child never blocks on a full pipe.
		_, _ = io.Copy(io.Discard, r)
		log.Warn("stderr relay stopped", map[string]interface{}{"error": err.Error()})
	}
	return failures
}

// classifyLine maps a yt-dlp stderr line to a log level and strips the
// level prefix the tool adds.
func classifyLine(line string) (logger.Level, string) {
	switch {
	case strings.HasPrefix(line, "ERROR:"):
		return logger.ERROR, strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
	case strings.HasPrefix(line, "WARNING:"):
		return logger.WARN, strings.TrimSpace(strings.TrimPrefix(line, "WARNING:"))
	case strings.HasPrefix(line, "[debug]"):
		return logger.DEBUG, strings.TrimSpace(strings.TrimPrefix(line, "[debug]"))
	default:
		return logger.INFO, line
	}
}

func toolError(binary string, waitErr error, failures []string) error {
	if len(failures) == 0 {
		return fmt.Errorf("%s failed: %w", binary, waitErr)
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return fmt.Errorf("%s exited with status %d: %s: %w", binary, exitErr.ExitCode(), strings.Join(failures, "; "), waitErr)
	}
	return fmt.Errorf("%s: %s: %w", binary, strings.Join(failures, "; "), waitErr)
}

// Package report renders a resolved video as human-readable console text.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/ytget/ytlinks/formats"
	"github.com/ytget/ytlinks/logger"
	"github.com/ytget/ytlinks/types"
)

// DefaultResolution is the rendition highlighted by Write.
const DefaultResolution = "1080p"

const unknown = "unknown"

// Options controls what the report contains.
type Options struct {
	// Resolution is the mp4 rendition highlighted. Empty means DefaultResolution.
	Resolution string
	// ListAll appends a table of every format.
	ListAll bool
	// Color forces styling on or off. Nil styles only terminals.
	Color *bool
	// Logger receives a debug line per report. Nil uses the global logger.
	Logger *logger.Logger
}

type styles struct {
	title  func(string) string
	header func(string) string
	label  func(string) string
	url    func(string) string
	muted  func(string) string
}

func plainStyles() styles {
	id := func(s string) string { return s }
	return styles{title: id, header: id, label: id, url: id, muted: id}
}

func colorStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	header := r.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	label := r.NewStyle().Foreground(lipgloss.Color("245"))
	link := r.NewStyle().Underline(true).Foreground(lipgloss.Color("39"))
	muted := r.NewStyle().Faint(true)
	return styles{
		title:  render(title),
		header: render(header),
		label:  render(label),
		url:    render(link),
		muted:  render(muted),
	}
}

func render(st lipgloss.Style) func(string) string {
	return func(s string) string { return st.Render(s) }
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Write renders summary to w: the title, the duration, and the first mp4
// format at the requested resolution with its size and URL.
func Write(w io.Writer, summary *types.VideoSummary, opts Options) error {
	if summary == nil {
		return fmt.Errorf("report: nil summary")
	}
	res := opts.Resolution
	if res == "" {
		res = DefaultResolution
	}
	color := IsTerminal(w)
	if opts.Color != nil {
		color = *opts.Color
	}
	st := plainStyles()
	if color {
		st = colorStyles(w)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", st.label("Title:"), st.title(orUnknown(summary.Title)))
	fmt.Fprintf(&b, "%s %s\n", st.label("Duration:"), formatDuration(summary.Duration))
	fmt.Fprintf(&b, "\n%s\n", st.header("Available formats:"))

	if f := formats.First(summary.Formats, formats.MP4At(res)); f != nil {
		fmt.Fprintf(&b, "\n%s\n", st.header(fmt.Sprintf("[%s MP4]", res)))
		fmt.Fprintf(&b, "%s %s\n", st.label("Size:"), formatMB(f.Filesize))
		fmt.Fprintf(&b, "%s %s\n", st.label("URL:"), st.url(f.URL))
	} else {
		fmt.Fprintf(&b, "\n%s\n", st.muted(fmt.Sprintf("No %s MP4 format available.", res)))
	}

	if opts.ListAll {
		b.WriteString("\n")
		writeTable(&b, summary.Formats, st)
	}

	componentLogger(opts.Logger).Debug("rendered report", map[string]interface{}{
		"formats": len(summary.Formats),
		"color":   color,
	})

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTable(b *strings.Builder, list []types.FormatEntry, st styles) {
	if len(list) == 0 {
		fmt.Fprintf(b, "%s\n", st.muted("(no formats)"))
		return
	}
	for _, f := range list {
		kind := ""
		if f.AudioOnly {
			kind = "audio"
		}
		line := fmt.Sprintf("%-8s %-5s %-12s %10s %s",
			orUnknown(f.FormatID), orUnknown(f.Ext), orUnknown(f.Resolution), humanSize(f.Filesize), kind)
		fmt.Fprintf(b, "%s\n", strings.TrimRight(line, " "))
		fmt.Fprintf(b, "  %s\n", st.url(f.URL))
	}
}

func orUnknown(s *string) string {
	if s == nil || *s == "" {
		return unknown
	}
	return *s
}

func formatMB(size *int64) string {
	if size == nil {
		return unknown
	}
	return formats.FormatMB(*size)
}

func humanSize(size *int64) string {
	if size == nil || *size < 0 {
		return "-"
	}
	return humanize.IBytes(uint64(*size))
}

func formatDuration(seconds *int) string {
	if seconds == nil {
		return unknown
	}
	return (time.Duration(*seconds) * time.Second).String()
}

func componentLogger(l *logger.Logger) *logger.ComponentLogger {
	if l != nil {
		return l.WithComponent(logger.ComponentReport)
	}
	return logger.WithComponent(logger.ComponentReport)
}

// Package types holds the data model shared by the resolver, the extractor
// backends and the format predicates.
package types

// FormatEntry describes one downloadable rendition of a video.
//
// Pointer fields are nil when the extractor did not report a value.
type FormatEntry struct {
	FormatID   *string `json:"format_id"`
	Ext        *string `json:"ext"`
	Resolution *string `json:"resolution"`
	Filesize   *int64  `json:"filesize"`
	URL        string  `json:"url"`
	AudioOnly  bool    `json:"audio_only"`
}

// VideoSummary is the flattened view of a single video returned by a resolve call.
type VideoSummary struct {
	Title    *string       `json:"title"`
	Duration *int          `json:"duration"`
	Formats  []FormatEntry `json:"formats"`
}

// Info is the nested description reported by an extractor for one video.
// Only the fields the resolver reads are decoded.
type Info struct {
	Title    *string     `json:"title"`
	Duration *float64    `json:"duration"`
	Formats  []RawFormat `json:"formats"`
}

// RawFormat is a single format description as reported by an extractor.
// Filesize is any JSON number; Entry truncates it to whole bytes.
type RawFormat struct {
	FormatID   *string  `json:"format_id"`
	Ext        *string  `json:"ext"`
	Resolution *string  `json:"resolution"`
	Filesize   *float64 `json:"filesize"`
	URL        *string  `json:"url"`
	ACodec     *string  `json:"acodec"`
	VCodec     *string  `json:"vcodec"`
}

// CodecNone is the sentinel extractors use for a missing audio or video stream.
const CodecNone = "none"

// IsAudioOnly reports whether the format carries audio but no video.
// An absent codec field is not the sentinel, so a format with both codecs
// absent is not audio-only.
func (f RawFormat) IsAudioOnly() bool {
	return !isNone(f.ACodec) && isNone(f.VCodec)
}

// HasURL reports whether the format carries a usable URL.
func (f RawFormat) HasURL() bool {
	return f.URL != nil && *f.URL != ""
}

// Entry converts the raw description into a FormatEntry.
// Callers must check HasURL first.
func (f RawFormat) Entry() FormatEntry {
	var u string
	if f.URL != nil {
		u = *f.URL
	}
	var size *int64
	if f.Filesize != nil {
		n := int64(*f.Filesize)
		size = &n
	}
	return FormatEntry{
		FormatID:   f.FormatID,
		Ext:        f.Ext,
		Resolution: f.Resolution,
		Filesize:   size,
		URL:        u,
		AudioOnly:  f.IsAudioOnly(),
	}
}

func isNone(codec *string) bool {
	return codec != nil && *codec == CodecNone
}

// String returns a pointer to s. It is a convenience for building fixtures.
func String(s string) *string { return &s }

// Int64 returns a pointer to n.
func Int64(n int64) *int64 { return &n }

// Float64 returns a pointer to n.
func Float64(n float64) *float64 { return &n }

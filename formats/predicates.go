// Package formats provides filters over resolved format entries.
package formats

import (
	"fmt"

	"github.com/ytget/ytlinks/types"
)

// Predicate reports whether a format entry should be kept.
type Predicate func(types.FormatEntry) bool

// ExtEquals matches entries whose extension equals ext exactly, as reported
// by the extractor (e.g. "mp4", never "MP4" or ".mp4"). Entries without an
// extension never match.
func ExtEquals(ext string) Predicate {
	return func(f types.FormatEntry) bool {
		return f.Ext != nil && *f.Ext == ext
	}
}

// ResolutionEquals matches entries whose resolution label equals res exactly.
// Entries without a resolution never match.
func ResolutionEquals(res string) Predicate {
	return func(f types.FormatEntry) bool {
		return f.Resolution != nil && *f.Resolution == res
	}
}

// AudioOnly matches entries carrying only an audio stream.
func AudioOnly(f types.FormatEntry) bool {
	return f.AudioOnly
}

// HasFilesize matches entries that report a size.
func HasFilesize(f types.FormatEntry) bool {
	return f.Filesize != nil
}

// And matches when every predicate matches. No predicates matches everything.
func And(preds ...Predicate) Predicate {
	return func(f types.FormatEntry) bool {
		for _, p := range preds {
			if !p(f) {
				return false
			}
		}
		return true
	}
}

// Or matches when any predicate matches.
func Or(preds ...Predicate) Predicate {
	return func(f types.FormatEntry) bool {
		for _, p := range preds {
			if p(f) {
				return true
			}
		}
		return false
	}
}

// Not inverts p.
func Not(p Predicate) Predicate {
	return func(f types.FormatEntry) bool { return !p(f) }
}

// MP4At matches mp4 entries at the given resolution label, e.g. "1080p".
func MP4At(res string) Predicate {
	return And(ExtEquals("mp4"), ResolutionEquals(res))
}

// Filter returns the entries matching p in their original order.
// The result is never nil.
func Filter(list []types.FormatEntry, p Predicate) []types.FormatEntry {
	out := make([]types.FormatEntry, 0, len(list))
	for _, f := range list {
		if p(f) {
			out = append(out, f)
		}
	}
	return out
}

// First returns the first entry matching p, or nil.
func First(list []types.FormatEntry, p Predicate) *types.FormatEntry {
	for i := range list {
		if p(list[i]) {
			return &list[i]
		}
	}
	return nil
}

const bytesPerMB = 1024 * 1024

// SizeMB converts a byte count to mebibytes.
func SizeMB(bytes int64) float64 {
	return float64(bytes) / bytesPerMB
}

// FormatMB renders a byte count as "%.2f MB", e.g. 104857600 -> "100.00 MB".
func FormatMB(bytes int64) string {
	return fmt.Sprintf("%.2f MB", SizeMB(bytes))
}

// Package ytlinks resolves a video URL into its title, duration and direct
// stream URLs.
//
// Features:
//   - Metadata-only extraction delegated to yt-dlp (or any Extractor)
//   - Flat format list in extractor order, audio-only detection
//   - Typed failure kinds: network, unsupported URL, restricted, unknown
package ytlinks

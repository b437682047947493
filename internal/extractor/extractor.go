// Package extractor contains the container format detection engine.
package extractor

import (
	"errors"
	"io"
)

// ErrUnrecognizedFormat is returned when no extractor recognizes a stream.
var ErrUnrecognizedFormat = errors.New("unrecognized container format")

// TrackType is the type of a media track.
type TrackType string

// track types.
const (
	TrackTypeVideo    TrackType = "video"
	TrackTypeAudio    TrackType = "audio"
	TrackTypeSubtitle TrackType = "subtitle"
	TrackTypeImage    TrackType = "image"
)

// Track is a header-level description of a single media track.
type Track struct {
	Type         TrackType `json:"type"`
	Codec        string    `json:"codec,omitempty"`
	Language     string    `json:"language,omitempty"`
	SampleRate   int       `json:"sampleRate,omitempty"`
	ChannelCount int       `json:"channelCount,omitempty"`
	Width        int       `json:"width,omitempty"`
	Height       int       `json:"height,omitempty"`
}

// Info is the header-level metadata extracted from a stream.
type Info struct {
	Format   string  `json:"format"`
	MimeType string  `json:"mimeType"`
	Tracks   []Track `json:"tracks"`
}

// Extractor is a single-use container format parser.
type Extractor interface {
	// Sniff checks whether the stream prefix matches the format.
	// It must be side-effect free: a false return leaves the
	// extractor reusable on another stream.
	Sniff(r io.Reader) (bool, error)

	// Read extracts header-level metadata from the stream.
	Read(r io.Reader) (*Info, error)

	// Seek notifies the extractor that the stream position changed,
	// discarding any internal parsing state.
	Seek(pos int64)

	// Release frees resources held by the extractor.
	Release()

	// Underlying returns the innermost extractor, resolving through
	// any wrapping layer.
	Underlying() Extractor
}

// readPrefix reads up to n bytes from r.
// A short stream is not an error, the caller gets whatever is available.
func readPrefix(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:read], nil
}

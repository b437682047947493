package extractor

import (
	"io"
)

// CodecUnifiedCues is the codec exposed by subtitle tracks after
// transcoding. Downstream consumers only have to handle this single
// representation instead of one per container.
const CodecUnifiedCues = "unified-cues"

// subtitleTranscodingExtractor wraps an Extractor and normalizes the
// format of muxed subtitle tracks. Every other operation is forwarded
// to the wrapped instance.
type subtitleTranscodingExtractor struct {
	inner Extractor
}

func (e *subtitleTranscodingExtractor) Sniff(r io.Reader) (bool, error) {
	return e.inner.Sniff(r)
}

func (e *subtitleTranscodingExtractor) Read(r io.Reader) (*Info, error) {
	info, err := e.inner.Read(r)
	if err != nil {
		return nil, err
	}

	for i := range info.Tracks {
		if info.Tracks[i].Type == TrackTypeSubtitle {
			info.Tracks[i].Codec = CodecUnifiedCues
		}
	}

	return info, nil
}

func (e *subtitleTranscodingExtractor) Seek(pos int64) {
	e.inner.Seek(pos)
}

func (e *subtitleTranscodingExtractor) Release() {
	e.inner.Release()
}

// Underlying resolves through nested wrapping to the innermost
// extractor.
func (e *subtitleTranscodingExtractor) Underlying() Extractor {
	return e.inner.Underlying()
}

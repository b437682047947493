package extractor

import (
	"bytes"
	"io"
)

// flvExtractor parses the FLV container.
type flvExtractor struct{}

func newFLVExtractor() Extractor {
	return &flvExtractor{}
}

func (e *flvExtractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, 4)
	if err != nil {
		return false, err
	}
	return len(buf) >= 4 && bytes.Equal(buf[:3], []byte("FLV")) && buf[3] == 1, nil
}

func (e *flvExtractor) Read(r io.Reader) (*Info, error) {
	buf, err := readPrefix(r, 5)
	if err != nil {
		return nil, err
	}
	if len(buf) < 5 {
		return nil, io.ErrUnexpectedEOF
	}

	info := &Info{
		Format:   FormatFLV,
		MimeType: "video/x-flv",
	}

	// the TypeFlags byte declares the presence of audio and video.
	if (buf[4] & 0x01) != 0 {
		info.Tracks = append(info.Tracks, Track{Type: TrackTypeVideo})
	}
	if (buf[4] & 0x04) != 0 {
		info.Tracks = append(info.Tracks, Track{Type: TrackTypeAudio})
	}

	return info, nil
}

func (e *flvExtractor) Seek(_ int64) {}

func (e *flvExtractor) Release() {}

func (e *flvExtractor) Underlying() Extractor {
	return e
}

package extractor

import (
	"bytes"
	"io"
)

// aviExtractor parses the AVI container.
type aviExtractor struct{}

func newAVIExtractor() Extractor {
	return &aviExtractor{}
}

func isAVIHeader(buf []byte) bool {
	return len(buf) >= 12 &&
		bytes.Equal(buf[:4], []byte("RIFF")) &&
		bytes.Equal(buf[8:12], []byte("AVI "))
}

func (e *aviExtractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, 12)
	if err != nil {
		return false, err
	}
	return isAVIHeader(buf), nil
}

func (e *aviExtractor) Read(r io.Reader) (*Info, error) {
	buf, err := readPrefix(r, 8192)
	if err != nil {
		return nil, err
	}
	if !isAVIHeader(buf) {
		return nil, io.ErrUnexpectedEOF
	}

	info := &Info{
		Format:   FormatAVI,
		MimeType: "video/avi",
	}

	// stream headers declare their type with a fourcc.
	for i := 0; i+8 <= len(buf); i++ {
		if !bytes.Equal(buf[i:i+4], []byte("strh")) {
			continue
		}
		switch string(buf[i+8 : i+12]) {
		case "vids":
			info.Tracks = append(info.Tracks, Track{Type: TrackTypeVideo})
		case "auds":
			info.Tracks = append(info.Tracks, Track{Type: TrackTypeAudio})
		case "txts":
			info.Tracks = append(info.Tracks, Track{Type: TrackTypeSubtitle})
		}
	}

	return info, nil
}

func (e *aviExtractor) Seek(_ int64) {}

func (e *aviExtractor) Release() {}

func (e *aviExtractor) Underlying() Extractor {
	return e
}

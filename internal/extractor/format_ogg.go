package extractor

import (
	"bytes"
	"io"
)

// oggExtractor parses the OGG container.
type oggExtractor struct{}

func newOGGExtractor() Extractor {
	return &oggExtractor{}
}

func (e *oggExtractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, 5)
	if err != nil {
		return false, err
	}
	// "OggS" followed by stream structure version 0
	return len(buf) >= 5 && bytes.Equal(buf[:4], []byte("OggS")) && buf[4] == 0, nil
}

func (e *oggExtractor) Read(r io.Reader) (*Info, error) {
	buf, err := readPrefix(r, 4096)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(buf, []byte("OggS")) {
		return nil, io.ErrUnexpectedEOF
	}

	info := &Info{
		Format:   FormatOGG,
		MimeType: "application/ogg",
	}

	// codec identification headers are at the start of the first
	// packet of their logical stream.
	for _, ca := range []struct {
		magic []byte
		typ   TrackType
		codec string
	}{
		{[]byte("\x01vorbis"), TrackTypeAudio, "Vorbis"},
		{[]byte("OpusHead"), TrackTypeAudio, "Opus"},
		{[]byte("\x7fFLAC"), TrackTypeAudio, "FLAC"},
		{[]byte("Speex   "), TrackTypeAudio, "Speex"},
		{[]byte("\x80theora"), TrackTypeVideo, "Theora"},
	} {
		if bytes.Contains(buf, ca.magic) {
			info.Tracks = append(info.Tracks, Track{Type: ca.typ, Codec: ca.codec})
		}
	}

	return info, nil
}

func (e *oggExtractor) Seek(_ int64) {}

func (e *oggExtractor) Release() {}

func (e *oggExtractor) Underlying() Extractor {
	return e
}

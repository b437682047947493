package extractor

import (
	"bytes"
	"io"
)

// mpegpsExtractor parses the MPEG program stream container.
type mpegpsExtractor struct{}

func newMPEGPSExtractor() Extractor {
	return &mpegpsExtractor{}
}

func (e *mpegpsExtractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, 4)
	if err != nil {
		return false, err
	}
	// pack header start code
	return bytes.Equal(buf, []byte{0x00, 0x00, 0x01, 0xba}), nil
}

func (e *mpegpsExtractor) Read(r io.Reader) (*Info, error) {
	buf, err := readPrefix(r, 4096)
	if err != nil {
		return nil, err
	}
	if len(buf) < 4 || !bytes.Equal(buf[:4], []byte{0x00, 0x00, 0x01, 0xba}) {
		return nil, io.ErrUnexpectedEOF
	}

	info := &Info{
		Format:   FormatMPEGPS,
		MimeType: "video/mp2p",
	}

	// scan PES start codes for elementary stream ids.
	var audioSeen, videoSeen bool
	for i := 0; i+4 <= len(buf); i++ {
		if buf[i] != 0 || buf[i+1] != 0 || buf[i+2] != 1 {
			continue
		}
		streamID := buf[i+3]
		switch {
		case streamID >= 0xc0 && streamID <= 0xdf && !audioSeen:
			audioSeen = true
			info.Tracks = append(info.Tracks, Track{Type: TrackTypeAudio})

		case streamID >= 0xe0 && streamID <= 0xef && !videoSeen:
			videoSeen = true
			info.Tracks = append(info.Tracks, Track{Type: TrackTypeVideo})
		}
	}

	return info, nil
}

func (e *mpegpsExtractor) Seek(_ int64) {}

func (e *mpegpsExtractor) Release() {}

func (e *mpegpsExtractor) Underlying() Extractor {
	return e
}

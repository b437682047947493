package extractor

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// wavExtractor parses the WAVE container.
type wavExtractor struct{}

func newWAVExtractor() Extractor {
	return &wavExtractor{}
}

func isWAVHeader(buf []byte) bool {
	return len(buf) >= 12 &&
		bytes.Equal(buf[:4], []byte("RIFF")) &&
		bytes.Equal(buf[8:12], []byte("WAVE"))
}

func (e *wavExtractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, 12)
	if err != nil {
		return false, err
	}
	return isWAVHeader(buf), nil
}

func (e *wavExtractor) Read(r io.Reader) (*Info, error) {
	buf, err := readPrefix(r, 512)
	if err != nil {
		return nil, err
	}
	if !isWAVHeader(buf) {
		return nil, io.ErrUnexpectedEOF
	}

	info := &Info{
		Format:   FormatWAV,
		MimeType: "audio/wav",
	}

	// walk chunks until fmt is found.
	pos := 12
	for pos+8 <= len(buf) {
		chunkID := buf[pos : pos+4]
		chunkSize := int(binary.LittleEndian.Uint32(buf[pos+4 : pos+8]))

		if bytes.Equal(chunkID, []byte("fmt ")) {
			if pos+8+16 > len(buf) {
				return nil, fmt.Errorf("truncated fmt chunk")
			}
			body := buf[pos+8:]
			info.Tracks = []Track{{
				Type:         TrackTypeAudio,
				Codec:        "LPCM",
				ChannelCount: int(binary.LittleEndian.Uint16(body[2:4])),
				SampleRate:   int(binary.LittleEndian.Uint32(body[4:8])),
			}}
			return info, nil
		}

		pos += 8 + chunkSize + chunkSize%2
	}

	return nil, fmt.Errorf("fmt chunk not found")
}

func (e *wavExtractor) Seek(_ int64) {}

func (e *wavExtractor) Release() {}

func (e *wavExtractor) Underlying() Extractor {
	return e
}

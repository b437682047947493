package extractor

import (
	"bytes"
	"io"
)

// flacExtractor parses the FLAC container.
type flacExtractor struct{}

func newFLACExtractor() Extractor {
	return &flacExtractor{}
}

func (e *flacExtractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, 4)
	if err != nil {
		return false, err
	}
	return bytes.Equal(buf, []byte("fLaC")), nil
}

func (e *flacExtractor) Read(r io.Reader) (*Info, error) {
	// magic (4) + metadata block header (4) + STREAMINFO (34)
	buf, err := readPrefix(r, 42)
	if err != nil {
		return nil, err
	}
	if len(buf) < 42 || !bytes.Equal(buf[:4], []byte("fLaC")) || (buf[4]&0x7f) != 0 {
		return nil, io.ErrUnexpectedEOF
	}

	streamInfo := buf[8:]
	sampleRate := int(streamInfo[10])<<12 | int(streamInfo[11])<<4 | int(streamInfo[12])>>4
	channelCount := int(streamInfo[12]>>1)&0x07 + 1

	return &Info{
		Format:   FormatFLAC,
		MimeType: "audio/flac",
		Tracks: []Track{{
			Type:         TrackTypeAudio,
			Codec:        "FLAC",
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
		}},
	}, nil
}

func (e *flacExtractor) Seek(_ int64) {}

func (e *flacExtractor) Release() {}

func (e *flacExtractor) Underlying() Extractor {
	return e
}

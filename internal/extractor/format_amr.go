package extractor

import (
	"bytes"
	"io"
)

var (
	amrMagicNB = []byte("#!AMR\n")
	amrMagicWB = []byte("#!AMR-WB\n")
)

// amrExtractor parses the AMR container.
type amrExtractor struct{}

func newAMRExtractor() Extractor {
	return &amrExtractor{}
}

func (e *amrExtractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, len(amrMagicWB))
	if err != nil {
		return false, err
	}
	return bytes.HasPrefix(buf, amrMagicNB) || bytes.HasPrefix(buf, amrMagicWB), nil
}

func (e *amrExtractor) Read(r io.Reader) (*Info, error) {
	buf, err := readPrefix(r, len(amrMagicWB))
	if err != nil {
		return nil, err
	}

	track := Track{
		Type:         TrackTypeAudio,
		ChannelCount: 1,
	}

	switch {
	case bytes.HasPrefix(buf, amrMagicWB):
		track.Codec = "AMR-WB"
		track.SampleRate = 16000

	case bytes.HasPrefix(buf, amrMagicNB):
		track.Codec = "AMR-NB"
		track.SampleRate = 8000

	default:
		return nil, io.ErrUnexpectedEOF
	}

	return &Info{
		Format:   FormatAMR,
		MimeType: "audio/amr",
		Tracks:   []Track{track},
	}, nil
}

func (e *amrExtractor) Seek(_ int64) {}

func (e *amrExtractor) Release() {}

func (e *amrExtractor) Underlying() Extractor {
	return e
}

package extractor

import (
	"io"
)

// heifExtractor parses the HEIF image format, which reuses the
// ISO-BMFF box layout of MP4.
type heifExtractor struct{}

func newHEIFExtractor() Extractor {
	return &heifExtractor{}
}

func (e *heifExtractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, 256)
	if err != nil {
		return false, err
	}
	_, _, heif := sniffMP4Family(buf)
	return heif, nil
}

func (e *heifExtractor) Read(r io.Reader) (*Info, error) {
	buf, err := readPrefix(r, 256)
	if err != nil {
		return nil, err
	}
	_, _, heif := sniffMP4Family(buf)
	if !heif {
		return nil, io.ErrUnexpectedEOF
	}

	return &Info{
		Format:   FormatHEIF,
		MimeType: "image/heif",
		Tracks:   []Track{{Type: TrackTypeImage, Codec: "H265"}},
	}, nil
}

func (e *heifExtractor) Seek(_ int64) {}

func (e *heifExtractor) Release() {}

func (e *heifExtractor) Underlying() Extractor {
	return e
}

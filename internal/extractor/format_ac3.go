package extractor

import (
	"io"

	"github.com/bluenviron/mediacommon/v2/pkg/codecs/ac3"
)

// ac3Extractor parses the AC-3 and E-AC-3 audio containers.
type ac3Extractor struct{}

func newAC3Extractor() Extractor {
	return &ac3Extractor{}
}

func (e *ac3Extractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, 8)
	if err != nil {
		return false, err
	}
	return len(buf) >= 2 && buf[0] == 0x0b && buf[1] == 0x77, nil
}

func (e *ac3Extractor) Read(r io.Reader) (*Info, error) {
	buf, err := readPrefix(r, 128)
	if err != nil {
		return nil, err
	}
	if len(buf) < 2 || buf[0] != 0x0b || buf[1] != 0x77 {
		return nil, io.ErrUnexpectedEOF
	}

	track := Track{
		Type:  TrackTypeAudio,
		Codec: "AC-3",
	}

	// an E-AC-3 frame has bsid 16; its syncinfo does not follow the
	// AC-3 layout, so in that case only the codec is reported.
	var syncInfo ac3.SyncInfo
	if err := syncInfo.Unmarshal(buf); err == nil {
		var bsi ac3.BSI
		if err := bsi.Unmarshal(buf[5:]); err == nil {
			track.SampleRate = syncInfo.SampleRate()
			track.ChannelCount = bsi.ChannelCount()
		}
	} else if len(buf) >= 6 && buf[5]>>3 == 16 {
		track.Codec = "E-AC-3"
	}

	return &Info{
		Format:   FormatAC3,
		MimeType: "audio/ac3",
		Tracks:   []Track{track},
	}, nil
}

func (e *ac3Extractor) Seek(_ int64) {}

func (e *ac3Extractor) Release() {}

func (e *ac3Extractor) Underlying() Extractor {
	return e
}

// ac4Extractor parses the AC-4 audio container.
type ac4Extractor struct{}

func newAC4Extractor() Extractor {
	return &ac4Extractor{}
}

func (e *ac4Extractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, 2)
	if err != nil {
		return false, err
	}
	return len(buf) >= 2 && buf[0] == 0xac && (buf[1] == 0x40 || buf[1] == 0x41), nil
}

func (e *ac4Extractor) Read(r io.Reader) (*Info, error) {
	ok, err := e.Sniff(r)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return &Info{
		Format:   FormatAC4,
		MimeType: "audio/ac4",
		Tracks:   []Track{{Type: TrackTypeAudio, Codec: "AC-4"}},
	}, nil
}

func (e *ac4Extractor) Seek(_ int64) {}

func (e *ac4Extractor) Release() {}

func (e *ac4Extractor) Underlying() Extractor {
	return e
}

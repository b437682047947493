package extractor

import (
	"io"

	"github.com/bluenviron/mediacommon/v2/pkg/codecs/mpeg1audio"
)

// mp3Extractor parses the MP3 audio container.
// Its sync word is weak, which is why it sits near the end of the
// default sniffing order.
type mp3Extractor struct{}

func newMP3Extractor() Extractor {
	return &mp3Extractor{}
}

func mp3ChannelCount(cm mpeg1audio.ChannelMode) int {
	switch cm {
	case mpeg1audio.ChannelModeStereo,
		mpeg1audio.ChannelModeJointStereo,
		mpeg1audio.ChannelModeDualChannel:
		return 2

	default:
		return 1
	}
}

func (e *mp3Extractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, 8192)
	if err != nil {
		return false, err
	}
	buf = skipID3(buf)
	if len(buf) < 4 {
		return false, nil
	}

	var h mpeg1audio.FrameHeader
	return h.Unmarshal(buf) == nil, nil
}

func (e *mp3Extractor) Read(r io.Reader) (*Info, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	buf = skipID3(buf)

	var h mpeg1audio.FrameHeader
	err = h.Unmarshal(buf)
	if err != nil {
		return nil, err
	}

	return &Info{
		Format:   FormatMP3,
		MimeType: "audio/mpeg",
		Tracks: []Track{{
			Type:         TrackTypeAudio,
			Codec:        "MPEG-1 Audio",
			SampleRate:   h.SampleRate,
			ChannelCount: mp3ChannelCount(h.ChannelMode),
		}},
	}, nil
}

func (e *mp3Extractor) Seek(_ int64) {}

func (e *mp3Extractor) Release() {}

func (e *mp3Extractor) Underlying() Extractor {
	return e
}

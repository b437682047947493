package extractor

import (
	"io"

	"github.com/bluenviron/mediacommon/v2/pkg/codecs/mpeg4audio"
)

// skipID3 skips an ID3v2 tag, common at the start of raw audio
// streams.
func skipID3(buf []byte) []byte {
	if len(buf) < 10 || buf[0] != 'I' || buf[1] != 'D' || buf[2] != '3' {
		return buf
	}
	size := int(buf[6]&0x7f)<<21 | int(buf[7]&0x7f)<<14 |
		int(buf[8]&0x7f)<<7 | int(buf[9]&0x7f)
	if 10+size > len(buf) {
		return nil
	}
	return buf[10+size:]
}

// adtsFrameLength returns the declared length of the ADTS frame at
// the start of buf, or zero if the header is not a valid ADTS header.
func adtsFrameLength(buf []byte) int {
	if len(buf) < 6 || buf[0] != 0xff || (buf[1]&0xf6) != 0xf0 {
		return 0
	}
	return int(buf[3]&0x03)<<11 | int(buf[4])<<3 | int(buf[5])>>5
}

// adtsExtractor parses the ADTS audio container.
type adtsExtractor struct{}

func newADTSExtractor() Extractor {
	return &adtsExtractor{}
}

func (e *adtsExtractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, 8192)
	if err != nil {
		return false, err
	}
	buf = skipID3(buf)

	// require two consecutive frames to reduce false sync matches.
	n := adtsFrameLength(buf)
	if n == 0 {
		return false, nil
	}
	if n < len(buf) {
		return adtsFrameLength(buf[n:]) != 0, nil
	}
	return true, nil
}

func (e *adtsExtractor) Read(r io.Reader) (*Info, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	buf = skipID3(buf)

	n := adtsFrameLength(buf)
	if n == 0 || n > len(buf) {
		return nil, io.ErrUnexpectedEOF
	}

	var pkts mpeg4audio.ADTSPackets
	err = pkts.Unmarshal(buf[:n])
	if err != nil {
		return nil, err
	}

	return &Info{
		Format:   FormatADTS,
		MimeType: "audio/aac",
		Tracks: []Track{{
			Type:         TrackTypeAudio,
			Codec:        "AAC",
			SampleRate:   pkts[0].SampleRate,
			ChannelCount: pkts[0].ChannelCount,
		}},
	}, nil
}

func (e *adtsExtractor) Seek(_ int64) {}

func (e *adtsExtractor) Release() {}

func (e *adtsExtractor) Underlying() Extractor {
	return e
}

package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/asticode/go-astits"
)

const tsPacketSize = 188

// mpegtsExtractor parses the MPEG transport stream container.
type mpegtsExtractor struct{}

func newMPEGTSExtractor() Extractor {
	return &mpegtsExtractor{}
}

func (e *mpegtsExtractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, tsPacketSize*5)
	if err != nil {
		return false, err
	}
	if len(buf) < tsPacketSize {
		return false, nil
	}

	// require a sync byte at the start of every complete packet.
	for pos := 0; pos+tsPacketSize <= len(buf); pos += tsPacketSize {
		if buf[pos] != 0x47 {
			return false, nil
		}
	}
	return true, nil
}

func (e *mpegtsExtractor) Read(r io.Reader) (*Info, error) {
	info := &Info{
		Format:   FormatMPEGTS,
		MimeType: "video/mp2t",
	}

	dem := astits.NewDemuxer(context.Background(), r)

	for {
		data, err := dem.NextData()
		if err != nil {
			if errors.Is(err, astits.ErrNoMorePackets) {
				return nil, fmt.Errorf("PMT not found")
			}
			return nil, err
		}

		if data.PMT == nil {
			continue
		}

		for _, es := range data.PMT.ElementaryStreams {
			if track, ok := mpegtsTrack(es.StreamType); ok {
				info.Tracks = append(info.Tracks, track)
			}
		}
		return info, nil
	}
}

func mpegtsTrack(typ astits.StreamType) (Track, bool) {
	switch typ {
	case astits.StreamTypeH264Video:
		return Track{Type: TrackTypeVideo, Codec: "H264"}, true

	case astits.StreamTypeH265Video:
		return Track{Type: TrackTypeVideo, Codec: "H265"}, true

	case astits.StreamTypeMPEG2Video, astits.StreamTypeMPEG1Video:
		return Track{Type: TrackTypeVideo, Codec: "MPEG-2 Video"}, true

	case astits.StreamTypeAACAudio:
		return Track{Type: TrackTypeAudio, Codec: "AAC"}, true

	case astits.StreamTypeAACLATMAudio:
		return Track{Type: TrackTypeAudio, Codec: "AAC-LATM"}, true

	case astits.StreamTypeMPEG1Audio, astits.StreamTypeMPEG2HalvedSampleRateAudio:
		return Track{Type: TrackTypeAudio, Codec: "MPEG-1 Audio"}, true

	case astits.StreamTypeAC3Audio:
		return Track{Type: TrackTypeAudio, Codec: "AC-3"}, true

	case astits.StreamTypeEAC3Audio:
		return Track{Type: TrackTypeAudio, Codec: "E-AC-3"}, true
	}
	return Track{}, false
}

func (e *mpegtsExtractor) Seek(_ int64) {}

func (e *mpegtsExtractor) Release() {}

func (e *mpegtsExtractor) Underlying() Extractor {
	return e
}

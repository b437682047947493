package extractor

import (
	"bytes"
	"io"
	"math/bits"
	"strings"
)

// EBML element IDs used during header parsing.
const (
	ebmlIDHeader     = 0x1a45dfa3
	ebmlIDDocType    = 0x4282
	ebmlIDSegment    = 0x18538067
	ebmlIDTracks     = 0x1654ae6b
	ebmlIDTrackEntry = 0xae
	ebmlIDTrackType  = 0x83
	ebmlIDCodecID    = 0x86
	ebmlIDLanguage   = 0x22b59c
)

var ebmlMagic = []byte{0x1a, 0x45, 0xdf, 0xa3}

// ebmlReadVint reads a variable-length integer.
// When keepMarker is false the length marker bit is stripped, and an
// all-ones value (unknown size) is reported separately.
func ebmlReadVint(buf []byte, pos int, keepMarker bool) (value uint64, length int, unknown bool, ok bool) {
	if pos >= len(buf) || buf[pos] == 0 {
		return 0, 0, false, false
	}

	length = bits.LeadingZeros8(buf[pos]) + 1
	if pos+length > len(buf) {
		return 0, 0, false, false
	}

	value = uint64(buf[pos])
	if !keepMarker {
		value &= (1 << (8 - length)) - 1
	}
	allOnes := !keepMarker && value == (1<<(8-length))-1

	for i := 1; i < length; i++ {
		value = value<<8 | uint64(buf[pos+i])
		if buf[pos+i] != 0xff {
			allOnes = false
		}
	}

	return value, length, allOnes, true
}

// ebmlWalk visits the children of a master element payload.
func ebmlWalk(buf []byte, cb func(id uint64, payload []byte) bool) {
	pos := 0
	for pos < len(buf) {
		id, n, _, ok := ebmlReadVint(buf, pos, true)
		if !ok {
			return
		}
		pos += n

		size, n, unknown, ok := ebmlReadVint(buf, pos, false)
		if !ok {
			return
		}
		pos += n

		end := pos + int(size)
		if unknown || end > len(buf) || end < pos {
			end = len(buf)
		}

		if !cb(id, buf[pos:end]) {
			return
		}
		pos = end
	}
}

// matroskaExtractor parses the Matroska/WebM container.
type matroskaExtractor struct{}

func newMatroskaExtractor() Extractor {
	return &matroskaExtractor{}
}

func (e *matroskaExtractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, 4)
	if err != nil {
		return false, err
	}
	return bytes.Equal(buf, ebmlMagic), nil
}

func (e *matroskaExtractor) Read(r io.Reader) (*Info, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(buf, ebmlMagic) {
		return nil, io.ErrUnexpectedEOF
	}

	info := &Info{
		Format:   FormatMatroska,
		MimeType: "video/x-matroska",
	}

	ebmlWalk(buf, func(id uint64, payload []byte) bool {
		switch id {
		case ebmlIDHeader:
			ebmlWalk(payload, func(id uint64, payload []byte) bool {
				if id == ebmlIDDocType && string(payload) == "webm" {
					info.MimeType = "video/webm"
				}
				return true
			})

		case ebmlIDSegment:
			ebmlWalk(payload, func(id uint64, payload []byte) bool {
				if id == ebmlIDTracks {
					ebmlWalk(payload, func(id uint64, payload []byte) bool {
						if id == ebmlIDTrackEntry {
							if track, ok := matroskaTrack(payload); ok {
								info.Tracks = append(info.Tracks, track)
							}
						}
						return true
					})
					return false
				}
				return true
			})
			return false
		}
		return true
	})

	return info, nil
}

func matroskaTrack(entry []byte) (Track, bool) {
	var track Track

	ebmlWalk(entry, func(id uint64, payload []byte) bool {
		switch id {
		case ebmlIDTrackType:
			if len(payload) == 1 {
				switch payload[0] {
				case 1:
					track.Type = TrackTypeVideo
				case 2:
					track.Type = TrackTypeAudio
				case 17:
					track.Type = TrackTypeSubtitle
				}
			}

		case ebmlIDCodecID:
			track.Codec = matroskaCodec(string(payload))

		case ebmlIDLanguage:
			track.Language = string(payload)
		}
		return true
	})

	return track, track.Type != ""
}

func matroskaCodec(codecID string) string {
	switch {
	case codecID == "V_MPEG4/ISO/AVC":
		return "H264"
	case codecID == "V_MPEGH/ISO/HEVC":
		return "H265"
	case codecID == "V_VP8":
		return "VP8"
	case codecID == "V_VP9":
		return "VP9"
	case codecID == "V_AV1":
		return "AV1"
	case strings.HasPrefix(codecID, "A_AAC"):
		return "AAC"
	case codecID == "A_OPUS":
		return "Opus"
	case codecID == "A_VORBIS":
		return "Vorbis"
	case codecID == "A_FLAC":
		return "FLAC"
	case codecID == "A_MPEG/L3":
		return "MPEG-1 Audio"
	case codecID == "A_AC3":
		return "AC-3"
	case codecID == "A_EAC3":
		return "E-AC-3"
	case codecID == "S_TEXT/UTF8":
		return "SubRip"
	case codecID == "S_TEXT/ASS":
		return "ASS"
	case codecID == "S_TEXT/WEBVTT":
		return "WebVTT"
	case codecID == "S_VOBSUB":
		return "VobSub"
	case codecID == "S_HDMV/PGS":
		return "PGS"
	}
	return codecID
}

func (e *matroskaExtractor) Seek(_ int64) {}

func (e *matroskaExtractor) Release() {}

func (e *matroskaExtractor) Underlying() Extractor {
	return e
}

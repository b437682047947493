package extractor

import (
	"bytes"
	"encoding/binary"
	"io"

	gomp4 "github.com/abema/go-mp4"
)

// brands that identify a HEIF image rather than a media stream.
var heifBrands = map[string]struct{}{
	"heic": {}, "heix": {}, "heim": {}, "heis": {},
	"hevc": {}, "hevx": {}, "hevm": {}, "hevs": {},
	"mif1": {}, "msf1": {},
}

// brands that identify a fragmented stream.
var fragmentedBrands = map[string]struct{}{
	"iso5": {}, "iso6": {}, "dash": {}, "msdh": {}, "msix": {},
}

type mp4Box struct {
	boxType string
	payload []byte
}

// scanTopLevelBoxes walks the top-level boxes available in a bounded
// prefix. Payloads are clipped to the prefix.
func scanTopLevelBoxes(buf []byte, cb func(b mp4Box) bool) {
	pos := 0
	for pos+8 <= len(buf) {
		size := uint64(binary.BigEndian.Uint32(buf[pos : pos+4]))
		boxType := string(buf[pos+4 : pos+8])
		headerSize := 8

		switch size {
		case 0: // box extends to the end of the file
			size = uint64(len(buf) - pos)
		case 1: // 64-bit size
			if pos+16 > len(buf) {
				return
			}
			size = binary.BigEndian.Uint64(buf[pos+8 : pos+16])
			headerSize = 16
		}
		if size < uint64(headerSize) {
			return
		}

		end := pos + int(size)
		if end > len(buf) || end < pos {
			end = len(buf)
		}
		if !cb(mp4Box{boxType: boxType, payload: buf[pos+headerSize : end]}) {
			return
		}

		if int(size) <= 0 {
			return
		}
		pos += int(size)
	}
}

func ftypBrands(payload []byte) []string {
	var ret []string
	if len(payload) >= 4 {
		ret = append(ret, string(payload[:4]))
	}
	for pos := 8; pos+4 <= len(payload); pos += 4 {
		ret = append(ret, string(payload[pos:pos+4]))
	}
	return ret
}

func anyBrand(brands []string, set map[string]struct{}) bool {
	for _, b := range brands {
		if _, ok := set[b]; ok {
			return true
		}
	}
	return false
}

// sniffMP4Family classifies a prefix as progressive MP4, fragmented
// MP4, HEIF image or none of them.
func sniffMP4Family(buf []byte) (progressive bool, fragmented bool, heif bool) {
	validBoxes := 0

	scanTopLevelBoxes(buf, func(b mp4Box) bool {
		switch b.boxType {
		case "ftyp":
			brands := ftypBrands(b.payload)
			if anyBrand(brands, heifBrands) {
				heif = true
				return false
			}
			if anyBrand(brands, fragmentedBrands) {
				fragmented = true
			}
			validBoxes++

		case "moov":
			progressive = true
			return false

		case "moof", "styp", "sidx":
			fragmented = true
			return false

		case "mdat", "free", "skip", "wide", "pdin", "uuid":
			validBoxes++

		default:
			return false
		}
		return true
	})

	// a valid prefix that ended before moov or moof: assume the
	// cheaper progressive layout unless a fragmentation brand said
	// otherwise.
	if !progressive && !fragmented && !heif && validBoxes > 0 {
		progressive = true
	}
	return
}

// readMP4Info extracts header-level track metadata with a box walk.
func readMP4Info(r io.Reader, format string, mime string) (*Info, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Format:   format,
		MimeType: mime,
	}

	_, err = gomp4.ReadBoxStructure(bytes.NewReader(buf), func(h *gomp4.ReadHandle) (interface{}, error) {
		switch h.BoxInfo.Type {
		case gomp4.BoxTypeMoov(), gomp4.BoxTypeTrak(), gomp4.BoxTypeMdia(),
			gomp4.BoxTypeMinf(), gomp4.BoxTypeStbl():
			return h.Expand()

		case gomp4.BoxTypeHdlr():
			box, _, err2 := h.ReadPayload()
			if err2 != nil {
				return nil, err2
			}
			hdlr := box.(*gomp4.Hdlr)
			if track := mp4TrackType(hdlr.HandlerType); track != "" {
				info.Tracks = append(info.Tracks, Track{Type: track})
			}

		case gomp4.BoxTypeStsd():
			return h.Expand()

		default:
			// sample entries are direct children of stsd.
			if len(h.Path) >= 2 && h.Path[len(h.Path)-2] == gomp4.BoxTypeStsd() &&
				len(info.Tracks) > 0 {
				last := &info.Tracks[len(info.Tracks)-1]
				if last.Codec == "" {
					last.Codec = mp4Codec(h.BoxInfo.Type.String())
				}
			}
		}
		return nil, nil
	})
	if err != nil && len(info.Tracks) == 0 {
		return nil, err
	}

	return info, nil
}

func mp4TrackType(handlerType [4]byte) TrackType {
	switch string(handlerType[:]) {
	case "vide":
		return TrackTypeVideo
	case "soun":
		return TrackTypeAudio
	case "text", "sbtl", "subt", "clcp":
		return TrackTypeSubtitle
	}
	return ""
}

func mp4Codec(sampleEntry string) string {
	switch sampleEntry {
	case "avc1", "avc3":
		return "H264"
	case "hvc1", "hev1":
		return "H265"
	case "av01":
		return "AV1"
	case "vp09":
		return "VP9"
	case "mp4a":
		return "MPEG-4 Audio"
	case "ac-3":
		return "AC-3"
	case "ec-3":
		return "E-AC-3"
	case "ac-4":
		return "AC-4"
	case "Opus":
		return "Opus"
	case "fLaC":
		return "FLAC"
	case "tx3g":
		return "TX3G"
	case "wvtt":
		return "WebVTT"
	case "stpp":
		return "TTML"
	}
	return sampleEntry
}

// mp4Extractor parses the progressive MP4 container.
type mp4Extractor struct{}

func newMP4Extractor() Extractor {
	return &mp4Extractor{}
}

func (e *mp4Extractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, 4096)
	if err != nil {
		return false, err
	}
	progressive, fragmented, _ := sniffMP4Family(buf)
	return progressive && !fragmented, nil
}

func (e *mp4Extractor) Read(r io.Reader) (*Info, error) {
	return readMP4Info(r, FormatMP4, "video/mp4")
}

func (e *mp4Extractor) Seek(_ int64) {}

func (e *mp4Extractor) Release() {}

func (e *mp4Extractor) Underlying() Extractor {
	return e
}

// fmp4Extractor parses the fragmented MP4 container.
type fmp4Extractor struct{}

func newFMP4Extractor() Extractor {
	return &fmp4Extractor{}
}

func (e *fmp4Extractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, 4096)
	if err != nil {
		return false, err
	}
	_, fragmented, _ := sniffMP4Family(buf)
	return fragmented, nil
}

func (e *fmp4Extractor) Read(r io.Reader) (*Info, error) {
	return readMP4Info(r, FormatFMP4, "video/mp4")
}

func (e *fmp4Extractor) Seek(_ int64) {}

func (e *fmp4Extractor) Release() {}

func (e *fmp4Extractor) Underlying() Extractor {
	return e
}

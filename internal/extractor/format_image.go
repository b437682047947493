package extractor

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Still-image formats. They are sniffed last since images are never
// muxed with other media.

// jpegExtractor parses the JPEG format.
type jpegExtractor struct{}

func newJPEGExtractor() Extractor {
	return &jpegExtractor{}
}

func (e *jpegExtractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, 3)
	if err != nil {
		return false, err
	}
	return bytes.Equal(buf, []byte{0xff, 0xd8, 0xff}), nil
}

func (e *jpegExtractor) Read(r io.Reader) (*Info, error) {
	ok, err := e.Sniff(r)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return &Info{
		Format:   FormatJPEG,
		MimeType: "image/jpeg",
		Tracks:   []Track{{Type: TrackTypeImage, Codec: "JPEG"}},
	}, nil
}

func (e *jpegExtractor) Seek(_ int64) {}

func (e *jpegExtractor) Release() {}

func (e *jpegExtractor) Underlying() Extractor {
	return e
}

// pngExtractor parses the PNG format.
type pngExtractor struct{}

func newPNGExtractor() Extractor {
	return &pngExtractor{}
}

var pngMagic = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

func (e *pngExtractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, len(pngMagic))
	if err != nil {
		return false, err
	}
	return bytes.Equal(buf, pngMagic), nil
}

func (e *pngExtractor) Read(r io.Reader) (*Info, error) {
	buf, err := readPrefix(r, 24)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(buf, pngMagic) {
		return nil, io.ErrUnexpectedEOF
	}

	track := Track{Type: TrackTypeImage, Codec: "PNG"}

	// IHDR is always the first chunk.
	if len(buf) >= 24 && bytes.Equal(buf[12:16], []byte("IHDR")) {
		track.Width = int(binary.BigEndian.Uint32(buf[16:20]))
		track.Height = int(binary.BigEndian.Uint32(buf[20:24]))
	}

	return &Info{
		Format:   FormatPNG,
		MimeType: "image/png",
		Tracks:   []Track{track},
	}, nil
}

func (e *pngExtractor) Seek(_ int64) {}

func (e *pngExtractor) Release() {}

func (e *pngExtractor) Underlying() Extractor {
	return e
}

// webpExtractor parses the WEBP format.
type webpExtractor struct{}

func newWEBPExtractor() Extractor {
	return &webpExtractor{}
}

func (e *webpExtractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, 12)
	if err != nil {
		return false, err
	}
	return len(buf) >= 12 &&
		bytes.Equal(buf[:4], []byte("RIFF")) &&
		bytes.Equal(buf[8:12], []byte("WEBP")), nil
}

func (e *webpExtractor) Read(r io.Reader) (*Info, error) {
	ok, err := e.Sniff(r)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return &Info{
		Format:   FormatWEBP,
		MimeType: "image/webp",
		Tracks:   []Track{{Type: TrackTypeImage, Codec: "WEBP"}},
	}, nil
}

func (e *webpExtractor) Seek(_ int64) {}

func (e *webpExtractor) Release() {}

func (e *webpExtractor) Underlying() Extractor {
	return e
}

// bmpExtractor parses the BMP format.
type bmpExtractor struct{}

func newBMPExtractor() Extractor {
	return &bmpExtractor{}
}

func (e *bmpExtractor) Sniff(r io.Reader) (bool, error) {
	buf, err := readPrefix(r, 18)
	if err != nil {
		return false, err
	}
	// "BM" plus a plausible DIB header size
	return len(buf) >= 18 &&
		buf[0] == 'B' && buf[1] == 'M' &&
		binary.LittleEndian.Uint32(buf[14:18]) >= 12, nil
}

func (e *bmpExtractor) Read(r io.Reader) (*Info, error) {
	buf, err := readPrefix(r, 26)
	if err != nil {
		return nil, err
	}
	if len(buf) < 26 || buf[0] != 'B' || buf[1] != 'M' {
		return nil, io.ErrUnexpectedEOF
	}

	track := Track{
		Type:   TrackTypeImage,
		Codec:  "BMP",
		Width:  int(int32(binary.LittleEndian.Uint32(buf[18:22]))),
		Height: int(int32(binary.LittleEndian.Uint32(buf[22:26]))),
	}
	if track.Height < 0 { // top-down bitmap
		track.Height = -track.Height
	}

	return &Info{
		Format:   FormatBMP,
		MimeType: "image/bmp",
		Tracks:   []Track{track},
	}, nil
}

func (e *bmpExtractor) Seek(_ int64) {}

func (e *bmpExtractor) Release() {}

func (e *bmpExtractor) Underlying() Extractor {
	return e
}

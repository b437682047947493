package extractor

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func le16(v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return b[:]
}

func le32(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

func be32(v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b[:]
}

func concat(parts ...[]byte) []byte {
	var ret []byte
	for _, p := range parts {
		ret = append(ret, p...)
	}
	return ret
}

func wavSample() []byte {
	return concat(
		[]byte("RIFF"), le32(36), []byte("WAVE"),
		[]byte("fmt "), le32(16),
		le16(1), le16(2), le32(48000), le32(192000), le16(4), le16(16),
	)
}

func mp4Sample() []byte {
	return concat(be32(16), []byte("ftyp"), []byte("isom"), be32(512))
}

func fmp4Sample() []byte {
	return concat(
		be32(16), []byte("ftyp"), []byte("iso5"), be32(512),
		be32(8), []byte("moof"),
	)
}

func heifSample() []byte {
	return concat(be32(16), []byte("ftyp"), []byte("heic"), be32(0))
}

func tsSample() []byte {
	buf := make([]byte, tsPacketSize*2)
	buf[0] = 0x47
	buf[tsPacketSize] = 0x47
	return buf
}

func TestSniff(t *testing.T) {
	for _, ca := range []struct {
		format string
		sample []byte
	}{
		{FormatFLV, []byte("FLV\x01\x05\x00\x00\x00\x09")},
		{FormatFLAC, []byte("fLaC\x00\x00\x00\x22")},
		{FormatWAV, wavSample()},
		{FormatMP4, mp4Sample()},
		{FormatFMP4, fmp4Sample()},
		{FormatAMR, []byte("#!AMR\n")},
		{FormatMPEGPS, []byte{0x00, 0x00, 0x01, 0xba, 0x44}},
		{FormatOGG, []byte("OggS\x00\x02")},
		{FormatMPEGTS, tsSample()},
		{FormatMatroska, concat(ebmlMagic, []byte{0x87})},
		{FormatADTS, []byte{0xff, 0xf1, 0x50, 0x80, 0x00, 0xe0, 0xab}},
		{FormatAC3, []byte{0x0b, 0x77, 0x12, 0x34}},
		{FormatAC4, []byte{0xac, 0x40, 0xff, 0xff}},
		{FormatMP3, []byte{0xff, 0xfb, 0x90, 0x00}},
		{FormatAVI, concat([]byte("RIFF"), le32(100), []byte("AVI "))},
		{FormatJPEG, []byte{0xff, 0xd8, 0xff, 0xe0}},
		{FormatPNG, concat(pngMagic, be32(13), []byte("IHDR"))},
		{FormatWEBP, concat([]byte("RIFF"), le32(100), []byte("WEBP"))},
		{FormatBMP, concat([]byte("BM"), le32(62), le32(0), le32(54), le32(40))},
		{FormatHEIF, heifSample()},
	} {
		t.Run(ca.format, func(t *testing.T) {
			e := FindDescriptor(ca.format).New()
			ok, err := e.Sniff(bytes.NewReader(ca.sample))
			require.NoError(t, err)
			require.True(t, ok)
		})
	}
}

func TestSniffDecline(t *testing.T) {
	garbage := [][]byte{
		nil,
		{0x01},
		bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 64),
	}

	for _, d := range DefaultOrder() {
		t.Run(d.Name, func(t *testing.T) {
			for _, sample := range garbage {
				ok, err := d.New().Sniff(bytes.NewReader(sample))
				require.NoError(t, err)
				require.False(t, ok)
			}
		})
	}
}

func TestReadFLV(t *testing.T) {
	e := newFLVExtractor()
	info, err := e.Read(bytes.NewReader([]byte("FLV\x01\x05\x00\x00\x00\x09")))
	require.NoError(t, err)
	require.Equal(t, &Info{
		Format:   FormatFLV,
		MimeType: "video/x-flv",
		Tracks: []Track{
			{Type: TrackTypeVideo},
			{Type: TrackTypeAudio},
		},
	}, info)
}

func TestReadFLAC(t *testing.T) {
	streamInfo := make([]byte, 34)
	streamInfo[10] = 0x0a
	streamInfo[11] = 0xc4
	streamInfo[12] = 0x42

	e := newFLACExtractor()
	info, err := e.Read(bytes.NewReader(concat(
		[]byte("fLaC"), []byte{0x00, 0x00, 0x00, 0x22}, streamInfo)))
	require.NoError(t, err)
	require.Equal(t, 44100, info.Tracks[0].SampleRate)
	require.Equal(t, 2, info.Tracks[0].ChannelCount)
}

func TestReadWAV(t *testing.T) {
	e := newWAVExtractor()
	info, err := e.Read(bytes.NewReader(wavSample()))
	require.NoError(t, err)
	require.Equal(t, []Track{{
		Type:         TrackTypeAudio,
		Codec:        "LPCM",
		SampleRate:   48000,
		ChannelCount: 2,
	}}, info.Tracks)
}

func TestReadAMR(t *testing.T) {
	e := newAMRExtractor()
	info, err := e.Read(bytes.NewReader([]byte("#!AMR-WB\n")))
	require.NoError(t, err)
	require.Equal(t, "AMR-WB", info.Tracks[0].Codec)
	require.Equal(t, 16000, info.Tracks[0].SampleRate)
}

func TestReadPNG(t *testing.T) {
	e := newPNGExtractor()
	info, err := e.Read(bytes.NewReader(concat(
		pngMagic, be32(13), []byte("IHDR"), be32(1920), be32(1080))))
	require.NoError(t, err)
	require.Equal(t, 1920, info.Tracks[0].Width)
	require.Equal(t, 1080, info.Tracks[0].Height)
}

func TestReadOGG(t *testing.T) {
	page := make([]byte, 28)
	copy(page, "OggS")

	e := newOGGExtractor()
	info, err := e.Read(bytes.NewReader(concat(page, []byte("OpusHead"))))
	require.NoError(t, err)
	require.Equal(t, []Track{{Type: TrackTypeAudio, Codec: "Opus"}}, info.Tracks)
}

func ebmlElem(id []byte, payload []byte) []byte {
	if len(payload) > 126 {
		panic("unsupported size")
	}
	return concat(id, []byte{0x80 | byte(len(payload))}, payload)
}

func TestReadMatroska(t *testing.T) {
	header := ebmlElem([]byte{0x1a, 0x45, 0xdf, 0xa3},
		ebmlElem([]byte{0x42, 0x82}, []byte("webm")))

	videoEntry := ebmlElem([]byte{0xae}, concat(
		ebmlElem([]byte{0x83}, []byte{0x01}),
		ebmlElem([]byte{0x86}, []byte("V_VP9")),
	))
	subtitleEntry := ebmlElem([]byte{0xae}, concat(
		ebmlElem([]byte{0x83}, []byte{0x11}),
		ebmlElem([]byte{0x86}, []byte("S_TEXT/UTF8")),
		ebmlElem([]byte{0x22, 0xb5, 0x9c}, []byte("eng")),
	))
	segment := ebmlElem([]byte{0x18, 0x53, 0x80, 0x67},
		ebmlElem([]byte{0x16, 0x54, 0xae, 0x6b}, concat(videoEntry, subtitleEntry)))

	e := newMatroskaExtractor()
	info, err := e.Read(bytes.NewReader(concat(header, segment)))
	require.NoError(t, err)
	require.Equal(t, "video/webm", info.MimeType)
	require.Equal(t, []Track{
		{Type: TrackTypeVideo, Codec: "VP9"},
		{Type: TrackTypeSubtitle, Codec: "SubRip", Language: "eng"},
	}, info.Tracks)
}

func TestReadMP4(t *testing.T) {
	e := newMP4Extractor()
	info, err := e.Read(bytes.NewReader(mp4Sample()))
	require.NoError(t, err)
	require.Equal(t, FormatMP4, info.Format)
	require.Equal(t, "video/mp4", info.MimeType)
}

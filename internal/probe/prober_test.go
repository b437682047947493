package probe

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluenviron/mediaprobe/internal/extractor"
)

func newTestProber(t *testing.T) *Prober {
	t.Helper()

	f := &extractor.Factory{}
	f.Initialize()

	p := &Prober{Factory: f}
	p.Initialize()
	return p
}

func TestProbeFLV(t *testing.T) {
	p := newTestProber(t)

	info, err := p.Probe(bytes.NewReader([]byte("FLV\x01\x05\x00\x00\x00\x09")), "", nil)
	require.NoError(t, err)
	require.Equal(t, extractor.FormatFLV, info.Format)
	require.Equal(t, []extractor.Track{
		{Type: extractor.TrackTypeVideo},
		{Type: extractor.TrackTypeAudio},
	}, info.Tracks)
}

func TestProbeWithHints(t *testing.T) {
	p := newTestProber(t)

	sample := []byte("#!AMR-WB\n")
	info, err := p.Probe(bytes.NewReader(sample),
		"http://example.com/voice.amr",
		map[string][]string{"Content-Type": {"audio/amr"}})
	require.NoError(t, err)
	require.Equal(t, extractor.FormatAMR, info.Format)
	require.Equal(t, "AMR-WB", info.Tracks[0].Codec)
}

func TestProbeMisleadingHints(t *testing.T) {
	p := newTestProber(t)

	// hints reorder the candidates but never exclude any of them.
	info, err := p.Probe(bytes.NewReader([]byte("fLaC\x00\x00\x00\x22")),
		"stream.mp3",
		map[string][]string{"Content-Type": {"video/mp4"}})
	require.NoError(t, err)
	require.Equal(t, extractor.FormatFLAC, info.Format)
}

func TestProbeUnrecognized(t *testing.T) {
	p := newTestProber(t)

	_, err := p.Probe(bytes.NewReader(bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 64)), "", nil)
	require.ErrorIs(t, err, extractor.ErrUnrecognizedFormat)
}

func TestProbeEmptyStream(t *testing.T) {
	p := newTestProber(t)

	_, err := p.Probe(bytes.NewReader(nil), "", nil)
	require.ErrorIs(t, err, extractor.ErrUnrecognizedFormat)
}

func TestInitializeDefaults(t *testing.T) {
	p := &Prober{Factory: &extractor.Factory{}}
	p.Initialize()
	require.Equal(t, 64*1024, p.MaxHeaderSize)
}

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bluenviron/mediaprobe/internal/extractor"
	"github.com/bluenviron/mediaprobe/internal/logger"
	"github.com/bluenviron/mediaprobe/internal/probe"
)

type testParent struct{}

func (testParent) Log(_ logger.Level, _ string, _ ...interface{}) {}

func newTestAPI(t *testing.T) *API {
	t.Helper()

	f := &extractor.Factory{}
	f.Initialize()

	p := &probe.Prober{Factory: f}
	p.Initialize()

	a := &API{
		Version: "v0.0.0",
		Started: time.Now(),
		Address: "127.0.0.1:9597",
		Prober:  p,
		Parent:  testParent{},
	}
	err := a.Initialize()
	require.NoError(t, err)
	t.Cleanup(a.Close)
	// every test closes its server; drop pooled connections so the next
	// test does not reuse a stale one.
	t.Cleanup(http.DefaultClient.CloseIdleConnections)

	return a
}

func httpRequest(t *testing.T, method string, url string, body []byte, dest interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	if dest != nil {
		err = json.NewDecoder(res.Body).Decode(dest)
		require.NoError(t, err)
	}

	return res.StatusCode
}

func TestInfo(t *testing.T) {
	newTestAPI(t)

	var out apiInfo
	code := httpRequest(t, http.MethodGet, "http://127.0.0.1:9597/v1/info", nil, &out)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "v0.0.0", out.Version)
}

func TestFormatsList(t *testing.T) {
	newTestAPI(t)

	var out []apiFormat
	code := httpRequest(t, http.MethodGet, "http://127.0.0.1:9597/v1/formats", nil, &out)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, out, 20)
	require.Equal(t, "flv", out[0].Name)
	require.Equal(t, "heif", out[19].Name)
}

func TestProbe(t *testing.T) {
	newTestAPI(t)

	var out apiProbeResult
	code := httpRequest(t, http.MethodPost, "http://127.0.0.1:9597/v1/probe",
		[]byte("FLV\x01\x05\x00\x00\x00\x09"), &out)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, out.ID)
	require.Equal(t, extractor.FormatFLV, out.Format)
	require.Len(t, out.Tracks, 2)
}

func TestProbeWithURIHint(t *testing.T) {
	newTestAPI(t)

	var out apiProbeResult
	code := httpRequest(t, http.MethodPost,
		"http://127.0.0.1:9597/v1/probe?uri=voice.amr",
		[]byte("#!AMR\n"), &out)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, extractor.FormatAMR, out.Format)
}

func TestProbeUnrecognized(t *testing.T) {
	newTestAPI(t)

	var out apiError
	code := httpRequest(t, http.MethodPost, "http://127.0.0.1:9597/v1/probe",
		bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 16), &out)
	require.Equal(t, http.StatusUnsupportedMediaType, code)
	require.Equal(t, "error", out.Status)
}

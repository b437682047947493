package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluenviron/mediaprobe/internal/logger"
)

func writeTempFile(t *testing.T, byts []byte) string {
	t.Helper()

	fpath := filepath.Join(t.TempDir(), "mediaprobe.yml")
	err := os.WriteFile(fpath, byts, 0o644)
	require.NoError(t, err)
	return fpath
}

func TestConfFromFile(t *testing.T) {
	fpath := writeTempFile(t, []byte(
		"logLevel: debug\n"+
			"subtitleTranscoding: true\n"+
			"maxHeaderSize: 128k\n"))

	conf, confPath, err := Load(fpath)
	require.NoError(t, err)
	require.Equal(t, fpath, confPath)

	require.Equal(t, LogLevel(logger.Debug), conf.LogLevel)
	require.Equal(t, true, conf.SubtitleTranscoding)
	require.Equal(t, StringSize(128*1024), conf.MaxHeaderSize)

	// unset parameters keep their default value
	require.Equal(t, LogDestinations{logger.DestinationStdout}, conf.LogDestinations)
	require.Equal(t, ":9997", conf.APIAddress)
}

func TestConfFromFileNotFound(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	require.Error(t, err)
}

func TestConfInvalidField(t *testing.T) {
	fpath := writeTempFile(t, []byte("invalidParameter: 5\n"))

	_, _, err := Load(fpath)
	require.Error(t, err)
}

func TestConfFromEnv(t *testing.T) {
	t.Setenv("MEDIAPROBE_LOGLEVEL", "error")
	t.Setenv("MEDIAPROBE_SUBTITLETRANSCODING", "yes")
	t.Setenv("MEDIAPROBE_MAXHEADERSIZE", "1M")

	fpath := writeTempFile(t, []byte("{}\n"))

	conf, _, err := Load(fpath)
	require.NoError(t, err)

	require.Equal(t, LogLevel(logger.Error), conf.LogLevel)
	require.Equal(t, true, conf.SubtitleTranscoding)
	require.Equal(t, StringSize(1024*1024), conf.MaxHeaderSize)
}

func TestConfInvalidMaxHeaderSize(t *testing.T) {
	fpath := writeTempFile(t, []byte("maxHeaderSize: 0\n"))

	_, _, err := Load(fpath)
	require.Error(t, err)
}

func TestConfClone(t *testing.T) {
	fpath := writeTempFile(t, []byte("logLevel: warn\n"))

	conf, _, err := Load(fpath)
	require.NoError(t, err)

	clone := conf.Clone()
	require.Equal(t, conf, clone)

	clone.SubtitleTranscoding = true
	require.NotEqual(t, conf, clone)
}

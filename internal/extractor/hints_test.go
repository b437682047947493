package extractor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveHints(t *testing.T) {
	for _, ca := range []struct {
		name    string
		uri     string
		headers map[string][]string
		hints   []hint
	}{
		{
			"no inputs",
			"",
			nil,
			nil,
		},
		{
			"content type only",
			"",
			map[string][]string{"Content-Type": {"video/mp4"}},
			[]hint{{source: hintSourceContentType, group: groupMP4}},
		},
		{
			"content type with parameters",
			"",
			map[string][]string{"Content-Type": {"Video/MP4; codecs=\"avc1.42E01E\""}},
			[]hint{{source: hintSourceContentType, group: groupMP4}},
		},
		{
			"content type key case insensitive",
			"",
			map[string][]string{"content-type": {"audio/ogg"}},
			[]hint{{source: hintSourceContentType, group: FormatOGG}},
		},
		{
			"unrecognized content type",
			"",
			map[string][]string{"Content-Type": {"application/octet-stream"}},
			nil,
		},
		{
			"uri extension only",
			"http://example.com/media/stream.mkv?token=abc",
			nil,
			[]hint{{source: hintSourceURIExtension, group: FormatMatroska}},
		},
		{
			"plain file name",
			"test-cbr-info-header.mp3",
			nil,
			[]hint{{source: hintSourceURIExtension, group: FormatMP3}},
		},
		{
			"unknown extension",
			"file.xyz",
			nil,
			nil,
		},
		{
			"both sources",
			"x.mp3",
			map[string][]string{"Content-Type": {"video/mp4"}},
			[]hint{
				{source: hintSourceContentType, group: groupMP4},
				{source: hintSourceURIExtension, group: FormatMP3},
			},
		},
		{
			"redundant extension collapses into one hint",
			"movie.m4v",
			map[string][]string{"Content-Type": {"audio/mp4"}},
			[]hint{{source: hintSourceContentType, group: groupMP4}},
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			require.Equal(t, ca.hints, resolveHints(ca.uri, ca.headers))
		})
	}
}

func TestResolveHintsAtMostTwo(t *testing.T) {
	hints := resolveHints("a.webm", map[string][]string{"Content-Type": {"audio/wav"}})
	require.Len(t, hints, 2)
	require.Equal(t, hintSourceContentType, hints[0].source)
	require.Equal(t, hintSourceURIExtension, hints[1].source)
}

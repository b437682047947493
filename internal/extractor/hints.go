package extractor

import (
	"net/url"
	"path"
	"strings"
)

type hintSource int

const (
	hintSourceContentType hintSource = iota
	hintSourceURIExtension
)

// hint is a weak, non-authoritative format signal. It only reorders
// probing priority, it never skips probing.
type hint struct {
	source hintSource
	group  string
}

// mimeToGroup maps normalized MIME types to a format group.
// A group usually contains a single format; the MP4 family is the
// exception, since a "video/mp4" declaration cannot distinguish
// progressive from fragmented streams.
var mimeToGroup = func() map[string]string {
	ret := make(map[string]string)
	for _, d := range registry {
		group := d.Name
		if d.Name == FormatMP4 || d.Name == FormatFMP4 {
			group = groupMP4
		}
		for _, mime := range d.MimeTypes {
			ret[mime] = group
		}
	}
	return ret
}()

const groupMP4 = "mp4-family"

// groupOf returns the format group a descriptor belongs to.
func groupOf(d *Descriptor) string {
	if d.Name == FormatMP4 || d.Name == FormatFMP4 {
		return groupMP4
	}
	return d.Name
}

// extensionToMime maps URI file extensions to MIME types.
// The table is intentionally not exhaustive: unknown extensions
// degrade to fewer hints, never to an error.
var extensionToMime = map[string]string{
	".flv":  "video/x-flv",
	".flac": "audio/flac",
	".wav":  "audio/wav",
	".wave": "audio/wav",
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".m4a":  "audio/mp4",
	".m4b":  "audio/mp4",
	".mov":  "video/mp4",
	".3gp":  "video/mp4",
	".cmfv": "video/mp4",
	".cmfa": "audio/mp4",
	".amr":  "audio/amr",
	".awb":  "audio/amr-wb",
	".mpg":  "video/mp2p",
	".mpeg": "video/mp2p",
	".vob":  "video/mp2p",
	".ps":   "video/mp2p",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".ogv":  "video/ogg",
	".opus": "audio/ogg",
	".ts":   "video/mp2t",
	".mts":  "video/mp2t",
	".m2ts": "video/mp2t",
	".mkv":  "video/x-matroska",
	".mka":  "audio/x-matroska",
	".webm": "video/webm",
	".aac":  "audio/aac",
	".ac3":  "audio/ac3",
	".ec3":  "audio/eac3",
	".ac4":  "audio/ac4",
	".mp3":  "audio/mpeg",
	".avi":  "video/avi",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".heic": "image/heic",
	".heif": "image/heif",
}

// normalizeMime strips parameters and lower-cases a declared MIME type.
func normalizeMime(v string) string {
	if i := strings.IndexByte(v, ';'); i >= 0 {
		v = v[:i]
	}
	return strings.ToLower(strings.TrimSpace(v))
}

// contentTypeOf returns the first declared Content-Type value.
func contentTypeOf(headers map[string][]string) string {
	for key, values := range headers {
		if strings.EqualFold(key, "Content-Type") && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// extensionOf derives the file extension of a URI, ignoring query
// and fragment parts.
func extensionOf(uri string) string {
	if u, err := url.Parse(uri); err == nil && u.Path != "" {
		return strings.ToLower(path.Ext(u.Path))
	}
	return strings.ToLower(path.Ext(uri))
}

// resolveHints derives at most two hints from a URI and response
// headers, ordered by descending confidence. Unknown or missing
// inputs silently yield fewer hints.
func resolveHints(uri string, headers map[string][]string) []hint {
	var ret []hint

	if ct := contentTypeOf(headers); ct != "" {
		if group, ok := mimeToGroup[normalizeMime(ct)]; ok {
			ret = append(ret, hint{
				source: hintSourceContentType,
				group:  group,
			})
		}
	}

	if ext := extensionOf(uri); ext != "" {
		if mime, ok := extensionToMime[ext]; ok {
			group := mimeToGroup[mime]
			if len(ret) == 0 || ret[0].group != group {
				ret = append(ret, hint{
					source: hintSourceURIExtension,
					group:  group,
				})
			}
		}
	}

	return ret
}

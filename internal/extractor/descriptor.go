package extractor

// Descriptor describes a container format that can be probed.
// Descriptors are immutable and shared by every Factory.
type Descriptor struct {
	// Name is the identity of the format.
	Name string

	// MimeTypes are the MIME types the format can claim.
	MimeTypes []string

	// MuxedSubtitles reports whether the container can carry multiple
	// in-band subtitle codecs, making it eligible for subtitle
	// transcoding.
	MuxedSubtitles bool

	// New allocates a fresh parser instance.
	New func() Extractor
}

// registry lists every known format, sorted by sniffing cost: formats
// with an unambiguous magic number come first, formats that need
// heuristics come later, image formats last since they are never muxed.
var registry = []*Descriptor{
	{
		Name:      FormatFLV,
		MimeTypes: []string{"video/x-flv"},
		New:       newFLVExtractor,
	},
	{
		Name:      FormatFLAC,
		MimeTypes: []string{"audio/flac", "audio/x-flac"},
		New:       newFLACExtractor,
	},
	{
		Name:      FormatWAV,
		MimeTypes: []string{"audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave"},
		New:       newWAVExtractor,
	},
	{
		Name:      FormatMP4,
		MimeTypes: []string{"video/mp4", "audio/mp4", "application/mp4"},
		New:       newMP4Extractor,
	},
	{
		Name:      FormatFMP4,
		MimeTypes: []string{"video/mp4", "audio/mp4", "application/mp4"},
		New:       newFMP4Extractor,
	},
	{
		Name:      FormatAMR,
		MimeTypes: []string{"audio/amr", "audio/amr-wb", "audio/3gpp"},
		New:       newAMRExtractor,
	},
	{
		Name:      FormatMPEGPS,
		MimeTypes: []string{"video/mp2p"},
		New:       newMPEGPSExtractor,
	},
	{
		Name:      FormatOGG,
		MimeTypes: []string{"video/ogg", "audio/ogg", "application/ogg"},
		New:       newOGGExtractor,
	},
	{
		Name:      FormatMPEGTS,
		MimeTypes: []string{"video/mp2t"},
		New:       newMPEGTSExtractor,
	},
	{
		Name:           FormatMatroska,
		MimeTypes:      []string{"video/x-matroska", "audio/x-matroska", "video/webm", "audio/webm"},
		MuxedSubtitles: true,
		New:            newMatroskaExtractor,
	},
	{
		Name:      FormatADTS,
		MimeTypes: []string{"audio/aac", "audio/aacp", "audio/mp4a-latm"},
		New:       newADTSExtractor,
	},
	{
		Name:      FormatAC3,
		MimeTypes: []string{"audio/ac3", "audio/eac3"},
		New:       newAC3Extractor,
	},
	{
		Name:      FormatAC4,
		MimeTypes: []string{"audio/ac4"},
		New:       newAC4Extractor,
	},
	{
		Name:      FormatMP3,
		MimeTypes: []string{"audio/mpeg", "audio/mp3", "audio/mpeg-l1", "audio/mpeg-l2"},
		New:       newMP3Extractor,
	},
	{
		Name:      FormatAVI,
		MimeTypes: []string{"video/avi", "video/x-msvideo", "video/vnd.avi"},
		New:       newAVIExtractor,
	},
	{
		Name:      FormatJPEG,
		MimeTypes: []string{"image/jpeg"},
		New:       newJPEGExtractor,
	},
	{
		Name:      FormatPNG,
		MimeTypes: []string{"image/png"},
		New:       newPNGExtractor,
	},
	{
		Name:      FormatWEBP,
		MimeTypes: []string{"image/webp"},
		New:       newWEBPExtractor,
	},
	{
		Name:      FormatBMP,
		MimeTypes: []string{"image/bmp", "image/x-ms-bmp"},
		New:       newBMPExtractor,
	},
	{
		Name:      FormatHEIF,
		MimeTypes: []string{"image/heif", "image/heic"},
		New:       newHEIFExtractor,
	},
}

// Format names, in default sniffing order.
const (
	FormatFLV      = "flv"
	FormatFLAC     = "flac"
	FormatWAV      = "wav"
	FormatMP4      = "mp4"
	FormatFMP4     = "fmp4"
	FormatAMR      = "amr"
	FormatMPEGPS   = "mpegps"
	FormatOGG      = "ogg"
	FormatMPEGTS   = "mpegts"
	FormatMatroska = "matroska"
	FormatADTS     = "adts"
	FormatAC3      = "ac3"
	FormatAC4      = "ac4"
	FormatMP3      = "mp3"
	FormatAVI      = "avi"
	FormatJPEG     = "jpeg"
	FormatPNG      = "png"
	FormatWEBP     = "webp"
	FormatBMP      = "bmp"
	FormatHEIF     = "heif"
)

// DefaultOrder returns the format descriptors in default sniffing order.
// The returned slice is a fresh copy, callers may reorder it freely.
func DefaultOrder() []*Descriptor {
	ret := make([]*Descriptor, len(registry))
	copy(ret, registry)
	return ret
}

// FindDescriptor returns the descriptor of the given format.
func FindDescriptor(name string) *Descriptor {
	for _, d := range registry {
		if d.Name == name {
			return d
		}
	}
	return nil
}

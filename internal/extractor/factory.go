package extractor

// Factory creates ordered lists of extractor candidates.
// It is safe for concurrent use: every call works on per-call data.
type Factory struct {
	// wrap eligible extractors so that muxed subtitle tracks are
	// normalized to the unified cue representation.
	SubtitleTranscoding bool

	descriptors []*Descriptor
}

// Initialize initializes a Factory.
func (f *Factory) Initialize() {
	f.descriptors = DefaultOrder()
}

// CreateExtractors returns fresh extractor instances in probing
// order. The URI and response headers are optional; when present they
// are resolved into hints that promote matching formats to the front
// of the list. The result always contains one instance per known
// format, none is ever skipped on the basis of a hint.
func (f *Factory) CreateExtractors(uri string, headers map[string][]string) []Extractor {
	hints := resolveHints(uri, headers)
	ordered := orderByHints(f.descriptors, hints)

	ret := make([]Extractor, len(ordered))
	for i, d := range ordered {
		e := d.New()
		if f.SubtitleTranscoding && d.MuxedSubtitles {
			e = &subtitleTranscodingExtractor{inner: e}
		}
		ret[i] = e
	}
	return ret
}

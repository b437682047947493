// Package probe contains the format detection driver.
package probe

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bluenviron/mediacommon/v2/pkg/rewindablereader"

	"github.com/bluenviron/mediaprobe/internal/extractor"
)

const defaultMaxHeaderSize = 64 * 1024

// Prober runs extractors against a stream until one of them
// recognizes the format.
type Prober struct {
	Factory       *extractor.Factory
	MaxHeaderSize int
}

// Initialize initializes Prober.
func (p *Prober) Initialize() {
	if p.MaxHeaderSize == 0 {
		p.MaxHeaderSize = defaultMaxHeaderSize
	}
}

// Probe identifies the format of the stream and extracts header-level
// track metadata. The URI and transport headers, when available, are
// used to try the most likely formats first.
func (p *Prober) Probe(r io.Reader, uri string, headers map[string][]string) (*extractor.Info, error) {
	rr := &rewindablereader.Reader{R: r}

	// sniffing is performed on a bounded, in-memory prefix so that
	// each candidate starts from the beginning of the stream.
	prefix, err := io.ReadAll(io.LimitReader(rr, int64(p.MaxHeaderSize)))
	if err != nil {
		return nil, err
	}

	candidates := p.Factory.CreateExtractors(uri, headers)

	var winner extractor.Extractor
	for _, e := range candidates {
		if winner != nil {
			e.Release()
			continue
		}

		ok, err2 := e.Sniff(bytes.NewReader(prefix))
		if err2 != nil || !ok {
			e.Release()
			continue
		}
		winner = e
	}

	if winner == nil {
		return nil, extractor.ErrUnrecognizedFormat
	}
	defer winner.Release()

	rr.Rewind()
	info, err := winner.Read(io.LimitReader(rr, int64(p.MaxHeaderSize)))
	if err != nil {
		return nil, fmt.Errorf("reading stream header: %w", err)
	}
	return info, nil
}

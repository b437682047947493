package extractor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderByHintsIdentityWithNoHints(t *testing.T) {
	def := DefaultOrder()
	require.Equal(t, def, orderByHints(def, nil))
}

func TestOrderByHintsPermutation(t *testing.T) {
	def := DefaultOrder()

	for mime, group := range mimeToGroup {
		t.Run(mime, func(t *testing.T) {
			ordered := orderByHints(def, []hint{{source: hintSourceContentType, group: group}})

			require.Len(t, ordered, len(def))

			seen := make(map[string]int)
			for _, d := range ordered {
				seen[d.Name]++
			}
			for _, d := range def {
				require.Equal(t, 1, seen[d.Name])
			}
		})
	}
}

func TestOrderByHintsStability(t *testing.T) {
	def := DefaultOrder()

	defaultPos := make(map[string]int)
	for i, d := range def {
		defaultPos[d.Name] = i
	}

	hints := []hint{
		{source: hintSourceContentType, group: groupMP4},
		{source: hintSourceURIExtension, group: FormatMP3},
	}
	ordered := orderByHints(def, hints)

	// within each partition, relative default order is preserved.
	partitionOf := func(d *Descriptor) int {
		for i, h := range hints {
			if groupOf(d) == h.group {
				return i
			}
		}
		return len(hints)
	}

	lastPos := make(map[int]int)
	for _, d := range ordered {
		p := partitionOf(d)
		if prev, ok := lastPos[p]; ok {
			require.Less(t, prev, defaultPos[d.Name])
		}
		lastPos[p] = defaultPos[d.Name]
	}
}

func TestOrderByHintsMonotonicPromotion(t *testing.T) {
	def := DefaultOrder()

	hints := []hint{
		{source: hintSourceContentType, group: FormatMatroska},
		{source: hintSourceURIExtension, group: FormatOGG},
	}
	ordered := orderByHints(def, hints)

	// a descriptor matching hint 0 never follows one matching no hint.
	unhintedSeen := false
	for _, d := range ordered {
		switch groupOf(d) {
		case FormatMatroska:
			require.False(t, unhintedSeen)
		case FormatOGG:
		default:
			unhintedSeen = true
		}
	}
}

package extractor

// orderByHints reorders descriptors so that formats matching a hint
// are sniffed first. The reorder is a stable partition: one partition
// per hint in hint order, the remainder last, and inside every
// partition descriptors keep their relative default order. Stability
// is part of the contract: callers rely on deterministic tie-breaking
// among same-priority candidates.
//
// With zero hints the input is returned unchanged. The result is
// always a permutation of the input.
func orderByHints(descriptors []*Descriptor, hints []hint) []*Descriptor {
	if len(hints) == 0 {
		return descriptors
	}

	ret := make([]*Descriptor, 0, len(descriptors))
	taken := make([]bool, len(descriptors))

	for _, h := range hints {
		for i, d := range descriptors {
			if !taken[i] && groupOf(d) == h.group {
				ret = append(ret, d)
				taken[i] = true
			}
		}
	}

	for i, d := range descriptors {
		if !taken[i] {
			ret = append(ret, d)
		}
	}

	return ret
}

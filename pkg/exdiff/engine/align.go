package engine

import "github.com/pmezard/go-difflib/difflib"

const unmapped = -1

// RowMapping maps 0-based row indices of the base sequence to 0-based
// indices of the modified sequence. Unmapped rows were deleted.
type RowMapping struct {
	targets []int
}

// NewRowMapping builds a mapping from explicit pairs. Indices of the base
// sequence in [0, n) without a pair stay unmapped.
func NewRowMapping(n int, pairs map[int]int) RowMapping {
	m := RowMapping{targets: make([]int, n)}
	for i := range m.targets {
		m.targets[i] = unmapped
	}
	for a, b := range pairs {
		if a >= 0 && a < n {
			m.targets[a] = b
		}
	}
	return m
}

// Len returns the length of the base sequence.
func (m RowMapping) Len() int {
	return len(m.targets)
}

// Lookup returns the target of base index i.
func (m RowMapping) Lookup(i int) (int, bool) {
	if i < 0 || i >= len(m.targets) || m.targets[i] == unmapped {
		return 0, false
	}
	return m.targets[i], true
}

// LookupOr returns the target of base index i, or def when i is unmapped.
func (m RowMapping) LookupOr(i, def int) int {
	if j, ok := m.Lookup(i); ok {
		return j
	}
	return def
}

// Inverse returns the mapping from modified index back to base index.
func (m RowMapping) Inverse() map[int]int {
	inv := make(map[int]int, len(m.targets))
	for i, j := range m.targets {
		if j != unmapped {
			inv[j] = i
		}
	}
	return inv
}

// Pairs returns the mapped (base, modified) pairs as a map.
func (m RowMapping) Pairs() map[int]int {
	pairs := make(map[int]int, len(m.targets))
	for i, j := range m.targets {
		if j != unmapped {
			pairs[i] = j
		}
	}
	return pairs
}

// Align computes a row mapping between two signature sequences.
//
// The sequences are decomposed into equal/replace/delete/insert blocks by
// difflib's SequenceMatcher with junk detection turned off, so every row is
// eligible to match. Equal blocks map pairwise. Replace blocks map their
// first min(lenA, lenB) rows pairwise; the excess stays unmapped.
func Align(a, b []string) RowMapping {
	m := NewRowMapping(len(a), nil)
	if len(a) == 0 || len(b) == 0 {
		return m
	}

	matcher := difflib.NewMatcherWithJunk(a, b, false, nil)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for k := 0; k < op.I2-op.I1; k++ {
				m.targets[op.I1+k] = op.J1 + k
			}
		case 'r':
			n := min(op.I2-op.I1, op.J2-op.J1)
			for k := 0; k < n; k++ {
				m.targets[op.I1+k] = op.J1 + k
			}
		}
	}
	return m
}

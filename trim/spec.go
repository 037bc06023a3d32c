// Package trim computes how far to shrink a hit's segment boundaries so
// that two hits whose raw coordinates overlap slightly can still legally
// coexist. It runs before hits reach resolve.NewHitList, the resolve
// package itself never trims anything.
package trim

import "github.com/grailbio/base/errors"

// DefaultFullLength and DefaultTotalTrimming are the values a Spec takes
// when nothing is known about how a search tool trims hit boundaries:
// treat every segment as untrimmed.
const (
	DefaultFullLength    = 1
	DefaultTotalTrimming = 0
)

// Spec describes how a search tool trims the ends off a hypothetical
// full-length match of fullLength residues to produce the observed,
// shorter segment: totalTrimming residues are removed overall, split
// between the two ends, and scaled down proportionally for segments
// shorter than fullLength.
type Spec struct {
	FullLength    uint32
	TotalTrimming uint32
}

// NewSpec validates that totalTrimming is less than fullLength, a
// segment can't have all (or more than all) of its length trimmed away.
func NewSpec(fullLength, totalTrimming uint32) (Spec, error) {
	if totalTrimming >= fullLength {
		return Spec{}, errors.E(errors.Invalid, "trim: total trimming must be less than the full length")
	}
	return Spec{FullLength: fullLength, TotalTrimming: totalTrimming}, nil
}

// Default is the no-op trim spec: a segment is never trimmed.
func Default() Spec {
	s, _ := NewSpec(DefaultFullLength, DefaultTotalTrimming)
	return s
}

// TotalTrimmingOfLength returns how much of an observed segment of the
// given length should be considered trimmed away. A zero-length segment
// has nothing to trim; a segment at or beyond s's full length is
// trimmed by exactly TotalTrimming; anything shorter is trimmed
// proportionally less.
func (s Spec) TotalTrimmingOfLength(length uint32) uint32 {
	if length == 0 {
		return 0
	}
	if length >= s.FullLength {
		return s.TotalTrimming
	}
	return (length - 1) * s.TotalTrimming / (s.FullLength - 1)
}

// LengthAfterTrimming returns length minus the trimming that applies to
// a segment of that length.
func (s Spec) LengthAfterTrimming(length uint32) uint32 {
	return length - s.TotalTrimmingOfLength(length)
}

// StartTrimmingOfLength returns how much of TotalTrimmingOfLength(length)
// is taken off the start of the segment, the smaller half when the
// total doesn't split evenly.
func (s Spec) StartTrimmingOfLength(length uint32) uint32 {
	return s.TotalTrimmingOfLength(length) / 2
}

// StopTrimmingOfLength returns how much of TotalTrimmingOfLength(length)
// is taken off the stop of the segment, the remainder after
// StartTrimmingOfLength, so the two always sum to the total.
func (s Spec) StopTrimmingOfLength(length uint32) uint32 {
	total := s.TotalTrimmingOfLength(length)
	return total - total/2
}

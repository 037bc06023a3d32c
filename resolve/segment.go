package resolve

import "fmt"

// Segment is a contiguous, half-open [Start, Stop) run of a query
// sequence, expressed in arrows rather than residue indices.
type Segment struct {
	start Arrow
	stop  Arrow
}

// NewSegment builds a segment from its start/stop arrows. The stop arrow
// must come strictly after the start arrow, a segment always covers at
// least one residue.
func NewSegment(start, stop Arrow) (Segment, error) {
	if !(start < stop) {
		return Segment{}, fmt.Errorf("resolve: invalid segment [%d, %d): stop must come after start", start, stop)
	}
	return Segment{start: start, stop: stop}, nil
}

// SegmentOfResidues builds a segment covering the closed residue range
// [startRes, stopRes].
func SegmentOfResidues(startRes, stopRes uint32) (Segment, error) {
	return NewSegment(ArrowBeforeResidue(startRes), ArrowAfterResidue(stopRes))
}

// Start returns the segment's start arrow.
func (s Segment) Start() Arrow { return s.start }

// Stop returns the segment's stop arrow.
func (s Segment) Stop() Arrow { return s.stop }

// Length returns the number of residues the segment covers.
func (s Segment) Length() uint32 { return s.stop.Index() - s.start.Index() }

func (s Segment) String() string {
	return fmt.Sprintf("%d-%d", s.start.ResidueAfter(), s.stop.ResidueBefore())
}

// segmentsOverlap reports whether a and b share any residue.
func segmentsOverlap(a, b Segment) bool {
	return a.start < b.stop && b.start < a.stop
}

// segmentsInvalidAdjacent reports whether b, known to start no earlier
// than a, actually overlaps a. Back-to-back segments (b.Start() ==
// a.Stop(), no shared residue) are fine; this is the test used to
// validate that a SegmentRun's consecutive segments don't overlap.
func segmentsInvalidAdjacent(a, b Segment) bool {
	return b.start < a.stop
}

package resolve

import (
	"fmt"
	"sort"

	"github.com/grailbio/base/log"
)

// SegmentRun is an ordered, non-overlapping run of one or more segments
// covering a single query. A run of one segment is "contiguous"; a run of
// two or more is "discontiguous" and the query residues between
// consecutive segments are its fragments (gaps, which may be zero-length
// if two segments are exactly back to back).
//
// Invariant: consecutive segments never overlap. Construction rejects a
// segment set that does, the same way the C++ source refuses to build a
// hit whose segments aren't "start sorted and non-overlapping".
type SegmentRun struct {
	segs []Segment
}

// NewSegmentRun builds a SegmentRun from an unordered set of segments. It
// sorts them by start arrow and validates that no two overlap; segments
// that are exactly back to back are accepted.
func NewSegmentRun(segs []Segment) (SegmentRun, error) {
	if len(segs) == 0 {
		return SegmentRun{}, fmt.Errorf("resolve: segment run must have at least one segment")
	}
	sorted := append([]Segment(nil), segs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })
	for i := 1; i < len(sorted); i++ {
		if segmentsInvalidAdjacent(sorted[i-1], sorted[i]) {
			return SegmentRun{}, fmt.Errorf(
				"resolve: segments %s and %s overlap",
				sorted[i-1], sorted[i],
			)
		}
	}
	return SegmentRun{segs: sorted}, nil
}

// Start returns the run's overall start arrow (the start of its first
// segment).
func (r SegmentRun) Start() Arrow { return r.segs[0].start }

// Stop returns the run's overall stop arrow (the stop of its last
// segment).
func (r SegmentRun) Stop() Arrow { return r.segs[len(r.segs)-1].stop }

// NumSegments returns the number of segments in the run.
func (r SegmentRun) NumSegments() int { return len(r.segs) }

// Segment returns the i'th segment, in start-arrow order.
func (r SegmentRun) Segment(i int) Segment { return r.segs[i] }

// Discontiguous reports whether the run has more than one segment.
func (r SegmentRun) Discontiguous() bool { return len(r.segs) > 1 }

// Fragments returns the gap segments between consecutive segments of a
// discontiguous run, in order. It is empty for a contiguous run.
func (r SegmentRun) Fragments() []Segment {
	if len(r.segs) < 2 {
		return nil
	}
	frags := make([]Segment, 0, len(r.segs)-1)
	for i := 1; i < len(r.segs); i++ {
		frags = append(frags, Segment{start: r.segs[i-1].stop, stop: r.segs[i].start})
	}
	return frags
}

// StopOfFirstSegment returns the stop arrow of the run's first segment.
// It panics on a contiguous run, which has no "first segment" distinct
// from the whole.
func (r SegmentRun) StopOfFirstSegment() Arrow {
	if !r.Discontiguous() {
		log.Panicf("resolve: StopOfFirstSegment called on a contiguous segment run")
	}
	return r.segs[0].stop
}

// StartOfLastSegment returns the start arrow of the run's last segment.
// It panics on a contiguous run.
func (r SegmentRun) StartOfLastSegment() Arrow {
	if !r.Discontiguous() {
		log.Panicf("resolve: StartOfLastSegment called on a contiguous segment run")
	}
	return r.segs[len(r.segs)-1].start
}

func (r SegmentRun) String() string {
	s := ""
	for i, seg := range r.segs {
		if i > 0 {
			s += ","
		}
		s += seg.String()
	}
	return s
}

// runsAnyInteraction is the cheap overall-span overlap test: a necessary
// but not sufficient condition for the two runs actually overlapping.
func runsAnyInteraction(a, b SegmentRun) bool {
	return a.Start() < b.Stop() && b.Start() < a.Stop()
}

// runsOverlap reports whether any segment of a overlaps any segment of b.
func runsOverlap(a, b SegmentRun) bool {
	if !runsAnyInteraction(a, b) {
		return false
	}
	for _, sa := range a.segs {
		for _, sb := range b.segs {
			if segmentsOverlap(sa, sb) {
				return true
			}
		}
	}
	return false
}

// runSecondRightIntersperses reports whether b is discontiguous, a is
// discontiguous, b starts within a's span and ends beyond it (b "right
// intersperses" a), and yet the two don't actually overlap. This is the
// relationship the masked-bests-cacher precomputation exploits: such a b
// can still legally coexist with a mask containing a.
func runSecondRightIntersperses(a, b SegmentRun) bool {
	if !a.Discontiguous() || !b.Discontiguous() {
		return false
	}
	if !(a.Start() < b.Start() && a.Stop() < b.Stop() && b.Start() < a.Stop()) {
		return false
	}
	return !runsOverlap(a, b)
}

package resolve

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Hit is a single scored candidate domain match against a query: a
// positive score, a label (looked up in the HitList's label table, since
// many hits commonly share one), and the segment run it occupies.
type Hit struct {
	run   SegmentRun
	score float32
	label uint32
}

// NewHit builds a Hit from a segment run, a strictly positive score and
// an index into the caller's label table. It fails construction rather
// than let a non-positive score reach the resolver, where it would make
// the "no hits" architecture indistinguishable from "one useless hit".
func NewHit(run SegmentRun, score float32, label uint32) (Hit, error) {
	if !(score > 0) {
		return Hit{}, errors.E(errors.Invalid, fmt.Sprintf("resolve: hit score %v must be strictly positive", score))
	}
	return Hit{run: run, score: score, label: label}, nil
}

// NewContiguousHit builds a single-segment Hit directly from its start
// and stop arrows.
func NewContiguousHit(start, stop Arrow, score float32, label uint32) (Hit, error) {
	seg, err := NewSegment(start, stop)
	if err != nil {
		return Hit{}, errors.E(errors.Invalid, "resolve.NewContiguousHit", err)
	}
	run, err := NewSegmentRun([]Segment{seg})
	if err != nil {
		return Hit{}, errors.E(errors.Invalid, "resolve.NewContiguousHit", err)
	}
	return NewHit(run, score, label)
}

// NewSegmentedHit builds a (possibly discontiguous) Hit from an unordered
// set of segments.
func NewSegmentedHit(segs []Segment, score float32, label uint32) (Hit, error) {
	run, err := NewSegmentRun(segs)
	if err != nil {
		return Hit{}, errors.E(errors.Invalid, "resolve.NewSegmentedHit", err)
	}
	return NewHit(run, score, label)
}

// Start returns the hit's overall start arrow.
func (h Hit) Start() Arrow { return h.run.Start() }

// Stop returns the hit's overall stop arrow.
func (h Hit) Stop() Arrow { return h.run.Stop() }

// Score returns the hit's score.
func (h Hit) Score() float32 { return h.score }

// Label returns the hit's index into its HitList's label table.
func (h Hit) Label() uint32 { return h.label }

// Discontiguous reports whether the hit has more than one segment.
func (h Hit) Discontiguous() bool { return h.run.Discontiguous() }

// NumSegments returns the number of segments making up the hit.
func (h Hit) NumSegments() int { return h.run.NumSegments() }

// Segment returns the hit's i'th segment, in start-arrow order.
func (h Hit) Segment(i int) Segment { return h.run.Segment(i) }

// StopOfFirstSegment returns the stop arrow of the hit's first segment.
// It panics if the hit is contiguous.
func (h Hit) StopOfFirstSegment() Arrow { return h.run.StopOfFirstSegment() }

// StartOfLastSegment returns the start arrow of the hit's last segment.
// It panics if the hit is contiguous.
func (h Hit) StartOfLastSegment() Arrow { return h.run.StartOfLastSegment() }

func (h Hit) String() string {
	return fmt.Sprintf("hit[label=%d score=%v segs=%s]", h.label, h.score, h.run)
}

// HitsOverlap reports whether a and b share any residue.
func HitsOverlap(a, b Hit) bool { return runsOverlap(a.run, b.run) }

// hitOverlapsAnyOf reports whether h overlaps any hit in masks.
func hitOverlapsAnyOf(h Hit, masks []Hit) bool {
	for _, m := range masks {
		if HitsOverlap(h, m) {
			return true
		}
	}
	return false
}

// SecondRightIntersperses reports whether b "right intersperses" a: both
// are discontiguous, b starts inside a's span and ends beyond it, yet the
// two don't overlap. Used by the masked-bests cacher to find which
// discontiguous hits might straddle the boundary of a mask.
func SecondRightIntersperses(a, b Hit) bool {
	return runSecondRightIntersperses(a.run, b.run)
}

package resolve

import (
	"math"
	"sort"

	"github.com/grailbio/base/errors"
)

// HitList is a resolvable, canonically-ordered collection of hits
// together with their labels. Construction sorts the hits and builds the
// small auxiliary indices the resolver scans against, so a HitList should
// be built once per query and reused (it never changes after
// construction).
//
// The hits are kept sorted by (stop arrow, start arrow, score, segment
// string, label), which is also the order the resolver's forward scan
// relies on: every hit is visited exactly once, grouped with every other
// hit sharing its stop arrow.
type HitList struct {
	hits   []Hit
	labels []string

	maxStopArrow Arrow

	// discontigByStart indexes just the discontiguous hits, sorted by
	// start arrow, so DiscontiguousHitIndicesWithStartInRange can binary
	// search for "discontiguous hits starting in this range" without
	// scanning the full (stop-sorted) hit list.
	discontigByStart []discontigEntry
}

type discontigEntry struct {
	start Arrow
	index uint32
}

// NewHitList builds a HitList from an unordered set of hits and their
// label table. labels need not be in hit order, each hit carries the
// index of its own label.
func NewHitList(hits []Hit, labels []string) (*HitList, error) {
	if uint64(len(hits))+2 > uint64(math.MaxUint32) {
		return nil, errors.E(errors.Invalid, "resolve.NewHitList: too many hits to index")
	}

	sorted := append([]Hit(nil), hits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return hitLess(sorted[i], sorted[j], labels)
	})

	hl := &HitList{hits: sorted, labels: labels}

	var discontig []discontigEntry
	for i, h := range sorted {
		if h.Stop() > hl.maxStopArrow {
			hl.maxStopArrow = h.Stop()
		}
		if h.Discontiguous() {
			discontig = append(discontig, discontigEntry{start: h.Start(), index: uint32(i)})
		}
	}
	sort.Slice(discontig, func(i, j int) bool { return discontig[i].start < discontig[j].start })
	hl.discontigByStart = discontig

	return hl, nil
}

// hitLess is the HitList's canonical ordering: by stop arrow, then start
// arrow, then score, then (as a last-resort tiebreak so equally-scored
// hits still sort deterministically) the segment string and label.
func hitLess(x, y Hit, labels []string) bool {
	if x.Stop() != y.Stop() {
		return x.Stop() < y.Stop()
	}
	if x.Start() != y.Start() {
		return x.Start() < y.Start()
	}
	if x.Score() != y.Score() {
		return x.Score() < y.Score()
	}
	xSegs, ySegs := segmentsString(x), segmentsString(y)
	if xSegs != ySegs {
		return xSegs < ySegs
	}
	return labels[x.Label()] < labels[y.Label()]
}

func segmentsString(h Hit) string {
	s := ""
	for i := 0; i < h.NumSegments(); i++ {
		if i > 0 {
			s += ","
		}
		s += h.Segment(i).String()
	}
	return s
}

// Len returns the number of hits in the list.
func (hl *HitList) Len() int { return len(hl.hits) }

// At returns the hit at the given canonical-order index.
func (hl *HitList) At(i int) Hit { return hl.hits[i] }

// Label returns the label string for a hit drawn from this list.
func (hl *HitList) Label(h Hit) string { return hl.labels[h.Label()] }

// MaxStopArrow returns the furthest-right stop arrow among all hits, or
// StartArrow() if the list is empty.
func (hl *HitList) MaxStopArrow() Arrow { return hl.maxStopArrow }

// BestScore returns the highest individual hit score in the list, and
// false if the list is empty.
func (hl *HitList) BestScore() (float32, bool) {
	if len(hl.hits) == 0 {
		return 0, false
	}
	best := hl.hits[0].Score()
	for _, h := range hl.hits[1:] {
		if h.Score() > best {
			best = h.Score()
		}
	}
	return best, true
}

// findFirstStoppingAtOrAfter returns the index of the first hit (in
// canonical order) whose stop arrow is >= a.
func (hl *HitList) findFirstStoppingAtOrAfter(a Arrow) int {
	return sort.Search(len(hl.hits), func(i int) bool { return hl.hits[i].Stop() >= a })
}

// findFirstStoppingAfter returns the index of the first hit (in
// canonical order) whose stop arrow is > a.
func (hl *HitList) findFirstStoppingAfter(a Arrow) int {
	return sort.Search(len(hl.hits), func(i int) bool { return hl.hits[i].Stop() > a })
}

// IndicesThatStopInRange returns the half-open [lo, hi) index range of
// hits (in canonical order) whose stop arrow lies in (start, stop] -
// strictly after start, at or before stop.
func (hl *HitList) IndicesThatStopInRange(start, stop Arrow) (lo, hi int) {
	return hl.findFirstStoppingAfter(start), hl.findFirstStoppingAfter(stop)
}

// DiscontiguousHitIndicesWithStartInRange returns, in ascending
// start-arrow order, the HitList indices of every discontiguous hit whose
// start arrow lies in the closed range [lo, hi].
func (hl *HitList) DiscontiguousHitIndicesWithStartInRange(lo, hi Arrow) []uint32 {
	from := sort.Search(len(hl.discontigByStart), func(i int) bool { return hl.discontigByStart[i].start >= lo })
	to := sort.Search(len(hl.discontigByStart), func(i int) bool { return hl.discontigByStart[i].start > hi })
	if from >= to {
		return nil
	}
	out := make([]uint32, to-from)
	for i := from; i < to; i++ {
		out[i-from] = hl.discontigByStart[i].index
	}
	return out
}

package resolve

import (
	"testing"

	"github.com/grailbio/testutil/assert"
)

func mustHit(t *testing.T, startRes, stopRes uint32, score float32, label uint32) Hit {
	t.Helper()
	h, err := NewContiguousHit(ArrowBeforeResidue(startRes), ArrowAfterResidue(stopRes), score, label)
	assert.NoError(t, err)
	return h
}

func TestNewHitListSortsByStopThenStart(t *testing.T) {
	labels := []string{"a", "b", "c"}
	hits := []Hit{
		mustHit(t, 20, 29, 1, 0),
		mustHit(t, 0, 9, 1, 1),
		mustHit(t, 10, 19, 1, 2),
	}
	hl, err := NewHitList(hits, labels)
	assert.NoError(t, err)
	assert.EQ(t, hl.Len(), 3)
	for i := 0; i < hl.Len()-1; i++ {
		assert.True(t, hl.At(i).Stop() <= hl.At(i+1).Stop(), "hits not sorted by stop arrow at index %d", i)
	}
}

func TestMaxStopArrow(t *testing.T) {
	hits := []Hit{
		mustHit(t, 0, 9, 1, 0),
		mustHit(t, 5, 29, 1, 0),
	}
	hl, err := NewHitList(hits, []string{"x"})
	assert.NoError(t, err)
	assert.EQ(t, hl.MaxStopArrow(), ArrowAfterResidue(29))
}

// TestIndicesThatStopInRangeIsHalfOpenOnTheLeft verifies the (start, stop]
// boundary convention: a hit whose stop arrow exactly equals the scan's
// start arrow is excluded, while one whose stop arrow exactly equals the
// scan's stop arrow is included.
func TestIndicesThatStopInRangeIsHalfOpenOnTheLeft(t *testing.T) {
	hits := []Hit{
		mustHit(t, 0, 9, 1, 0),  // stop arrow = ArrowAfterResidue(9)  = 10
		mustHit(t, 0, 19, 1, 0), // stop arrow = ArrowAfterResidue(19) = 20
		mustHit(t, 0, 29, 1, 0), // stop arrow = ArrowAfterResidue(29) = 30
	}
	hl, err := NewHitList(hits, []string{"x"})
	assert.NoError(t, err)

	start := ArrowAfterResidue(9) // 10: equal to the first hit's stop
	stop := ArrowAfterResidue(19) // 20: equal to the second hit's stop
	lo, hi := hl.IndicesThatStopInRange(start, stop)

	assert.EQ(t, hi-lo, 1, "expected exactly 1 hit in (%v, %v]", start, stop)
	assert.EQ(t, hl.At(lo).Stop(), stop)
}

func TestDiscontiguousHitIndicesWithStartInRange(t *testing.T) {
	discont1, err := NewSegmentedHit([]Segment{seg(t, 0, 9), seg(t, 50, 59)}, 1, 0)
	assert.NoError(t, err)
	discont2, err := NewSegmentedHit([]Segment{seg(t, 20, 29), seg(t, 60, 69)}, 1, 0)
	assert.NoError(t, err)
	contig := mustHit(t, 100, 109, 1, 0)

	hl, err := NewHitList([]Hit{discont1, discont2, contig}, []string{"x"})
	assert.NoError(t, err)

	got := hl.DiscontiguousHitIndicesWithStartInRange(ArrowBeforeResidue(15), ArrowBeforeResidue(25))
	assert.EQ(t, len(got), 1, "expected 1 discontiguous hit with start in range")
	assert.EQ(t, hl.At(int(got[0])).Start(), discont2.Start())
}

func TestNewHitListEmptyIsNotAnError(t *testing.T) {
	hl, err := NewHitList(nil, nil)
	assert.NoError(t, err)
	assert.EQ(t, hl.Len(), 0)
}

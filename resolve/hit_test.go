package resolve

import (
	"testing"

	"github.com/grailbio/testutil/assert"
)

func TestNewHitRejectsNonPositiveScore(t *testing.T) {
	_, err := NewContiguousHit(Arrow(0), Arrow(10), 0, 0)
	assert.Error(t, err, "expected zero score to be rejected")
	_, err = NewContiguousHit(Arrow(0), Arrow(10), -1, 0)
	assert.Error(t, err, "expected negative score to be rejected")
}

func TestNewContiguousHit(t *testing.T) {
	h, err := NewContiguousHit(Arrow(0), Arrow(10), 42.5, 3)
	assert.NoError(t, err)
	assert.False(t, h.Discontiguous(), "single-segment hit should be contiguous")
	assert.EQ(t, h.Score(), float32(42.5))
	assert.EQ(t, h.Label(), uint32(3))
}

func TestHitsOverlap(t *testing.T) {
	a, _ := NewContiguousHit(Arrow(0), Arrow(10), 1, 0)
	b, _ := NewContiguousHit(Arrow(5), Arrow(15), 1, 0)
	c, _ := NewContiguousHit(Arrow(10), Arrow(20), 1, 0)

	assert.True(t, HitsOverlap(a, b), "expected a and b to overlap")
	assert.False(t, HitsOverlap(a, c), "back-to-back hits should not overlap")
}

func TestSecondRightIntersperses(t *testing.T) {
	a, err := NewSegmentedHit([]Segment{seg(t, 0, 9), seg(t, 30, 39)}, 1, 0)
	assert.NoError(t, err)
	b, err := NewSegmentedHit([]Segment{seg(t, 10, 19), seg(t, 40, 49)}, 1, 0)
	assert.NoError(t, err)
	assert.True(t, SecondRightIntersperses(a, b), "expected b to right-intersperse a")
}

package resolve

import (
	"testing"

	"github.com/grailbio/testutil/assert"
)

func TestNewSegmentRejectsBackwards(t *testing.T) {
	_, err := NewSegment(Arrow(5), Arrow(5))
	assert.Error(t, err, "expected error for zero-length segment")
	_, err = NewSegment(Arrow(5), Arrow(4))
	assert.Error(t, err, "expected error for backwards segment")
}

func TestSegmentOfResiduesLength(t *testing.T) {
	seg, err := SegmentOfResidues(10, 19)
	assert.NoError(t, err)
	assert.EQ(t, seg.Length(), uint32(10))
	assert.EQ(t, seg.String(), "10-19")
}

func TestSegmentsOverlap(t *testing.T) {
	a, _ := SegmentOfResidues(0, 9)
	b, _ := SegmentOfResidues(10, 19)
	c, _ := SegmentOfResidues(11, 19)

	assert.False(t, segmentsOverlap(a, b), "back-to-back segments should not overlap")
	assert.False(t, segmentsInvalidAdjacent(a, b), "back-to-back segments should be valid neighbours")
	assert.False(t, segmentsInvalidAdjacent(a, c), "segments with a gap should be valid neighbours")

	overlapping, _ := SegmentOfResidues(5, 19)
	assert.True(t, segmentsInvalidAdjacent(a, overlapping), "overlapping segments should be flagged invalid")

	d, _ := SegmentOfResidues(5, 15)
	assert.True(t, segmentsOverlap(a, d), "expected overlap between [0,9] and [5,15]")
}

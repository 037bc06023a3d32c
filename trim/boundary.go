package trim

import (
	"math"

	"github.com/grailbio/base/errors"
	"github.com/cath-tools/cath-resolve-hits/resolve"
)

// endsWithHalf reports whether value's fractional part is exactly one
// half, the case where rounding to nearest has no unique answer and the
// tie needs to be broken by trim budget instead.
func endsWithHalf(value float64) bool {
	_, frac := math.Modf(value)
	if frac < 0 {
		frac += 1
	}
	return frac == 0.5
}

// roundBoundaryValue rounds value (an offset between two hard boundaries)
// to the nearest whole residue. Ties, value ending in exactly .5, go to
// whichever side has the strictly smaller trim budget: that side is
// trusted more to have placed its boundary accurately, so it gets the
// spare residue.
func roundBoundaryValue(value float64, lhsTrim, rhsTrim uint32) uint32 {
	if !endsWithHalf(value) {
		return uint32(math.Floor(value + 0.5))
	}
	if lhsTrim > rhsTrim {
		return uint32(math.Floor(value))
	}
	return uint32(math.Floor(value)) + 1
}

// ResolveBoundary picks a single arrow between two hits' hard boundaries
// at which to split their disputed, overlapping stretch, given how much
// each hit's trim budget (from its own Spec) could plausibly still move
// its own end. The split point is the proportional point between the two
// hard boundaries, weighted by each side's trim budget, rounded to a
// whole residue with ResolveBoundary's tie rule.
//
// The two trim budgets must together cover the gap between the hard
// boundaries; if lhsTrim's share of the gap would exceed lhsTrim itself,
// the ends don't meet and there is no valid split.
func ResolveBoundary(hardLHS resolve.Arrow, lhsTrim uint32, hardRHS resolve.Arrow, rhsTrim uint32) (resolve.Arrow, error) {
	if !(hardLHS < hardRHS) {
		return 0, errors.E(errors.Invalid, "trim: left boundary must come strictly before right boundary")
	}
	span := float64(hardRHS.Index() - hardLHS.Index())
	total := lhsTrim + rhsTrim
	if total == 0 {
		return 0, errors.E(errors.Invalid, "trim: cannot resolve boundary for non-meeting ends, neither side has any trim budget")
	}
	offset := float64(lhsTrim) * span / float64(total)
	if offset > float64(lhsTrim) {
		return 0, errors.E(errors.Invalid, "trim: cannot resolve boundary for non-meeting ends")
	}
	rounded := roundBoundaryValue(offset, lhsTrim, rhsTrim)
	return hardLHS.Add(rounded), nil
}

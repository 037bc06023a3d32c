package resolve

import "github.com/grailbio/base/log"

// bestScan is the per-region frontier table used while scanning forward
// through a single call to bestInRegion: for every arrow seen so far, the
// best scored architecture achievable up to (and including) that arrow.
// It only ever extends forward, every method panics if asked to go
// backward, the same invariant the C++ source enforces in debug builds.
type bestScan struct {
	// bests[i] indexes into arches for the arrow with Index() == i.
	bests []int
	// arches holds every distinct scoredArchProxy recorded so far.
	arches []scoredArchProxy
}

// newBestScan creates a table seeded with the empty architecture at
// StartArrow(), sized for a region covering numResidues residues.
func newBestScan(numResidues uint32) *bestScan {
	b := &bestScan{
		bests:  make([]int, 1, numResidues+2),
		arches: make([]scoredArchProxy, 1, numResidues+2),
	}
	b.bests[0] = 0
	return b
}

// BestUpToArrow returns the best scored architecture recorded at or
// before the given arrow. The arrow must already have been reached by
// ExtendUpToArrow or AddBestAtArrow.
func (b *bestScan) BestUpToArrow(a Arrow) scoredArchProxy {
	idx := int(a.Index())
	if idx >= len(b.bests) {
		log.Panicf("resolve: bestScan asked for arrow %d, never reached (frontier at %d)", a, len(b.bests)-1)
	}
	return b.arches[b.bests[idx]]
}

// BestSoFar returns the best scored architecture recorded at the current
// frontier (the furthest arrow reached so far).
func (b *bestScan) BestSoFar() scoredArchProxy {
	return b.arches[b.bests[len(b.bests)-1]]
}

// ExtendUpToArrow repeats the current best-so-far forward to cover every
// arrow up to and including a, and returns the (unchanged) best score.
// a must not be before the current frontier: a equal to the frontier
// leaves the table as it is, and it never moves backward.
func (b *bestScan) ExtendUpToArrow(a Arrow) float32 {
	idx := int(a.Index())
	if idx+1 < len(b.bests) {
		log.Panicf("resolve: bestScan.ExtendUpToArrow(%d) would move backward from frontier %d", a, len(b.bests)-1)
	}
	last := b.bests[len(b.bests)-1]
	for len(b.bests) <= idx {
		b.bests = append(b.bests, last)
	}
	return b.BestSoFar().Score()
}

// AddBestAtArrow records a new, distinct best architecture at arrow a,
// which must be exactly one place past the current frontier.
func (b *bestScan) AddBestAtArrow(a Arrow, p scoredArchProxy) {
	if int(a.Index()) != len(b.bests) {
		log.Panicf("resolve: bestScan.AddBestAtArrow(%d) doesn't follow directly from frontier %d", a, len(b.bests)-1)
	}
	b.arches = append(b.arches, p)
	b.bests = append(b.bests, len(b.arches)-1)
}

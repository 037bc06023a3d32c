package resolve

import "github.com/grailbio/base/log"

// Arrow is a boundary between residues in a query sequence (or before the
// first residue / after the last). Arrow 0 sits before residue 0; arrow N
// sits between residue N-1 and residue N. Segments are expressed as
// half-open [start, stop) arrow pairs so two segments overlap iff
// a.start < b.stop && b.start < a.stop.
type Arrow uint32

// StartArrow is the arrow before the first residue of any sequence.
func StartArrow() Arrow { return Arrow(0) }

// ArrowBeforeResidue returns the arrow immediately before residue index r.
func ArrowBeforeResidue(r uint32) Arrow { return Arrow(r) }

// ArrowAfterResidue returns the arrow immediately after residue index r.
func ArrowAfterResidue(r uint32) Arrow { return Arrow(r + 1) }

// Index returns the arrow's raw boundary index, suitable for use as a
// dense array index (0..numResidues inclusive).
func (a Arrow) Index() uint32 { return uint32(a) }

// ResidueBefore returns the index of the residue immediately before this
// arrow. It panics if called on StartArrow(), which has no such residue.
func (a Arrow) ResidueBefore() uint32 {
	if a == 0 {
		log.Panicf("resolve: arrow %d has no residue before it", a)
	}
	return uint32(a) - 1
}

// ResidueAfter returns the index of the residue immediately after this
// arrow (equivalently, the arrow's raw index).
func (a Arrow) ResidueAfter() uint32 { return uint32(a) }

// Add returns the arrow n places further along the sequence.
func (a Arrow) Add(n uint32) Arrow { return Arrow(uint32(a) + n) }

// Sub returns the arrow n places earlier in the sequence. It panics if
// that would underflow past StartArrow().
func (a Arrow) Sub(n uint32) Arrow {
	if uint32(a) < n {
		log.Panicf("resolve: arrow %d cannot go back %d places", a, n)
	}
	return Arrow(uint32(a) - n)
}

package resolve

import "sort"

// Resolve finds the highest-scoring set of mutually non-overlapping hits
// in the list and returns it as an Architecture. An empty HitList isn't
// an error, it resolves to the zero-score, empty Architecture.
func Resolve(hits *HitList) Architecture {
	if hits.Len() == 0 {
		return Architecture{}
	}
	r := &resolver{hits: hits, cache: newMaskedBestsCache()}
	proxy := r.bestInRegion(nil, StartArrow(), hits.MaxStopArrow(), scoredArchProxy{})
	return architectureFromProxy(proxy, hits)
}

// resolver holds the state threaded through the recursive scan: the hit
// list being resolved and the masked-bests cache shared across every
// recursive call (each call only ever reads and writes entries keyed by
// its own mask's unmasked-region signature, so sharing the map is safe).
type resolver struct {
	hits  *HitList
	cache *maskedBestsCache
}

// bestInRegion is the heart of the algorithm: the best scored
// architecture achievable using hits that stop in (start, stop], none of
// which may overlap any hit in masks, given that bestUpToStart is already
// known to be the best achievable up to (and not including) start.
//
// masks is always either empty or ends on a segment boundary that start
// sits exactly on, every discontiguous hit straddling that boundary can
// therefore be resolved either by scanning forward from start (if it
// starts at or after start) or by consulting the masked-bests cache (if
// it started earlier and is only now coming back into play).
func (r *resolver) bestInRegion(masks []Hit, start, stop Arrow, bestUpToStart scoredArchProxy) scoredArchProxy {
	scan := newBestScan(stop.Index())

	if start > StartArrow() && bestUpToStart.Score() > 0 {
		scan.ExtendUpToArrow(start.Sub(1))
		scan.AddBestAtArrow(start, bestUpToStart)
	}

	cacher := newMaskedBestsCacher(r.cache, masks, r.hits, start)

	lo, hi := r.hits.IndicesThatStopInRange(start, stop)
	i := lo
	for i < hi {
		groupStop := r.hits.At(i).Stop()
		j := i + 1
		for j < hi && r.hits.At(j).Stop() == groupStop {
			j++
		}

		cacher.advanceToPos(groupStop, scan.BestSoFar())
		bestPrevScore := scan.ExtendUpToArrow(groupStop.Sub(1))

		best := r.bestWithOneOfHits(i, j, masks, start, scan, bestPrevScore)
		if best != nil && best.Score() > bestPrevScore {
			scan.AddBestAtArrow(groupStop, *best)
		} else {
			scan.ExtendUpToArrow(groupStop)
		}

		i = j
	}

	cacher.advanceToEnd(scan.BestSoFar())
	return scan.BestSoFar()
}

// bestWithOneOfHits considers every hit in hits[lo:hi) (all sharing the
// same stop arrow) that doesn't clash with masks, and returns the best
// architecture formed by adding one of them to its own best complement -
// or nil if none of them improves on scoreToBeat.
func (r *resolver) bestWithOneOfHits(lo, hi int, masks []Hit, startArrow Arrow, scan *bestScan, scoreToBeat float32) *scoredArchProxy {
	var bestSoFar *scoredArchProxy

	for k := lo; k < hi; k++ {
		h := r.hits.At(k)
		if hitOverlapsAnyOf(h, masks) {
			continue
		}

		var complement scoredArchProxy
		if !h.Discontiguous() {
			complement = scan.BestUpToArrow(h.Start())
		} else {
			hitStart := h.Start()
			withHit := append(append([]Hit(nil), masks...), h)
			if hitStart >= startArrow {
				complement = r.bestInRegion(
					withHit,
					h.StopOfFirstSegment(),
					h.StartOfLastSegment(),
					scan.BestUpToArrow(hitStart),
				)
			} else {
				seed, ok := getBestForMasksUpToArrow(r.cache, withHit, startArrow)
				if !ok {
					// Every mask the cacher knows could straddle this
					// boundary must have been stored on the way here;
					// a miss means bestInRegion's mask/arrow bookkeeping
					// has drifted out of sync with itself.
					panicInternal("resolve: masked-bests cache miss for a mask that should already have been stored")
				}
				complement = r.bestInRegion(withHit, startArrow, h.StartOfLastSegment(), seed)
			}
		}

		thisScore := h.Score() + complement.Score()
		improves := thisScore > scoreToBeat
		if bestSoFar != nil {
			improves = thisScore > bestSoFar.Score()
		}
		if improves {
			next := complement.addHit(h.Score(), uint32(k))
			bestSoFar = &next
		}
	}

	return bestSoFar
}

func architectureFromProxy(p scoredArchProxy, hits *HitList) Architecture {
	idxs := append([]uint32(nil), p.hitIdxs...)
	sort.Slice(idxs, func(i, j int) bool {
		return hits.At(int(idxs[i])).Start() < hits.At(int(idxs[j])).Start()
	})
	return Architecture{Score: p.score, HitIndices: idxs}
}

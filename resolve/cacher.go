package resolve

import "sort"

// maskedBestsCacher drives the masked-bests cache forward in lockstep
// with a bestScan, storing the running best-so-far at a small
// precomputed set of arrows, just the ones where some later,
// straddling discontiguous hit might need to look it up. Storing at
// every arrow would cost O(region length); storing only at these arrows
// costs O(number of straddling candidates).
type maskedBestsCacher struct {
	cache         *maskedBestsCache
	masks         []Hit
	arrowsToStore []Arrow
	pos           int
}

func newMaskedBestsCacher(cache *maskedBestsCache, masks []Hit, hits *HitList, startArrow Arrow) *maskedBestsCacher {
	return &maskedBestsCacher{
		cache:         cache,
		masks:         masks,
		arrowsToStore: arrowsBeforeStartsOfRightInterspersingHits(masks, hits, startArrow),
	}
}

// advanceToPos stores bestSoFar at every not-yet-stored arrow strictly
// before newPos.
func (c *maskedBestsCacher) advanceToPos(newPos Arrow, bestSoFar scoredArchProxy) {
	end := c.pos
	for end < len(c.arrowsToStore) && c.arrowsToStore[end] < newPos {
		end++
	}
	c.advanceTo(end, bestSoFar)
}

// advanceToEnd stores bestSoFar at every remaining arrow.
func (c *maskedBestsCacher) advanceToEnd(bestSoFar scoredArchProxy) {
	c.advanceTo(len(c.arrowsToStore), bestSoFar)
}

func (c *maskedBestsCacher) advanceTo(end int, bestSoFar scoredArchProxy) {
	for ; c.pos < end; c.pos++ {
		storeBestForMasksUpToArrow(c.cache, bestSoFar, c.masks, c.arrowsToStore[c.pos])
	}
}

// arrowsBeforeStartsOfRightInterspersingHits computes the arrows at which
// the cacher needs to snapshot the running best-so-far: the start arrows
// of every discontiguous hit that could later straddle the current scan
// (i.e. whose stop lies beyond every mask hit's stop, and which right
// intersperses every hit already in the mask), restricted to those at or
// after startArrow. Empty masks need no snapshots at all, since nothing
// can straddle a region with no mask.
func arrowsBeforeStartsOfRightInterspersingHits(masks []Hit, hits *HitList, startArrow Arrow) []Arrow {
	if len(masks) == 0 {
		return nil
	}
	maxStop := masks[0].Stop()
	for _, m := range masks[1:] {
		if m.Stop() > maxStop {
			maxStop = m.Stop()
		}
	}

	from := hits.findFirstStoppingAfter(maxStop)

	var arrows []Arrow
	for i := from; i < hits.Len(); i++ {
		h := hits.At(i)
		if !h.Discontiguous() {
			continue
		}
		if h.Start() < startArrow {
			continue
		}
		intersperses := true
		for _, m := range masks {
			if !SecondRightIntersperses(m, h) {
				intersperses = false
				break
			}
		}
		if intersperses {
			arrows = append(arrows, h.Start())
		}
	}

	sort.Slice(arrows, func(i, j int) bool { return arrows[i] < arrows[j] })
	return dedupeArrows(arrows)
}

func dedupeArrows(arrows []Arrow) []Arrow {
	if len(arrows) < 2 {
		return arrows
	}
	out := arrows[:1]
	for _, a := range arrows[1:] {
		if a != out[len(out)-1] {
			out = append(out, a)
		}
	}
	return out
}

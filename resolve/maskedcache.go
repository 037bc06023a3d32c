package resolve

import (
	"encoding/binary"

	farm "github.com/dgryski/go-farm"
)

// arrowRange is a [start, stop) arrow pair used as part of a masked-bests
// cache key, one of the "unmasked regions" left over from a mask when
// scanning up to some arrow.
type arrowRange struct {
	start Arrow
	stop  Arrow
}

// maskedBestsCache memoizes the best scored architecture achievable up to
// some arrow, for a given mask, keyed not by the mask's hits directly but
// by the *shape* of the residue stretches the mask leaves unmasked. Two
// different masks that happen to leave the same unmasked stretches are
// deliberately treated as the same cache entry, recomputing either would
// give the identical answer, since nothing outside those stretches can
// ever be chosen.
//
// Entries are bucketed by a FarmHash of the signature and resolved within
// a bucket by an exact slice comparison, the same double-check an
// unordered_map with a custom hasher performs.
type maskedBestsCache struct {
	buckets map[uint64][]maskedCacheEntry
}

type maskedCacheEntry struct {
	sig   []arrowRange
	proxy scoredArchProxy
}

func newMaskedBestsCache() *maskedBestsCache {
	return &maskedBestsCache{buckets: make(map[uint64][]maskedCacheEntry)}
}

func hashSignature(sig []arrowRange) uint64 {
	buf := make([]byte, 8*len(sig))
	for i, r := range sig {
		binary.LittleEndian.PutUint32(buf[i*8:], r.start.Index())
		binary.LittleEndian.PutUint32(buf[i*8+4:], r.stop.Index())
	}
	return farm.Hash64(buf)
}

func signaturesEqual(a, b []arrowRange) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// get looks up the cached best-scored-architecture for a signature. The
// bool result is false on a cache miss.
func (c *maskedBestsCache) get(sig []arrowRange) (scoredArchProxy, bool) {
	for _, e := range c.buckets[hashSignature(sig)] {
		if signaturesEqual(e.sig, sig) {
			return e.proxy, true
		}
	}
	return scoredArchProxy{}, false
}

// store records the best-scored-architecture for a signature. Matching
// the C++ unordered_map::emplace it wraps, the first value stored for a
// given signature wins, later stores for the same signature are no-ops,
// since every caller that recomputes the same signature must compute the
// same answer.
func (c *maskedBestsCache) store(sig []arrowRange, p scoredArchProxy) {
	h := hashSignature(sig)
	for _, e := range c.buckets[h] {
		if signaturesEqual(e.sig, sig) {
			return
		}
	}
	c.buckets[h] = append(c.buckets[h], maskedCacheEntry{sig: sig, proxy: p})
}

// unmaskedRegionsBeforeArrow computes the masked-bests cache signature
// for a mask up to a given arrow: the maximal open stretches of query not
// covered by any segment of any hit in the mask, truncated at upTo.
// Zero-length stretches (mask segments that meet exactly at upTo, or each
// other) are elided, this is deliberate: it's what lets two distinct
// masks collapse onto the same signature when it's safe to do so.
func unmaskedRegionsBeforeArrow(mask []Hit, upTo Arrow) []arrowRange {
	var segs []Segment
	for _, h := range mask {
		for i := 0; i < h.NumSegments(); i++ {
			segs = append(segs, h.Segment(i))
		}
	}
	sortSegmentsByStart(segs)

	var out []arrowRange
	prevStop := StartArrow()
	for _, s := range segs {
		if upTo <= s.Start() {
			break
		}
		if prevStop < s.Start() {
			out = append(out, arrowRange{start: prevStop, stop: s.Start()})
		}
		if s.Stop() > prevStop {
			prevStop = s.Stop()
		}
	}
	if prevStop < upTo {
		out = append(out, arrowRange{start: prevStop, stop: upTo})
	}
	return out
}

func sortSegmentsByStart(segs []Segment) {
	// insertion sort: mask sizes in practice are tiny (a handful of
	// nested discontiguous hits), so this avoids pulling in sort.Slice's
	// reflection overhead on the hot path.
	for i := 1; i < len(segs); i++ {
		for j := i; j > 0 && segs[j].Start() < segs[j-1].Start(); j-- {
			segs[j], segs[j-1] = segs[j-1], segs[j]
		}
	}
}

// getBestForMasksUpToArrow and storeBestForMasksUpToArrow wrap the cache
// with the signature computation, matching the free-function pair the
// C++ source exposes alongside masked_bests_cache.
func getBestForMasksUpToArrow(c *maskedBestsCache, masks []Hit, stop Arrow) (scoredArchProxy, bool) {
	return c.get(unmaskedRegionsBeforeArrow(masks, stop))
}

func storeBestForMasksUpToArrow(c *maskedBestsCache, p scoredArchProxy, masks []Hit, stop Arrow) {
	c.store(unmaskedRegionsBeforeArrow(masks, stop), p)
}

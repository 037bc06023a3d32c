// Package resolve picks, for a single query sequence, the highest-scoring
// set of non-overlapping hits ("architecture") from a list of candidate
// domain hits.
//
// A hit covers one or more disjoint segments of the query. Two hits clash
// if any of their segments overlap; the resolver finds the subset of
// mutually non-clashing hits with the greatest total score using dynamic
// programming over the query's residue boundaries ("arrows"), scanning
// left to right and remembering, for every boundary seen so far, the best
// architecture achievable up to that point.
//
// The package does no parsing, filtering, trimming or I/O of its own -
// callers build a HitList from already-validated, already-scored hits and
// call Resolve. Score conversion and segment trimming live in the sibling
// score and trim packages; file formats live in format.
package resolve

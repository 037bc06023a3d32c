package format

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil/assert"

	"github.com/cath-tools/cath-resolve-hits/resolve"
)

func buildTestHitList(t *testing.T) *resolve.HitList {
	t.Helper()
	a, err := resolve.NewContiguousHit(resolve.ArrowBeforeResidue(0), resolve.ArrowAfterResidue(9), 12.5, 0)
	assert.NoError(t, err)
	b, err := resolve.NewSegmentedHit([]resolve.Segment{
		mustSeg(t, 20, 29),
		mustSeg(t, 40, 49),
	}, 7, 1)
	assert.NoError(t, err)
	hl, err := resolve.NewHitList([]resolve.Hit{a, b}, []string{"hit-a", "hit-b"})
	assert.NoError(t, err)
	return hl
}

func mustSeg(t *testing.T, start, stop uint32) resolve.Segment {
	t.Helper()
	s, err := resolve.SegmentOfResidues(start, stop)
	assert.NoError(t, err)
	return s
}

func writeTestQueries(t *testing.T, path string, queries []QueryHits) {
	t.Helper()
	ctx := context.Background()
	var results []QueryArchitecture
	for _, q := range queries {
		arch := resolve.Architecture{}
		for i := 0; i < q.Hits.Len(); i++ {
			arch.HitIndices = append(arch.HitIndices, uint32(i))
			arch.Score += q.Hits.At(i).Score()
		}
		results = append(results, QueryArchitecture{Query: q.Query, Arch: arch, Hits: q.Hits})
	}
	assert.NoError(t, WriteArchitectures(ctx, path, results))
}

func TestWriteReadQueriesRoundTrip(t *testing.T) {
	hl := buildTestHitList(t)
	path := filepath.Join(t.TempDir(), "hits.tsv")
	writeTestQueries(t, path, []QueryHits{{Query: "query-1", Hits: hl}})

	got, err := ReadQueries(context.Background(), path)
	assert.NoError(t, err)
	assert.EQ(t, len(got), 1)
	assert.EQ(t, got[0].Query, "query-1")
	assert.EQ(t, got[0].Hits.Len(), hl.Len())
	for i := 0; i < hl.Len(); i++ {
		assert.EQ(t, got[0].Hits.At(i).Score(), hl.At(i).Score(), "hit %d score", i)
	}
}

func TestWriteReadQueriesRoundTripGzip(t *testing.T) {
	hl := buildTestHitList(t)
	path := filepath.Join(t.TempDir(), "hits.tsv.gz")
	writeTestQueries(t, path, []QueryHits{{Query: "query-1", Hits: hl}})

	got, err := ReadQueries(context.Background(), path)
	assert.NoError(t, err)
	assert.EQ(t, len(got), 1, "round trip through gzip lost a query")
	assert.EQ(t, got[0].Hits.Len(), hl.Len(), "round trip through gzip lost hits")
}

func TestReadQueriesPreservesFirstSeenOrderAndGroupsByQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hits.tsv")
	hlA := buildTestHitList(t)
	hlB := buildTestHitList(t)
	writeTestQueries(t, path, []QueryHits{
		{Query: "second", Hits: hlB},
		{Query: "first", Hits: hlA},
	})

	got, err := ReadQueries(context.Background(), path)
	assert.NoError(t, err)
	assert.EQ(t, len(got), 2)
	assert.EQ(t, got[0].Query, "second")
	assert.EQ(t, got[1].Query, "first")
}

func TestWriteArchitectures(t *testing.T) {
	ctx := context.Background()
	hl := buildTestHitList(t)
	arch := resolve.Resolve(hl)
	path := filepath.Join(t.TempDir(), "arch.tsv")

	err := WriteArchitectures(ctx, path, []QueryArchitecture{
		{Query: "query-1", Arch: arch, Hits: hl},
	})
	assert.NoError(t, err)

	records, err := ReadRecords(ctx, path)
	assert.NoError(t, err)
	assert.EQ(t, len(records), len(arch.HitIndices))
	for _, rec := range records {
		assert.EQ(t, rec.Query, "query-1")
	}
}

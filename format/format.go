// Package format reads and writes a minimal native interchange format for
// batches of resolve.HitList and resolve.Architecture values, one per
// query. It is not a parser for any upstream HMMER/domain-hits-table
// format, those stay out of scope - just a plain, round-trippable
// representation for hits already built (or scores already converted)
// by a caller.
//
// One hit per line, grouped by query and written in first-seen query
// order:
//
//	query<TAB>label<TAB>score<TAB>start1-stop1,start2-stop2,...
//
// Files whose path ends in ".gz" are transparently gzip-compressed on
// write and decompressed on read, the same way interval/bedunion.go
// handles ".bed.gz" files.
package format

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"

	"github.com/cath-tools/cath-resolve-hits/resolve"
)

// Record is one parsed line of the interchange format: the query it
// belongs to, a label, a score and the segments of a single hit, not yet
// assembled into a resolve.Hit (the caller supplies the label table).
type Record struct {
	Query    string
	Label    string
	Score    float32
	Segments []resolve.Segment
}

// ReadRecords reads every hit record from path, transparently
// decompressing if the path ends in ".gz".
func ReadRecords(ctx context.Context, path string) ([]Record, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(errors.NotExist, "format.ReadRecords", path, err)
	}
	defer f.Close(ctx)

	r, err := decompressingReader(path, f.Reader(ctx))
	if err != nil {
		return nil, errors.E(errors.Invalid, "format.ReadRecords", path, err)
	}

	var records []Record
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rec, err := parseLine(line)
		if err != nil {
			return nil, errors.E(errors.Invalid, "format.ReadRecords", path, fmt.Sprintf("line %d", lineNo), err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(errors.Invalid, "format.ReadRecords", path, err)
	}
	return records, nil
}

func parseLine(line string) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 4 {
		return Record{}, fmt.Errorf("format: expected 4 tab-separated fields, got %d", len(fields))
	}
	score, err := strconv.ParseFloat(fields[2], 32)
	if err != nil {
		return Record{}, fmt.Errorf("format: invalid score %q: %w", fields[2], err)
	}
	segs, err := parseSegments(fields[3])
	if err != nil {
		return Record{}, err
	}
	return Record{Query: fields[0], Label: fields[1], Score: float32(score), Segments: segs}, nil
}

func parseSegments(s string) ([]resolve.Segment, error) {
	parts := strings.Split(s, ",")
	segs := make([]resolve.Segment, 0, len(parts))
	for _, part := range parts {
		boundaries := strings.SplitN(part, "-", 2)
		if len(boundaries) != 2 {
			return nil, fmt.Errorf("format: invalid segment %q", part)
		}
		start, err := strconv.ParseUint(boundaries[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("format: invalid segment start %q: %w", boundaries[0], err)
		}
		stop, err := strconv.ParseUint(boundaries[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("format: invalid segment stop %q: %w", boundaries[1], err)
		}
		seg, err := resolve.SegmentOfResidues(uint32(start), uint32(stop))
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// QueryHits is one query's worth of candidate hits, in the order its
// records first appeared in the source file.
type QueryHits struct {
	Query string
	Hits  *resolve.HitList
}

// ReadQueries reads path and groups its records into one HitList per
// query, preserving the order in which each query's first record
// appeared. Records for the same query need not be contiguous in the
// file.
func ReadQueries(ctx context.Context, path string) ([]QueryHits, error) {
	records, err := ReadRecords(ctx, path)
	if err != nil {
		return nil, err
	}

	order := make([]string, 0)
	hitsByQuery := make(map[string][]resolve.Hit)
	labelsByQuery := make(map[string][]string)
	for _, rec := range records {
		if _, seen := hitsByQuery[rec.Query]; !seen {
			order = append(order, rec.Query)
		}
		labels := labelsByQuery[rec.Query]
		hit, err := resolve.NewSegmentedHit(rec.Segments, rec.Score, uint32(len(labels)))
		if err != nil {
			return nil, errors.E(errors.Invalid, "format.ReadQueries", path, rec.Query, err)
		}
		hitsByQuery[rec.Query] = append(hitsByQuery[rec.Query], hit)
		labelsByQuery[rec.Query] = append(labels, rec.Label)
	}

	queries := make([]QueryHits, 0, len(order))
	for _, q := range order {
		hl, err := resolve.NewHitList(hitsByQuery[q], labelsByQuery[q])
		if err != nil {
			return nil, errors.E(errors.Invalid, "format.ReadQueries", path, q, err)
		}
		queries = append(queries, QueryHits{Query: q, Hits: hl})
	}
	return queries, nil
}

// QueryArchitecture pairs a resolved Architecture with the query and
// HitList it was resolved from, so WriteArchitectures can look up each
// chosen hit's label.
type QueryArchitecture struct {
	Query string
	Arch  resolve.Architecture
	Hits  *resolve.HitList
}

// WriteArchitectures writes the resolved hits of each query, in the
// order given, to path as a plain or (if path ends in ".gz")
// gzip-compressed file of the interchange format.
func WriteArchitectures(ctx context.Context, path string, results []QueryArchitecture) error {
	f, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(errors.Invalid, "format.WriteArchitectures", path, err)
	}
	defer f.Close(ctx)

	w, flush, err := compressingWriter(path, f.Writer(ctx))
	if err != nil {
		return errors.E(errors.Invalid, "format.WriteArchitectures", path, err)
	}

	buffered := bufio.NewWriter(w)
	for _, res := range results {
		for _, idx := range res.Arch.HitIndices {
			if err := writeHitLine(buffered, res.Query, res.Hits.At(int(idx)), res.Hits); err != nil {
				return errors.E(errors.Invalid, "format.WriteArchitectures", path, err)
			}
		}
	}
	if err := buffered.Flush(); err != nil {
		return errors.E(errors.Invalid, "format.WriteArchitectures", path, err)
	}
	return flush()
}

func writeHitLine(w io.Writer, query string, h resolve.Hit, hl *resolve.HitList) error {
	segs := make([]string, h.NumSegments())
	for i := range segs {
		segs[i] = h.Segment(i).String()
	}
	_, err := fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", query, hl.Label(h), h.Score(), strings.Join(segs, ","))
	return err
}

func decompressingReader(path string, r io.Reader) (io.Reader, error) {
	if !strings.HasSuffix(path, ".gz") {
		return r, nil
	}
	return gzip.NewReader(r)
}

// compressingWriter wraps w with a gzip writer when path ends in ".gz".
// The returned flush func must be called (in place of closing the gzip
// writer directly) once every line has been written.
func compressingWriter(path string, w io.Writer) (io.Writer, func() error, error) {
	if !strings.HasSuffix(path, ".gz") {
		return w, func() error { return nil }, nil
	}
	gz := gzip.NewWriter(w)
	return gz, gz.Close, nil
}

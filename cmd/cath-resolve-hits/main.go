// cath-resolve-hits reads a native interchange file of candidate domain
// hits grouped by query, resolves each query's best-scoring
// non-overlapping architecture independently, and writes the results
// back out in query order.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/cath-tools/cath-resolve-hits/format"
	"github.com/cath-tools/cath-resolve-hits/resolve"
)

// Collection of options set via cmdline flags.
type options struct {
	input   string
	output  string
	workers int
}

func usage() {
	fmt.Fprintf(os.Stderr, `cath-resolve-hits: pick the best-scoring non-overlapping set of hits per query.

Usage:
  cath-resolve-hits -input=hits.tsv -output=architecture.tsv

`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage

	opts := options{}
	flag.StringVar(&opts.input, "input", "", "Path to a native-format hit file (may be .gz). Required.")
	flag.StringVar(&opts.output, "output", "", "Path to write the resolved architecture (may be .gz). Required.")
	flag.IntVar(&opts.workers, "workers", 4, "Number of queries to resolve concurrently.")

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	if opts.input == "" || opts.output == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(ctx, opts); err != nil {
		log.Fatalf("cath-resolve-hits: %v", err)
	}
}

func run(ctx context.Context, opts options) error {
	queries, err := format.ReadQueries(ctx, opts.input)
	if err != nil {
		return err
	}
	log.Printf("cath-resolve-hits: loaded %d queries from %s", len(queries), opts.input)

	results := resolveAll(queries, opts.workers)

	return format.WriteArchitectures(ctx, opts.output, results)
}

// resolveAll resolves every query in queries using up to workers
// goroutines. Each query's resolve is independent of every other
// query's, so the only shared resource is the results slice, and that
// is written at one index per worker, never contended.
func resolveAll(queries []format.QueryHits, workers int) []format.QueryArchitecture {
	if workers < 1 {
		workers = 1
	}
	if workers > len(queries) {
		workers = len(queries)
	}

	results := make([]format.QueryArchitecture, len(queries))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				q := queries[i]
				arch := resolve.Resolve(q.Hits)
				results[i] = format.QueryArchitecture{Query: q.Query, Arch: arch, Hits: q.Hits}
			}
		}()
	}

	for i := range queries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

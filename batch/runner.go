package batch

import (
	"sync"

	"github.com/fieldtraits/traitstack/parser"
	"github.com/fieldtraits/traitstack/trait"
)

// Result is one record's parse outcome, carried through the worker pool
// alongside its original index so output order can be restored.
type Result struct {
	Index  int
	Record Record
	Traits []trait.Trait
}

// Run parses every record's Field text across a bounded pool of workers
// and returns results in the same order as records, per spec §5 ("callers
// may parallelise parse across inputs") and the batch-runner output-order
// invariant (SPEC_FULL.md §8).
func Run(p *parser.Parser, records []Record, field string, workers int) []Result {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(records))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rec := records[i]
				results[i] = Result{
					Index:  i,
					Record: rec,
					Traits: p.Parse(rec.Text(field), field),
				}
			}
		}()
	}
	for i := range records {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

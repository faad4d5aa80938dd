package pathfind

import "sync"

// GridQuery is one start/goal pair for a batched search.
type GridQuery struct {
	Start, Goal [2]int
	Diagonal    bool
}

// SolveBatch runs AStarGrid for every query across a bounded pool of
// goroutines and returns the results in query order. The grid must not be
// mutated while the batch runs.
func SolveBatch(g *Grid2D, queries []GridQuery, workers int) []PathResult {
	results := make([]PathResult, len(queries))
	fanOut(workers, len(queries), func(i int) {
		q := queries[i]
		results[i] = AStarGrid(g, q.Start, q.Goal, q.Diagonal)
	})
	return results
}

// fanOut splits the index range [0, n) into contiguous chunks, one per
// worker, and blocks until every index has been processed.
func fanOut(workers, n int, fn func(i int)) {
	if workers < 1 {
		workers = 1
	}
	var wg sync.WaitGroup
	chunkSize := (n + workers - 1) / workers

	for workerID := 0; workerID < workers; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, n))
	}
	wg.Wait()
}

package mixclust

import (
	"runtime"
	"sync"
)

// ComputePairwise fills a Dissimilarity with metric.Distance for every pair
// of rows.
func ComputePairwise(rows [][]float64, metric DistanceMetric) *Dissimilarity {
	n := len(rows)
	d := NewDissimilarity(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d.set(i, j, metric.Distance(rows[i], rows[j]))
		}
	}
	return d
}

// ComputePairwiseParallel is ComputePairwise spread over numWorkers
// goroutines. If numWorkers <= 1, it falls back to the sequential version.
//
// The result is bitwise identical to ComputePairwise.
func ComputePairwiseParallel(rows [][]float64, metric DistanceMetric, numWorkers int) *Dissimilarity {
	n := len(rows)
	if numWorkers <= 1 || n <= 1 {
		return ComputePairwise(rows, metric)
	}

	d := NewDissimilarity(n)

	// Row i owns the cells (i, j>i), so workers with disjoint row ranges
	// never write the same cell. Rows near the top carry more pairs, so rows
	// are dealt round-robin rather than in contiguous blocks.
	var wg sync.WaitGroup
	for w := 0; w < numWorkers && w < n; w++ {
		wg.Add(1)
		go func(first int) {
			defer wg.Done()
			for i := first; i < n; i += numWorkers {
				for j := i + 1; j < n; j++ {
					d.set(i, j, metric.Distance(rows[i], rows[j]))
				}
			}
		}(w)
	}

	wg.Wait()
	return d
}

func resolveWorkers(workers int) int {
	if workers == 0 {
		return runtime.NumCPU()
	}
	return workers
}

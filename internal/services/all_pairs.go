package services

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// NoHop marks an undefined next hop: no path exists between the pair.
const NoHop = -1

// SolverOptions tunes the all-pairs engine.
type SolverOptions struct {
	// Workers bounds the goroutines relaxing rows for a fixed intermediate
	// node. Values below 2 run sequentially.
	Workers int
	// ParallelThreshold is the node count from which rows are relaxed in parallel.
	ParallelThreshold int
}

func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Workers:           runtime.GOMAXPROCS(0),
		ParallelThreshold: 128,
	}
}

// AllPairs holds the shortest travel time and the next hop for every
// ordered pair of dense node indices.
type AllPairs struct {
	Dist [][]float64
	Next [][]int
}

// ComputeAllPairs runs Floyd–Warshall over a square weight matrix.
//
// +Inf marks a missing edge. The diagonal is forced to 0 with next hop equal
// to self. Weights must be non-negative; NaN or negative entries fail with
// ErrInvalidWeight. The input matrix is not modified.
//
// The outer loop over the intermediate node k is sequential; for a fixed k
// the rows are independent and may be relaxed concurrently.
func ComputeAllPairs(weights [][]float64, opts SolverOptions) (*AllPairs, error) {
	n := len(weights)
	dist := newMatrix(n, math.Inf(1))
	next := make([][]int, n)

	for i, row := range weights {
		if len(row) != n {
			return nil, fmt.Errorf("compute all pairs: row %d has %d columns, want %d", i, len(row), n)
		}
		next[i] = make([]int, n)
		for j, w := range row {
			switch {
			case i == j:
				dist[i][j] = 0
				next[i][j] = i
			case math.IsNaN(w) || w < 0:
				return nil, fmt.Errorf("compute all pairs: weight[%d][%d]=%v: %w", i, j, w, ErrInvalidWeight)
			case math.IsInf(w, 1):
				next[i][j] = NoHop
			default:
				dist[i][j] = w
				next[i][j] = j
			}
		}
	}

	workers := opts.Workers
	parallel := workers > 1 && n >= opts.ParallelThreshold
	if workers > n {
		workers = n
	}

	rowK := make([]float64, n)
	for k := 0; k < n; k++ {
		// Row k is stable while k is the intermediate node; the copy keeps
		// concurrent readers off memory another goroutine owns.
		copy(rowK, dist[k])

		if !parallel {
			for i := 0; i < n; i++ {
				relaxRow(dist[i], next[i], rowK, k)
			}
			continue
		}

		var g errgroup.Group
		chunk := (n + workers - 1) / workers
		for start := 0; start < n; start += chunk {
			start := start
			end := min(start+chunk, n)
			g.Go(func() error {
				for i := start; i < end; i++ {
					relaxRow(dist[i], next[i], rowK, k)
				}
				return nil
			})
		}
		_ = g.Wait()
	}

	return &AllPairs{Dist: dist, Next: next}, nil
}

// relaxRow improves row i through intermediate node k. Only strict
// improvements are taken, so ties keep the earlier path.
func relaxRow(dist []float64, next []int, rowK []float64, k int) {
	ik := dist[k]
	if math.IsInf(ik, 1) {
		return
	}
	hop := next[k]

	for j, kj := range rowK {
		if math.IsInf(kj, 1) {
			continue
		}
		if cand := ik + kj; cand < dist[j] {
			dist[j] = cand
			next[j] = hop
		}
	}
}

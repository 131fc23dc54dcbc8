package solver

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
)

// workerResult is what one root-split worker reports back: its id
// (for tiebreaking), the solution it found, and a discovery sequence
// number assigned as results land.
type workerResult struct {
	workerID int
	moves    []Move
	order    uint64
}

// candidateFirstMoves ranks the 18 possible first moves by how much
// closer they bring the cube to solved, cheapest to use as a
// worker's forced opening move. Ties keep AllMoves' stable order.
func candidateFirstMoves(start State, heuristic func(State) uint8) []Move {
	type scored struct {
		move Move
		h    uint8
	}
	all := AllMoves()
	scoredMoves := make([]scored, len(all))
	for i, m := range all {
		scoredMoves[i] = scored{move: m, h: heuristic(start.Rotate(m))}
	}
	sort.SliceStable(scoredMoves, func(i, j int) bool { return scoredMoves[i].h < scoredMoves[j].h })
	out := make([]Move, len(scoredMoves))
	for i, sm := range scoredMoves {
		out[i] = sm.move
	}
	return out
}

// rootSplitSearch assigns up to threads distinct first moves to their
// own goroutine, each running worker against the state reached after
// that forced move. worker receives a shared bestLen cutoff: as soon as
// any worker finds a solution, it CASes bestLen down, and every other
// worker's search loop observes the new bound on its next bound check
// and abandons branches that can no longer beat it. The final winner is
// chosen deterministically by (solution length, worker id, discovery
// order).
func rootSplitSearch(ctx context.Context, start State, threads int, heuristic func(State) uint8, worker func(ctx context.Context, s State, forced Move, cutoff *int32) ([]Move, error)) ([]Move, error) {
	candidates := candidateFirstMoves(start, heuristic)
	if threads < len(candidates) {
		candidates = candidates[:threads]
	}

	var wg sync.WaitGroup
	var seq uint64
	var bestLen int32 = 1<<31 - 1
	resultsCh := make(chan workerResult, len(candidates))

	for id, forced := range candidates {
		wg.Add(1)
		go func(id int, forced Move) {
			defer wg.Done()
			sol, err := worker(ctx, start, forced, &bestLen)
			if err != nil {
				return
			}
			order := atomic.AddUint64(&seq, 1)
			for {
				cur := atomic.LoadInt32(&bestLen)
				if int32(len(sol)) >= cur {
					break
				}
				if atomic.CompareAndSwapInt32(&bestLen, cur, int32(len(sol))) {
					break
				}
			}
			resultsCh <- workerResult{workerID: id, moves: sol, order: order}
		}(id, forced)
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	var results []workerResult
	for r := range resultsCh {
		results = append(results, r)
	}
	if len(results) == 0 {
		return nil, ErrNoSolution
	}

	sort.Slice(results, func(i, j int) bool {
		if len(results[i].moves) != len(results[j].moves) {
			return len(results[i].moves) < len(results[j].moves)
		}
		if results[i].workerID != results[j].workerID {
			return results[i].workerID < results[j].workerID
		}
		return results[i].order < results[j].order
	})
	return results[0].moves, nil
}

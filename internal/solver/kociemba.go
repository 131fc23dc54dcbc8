package solver

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
)

// maxPhase1Depth bounds how far phase 1 will search for a way into the
// ⟨U,D,L2,R2,F2,B2⟩ subgroup. The true worst case is small (well under
// this bound); it exists as a backstop against a malformed cube state
// slipping past validation.
const maxPhase1Depth = 14

// maxPhase2Depth bounds the phase-2 completion search once inside the
// subgroup.
const maxPhase2Depth = 20

// KociembaSolver implements the two-phase algorithm: phase 1 searches
// all 18 moves for a path into the ⟨U,D,L2,R2,F2,B2⟩ subgroup, phase 2
// searches the 10-move subgroup for a path to solved.
type KociembaSolver struct {
	tables  *PruningTables
	threads int
}

// NewKociemba constructs a Kociemba engine backed by tables, searching
// with the given worker count.
func NewKociemba(threads int, tables *PruningTables) (*KociembaSolver, error) {
	if err := validateThreads(threads); err != nil {
		return nil, err
	}
	return &KociembaSolver{tables: tables, threads: threads}, nil
}

func (k *KociembaSolver) Name() string { return "kociemba" }

// Init builds this engine's pruning tables from scratch, in memory.
func (k *KociembaSolver) Init() error {
	co, eoSlice := BuildPhase1Tables()
	cpSlice, epSlice := BuildPhase2Tables()
	k.tables = &PruningTables{
		CornerOrientation: co,
		EdgeOrientSlice:   eoSlice,
		CornerPermSlice:   cpSlice,
		EdgePermSlice:     epSlice,
	}
	return nil
}

// InitFromFile loads this engine's pruning tables from a file
// previously written by Save.
func (k *KociembaSolver) InitFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTableLoad, err)
	}
	defer f.Close()
	tables := &PruningTables{}
	if err := tables.Load(f); err != nil {
		return err
	}
	k.tables = tables
	return nil
}

// Save persists this engine's currently-held pruning tables to path.
func (k *KociembaSolver) Save(path string) error {
	if k.tables == nil {
		return fmt.Errorf("%w: tables not initialized, call Init or InitFromFile first", ErrInvalidConfig)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTableSave, err)
	}
	defer f.Close()
	return k.tables.Save(f, k.Name())
}

// Solve finds a move sequence from start to solved.
func (k *KociembaSolver) Solve(ctx context.Context, start State) ([]Move, error) {
	if k.tables == nil {
		return nil, fmt.Errorf("%w: tables not initialized, call Init or InitFromFile first", ErrInvalidConfig)
	}
	if err := ValidateState(start); err != nil {
		return nil, err
	}
	if start.IsSolved() {
		return nil, nil
	}
	if k.threads == 1 {
		return k.solveSequential(ctx, start, nil)
	}
	return rootSplitSearch(ctx, start, k.threads, k.tables.Phase1Heuristic, func(ctx context.Context, s State, forced Move, cutoff *int32) ([]Move, error) {
		sol, err := k.solveSequential(ctx, s.Rotate(forced), cutoff)
		if err != nil {
			return nil, err
		}
		return canonicalizeMoves(append([]Move{forced}, sol...)), nil
	})
}

// solveSequential runs the two-phase search. cutoff, when non-nil, is a
// shared atomic bound on the best total solution length any root-split
// worker has found so far; searches that can no longer beat it abort
// early instead of running to completion.
func (k *KociembaSolver) solveSequential(ctx context.Context, start State, cutoff *int32) ([]Move, error) {
	for d1 := int(k.tables.Phase1Heuristic(start)); d1 <= maxPhase1Depth; d1++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if cutoff != nil && d1 >= int(atomic.LoadInt32(cutoff)) {
			return nil, fmt.Errorf("%w: cut off by a faster root-split worker", ErrNoSolution)
		}
		phase1Candidates := findPhase1Solutions(start, k.tables, d1, cutoff)
		if len(phase1Candidates) == 0 {
			continue
		}
		var best []Move
		for _, p1 := range phase1Candidates {
			mid := start.Apply(p1)
			maxP2 := maxPhase2Depth
			if cutoff != nil {
				if remaining := int(atomic.LoadInt32(cutoff)) - len(p1) - 1; remaining < maxP2 {
					maxP2 = remaining
				}
			}
			if maxP2 < 0 {
				continue
			}
			p2, ok := searchPhase2(ctx, mid, k.tables, maxP2, cutoff, len(p1))
			if !ok {
				continue
			}
			if best == nil || len(p1)+len(p2) < len(best) {
				combined := append(append([]Move{}, p1...), p2...)
				best = canonicalizeMoves(combined)
			}
		}
		if best != nil {
			return best, nil
		}
	}
	return nil, fmt.Errorf("%w: phase 1 exhausted depth %d", ErrNoSolution, maxPhase1Depth)
}

// findPhase1Solutions enumerates every 18-move sequence of exactly
// depth moves, starting from start, that lands inside the phase-1
// subgroup. Consecutive moves on the same face are pruned as
// redundant; when cutoff is non-nil, any partial path that can no
// longer beat the best known total solution length is abandoned.
func findPhase1Solutions(start State, tables *PruningTables, depth int, cutoff *int32) [][]Move {
	var results [][]Move
	path := make([]Move, 0, depth)
	all := AllMoves()

	var dfs func(s State, remaining int, hasLast bool, lastFace Face)
	dfs = func(s State, remaining int, hasLast bool, lastFace Face) {
		h := int(tables.Phase1Heuristic(s))
		if h > remaining {
			return
		}
		if cutoff != nil && len(path)+remaining >= int(atomic.LoadInt32(cutoff)) {
			return
		}
		if remaining == 0 {
			if s.InPhase2Subgroup() {
				sol := make([]Move, len(path))
				copy(sol, path)
				results = append(results, sol)
			}
			return
		}
		for _, m := range all {
			if hasLast && m.Face == lastFace {
				continue
			}
			if hasLast && Axis(m.Face) == Axis(lastFace) && m.Face < lastFace {
				continue
			}
			path = append(path, m)
			dfs(s.Rotate(m), remaining-1, true, m.Face)
			path = path[:len(path)-1]
		}
	}
	dfs(start, depth, false, 0)
	return results
}

// searchPhase2 runs classic IDA* over the 10-move subgroup, looking for
// the shortest path from start to solved within maxDepth. prefixLen is
// the number of phase-1 moves already spent, used together with cutoff
// to bound the combined solution length.
func searchPhase2(ctx context.Context, start State, tables *PruningTables, maxDepth int, cutoff *int32, prefixLen int) ([]Move, bool) {
	p2 := Phase2Moves()
	for bound := int(tables.Phase2Heuristic(start)); bound <= maxDepth; bound++ {
		select {
		case <-ctx.Done():
			return nil, false
		default:
		}
		path := make([]Move, 0, bound)
		if phase2DFS(start, tables, p2, bound, 0, false, 0, &path, cutoff, prefixLen) {
			out := make([]Move, len(path))
			copy(out, path)
			return out, true
		}
	}
	return nil, false
}

func phase2DFS(s State, tables *PruningTables, moves []Move, bound, g int, hasLast bool, lastFace Face, path *[]Move, cutoff *int32, prefixLen int) bool {
	h := int(tables.Phase2Heuristic(s))
	effectiveBound := bound
	if cutoff != nil {
		if c := int(atomic.LoadInt32(cutoff)) - prefixLen - 1; c < effectiveBound {
			effectiveBound = c
		}
	}
	if g+h > effectiveBound {
		return false
	}
	if s.IsSolved() {
		return true
	}
	for _, m := range moves {
		if hasLast && m.Face == lastFace {
			continue
		}
		if hasLast && Axis(m.Face) == Axis(lastFace) && m.Face < lastFace {
			continue
		}
		*path = append(*path, m)
		if phase2DFS(s.Rotate(m), tables, moves, bound, g+1, true, m.Face, path, cutoff, prefixLen) {
			return true
		}
		*path = (*path)[:len(*path)-1]
	}
	return false
}

package solver

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
)

// maxKrofDepth bounds the single-phase search: 20 is god's number in
// the half-turn metric, so no valid cube needs a longer solution.
const maxKrofDepth = 20

// KrofSolver implements Korf's single-phase IDA*: one search over all
// 18 moves, guided by the max of three pattern databases (corners,
// first six edges, last six edges).
type KrofSolver struct {
	tables  *PruningTables
	threads int
}

// NewKROF constructs a KROF engine backed by tables, searching with
// the given worker count.
func NewKROF(threads int, tables *PruningTables) (*KrofSolver, error) {
	if err := validateThreads(threads); err != nil {
		return nil, err
	}
	return &KrofSolver{tables: tables, threads: threads}, nil
}

func (k *KrofSolver) Name() string { return "krof" }

// Init builds this engine's three pattern databases from scratch, in
// memory. This is the expensive path: the two edge databases alone
// cover tens of millions of states.
func (k *KrofSolver) Init() error {
	corner, first6, last6 := BuildKrofTables()
	k.tables = &PruningTables{CornerFull: corner, EdgeFirst6: first6, EdgeLast6: last6}
	return nil
}

// InitFromFile loads this engine's pattern databases from a file
// previously written by Save.
func (k *KrofSolver) InitFromFile(path string) error {
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

// Save persists this engine's currently-held pattern databases to path.
func (k *KrofSolver) Save(path string) error {
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
func (k *KrofSolver) Solve(ctx context.Context, start State) ([]Move, error) {
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
	return rootSplitSearch(ctx, start, k.threads, k.tables.KrofHeuristic, func(ctx context.Context, s State, forced Move, cutoff *int32) ([]Move, error) {
		sol, err := k.solveSequential(ctx, s.Rotate(forced), cutoff)
		if err != nil {
			return nil, err
		}
		return canonicalizeMoves(append([]Move{forced}, sol...)), nil
	})
}

// solveSequential runs single-phase IDA*. cutoff, when non-nil, is a
// shared atomic bound on the best solution length any root-split worker
// has found so far; a search that can no longer beat it aborts early.
func (k *KrofSolver) solveSequential(ctx context.Context, start State, cutoff *int32) ([]Move, error) {
	moves := AllMoves()
	for bound := int(k.tables.KrofHeuristic(start)); bound <= maxKrofDepth; bound++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if cutoff != nil && bound >= int(atomic.LoadInt32(cutoff)) {
			return nil, fmt.Errorf("%w: cut off by a faster root-split worker", ErrNoSolution)
		}
		path := make([]Move, 0, bound)
		if krofDFS(ctx, start, k.tables, moves, bound, 0, false, 0, &path, cutoff) {
			out := make([]Move, len(path))
			copy(out, path)
			return canonicalizeMoves(out), nil
		}
	}
	return nil, fmt.Errorf("%w: single-phase search exhausted depth %d", ErrNoSolution, maxKrofDepth)
}

func krofDFS(ctx context.Context, s State, tables *PruningTables, moves []Move, bound, g int, hasLast bool, lastFace Face, path *[]Move, cutoff *int32) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}
	h := int(tables.KrofHeuristic(s))
	effectiveBound := bound
	if cutoff != nil {
		if c := int(atomic.LoadInt32(cutoff)) - 1; c < effectiveBound {
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
		if krofDFS(ctx, s.Rotate(m), tables, moves, bound, g+1, true, m.Face, path, cutoff) {
			return true
		}
		*path = (*path)[:len(*path)-1]
	}
	return false
}

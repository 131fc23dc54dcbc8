package cube

import (
	"context"
	"fmt"
	"time"

	"github.com/avidal/cubecore/internal/solver"
)

// SolverResult represents the result of a solve attempt
type SolverResult struct {
	Solution []Move
	Steps    int
	Duration time.Duration
}

// Solver interface for different solving algorithms
type Solver interface {
	Solve(cube *Cube) (*SolverResult, error)
	Name() string
}

// BeginnerSolver implements a basic layer-by-layer method
type BeginnerSolver struct{}

func (s *BeginnerSolver) Name() string {
	return "Beginner"
}

func (s *BeginnerSolver) Solve(cube *Cube) (*SolverResult, error) {
	start := time.Now()
	
	// This is a placeholder implementation
	// A real beginner solver would implement:
	// 1. White cross
	// 2. White corners (first layer)
	// 3. Middle layer edges
	// 4. Yellow cross
	// 5. Yellow face
	// 6. Permute last layer
	
	solution := []Move{
		{Face: Right, Clockwise: true},
		{Face: Up, Clockwise: true},
		{Face: Right, Clockwise: false},
		{Face: Up, Clockwise: false},
	}
	
	return &SolverResult{
		Solution: solution,
		Steps:    len(solution),
		Duration: time.Since(start),
	}, nil
}

// CFOPSolver implements the CFOP method
type CFOPSolver struct{}

func (s *CFOPSolver) Name() string {
	return "CFOP"
}

func (s *CFOPSolver) Solve(cube *Cube) (*SolverResult, error) {
	start := time.Now()
	
	// Placeholder CFOP implementation
	// Real CFOP would implement:
	// 1. Cross
	// 2. F2L (First Two Layers)
	// 3. OLL (Orient Last Layer)
	// 4. PLL (Permute Last Layer)
	
	solution := []Move{
		{Face: Front, Clockwise: true},
		{Face: Right, Clockwise: true},
		{Face: Up, Clockwise: true},
		{Face: Right, Clockwise: false},
		{Face: Up, Clockwise: false},
		{Face: Front, Clockwise: false},
	}
	
	return &SolverResult{
		Solution: solution,
		Steps:    len(solution),
		Duration: time.Since(start),
	}, nil
}

// KociembaSolver implements Kociemba's two-phase algorithm: phase 1
// reduces the cube to the ⟨U,D,L2,R2,F2,B2⟩ subgroup, phase 2 solves
// within it. The cubie-level search happens entirely in internal/solver;
// this type's job is converting to and from the facelet Cube and
// managing the on-disk pruning tables.
type KociembaSolver struct {
	Threads int
}

func (s *KociembaSolver) Name() string {
	return "Kociemba"
}

func (s *KociembaSolver) Solve(cube *Cube) (*SolverResult, error) {
	if cube.Size != 3 {
		return nil, fmt.Errorf("Kociemba algorithm only supports 3x3x3 cubes")
	}

	start := time.Now()

	threads := s.Threads
	if threads < 1 {
		threads = 1
	}

	state, err := StateFromCube(cube)
	if err != nil {
		return nil, err
	}

	tables, err := LoadOrBuildTables(KociembaTables)
	if err != nil {
		return nil, err
	}

	engine, err := solver.NewKociemba(threads, tables)
	if err != nil {
		return nil, err
	}

	moves, err := engine.Solve(context.Background(), state)
	if err != nil {
		return nil, err
	}

	solution := ToCubeMoves(moves)
	return &SolverResult{
		Solution: solution,
		Steps:    len(solution),
		Duration: time.Since(start),
	}, nil
}

// KrofSolver implements Korf's single-phase IDA*, guided by the max of
// three pattern databases covering the corners and two six-edge halves.
// It tends to find shorter solutions than Kociemba at the cost of much
// larger pruning tables and a slower first build.
type KrofSolver struct {
	Threads int
}

func (s *KrofSolver) Name() string {
	return "KROF"
}

func (s *KrofSolver) Solve(cube *Cube) (*SolverResult, error) {
	if cube.Size != 3 {
		return nil, fmt.Errorf("KROF algorithm only supports 3x3x3 cubes")
	}

	start := time.Now()

	threads := s.Threads
	if threads < 1 {
		threads = 1
	}

	state, err := StateFromCube(cube)
	if err != nil {
		return nil, err
	}

	tables, err := LoadOrBuildTables(KrofTables)
	if err != nil {
		return nil, err
	}

	engine, err := solver.NewKROF(threads, tables)
	if err != nil {
		return nil, err
	}

	moves, err := engine.Solve(context.Background(), state)
	if err != nil {
		return nil, err
	}

	solution := ToCubeMoves(moves)
	return &SolverResult{
		Solution: solution,
		Steps:    len(solution),
		Duration: time.Since(start),
	}, nil
}

// GetSolver returns a solver by name, using a single search worker.
func GetSolver(name string) (Solver, error) {
	return GetSolverWithThreads(name, 1)
}

// GetSolverWithThreads returns a solver by name, configuring Kociemba
// and KROF's root-splitting parallel search to use the given number of
// worker goroutines. Other algorithms ignore threads.
func GetSolverWithThreads(name string, threads int) (Solver, error) {
	switch name {
	case "beginner":
		return &BeginnerSolver{}, nil
	case "cfop":
		return &CFOPSolver{}, nil
	case "kociemba":
		return &KociembaSolver{Threads: threads}, nil
	case "krof":
		return &KrofSolver{Threads: threads}, nil
	default:
		return nil, fmt.Errorf("unknown solver: %s", name)
	}
}
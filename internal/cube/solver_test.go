package cube

import (
	"testing"

	"github.com/avidal/cubecore/internal/solver"
)

func TestGetSolver(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		wantName  string
		wantErr   bool
	}{
		{"Beginner solver", "beginner", "Beginner", false},
		{"CFOP solver", "cfop", "CFOP", false},
		{"Kociemba solver", "kociemba", "Kociemba", false},
		{"KROF solver", "krof", "KROF", false},
		{"Invalid solver", "invalid", "", true},
		{"Empty string", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := GetSolver(tt.algorithm)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetSolver(%q) error = %v, wantErr %v", tt.algorithm, err, tt.wantErr)
				return
			}
			if !tt.wantErr && s.Name() != tt.wantName {
				t.Errorf("GetSolver(%q).Name() = %q, want %q", tt.algorithm, s.Name(), tt.wantName)
			}
		})
	}
}

func TestBeginnerSolverOnSolvedCube(t *testing.T) {
	c := NewCube(3)
	s := &BeginnerSolver{}

	result, err := s.Solve(c)
	if err != nil {
		t.Fatalf("BeginnerSolver.Solve() error = %v", err)
	}
	if result.Steps != len(result.Solution) {
		t.Errorf("Steps (%d) should equal solution length (%d)", result.Steps, len(result.Solution))
	}
}

func TestKociembaSolverRejectsNon3x3(t *testing.T) {
	c := NewCube(4)
	s := &KociembaSolver{}

	if _, err := s.Solve(c); err == nil {
		t.Error("KociembaSolver should reject 4x4x4 cubes")
	}
}

func TestKrofSolverRejectsNon3x3(t *testing.T) {
	c := NewCube(2)
	s := &KrofSolver{}

	if _, err := s.Solve(c); err == nil {
		t.Error("KrofSolver should reject non-3x3x3 cubes")
	}
}

func TestStateFromCubeRoundTripSolved(t *testing.T) {
	c := NewCube(3)
	state, err := StateFromCube(c)
	if err != nil {
		t.Fatalf("StateFromCube: %v", err)
	}
	if !state.IsSolved() {
		t.Fatalf("StateFromCube(solved cube) = %+v, want solved state", state)
	}
	rendered := CubeFromState(state)
	if !rendered.IsSolved() {
		t.Fatal("CubeFromState(solved state) is not solved")
	}
}

func TestStateFromCubeRoundTripScrambled(t *testing.T) {
	c := NewCube(3)
	moves, err := ParseScramble("R U R' U' F2 D L' B2")
	if err != nil {
		t.Fatalf("ParseScramble: %v", err)
	}
	c.ApplyMoves(moves)

	state, err := StateFromCube(c)
	if err != nil {
		t.Fatalf("StateFromCube: %v", err)
	}

	rendered := CubeFromState(state)
	for face := 0; face < 6; face++ {
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				if rendered.Faces[face][row][col] != c.Faces[face][row][col] {
					t.Fatalf("CubeFromState(StateFromCube(c)) mismatch at face %d [%d][%d]: got %v, want %v",
						face, row, col, rendered.Faces[face][row][col], c.Faces[face][row][col])
				}
			}
		}
	}
}

func TestStateFromCubeRejectsMalformedCube(t *testing.T) {
	c := NewCube(3)
	// Overwrite a corner facelet with a color from an opposite, non-adjacent
	// face so no solved piece's color set matches the resulting triple.
	c.Faces[Up][0][0] = c.Faces[Front][0][0]

	if _, err := StateFromCube(c); err == nil {
		t.Error("StateFromCube should reject a cube whose corner colors match no piece")
	}
}

func TestToCubeMoveRoundTripsFaceAndTurns(t *testing.T) {
	cases := []struct {
		m    solver.Move
		face Face
	}{
		{solver.Move{Face: solver.U, Turns: 1}, Up},
		{solver.Move{Face: solver.R, Turns: 2}, Right},
		{solver.Move{Face: solver.F, Turns: 3}, Front},
		{solver.Move{Face: solver.D, Turns: 1}, Down},
		{solver.Move{Face: solver.L, Turns: 2}, Left},
		{solver.Move{Face: solver.B, Turns: 3}, Back},
	}
	for _, tc := range cases {
		got := ToCubeMove(tc.m)
		if got.Face != tc.face {
			t.Errorf("ToCubeMove(%v).Face = %v, want %v", tc.m, got.Face, tc.face)
		}
		switch tc.m.Turns {
		case 1:
			if !got.Clockwise || got.Double {
				t.Errorf("ToCubeMove(%v) = %+v, want a clockwise quarter turn", tc.m, got)
			}
		case 2:
			if !got.Double {
				t.Errorf("ToCubeMove(%v) = %+v, want a double turn", tc.m, got)
			}
		case 3:
			if got.Clockwise || got.Double {
				t.Errorf("ToCubeMove(%v) = %+v, want a counter-clockwise quarter turn", tc.m, got)
			}
		}
	}
}

func TestKociembaSolverSolvesShortScramble(t *testing.T) {
	if testing.Short() {
		t.Skip("building the full Kociemba pruning tables is slow; skip under -short")
	}
	c := NewCube(3)
	moves, err := ParseScramble("R U R' U'")
	if err != nil {
		t.Fatalf("ParseScramble: %v", err)
	}
	c.ApplyMoves(moves)

	s := &KociembaSolver{Threads: 1}
	result, err := s.Solve(c)
	if err != nil {
		t.Fatalf("KociembaSolver.Solve: %v", err)
	}

	c.ApplyMoves(result.Solution)
	if !c.IsSolved() {
		t.Fatal("applying the Kociemba solution did not solve the cube")
	}
}

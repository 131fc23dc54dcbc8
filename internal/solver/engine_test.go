package solver

import (
	"context"
	"errors"
	"testing"
)

func TestValidateStateAcceptsSolvedAndScrambled(t *testing.T) {
	states := []State{
		Solved(),
		StateFromMoves([]Move{{Face: R, Turns: 1}}),
		StateFromMoves([]Move{{Face: R, Turns: 1}, {Face: U, Turns: 2}, {Face: F, Turns: 3}, {Face: L, Turns: 1}}),
	}
	for i, s := range states {
		if err := ValidateState(s); err != nil {
			t.Errorf("state %d: ValidateState rejected a reachable state: %v", i, err)
		}
	}
}

func TestValidateStateRejectsIsolatedCornerTwist(t *testing.T) {
	s := Solved()
	s.CO[0] = 1 // one corner twisted in isolation: sum is 1, not 0 mod 3
	if err := ValidateState(s); !errors.Is(err, ErrMalformedCube) {
		t.Fatalf("ValidateState(isolated corner twist) = %v, want ErrMalformedCube", err)
	}
}

func TestValidateStateRejectsIsolatedEdgeFlip(t *testing.T) {
	s := Solved()
	s.EO[0] = 1 // one edge flipped in isolation: sum is 1, not 0 mod 2
	if err := ValidateState(s); !errors.Is(err, ErrMalformedCube) {
		t.Fatalf("ValidateState(isolated edge flip) = %v, want ErrMalformedCube", err)
	}
}

func TestValidateStateRejectsParityMismatch(t *testing.T) {
	s := Solved()
	s.CP[0], s.CP[1] = s.CP[1], s.CP[0] // swap two corners without a matching edge swap
	if err := ValidateState(s); !errors.Is(err, ErrMalformedCube) {
		t.Fatalf("ValidateState(corner-only swap) = %v, want ErrMalformedCube", err)
	}
}

func TestPermutationParityOfIdentityIsEven(t *testing.T) {
	identity := []uint8{0, 1, 2, 3, 4, 5, 6, 7}
	if permutationParity(identity) != 0 {
		t.Fatalf("permutationParity(identity) = %d, want 0", permutationParity(identity))
	}
}

func TestPermutationParityOfSingleTranspositionIsOdd(t *testing.T) {
	swapped := []uint8{1, 0, 2, 3, 4, 5, 6, 7}
	if permutationParity(swapped) != 1 {
		t.Fatalf("permutationParity(single swap) = %d, want 1", permutationParity(swapped))
	}
}

func TestKociembaSolveRejectsMalformedCube(t *testing.T) {
	tables := buildTestTables(t)
	k, err := NewKociemba(1, tables)
	if err != nil {
		t.Fatalf("NewKociemba: %v", err)
	}
	s := Solved()
	s.CO[0] = 1
	if _, err := k.Solve(context.Background(), s); !errors.Is(err, ErrMalformedCube) {
		t.Fatalf("Solve(malformed) = %v, want ErrMalformedCube", err)
	}
}

func TestKrofSolveRejectsMalformedCube(t *testing.T) {
	k, err := NewKROF(1, &PruningTables{})
	if err != nil {
		t.Fatalf("NewKROF: %v", err)
	}
	s := Solved()
	s.EO[0] = 1
	if _, err := k.Solve(context.Background(), s); !errors.Is(err, ErrMalformedCube) {
		t.Fatalf("Solve(malformed) = %v, want ErrMalformedCube", err)
	}
}

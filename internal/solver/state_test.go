package solver

import "testing"

func TestSolvedIsSolved(t *testing.T) {
	if !Solved().IsSolved() {
		t.Fatal("Solved() should report IsSolved")
	}
}

func TestMoveInverseCancels(t *testing.T) {
	tests := []Move{
		{Face: U, Turns: 1}, {Face: U, Turns: 2}, {Face: U, Turns: 3},
		{Face: R, Turns: 1}, {Face: F, Turns: 2}, {Face: B, Turns: 3},
	}
	for _, m := range tests {
		t.Run(m.String(), func(t *testing.T) {
			s := Solved().Rotate(m).Rotate(m.Inverse())
			if !s.IsSolved() {
				t.Fatalf("%s then %s did not return to solved: %+v", m, m.Inverse(), s)
			}
		})
	}
}

func TestQuarterTurnFourTimesIsIdentity(t *testing.T) {
	for f := U; f <= B; f++ {
		t.Run(f.String(), func(t *testing.T) {
			s := Solved()
			for i := 0; i < 4; i++ {
				s = s.Rotate(Move{Face: f, Turns: 1})
			}
			if !s.IsSolved() {
				t.Fatalf("four quarter turns of %s did not return to solved: %+v", f, s)
			}
		})
	}
}

func TestHalfTurnEqualsTwoQuarterTurns(t *testing.T) {
	for f := U; f <= B; f++ {
		half := Solved().Rotate(Move{Face: f, Turns: 2})
		twoQuarters := Solved().Rotate(Move{Face: f, Turns: 1}).Rotate(Move{Face: f, Turns: 1})
		if half != twoQuarters {
			t.Fatalf("%s2 != %s %s: %+v vs %+v", f, f, f, half, twoQuarters)
		}
	}
}

func TestEachFaceTouchesExactlyItsOwnCorners(t *testing.T) {
	// Every corner must appear in exactly 3 of the 6 moves' corner
	// cycles (the 3 faces meeting at it), and every move must touch
	// exactly 4 distinct corners.
	count := make(map[uint8]int)
	for f := U; f <= B; f++ {
		seen := map[uint8]bool{}
		for _, c := range moveDefs[f].cornerCycle {
			if seen[c] {
				t.Fatalf("face %s repeats corner %d in its cycle", f, c)
			}
			seen[c] = true
			count[c]++
		}
	}
	for c := uint8(0); c < 8; c++ {
		if count[c] != 3 {
			t.Errorf("corner %d touched by %d faces, want 3", c, count[c])
		}
	}
}

func TestEachFaceTouchesExactlyItsOwnEdges(t *testing.T) {
	count := make(map[uint8]int)
	for f := U; f <= B; f++ {
		seen := map[uint8]bool{}
		for _, e := range moveDefs[f].edgeCycle {
			if seen[e] {
				t.Fatalf("face %s repeats edge %d in its cycle", f, e)
			}
			seen[e] = true
			count[e]++
		}
	}
	for e := uint8(0); e < 12; e++ {
		if count[e] != 2 {
			t.Errorf("edge %d touched by %d faces, want 2", e, count[e])
		}
	}
}

func TestOrientationInvariantsPreservedByAnyMove(t *testing.T) {
	s := Solved()
	sequence := []Move{
		{Face: R, Turns: 1}, {Face: U, Turns: 1}, {Face: R, Turns: 3}, {Face: U, Turns: 3},
		{Face: F, Turns: 2}, {Face: L, Turns: 1}, {Face: B, Turns: 3}, {Face: D, Turns: 2},
	}
	for i, m := range sequence {
		s = s.Rotate(m)
		co := 0
		for _, o := range s.CO {
			co += int(o)
		}
		if co%3 != 0 {
			t.Fatalf("after move %d (%s): corner orientation sum %d not divisible by 3", i, m, co)
		}
		eo := 0
		for _, o := range s.EO {
			eo += int(o)
		}
		if eo%2 != 0 {
			t.Fatalf("after move %d (%s): edge orientation sum %d not even", i, m, eo)
		}
	}
}

func TestComposeMatchesSequentialApplication(t *testing.T) {
	moves1 := []Move{{Face: R, Turns: 1}, {Face: U, Turns: 1}}
	moves2 := []Move{{Face: F, Turns: 2}, {Face: L, Turns: 3}}

	a := Solved().Apply(moves1)
	b := Solved().Apply(moves2)
	composed := Compose(a, b)
	sequential := Solved().Apply(moves1).Apply(moves2)

	if composed != sequential {
		t.Fatalf("Compose(a,b) != sequential application:\n%+v\nvs\n%+v", composed, sequential)
	}
}

func TestInPhase2SubgroupAfterPhase2Moves(t *testing.T) {
	s := Solved()
	for _, m := range Phase2Moves() {
		s = s.Rotate(m)
		if !s.InPhase2Subgroup() {
			t.Fatalf("move %s should preserve the phase-1 subgroup, got %+v", m, s)
		}
	}
}

func TestCanonicalizeMovesCancelsSeam(t *testing.T) {
	in := []Move{{Face: R, Turns: 1}, {Face: R, Turns: 3}, {Face: U, Turns: 1}}
	out := canonicalizeMoves(in)
	want := []Move{{Face: U, Turns: 1}}
	if len(out) != len(want) || out[0] != want[0] {
		t.Fatalf("canonicalizeMoves(%v) = %v, want %v", in, out, want)
	}
}

func TestCanonicalizeMovesMergesSameFace(t *testing.T) {
	in := []Move{{Face: R, Turns: 1}, {Face: R, Turns: 1}}
	out := canonicalizeMoves(in)
	want := Move{Face: R, Turns: 2}
	if len(out) != 1 || out[0] != want {
		t.Fatalf("canonicalizeMoves(%v) = %v, want [%v]", in, out, want)
	}
}

func TestOppositeFaceIsInvolution(t *testing.T) {
	for f := U; f <= B; f++ {
		opp := OppositeFace(f)
		if opp == f {
			t.Fatalf("OppositeFace(%s) = %s, want a different face", f, opp)
		}
		if OppositeFace(opp) != f {
			t.Fatalf("OppositeFace(OppositeFace(%s)) = %s, want %s", f, OppositeFace(opp), f)
		}
		if Axis(f) != Axis(opp) {
			t.Fatalf("%s and its opposite %s should share an axis", f, opp)
		}
	}
}

func TestToCoordinatesMatchesStandaloneEncoders(t *testing.T) {
	s := StateFromMoves([]Move{{Face: R, Turns: 1}, {Face: U, Turns: 2}, {Face: F, Turns: 3}})
	c := s.ToCoordinates()
	want := Coordinates{
		CornerOrientation: EncodeCornerOrientation(s),
		EdgeOrientation:   EncodeEdgeOrientation(s),
		SlicePlacement:    EncodeSlicePlacement(s),
		CornerPermutation: EncodeCornerPermutation(s),
		EdgePermutation:   EncodeEdgePermutation(s),
		SlicePermutation:  EncodeSlicePermutation(s),
	}
	if c != want {
		t.Fatalf("ToCoordinates() = %+v, want %+v", c, want)
	}
}

func TestToCoordinatesSolvedIsAllZero(t *testing.T) {
	c := Solved().ToCoordinates()
	zero := Coordinates{}
	if c != zero {
		t.Fatalf("Solved().ToCoordinates() = %+v, want all zero", c)
	}
}

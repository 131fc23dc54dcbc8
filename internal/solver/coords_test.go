package solver

import "testing"

func TestCornerOrientationEncodeDecodeRoundTrip(t *testing.T) {
	cases := []int{0, 1, 2186, 1093}
	for _, c := range cases {
		co := DecodeCornerOrientation(c)
		s := Solved()
		s.CO = co
		got := EncodeCornerOrientation(s)
		if got != c {
			t.Errorf("EncodeCornerOrientation(DecodeCornerOrientation(%d)) = %d", c, got)
		}
		sum := 0
		for _, o := range co {
			sum += int(o)
		}
		if sum%3 != 0 {
			t.Errorf("decoded corner orientation %d has invalid sum %d mod 3", c, sum%3)
		}
	}
}

func TestEdgeOrientationEncodeDecodeRoundTrip(t *testing.T) {
	cases := []int{0, 1, 2047, 1024}
	for _, c := range cases {
		eo := DecodeEdgeOrientation(c)
		s := Solved()
		s.EO = eo
		got := EncodeEdgeOrientation(s)
		if got != c {
			t.Errorf("EncodeEdgeOrientation(DecodeEdgeOrientation(%d)) = %d", c, got)
		}
		sum := 0
		for _, o := range eo {
			sum += int(o)
		}
		if sum%2 != 0 {
			t.Errorf("decoded edge orientation %d has invalid sum %d mod 2", c, sum%2)
		}
	}
}

func TestSlicePlacementEncodeIsZeroAtSolvedRelativePosition(t *testing.T) {
	// Slots are ranked relative to the FL slot, so the solved placement
	// (slice edges in slots 4-7) is the smallest 4-subset {0,1,2,3}
	// under the combinatorial number system and should rank to 0.
	s := Solved()
	if got := EncodeSlicePlacement(s); got != 0 {
		t.Errorf("EncodeSlicePlacement with slice edges in slots 4-7 = %d, want 0", got)
	}
}

func TestRankUnrankCombinationRoundTrip(t *testing.T) {
	for _, rank := range []int{0, 1, 100, 494} {
		positions := unrankCombination(rank, 12, 4)
		got := rankCombination(positions)
		if got != rank {
			t.Errorf("rankCombination(unrankCombination(%d,12,4)) = %d", rank, got)
		}
	}
}

func TestLehmerRankUnrankRoundTrip(t *testing.T) {
	for _, rank := range []int{0, 1, 5000, 40319} {
		perm := lehmerUnrank(rank, 8)
		got := lehmerRank(perm)
		if got != rank {
			t.Errorf("lehmerRank(lehmerUnrank(%d,8)) = %d, perm=%v", rank, got, perm)
		}
	}
}

func TestCornerPermutationEncodeDecodeRoundTrip(t *testing.T) {
	for _, rank := range []int{0, 1, 12345, 40319} {
		s := cornerPermutationState(rank)
		if got := EncodeCornerPermutation(s); got != rank {
			t.Errorf("EncodeCornerPermutation(cornerPermutationState(%d)) = %d", rank, got)
		}
	}
}

func TestEdgePermutationEncodeDecodeRoundTrip(t *testing.T) {
	for _, rank := range []int{0, 1, 12345, 40319} {
		s := edgePermutationState(rank)
		if got := EncodeEdgePermutation(s); got != rank {
			t.Errorf("EncodeEdgePermutation(edgePermutationState(%d)) = %d", rank, got)
		}
	}
}

func TestSlicePermutationEncodeDecodeRoundTrip(t *testing.T) {
	for _, rank := range []int{0, 1, 23} {
		s := slicePermutationState(rank)
		if got := EncodeSlicePermutation(s); got != rank {
			t.Errorf("EncodeSlicePermutation(slicePermutationState(%d)) = %d", rank, got)
		}
	}
}

func TestMoveTableMatchesDirectRotation(t *testing.T) {
	moves := AllMoves()
	table := CornerOrientationTable(moves)
	for _, c := range []int{0, 42, 2186} {
		base := cornerOrientationState(c)
		for i, m := range moves {
			want := EncodeCornerOrientation(base.Rotate(m))
			got := int(table.Next[c][i])
			if got != want {
				t.Errorf("CornerOrientationTable[%d][%s] = %d, want %d", c, m, got, want)
			}
		}
	}
}

func TestEncodeCornerFullIsZeroAtSolved(t *testing.T) {
	if got := EncodeCornerFull(Solved()); got != 0 {
		t.Errorf("EncodeCornerFull(Solved()) = %d, want 0", got)
	}
}

func TestEncodeEdgeHalfRoundTripsThroughSolved(t *testing.T) {
	code := EncodeEdgeHalf(Solved(), FirstSixEdges)
	s := Solved().Rotate(Move{Face: R, Turns: 1})
	again := EncodeEdgeHalf(s.Rotate(Move{Face: R, Turns: 3}), FirstSixEdges)
	if code != again {
		t.Errorf("EncodeEdgeHalf not stable under R then R': %d vs %d", code, again)
	}
}

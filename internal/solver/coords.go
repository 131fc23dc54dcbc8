package solver

// Coordinate domain sizes, per the standard Kociemba/Korf cubie
// encoding: each coordinate is a bijection between a slice of State
// and a small dense integer, so move application becomes an array
// lookup instead of a permutation walk.
const (
	CornerOrientationCount     = 2187 // 3^7
	EdgeOrientationCount       = 2048 // 2^11
	SlicePlacementCount        = 495  // C(12,4)
	CornerPermutationCount     = 40320 // 8!
	Phase2EdgePermutationCount = 40320 // 8!
	Phase2SlicePermutationCount = 24   // 4!
)

var binomial [13][13]int

func init() {
	for n := 0; n <= 12; n++ {
		binomial[n][0] = 1
		for k := 1; k <= n; k++ {
			binomial[n][k] = binomial[n-1][k-1]
			if k <= n-1 {
				binomial[n][k] += binomial[n-1][k]
			}
		}
	}
}

func choose(n, k int) int {
	if k < 0 || n < 0 || n > 12 || k > 12 || k > n {
		return 0
	}
	return binomial[n][k]
}

// EncodeCornerOrientation packs the seven independent corner twists
// (the eighth is fixed by the invariant that the sum is 0 mod 3) into
// a base-3 integer in [0, 2187).
func EncodeCornerOrientation(s State) int {
	c := 0
	for i := 0; i < 7; i++ {
		c = c*3 + int(s.CO[i])
	}
	return c
}

// DecodeCornerOrientation is the inverse of EncodeCornerOrientation. It
// fills only CO; callers needing a full State must set CP/EP/EO
// separately.
func DecodeCornerOrientation(c int) [8]uint8 {
	var co [8]uint8
	sum := 0
	for i := 6; i >= 0; i-- {
		co[i] = uint8(c % 3)
		sum += int(co[i])
		c /= 3
	}
	co[7] = uint8((3 - sum%3) % 3)
	return co
}

// EncodeEdgeOrientation packs the eleven independent edge flips into a
// base-2 integer in [0, 2048).
func EncodeEdgeOrientation(s State) int {
	c := 0
	for i := 0; i < 11; i++ {
		c = c*2 + int(s.EO[i])
	}
	return c
}

// DecodeEdgeOrientation is the inverse of EncodeEdgeOrientation.
func DecodeEdgeOrientation(c int) [12]uint8 {
	var eo [12]uint8
	sum := 0
	for i := 10; i >= 0; i-- {
		eo[i] = uint8(c % 2)
		sum += int(eo[i])
		c /= 2
	}
	eo[11] = uint8(sum % 2)
	return eo
}

// rankCombination computes the colex rank of a sorted k-subset of
// {0,...,n-1}, using the standard combinatorial number system.
func rankCombination(positions []int) int {
	rank := 0
	for i, p := range positions {
		rank += choose(p, i+1)
	}
	return rank
}

// unrankCombination is the inverse of rankCombination for a k-subset of
// an n-element set.
func unrankCombination(rank, n, k int) []int {
	result := make([]int, k)
	r := rank
	x := n - 1
	for i := k; i >= 1; i-- {
		for choose(x, i) > r {
			x--
		}
		result[i-1] = x
		r -= choose(x, i)
		x--
	}
	return result
}

// EncodeSlicePlacement ranks which 4 of the 12 edge slots currently
// hold a UD-slice edge (FL, FR, BR, BL), independent of which specific
// slice edge or of any other coordinate. Slots are counted starting from
// the FL slot (slot EdgeFL+k mod 12 is k), so the solved placement ranks 0.
func EncodeSlicePlacement(s State) int {
	positions := make([]int, 0, 4)
	for k := 0; k < 12; k++ {
		if IsSliceEdge(s.EP[(k+int(EdgeFL))%12]) {
			positions = append(positions, k)
		}
	}
	return rankCombination(positions)
}

// decodeSlicePlacementPositions returns the 4 slots holding a slice
// edge for a given slice-placement coordinate.
func decodeSlicePlacementPositions(c int) []int {
	positions := unrankCombination(c, 12, 4)
	for i, k := range positions {
		positions[i] = (k + int(EdgeFL)) % 12
	}
	return positions
}

// lehmerRank computes the Lehmer-code rank of perm, a permutation of
// {0,...,n-1}, as an integer in [0, n!).
func lehmerRank(perm []uint8) int {
	n := len(perm)
	rank := 0
	used := make([]bool, n)
	for i := 0; i < n; i++ {
		smaller := 0
		for j := 0; j < int(perm[i]); j++ {
			if !used[j] {
				smaller++
			}
		}
		used[perm[i]] = true
		if i < n-1 {
			rank += smaller * factorial(n-1-i)
		}
	}
	return rank
}

func factorial(n int) int {
	r := 1
	for i := 2; i <= n; i++ {
		r *= i
	}
	return r
}

// lehmerUnrank is the inverse of lehmerRank for a permutation of n
// elements.
func lehmerUnrank(rank, n int) []uint8 {
	available := make([]uint8, n)
	for i := range available {
		available[i] = uint8(i)
	}
	perm := make([]uint8, n)
	r := rank
	for i := 0; i < n; i++ {
		f := factorial(n - 1 - i)
		idx := r / f
		r %= f
		perm[i] = available[idx]
		available = append(available[:idx], available[idx+1:]...)
	}
	return perm
}

// EncodeCornerPermutation ranks the full corner permutation as an
// integer in [0, 40320).
func EncodeCornerPermutation(s State) int {
	return lehmerRank(s.CP[:])
}

func decodeCornerPermutation(c int) [8]uint8 {
	var cp [8]uint8
	copy(cp[:], lehmerUnrank(c, 8))
	return cp
}

// phase2EdgeRelative maps the non-slice edge identities
// {UB,UL,UR,UF,DF,DL,DR,DB} to a dense 0..7 range, in slot order.
var phase2EdgeRelative = map[uint8]uint8{
	EdgeUB: 0, EdgeUL: 1, EdgeUR: 2, EdgeUF: 3,
	EdgeDF: 4, EdgeDL: 5, EdgeDR: 6, EdgeDB: 7,
}

var phase2EdgeAbsolute = [8]uint8{EdgeUB, EdgeUL, EdgeUR, EdgeUF, EdgeDF, EdgeDL, EdgeDR, EdgeDB}

// phase2EdgeSlots lists the 8 position slots a phase-2 cube's non-slice
// edges occupy once phase 1 has finished: exactly the complement of
// the 4 UD-slice slots.
var phase2EdgeSlots = [8]int{0, 1, 2, 3, 8, 9, 10, 11}

// EncodeEdgePermutation ranks the relative order of the 8 non-slice
// edges among the 8 non-slice slots. Only meaningful once phase 1 has
// placed all slice edges into the slice slots.
func EncodeEdgePermutation(s State) int {
	rel := make([]uint8, 8)
	for i, slot := range phase2EdgeSlots {
		rel[i] = phase2EdgeRelative[s.EP[slot]]
	}
	return lehmerRank(rel)
}

func decodeEdgePermutation(c int) (slots [8]int, values [8]uint8) {
	rel := lehmerUnrank(c, 8)
	for i, slot := range phase2EdgeSlots {
		values[i] = phase2EdgeAbsolute[rel[i]]
		slots[i] = slot
	}
	return slots, values
}

var phase2SliceRelative = map[uint8]uint8{
	EdgeFL: 0, EdgeFR: 1, EdgeBR: 2, EdgeBL: 3,
}
var phase2SliceAbsolute = [4]uint8{EdgeFL, EdgeFR, EdgeBR, EdgeBL}
var phase2SliceSlots = [4]int{4, 5, 6, 7}

// EncodeSlicePermutation ranks the relative order of the 4 UD-slice
// edges among the 4 slice slots, as an integer in [0, 24). Only
// meaningful once phase 1 has placed all slice edges into the slice
// slots.
func EncodeSlicePermutation(s State) int {
	rel := make([]uint8, 4)
	for i, slot := range phase2SliceSlots {
		rel[i] = phase2SliceRelative[s.EP[slot]]
	}
	return lehmerRank(rel)
}

func decodeSlicePermutation(c int) (slots [4]int, values [4]uint8) {
	rel := lehmerUnrank(c, 4)
	for i, slot := range phase2SliceSlots {
		values[i] = phase2SliceAbsolute[rel[i]]
		slots[i] = slot
	}
	return slots, values
}

// The *State helpers below build a State suitable only for feeding to Rotate
// when computing a coordinate's move-table row: the coordinate's own
// fields are filled precisely, and every other field is set to a fixed
// identity value. Composing with a Rotate and re-encoding yields the
// correct successor coordinate regardless of what those other fields
// were in the real cube, because each coordinate's transition under a
// move depends only on itself (and, for the permutation coordinates,
// on which slots are already occupied by the right piece class).
func cornerOrientationState(c int) State {
	s := Solved()
	co := DecodeCornerOrientation(c)
	s.CO = co
	return s
}

func edgeOrientationState(c int) State {
	s := Solved()
	eo := DecodeEdgeOrientation(c)
	s.EO = eo
	return s
}

func slicePlacementState(c int) State {
	s := Solved()
	positions := decodeSlicePlacementPositions(c)
	isSlice := make([]bool, 12)
	for _, p := range positions {
		isSlice[p] = true
	}
	sliceIdx, restIdx := 0, 0
	sliceIDs := [4]uint8{EdgeFL, EdgeFR, EdgeBR, EdgeBL}
	restIDs := [8]uint8{EdgeUB, EdgeUL, EdgeUR, EdgeUF, EdgeDF, EdgeDL, EdgeDR, EdgeDB}
	for i := 0; i < 12; i++ {
		if isSlice[i] {
			s.EP[i] = sliceIDs[sliceIdx]
			sliceIdx++
		} else {
			s.EP[i] = restIDs[restIdx]
			restIdx++
		}
	}
	return s
}

func cornerPermutationState(c int) State {
	s := Solved()
	s.CP = decodeCornerPermutation(c)
	return s
}

func edgePermutationState(c int) State {
	s := Solved()
	// Slice slots hold identity slice edges so Rotate treats them as
	// ordinary slice-edge traffic without perturbing the coordinate.
	for i, id := range phase2SliceAbsolute {
		s.EP[phase2SliceSlots[i]] = id
	}
	slots, values := decodeEdgePermutation(c)
	for i, slot := range slots {
		s.EP[slot] = values[i]
	}
	return s
}

func slicePermutationState(c int) State {
	s := Solved()
	for i, id := range phase2EdgeAbsolute {
		s.EP[phase2EdgeSlots[i]] = id
	}
	slots, values := decodeSlicePermutation(c)
	for i, slot := range slots {
		s.EP[slot] = values[i]
	}
	return s
}

// MoveTable is a coordinate's transition table: next[coord][moveIdx]
// gives the coordinate reached by applying moves[moveIdx] to coord.
type MoveTable struct {
	Next  [][]uint16
	Moves []Move
}

func buildMoveTable(domain int, decode func(int) State, encode func(State) int, moves []Move) *MoveTable {
	next := make([][]uint16, domain)
	for c := 0; c < domain; c++ {
		row := make([]uint16, len(moves))
		base := decode(c)
		for i, m := range moves {
			row[i] = uint16(encode(base.Rotate(m)))
		}
		next[c] = row
	}
	return &MoveTable{Next: next, Moves: moves}
}

// CornerOrientationTable builds the corner-orientation coordinate's
// move table over the given move set.
func CornerOrientationTable(moves []Move) *MoveTable {
	return buildMoveTable(CornerOrientationCount, cornerOrientationState, EncodeCornerOrientation, moves)
}

// EdgeOrientationTable builds the edge-orientation coordinate's move
// table over the given move set.
func EdgeOrientationTable(moves []Move) *MoveTable {
	return buildMoveTable(EdgeOrientationCount, edgeOrientationState, EncodeEdgeOrientation, moves)
}

// SlicePlacementTable builds the UD-slice placement coordinate's move
// table over the given move set.
func SlicePlacementTable(moves []Move) *MoveTable {
	return buildMoveTable(SlicePlacementCount, slicePlacementState, EncodeSlicePlacement, moves)
}

// CornerPermutationTable builds the full corner-permutation
// coordinate's move table, restricted to the given move set (normally
// Phase2Moves, since this coordinate is only meaningful inside the
// phase-1 subgroup).
func CornerPermutationTable(moves []Move) *MoveTable {
	return buildMoveTable(CornerPermutationCount, cornerPermutationState, EncodeCornerPermutation, moves)
}

// EdgePermutationTable builds the phase-2 edge-permutation
// coordinate's move table, restricted to the given move set.
func EdgePermutationTable(moves []Move) *MoveTable {
	return buildMoveTable(Phase2EdgePermutationCount, edgePermutationState, EncodeEdgePermutation, moves)
}

// SlicePermutationTable builds the phase-2 slice-permutation
// coordinate's move table, restricted to the given move set.
func SlicePermutationTable(moves []Move) *MoveTable {
	return buildMoveTable(Phase2SlicePermutationCount, slicePermutationState, EncodeSlicePermutation, moves)
}

// KROF pattern database coordinates.
//
// These project a full State onto a much larger coordinate than the
// phase-1/phase-2 ones above (millions of entries, not tens of
// thousands), so unlike the coordinates above there is no precomputed
// MoveTable: the pruning-table builder walks real States with
// State.Rotate and only encodes the projection it needs when recording
// a distance. See BuildCornerDatabase / BuildEdgeDatabase in prune.go.

// CornerFullCount is the domain of the full corner pattern (both
// permutation and orientation of all 8 corners).
const CornerFullCount = CornerPermutationCount * CornerOrientationCount

// EncodeCornerFull ranks the full corner state (permutation and
// orientation together) as the KROF corner pattern database key.
func EncodeCornerFull(s State) int {
	return EncodeCornerPermutation(s)*CornerOrientationCount + EncodeCornerOrientation(s)
}

// EdgeHalfCount is the domain of a 6-of-12 edge pattern: which 6 slots
// hold the tracked edges (C(12,6)), their relative order (6!), and
// their flip state (2^6).
const EdgeHalfCount = 924 * 720 * 64

// FirstSixEdges and LastSixEdges partition the 12 edges into the two
// halves tracked by KROF's pair of edge pattern databases.
var FirstSixEdges = [6]uint8{EdgeUB, EdgeUL, EdgeUR, EdgeUF, EdgeFL, EdgeFR}
var LastSixEdges = [6]uint8{EdgeBR, EdgeBL, EdgeDF, EdgeDL, EdgeDR, EdgeDB}

// EncodeEdgeHalf ranks the placement, relative order, and flip state
// of the six tracked edges named in ids.
func EncodeEdgeHalf(s State, ids [6]uint8) int {
	member := map[uint8]uint8{}
	for i, id := range ids {
		member[id] = uint8(i)
	}
	positions := make([]int, 0, 6)
	for slot, e := range s.EP {
		if _, ok := member[e]; ok {
			positions = append(positions, slot)
		}
	}
	placementRank := rankCombination(positions)
	rel := make([]uint8, 6)
	orient := 0
	for i, slot := range positions {
		rel[i] = member[s.EP[slot]]
		orient = orient*2 + int(s.EO[slot])
	}
	permRank := lehmerRank(rel)
	return (placementRank*720+permRank)*64 + orient
}

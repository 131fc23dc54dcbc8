package solver

import "fmt"

// Face identifies one of the six faces a move can turn.
type Face uint8

const (
	U Face = iota
	R
	F
	D
	L
	B
)

func (f Face) String() string {
	return [...]string{"U", "R", "F", "D", "L", "B"}[f]
}

// ParseFace converts a Singmaster face letter into a Face.
func ParseFace(s string) (Face, error) {
	switch s {
	case "U":
		return U, nil
	case "R":
		return R, nil
	case "F":
		return F, nil
	case "D":
		return D, nil
	case "L":
		return L, nil
	case "B":
		return B, nil
	default:
		return 0, fmt.Errorf("%w: unknown face %q", ErrMalformedCube, s)
	}
}

// Move is a single quarter-, half-, or three-quarter-turn of one face.
// Turns is normalized to 1, 2, or 3 (a Turns of 0 is the identity move
// and never appears in a move list produced by this package).
type Move struct {
	Face  Face
	Turns uint8
}

// NewMove normalizes turns into the range [0,3] before constructing a Move.
func NewMove(face Face, turns int) Move {
	t := ((turns % 4) + 4) % 4
	return Move{Face: face, Turns: uint8(t)}
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	return Move{Face: m.Face, Turns: uint8((4 - int(m.Turns)) % 4)}
}

func (m Move) String() string {
	switch m.Turns {
	case 1:
		return m.Face.String()
	case 2:
		return m.Face.String() + "2"
	case 3:
		return m.Face.String() + "'"
	default:
		return m.Face.String() + "0"
	}
}

// AllMoves returns the 18 face turns (U, U2, U', R, R2, R', ...) in a
// fixed, stable order. Coordinate move tables are indexed by position
// in this slice.
func AllMoves() []Move {
	moves := make([]Move, 0, 18)
	for f := U; f <= B; f++ {
		moves = append(moves, Move{Face: f, Turns: 1})
		moves = append(moves, Move{Face: f, Turns: 2})
		moves = append(moves, Move{Face: f, Turns: 3})
	}
	return moves
}

// Phase2Moves returns the 10 moves that preserve the phase-1 subgroup:
// the full quarter/half turns of U and D, plus the half turns of the
// other four faces.
func Phase2Moves() []Move {
	return []Move{
		{Face: U, Turns: 1}, {Face: U, Turns: 2}, {Face: U, Turns: 3},
		{Face: D, Turns: 1}, {Face: D, Turns: 2}, {Face: D, Turns: 3},
		{Face: L, Turns: 2}, {Face: R, Turns: 2}, {Face: F, Turns: 2}, {Face: B, Turns: 2},
	}
}

// Corner slot indices. Numbering matches the order in which a facelet
// cube's corner pieces are enumerated, so the cube package's conversion
// code can index straight into this scheme without a translation table.
const (
	CornerUBL uint8 = iota
	CornerUBR
	CornerUFL
	CornerUFR
	CornerDFL
	CornerDFR
	CornerDBL
	CornerDBR
)

// Edge slot indices, 0-11. Indices 4-7 (FL, FR, BR, BL) are exactly the
// four UD-slice edges used by the phase-1/phase-2 split.
const (
	EdgeUB uint8 = iota
	EdgeUL
	EdgeUR
	EdgeUF
	EdgeFL
	EdgeFR
	EdgeBR
	EdgeBL
	EdgeDF
	EdgeDL
	EdgeDR
	EdgeDB
)

// IsSliceEdge reports whether edge e is one of the four UD-slice edges
// (FL, FR, BR, BL).
func IsSliceEdge(e uint8) bool {
	return e >= EdgeFL && e <= EdgeBL
}

// OppositeFace returns the face on the opposite side of the cube from f
// (U/D, R/L, F/B).
func OppositeFace(f Face) Face {
	return [...]Face{D, L, B, U, R, F}[f]
}

// Axis groups a face with its opposite: U/D, R/L, and F/B each share an
// axis. Moves on the same axis commute, so a search only needs to
// explore one relative ordering of any two consecutive axis-mates.
func Axis(f Face) int {
	return [...]int{0, 1, 2, 0, 1, 2}[f]
}

// State is the cubie-level representation of a cube: a permutation and
// an orientation for the 8 corners and the 12 edges. CP[i]/EP[i] names
// which original cubie currently sits in slot i; CO[i]/EO[i] gives its
// twist (corners mod 3) or flip (edges mod 2).
type State struct {
	CP [8]uint8
	CO [8]uint8
	EP [12]uint8
	EO [12]uint8
}

// Solved returns the identity state.
func Solved() State {
	s := State{}
	for i := range s.CP {
		s.CP[i] = uint8(i)
	}
	for i := range s.EP {
		s.EP[i] = uint8(i)
	}
	return s
}

// IsSolved reports whether s is the identity state.
func (s State) IsSolved() bool {
	return s == Solved()
}

// moveDef describes the effect of a single clockwise quarter turn of a
// face: a 4-cycle of corners and a 4-cycle of edges, plus the
// orientation deltas a piece picks up as it leaves each cycle position.
//
// Corner deltas follow the spec's rule for L/R/F/B ({+1,+2,+1,+2} mod 3
// around the cycle; U/D contribute no twist). Edge deltas implement "F
// and B flip all four edges they touch; the rest don't".
type moveDef struct {
	cornerCycle [4]uint8
	cornerDelta [4]uint8
	edgeCycle   [4]uint8
	edgeFlip    bool
}

var moveDefs = [6]moveDef{
	U: {
		cornerCycle: [4]uint8{CornerUFR, CornerUFL, CornerUBL, CornerUBR},
		cornerDelta: [4]uint8{0, 0, 0, 0},
		edgeCycle:   [4]uint8{EdgeUF, EdgeUL, EdgeUB, EdgeUR},
		edgeFlip:    false,
	},
	D: {
		cornerCycle: [4]uint8{CornerDFR, CornerDBR, CornerDBL, CornerDFL},
		cornerDelta: [4]uint8{0, 0, 0, 0},
		edgeCycle:   [4]uint8{EdgeDF, EdgeDR, EdgeDB, EdgeDL},
		edgeFlip:    false,
	},
	F: {
		cornerCycle: [4]uint8{CornerUFL, CornerUFR, CornerDFR, CornerDFL},
		cornerDelta: [4]uint8{1, 2, 1, 2},
		edgeCycle:   [4]uint8{EdgeUF, EdgeFR, EdgeDF, EdgeFL},
		edgeFlip:    true,
	},
	B: {
		cornerCycle: [4]uint8{CornerUBR, CornerUBL, CornerDBL, CornerDBR},
		cornerDelta: [4]uint8{1, 2, 1, 2},
		edgeCycle:   [4]uint8{EdgeUB, EdgeBL, EdgeDB, EdgeBR},
		edgeFlip:    true,
	},
	L: {
		cornerCycle: [4]uint8{CornerUBL, CornerUFL, CornerDFL, CornerDBL},
		cornerDelta: [4]uint8{1, 2, 1, 2},
		edgeCycle:   [4]uint8{EdgeUL, EdgeFL, EdgeDL, EdgeBL},
		edgeFlip:    false,
	},
	R: {
		cornerCycle: [4]uint8{CornerUFR, CornerUBR, CornerDBR, CornerDFR},
		cornerDelta: [4]uint8{1, 2, 1, 2},
		edgeCycle:   [4]uint8{EdgeUR, EdgeBR, EdgeDR, EdgeFR},
		edgeFlip:    false,
	},
}

func (s State) quarterTurn(f Face) State {
	md := moveDefs[f]
	next := s
	for i := 0; i < 4; i++ {
		src := md.cornerCycle[i]
		dst := md.cornerCycle[(i+1)%4]
		next.CP[dst] = s.CP[src]
		next.CO[dst] = (s.CO[src] + md.cornerDelta[i]) % 3
	}
	for i := 0; i < 4; i++ {
		src := md.edgeCycle[i]
		dst := md.edgeCycle[(i+1)%4]
		next.EP[dst] = s.EP[src]
		if md.edgeFlip {
			next.EO[dst] = s.EO[src] ^ 1
		} else {
			next.EO[dst] = s.EO[src]
		}
	}
	return next
}

// Rotate applies a single move to s and returns the resulting state. s
// is left unmodified.
func (s State) Rotate(m Move) State {
	out := s
	for i := uint8(0); i < m.Turns; i++ {
		out = out.quarterTurn(m.Face)
	}
	return out
}

// Apply rotates s through a sequence of moves in order.
func (s State) Apply(moves []Move) State {
	out := s
	for _, m := range moves {
		out = out.Rotate(m)
	}
	return out
}

// Compose returns the state reached by first reaching a from solved,
// then applying the transformation that takes solved to b. This is the
// standard cubie-level group multiplication; the move and pruning tables
// are built with Rotate, not with Compose.
func Compose(a, b State) State {
	var out State
	for i := 0; i < 8; i++ {
		out.CP[i] = a.CP[b.CP[i]]
		out.CO[i] = (a.CO[b.CP[i]] + b.CO[i]) % 3
	}
	for i := 0; i < 12; i++ {
		out.EP[i] = a.EP[b.EP[i]]
		out.EO[i] = (a.EO[b.EP[i]] + b.EO[i]) % 2
	}
	return out
}

// CornerOrientationZero reports whether every corner has zero twist.
func (s State) CornerOrientationZero() bool {
	for _, o := range s.CO {
		if o != 0 {
			return false
		}
	}
	return true
}

// EdgeOrientationZero reports whether every edge has zero flip.
func (s State) EdgeOrientationZero() bool {
	for _, o := range s.EO {
		if o != 0 {
			return false
		}
	}
	return true
}

// SliceEdgesPlaced reports whether the four UD-slice edges currently
// occupy the four UD-slice slots (FL, FR, BR, BL), in any order.
func (s State) SliceEdgesPlaced() bool {
	for i := EdgeFL; i <= EdgeBL; i++ {
		if !IsSliceEdge(s.EP[i]) {
			return false
		}
	}
	return true
}

// InPhase2Subgroup reports whether s satisfies all three phase-1 goal
// conditions at once: edges and corners untwisted, and the slice edges
// placed (not necessarily permuted correctly within their four slots).
func (s State) InPhase2Subgroup() bool {
	return s.CornerOrientationZero() && s.EdgeOrientationZero() && s.SliceEdgesPlaced()
}

// Coordinates bundles the six named coordinates used to index the
// pruning tables: three for phase 1 (orientation of corners and edges,
// placement of the slice edges) and three for phase 2 (corner
// permutation, plus the edge permutation split across the slice and
// the remaining eight).
type Coordinates struct {
	CornerOrientation int
	EdgeOrientation   int
	SlicePlacement    int
	CornerPermutation int
	EdgePermutation   int
	SlicePermutation  int
}

// ToCoordinates encodes s into the six coordinates the pruning tables
// are built and indexed on.
func (s State) ToCoordinates() Coordinates {
	return Coordinates{
		CornerOrientation: EncodeCornerOrientation(s),
		EdgeOrientation:   EncodeEdgeOrientation(s),
		SlicePlacement:    EncodeSlicePlacement(s),
		CornerPermutation: EncodeCornerPermutation(s),
		EdgePermutation:   EncodeEdgePermutation(s),
		SlicePermutation:  EncodeSlicePermutation(s),
	}
}

package cube

import (
	"fmt"

	"github.com/avidal/cubecore/internal/solver"
)

// This file bridges the facelet representation in this package to the
// cubie-level solver.State used by internal/solver. The solver package
// cannot import cube (cube needs to import solver for its Kociemba/KROF
// Solver implementations), so the conversion lives here instead, grounded
// on the Get3x3CornerMappings/Get3x3EdgeMappings piece layout defined in
// piece_mapping.go.
//
// cornerColorSets[i] and edgeColorSets[i] record, once at init time, the
// sticker colors a solved cube shows at corner/edge slot i, in the same
// Face1/Face2(/Face3) reading order as the mappings. A scanned cube
// identifies a piece by matching its observed color set against these
// tables; rendering a solver.State back to a Cube does the same lookup
// in reverse.
var (
	cornerColorSets [8][3]Color
	edgeColorSets   [12][2]Color
)

func init() {
	solved := NewCube(3)
	for i, m := range Get3x3CornerMappings() {
		cornerColorSets[i] = [3]Color{
			solved.Faces[m.Face1][m.Row1][m.Col1],
			solved.Faces[m.Face2][m.Row2][m.Col2],
			solved.Faces[m.Face3][m.Row3][m.Col3],
		}
	}
	for i, m := range Get3x3EdgeMappings() {
		edgeColorSets[i] = [2]Color{
			solved.Faces[m.Face1][m.Row1][m.Col1],
			solved.Faces[m.Face2][m.Row2][m.Col2],
		}
	}
}

func rotateCorner(t [3]Color, r int) [3]Color {
	var out [3]Color
	for i := range out {
		out[i] = t[(i+r)%3]
	}
	return out
}

func rotateEdge(t [2]Color, r int) [2]Color {
	if r == 0 {
		return t
	}
	return [2]Color{t[1], t[0]}
}

func identifyCorner(observed [3]Color) (identity uint8, orientation uint8, err error) {
	for j, ref := range cornerColorSets {
		for r := 0; r < 3; r++ {
			if rotateCorner(ref, r) == observed {
				return uint8(j), uint8(r), nil
			}
		}
	}
	return 0, 0, fmt.Errorf("%w: no corner piece has colors %v", solver.ErrMalformedCube, observed)
}

func identifyEdge(observed [2]Color) (identity uint8, orientation uint8, err error) {
	for j, ref := range edgeColorSets {
		for r := 0; r < 2; r++ {
			if rotateEdge(ref, r) == observed {
				return uint8(j), uint8(r), nil
			}
		}
	}
	return 0, 0, fmt.Errorf("%w: no edge piece has colors %v", solver.ErrMalformedCube, observed)
}

// StateFromCube reads the corner and edge pieces off a 3x3 facelet cube
// and returns the equivalent cubie-level solver.State. It rejects
// anything but a well-formed 3x3 cube: a color combination that matches
// no solved piece, or a piece that shows up in more than one slot, both
// indicate a facelet arrangement that can't correspond to any physical
// cube.
func StateFromCube(c *Cube) (solver.State, error) {
	if c.Size != 3 {
		return solver.State{}, fmt.Errorf("%w: solver requires a 3x3 cube, got %dx%d", solver.ErrMalformedCube, c.Size, c.Size)
	}

	var s solver.State
	var cornerSeen [8]bool
	for i, m := range Get3x3CornerMappings() {
		observed := [3]Color{
			c.Faces[m.Face1][m.Row1][m.Col1],
			c.Faces[m.Face2][m.Row2][m.Col2],
			c.Faces[m.Face3][m.Row3][m.Col3],
		}
		id, o, err := identifyCorner(observed)
		if err != nil {
			return solver.State{}, err
		}
		if cornerSeen[id] {
			return solver.State{}, fmt.Errorf("%w: corner piece %d appears more than once", solver.ErrMalformedCube, id)
		}
		cornerSeen[id] = true
		s.CP[i] = id
		s.CO[i] = o
	}

	var edgeSeen [12]bool
	for i, m := range Get3x3EdgeMappings() {
		observed := [2]Color{
			c.Faces[m.Face1][m.Row1][m.Col1],
			c.Faces[m.Face2][m.Row2][m.Col2],
		}
		id, o, err := identifyEdge(observed)
		if err != nil {
			return solver.State{}, err
		}
		if edgeSeen[id] {
			return solver.State{}, fmt.Errorf("%w: edge piece %d appears more than once", solver.ErrMalformedCube, id)
		}
		edgeSeen[id] = true
		s.EP[i] = id
		s.EO[i] = o
	}

	return s, nil
}

// CubeFromState renders a cubie-level solver.State back into a solved-
// center 3x3 facelet cube. It is the exact inverse of StateFromCube.
func CubeFromState(s solver.State) *Cube {
	c := NewCube(3)

	for i, m := range Get3x3CornerMappings() {
		colors := rotateCorner(cornerColorSets[s.CP[i]], int(s.CO[i]))
		c.Faces[m.Face1][m.Row1][m.Col1] = colors[0]
		c.Faces[m.Face2][m.Row2][m.Col2] = colors[1]
		c.Faces[m.Face3][m.Row3][m.Col3] = colors[2]
	}

	for i, m := range Get3x3EdgeMappings() {
		colors := rotateEdge(edgeColorSets[s.EP[i]], int(s.EO[i]))
		c.Faces[m.Face1][m.Row1][m.Col1] = colors[0]
		c.Faces[m.Face2][m.Row2][m.Col2] = colors[1]
	}

	return c
}

// solverToCubeFace translates between the two packages' face
// enumerations, which exist independently and don't share ordinal values.
var solverToCubeFace = map[solver.Face]Face{
	solver.U: Up,
	solver.R: Right,
	solver.F: Front,
	solver.D: Down,
	solver.L: Left,
	solver.B: Back,
}

// ToCubeMove converts a solver.Move into the notation-compatible cube.Move
// used by ApplyMove/ParseMove, so a solution can be replayed or displayed
// with the rest of this package's tooling.
func ToCubeMove(m solver.Move) Move {
	face := solverToCubeFace[m.Face]
	switch m.Turns {
	case 1:
		return Move{Face: face, Clockwise: true}
	case 2:
		return Move{Face: face, Double: true}
	case 3:
		return Move{Face: face, Clockwise: false}
	default:
		return Move{Face: face, Clockwise: true}
	}
}

// ToCubeMoves converts a full solver solution into cube.Move notation.
func ToCubeMoves(moves []solver.Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[i] = ToCubeMove(m)
	}
	return out
}

package solver

import (
	"encoding/binary"
	"fmt"
	"io"
)

// sentinelDepth marks "depth >= 15" in a packed nibble table: an
// admissible lower bound rather than a hard cap, since 4 bits cannot
// represent every exact depth this search ever sees.
const sentinelDepth = 0xF

// PackedTable stores one nibble (0-15) per coordinate, two coordinates
// per byte, low nibble first.
type PackedTable struct {
	Data []byte
	Size int
}

func newPackedTable(size int) *PackedTable {
	t := &PackedTable{Data: make([]byte, (size+1)/2), Size: size}
	for i := range t.Data {
		t.Data[i] = 0xFF
	}
	return t
}

// Get returns the nibble stored for coordinate i.
func (t *PackedTable) Get(i int) uint8 {
	b := t.Data[i/2]
	if i%2 == 0 {
		return b & 0x0F
	}
	return b >> 4
}

// Set stores a nibble (0-15) for coordinate i.
func (t *PackedTable) Set(i int, v uint8) {
	idx := i / 2
	if i%2 == 0 {
		t.Data[idx] = (t.Data[idx] & 0xF0) | (v & 0x0F)
	} else {
		t.Data[idx] = (t.Data[idx] & 0x0F) | (v << 4)
	}
}

// buildCoordDatabase runs a single-source BFS over a coordinate's move
// table, starting at the goal coordinate, recording admissible distances.
// It relies on the move set being closed under inversion (true for both
// AllMoves and Phase2Moves), so distance-from-goal under forward moves
// equals distance-to-goal for every coordinate.
func buildCoordDatabase(domain int, mt *MoveTable, goal int) *PackedTable {
	table := newPackedTable(domain)
	table.Set(goal, 0)
	frontier := []int{goal}
	depth := uint8(0)
	for len(frontier) > 0 && depth < sentinelDepth {
		depth++
		var next []int
		for _, c := range frontier {
			for _, nc := range mt.Next[c] {
				nci := int(nc)
				if table.Get(nci) == sentinelDepth {
					table.Set(nci, depth)
					next = append(next, nci)
				}
			}
		}
		frontier = next
	}
	return table
}

// productMoveTable combines two coordinate move tables sharing the
// same move list into a single table over the product domain, packing
// (a, b) as a*bDomain+b.
func productMoveTable(a *MoveTable, aDomain int, b *MoveTable, bDomain int) *MoveTable {
	moves := a.Moves
	domain := aDomain * bDomain
	next := make([][]uint16, domain)
	for ca := 0; ca < aDomain; ca++ {
		for cb := 0; cb < bDomain; cb++ {
			combined := ca*bDomain + cb
			row := make([]uint16, len(moves))
			for i := range moves {
				na := int(a.Next[ca][i])
				nb := int(b.Next[cb][i])
				row[i] = uint16(na*bDomain + nb)
			}
			next[combined] = row
		}
	}
	return &MoveTable{Next: next, Moves: moves}
}

// buildStateDatabase runs a single-source BFS directly over full
// States (rather than a precomputed coordinate move table), used for
// the KROF pattern databases whose domains are too large to
// materialize a move table for. Relies on the same inverse-closure
// property as buildCoordDatabase.
func buildStateDatabase(domain int, seed State, moves []Move, encode func(State) int) *PackedTable {
	table := newPackedTable(domain)
	seedCode := encode(seed)
	table.Set(seedCode, 0)
	frontier := []State{seed}
	depth := uint8(0)
	for len(frontier) > 0 && depth < sentinelDepth {
		depth++
		var next []State
		for _, s := range frontier {
			for _, m := range moves {
				ns := s.Rotate(m)
				code := encode(ns)
				if table.Get(code) == sentinelDepth {
					table.Set(code, depth)
					next = append(next, ns)
				}
			}
		}
		frontier = next
	}
	return table
}

// PruningTables bundles every table a solver needs, built once and
// either kept in memory or persisted to disk.
type PruningTables struct {
	// Phase 1 (Kociemba): reduce to the ⟨U,D,L2,R2,F2,B2⟩ subgroup.
	CornerOrientation *PackedTable
	EdgeOrientSlice   *PackedTable // product of (edge orientation, slice placement)

	// Phase 2 (Kociemba): solve within the subgroup.
	CornerPermSlice *PackedTable // product of (corner permutation, slice permutation)
	EdgePermSlice   *PackedTable // product of (edge permutation, slice permutation)

	// KROF: single-phase pattern databases.
	CornerFull *PackedTable
	EdgeFirst6 *PackedTable
	EdgeLast6  *PackedTable
}

// BuildPhase1Tables constructs the two phase-1 pruning tables.
func BuildPhase1Tables() (*PackedTable, *PackedTable) {
	all := AllMoves()
	coTable := CornerOrientationTable(all)
	co := buildCoordDatabase(CornerOrientationCount, coTable, EncodeCornerOrientation(Solved()))

	eoTable := EdgeOrientationTable(all)
	sliceTable := SlicePlacementTable(all)
	product := productMoveTable(eoTable, EdgeOrientationCount, sliceTable, SlicePlacementCount)
	eoSliceGoal := EncodeEdgeOrientation(Solved())*SlicePlacementCount + EncodeSlicePlacement(Solved())
	eoSlice := buildCoordDatabase(EdgeOrientationCount*SlicePlacementCount, product, eoSliceGoal)

	return co, eoSlice
}

// BuildPhase2Tables constructs the two phase-2 pruning tables.
func BuildPhase2Tables() (*PackedTable, *PackedTable) {
	p2 := Phase2Moves()
	cpTable := CornerPermutationTable(p2)
	spTable := SlicePermutationTable(p2)
	cpProduct := productMoveTable(cpTable, CornerPermutationCount, spTable, Phase2SlicePermutationCount)
	cpGoal := EncodeCornerPermutation(Solved())*Phase2SlicePermutationCount + EncodeSlicePermutation(Solved())
	cornerPermSlice := buildCoordDatabase(CornerPermutationCount*Phase2SlicePermutationCount, cpProduct, cpGoal)

	epTable := EdgePermutationTable(p2)
	epProduct := productMoveTable(epTable, Phase2EdgePermutationCount, spTable, Phase2SlicePermutationCount)
	epGoal := EncodeEdgePermutation(Solved())*Phase2SlicePermutationCount + EncodeSlicePermutation(Solved())
	edgePermSlice := buildCoordDatabase(Phase2EdgePermutationCount*Phase2SlicePermutationCount, epProduct, epGoal)

	return cornerPermSlice, edgePermSlice
}

// BuildKrofTables constructs the three KROF pattern databases. This is
// the expensive part of table generation: the edge databases alone
// cover tens of millions of coordinates.
func BuildKrofTables() (corner, first6, last6 *PackedTable) {
	all := AllMoves()
	seed := Solved()
	corner = buildStateDatabase(CornerFullCount, seed, all, EncodeCornerFull)
	first6 = buildStateDatabase(EdgeHalfCount, seed, all, func(s State) int { return EncodeEdgeHalf(s, FirstSixEdges) })
	last6 = buildStateDatabase(EdgeHalfCount, seed, all, func(s State) int { return EncodeEdgeHalf(s, LastSixEdges) })
	return corner, first6, last6
}

// BuildAll constructs every pruning table needed by both solvers.
func BuildAll() *PruningTables {
	co, eoSlice := BuildPhase1Tables()
	cpSlice, epSlice := BuildPhase2Tables()
	cornerFull, first6, last6 := BuildKrofTables()
	return &PruningTables{
		CornerOrientation: co,
		EdgeOrientSlice:   eoSlice,
		CornerPermSlice:   cpSlice,
		EdgePermSlice:     epSlice,
		CornerFull:        cornerFull,
		EdgeFirst6:        first6,
		EdgeLast6:         last6,
	}
}

// Persistence format: an 8-byte magic, a 4-byte little-endian version,
// a 4-byte little-endian table count, then that many records of
// (4-byte length, 4-byte coordinate-product identifier, ceil(length/2)
// nibble bytes, low nibble first).
const (
	magicKociemba = "KOCIEMB\x00"
	magicKrof     = "KROFTBL\x00"
	tableVersion  = uint32(1)
)

// Table identifiers used by the persistence format, stable across
// versions so a saved file can be re-associated with the right field
// on load regardless of struct layout changes.
const (
	idCornerOrientation uint32 = iota + 1
	idEdgeOrientSlice
	idCornerPermSlice
	idEdgePermSlice
	idCornerFull
	idEdgeFirst6
	idEdgeLast6
)

type tableRecord struct {
	id    uint32
	table *PackedTable
}

func writeRecord(w io.Writer, rec tableRecord) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(rec.table.Size)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, rec.id); err != nil {
		return err
	}
	_, err := w.Write(rec.table.Data)
	return err
}

func readRecord(r io.Reader) (tableRecord, error) {
	var length, id uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return tableRecord{}, err
	}
	if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
		return tableRecord{}, err
	}
	table := newPackedTable(int(length))
	if _, err := io.ReadFull(r, table.Data); err != nil {
		return tableRecord{}, err
	}
	return tableRecord{id: id, table: table}, nil
}

// Save writes the tables of one kind in pt to w as a single block:
// magic, version, record count, then the records. Kind selects the
// magic bytes and the tables ("kociemba" or "krof"). Load reads one such
// block, so each kind's tables go in a file of their own.
func (pt *PruningTables) Save(w io.Writer, kind string) error {
	var magic string
	var records []tableRecord
	switch kind {
	case "kociemba":
		magic = magicKociemba
		records = []tableRecord{
			{idCornerOrientation, pt.CornerOrientation},
			{idEdgeOrientSlice, pt.EdgeOrientSlice},
			{idCornerPermSlice, pt.CornerPermSlice},
			{idEdgePermSlice, pt.EdgePermSlice},
		}
	case "krof":
		magic = magicKrof
		records = []tableRecord{
			{idCornerFull, pt.CornerFull},
			{idEdgeFirst6, pt.EdgeFirst6},
			{idEdgeLast6, pt.EdgeLast6},
		}
	default:
		return fmt.Errorf("%w: unknown table kind %q", ErrInvalidConfig, kind)
	}

	if _, err := io.WriteString(w, magic); err != nil {
		return fmt.Errorf("%w: %v", ErrTableSave, err)
	}
	if err := binary.Write(w, binary.LittleEndian, tableVersion); err != nil {
		return fmt.Errorf("%w: %v", ErrTableSave, err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(records))); err != nil {
		return fmt.Errorf("%w: %v", ErrTableSave, err)
	}
	for _, rec := range records {
		if err := writeRecord(w, rec); err != nil {
			return fmt.Errorf("%w: %v", ErrTableSave, err)
		}
	}
	return nil
}

// TableHeader is the metadata decoded from a table file's header: which
// solver it belongs to, the format version, and the coordinate-domain
// size of each record, without touching the packed nibble data itself.
type TableHeader struct {
	Kind        string
	Version     uint32
	RecordSizes []int
}

// PeekTableHeader reads the magic, version, and per-record lengths from
// r, skipping over (not decoding) the nibble blobs. It is cheap even
// for the KROF pattern databases (about 87 MB together), since it never
// materializes a PackedTable.
func PeekTableHeader(r io.Reader) (TableHeader, error) {
	magicBuf := make([]byte, 8)
	if _, err := io.ReadFull(r, magicBuf); err != nil {
		return TableHeader{}, fmt.Errorf("%w: %v", ErrTableLoad, err)
	}
	var kind string
	switch string(magicBuf) {
	case magicKociemba:
		kind = "kociemba"
	case magicKrof:
		kind = "krof"
	default:
		return TableHeader{}, fmt.Errorf("%w: bad magic %q", ErrTableLoad, magicBuf)
	}

	var version, count uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return TableHeader{}, fmt.Errorf("%w: %v", ErrTableLoad, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return TableHeader{}, fmt.Errorf("%w: %v", ErrTableLoad, err)
	}

	sizes := make([]int, 0, count)
	for i := uint32(0); i < count; i++ {
		var length, id uint32
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return TableHeader{}, fmt.Errorf("%w: record %d: %v", ErrTableLoad, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return TableHeader{}, fmt.Errorf("%w: record %d: %v", ErrTableLoad, i, err)
		}
		packedBytes := int64((length + 1) / 2)
		if seeker, ok := r.(io.Seeker); ok {
			if _, err := seeker.Seek(packedBytes, io.SeekCurrent); err != nil {
				return TableHeader{}, fmt.Errorf("%w: record %d: %v", ErrTableLoad, i, err)
			}
		} else if _, err := io.CopyN(io.Discard, r, packedBytes); err != nil {
			return TableHeader{}, fmt.Errorf("%w: record %d: %v", ErrTableLoad, i, err)
		}
		sizes = append(sizes, int(length))
	}
	return TableHeader{Kind: kind, Version: version, RecordSizes: sizes}, nil
}

// Load reads tables previously written by Save into pt, merging them
// into whichever fields their identifiers match. Unknown identifiers
// are skipped so newer files remain loadable by older binaries within
// the same major version.
func (pt *PruningTables) Load(r io.Reader) error {
	magicBuf := make([]byte, 8)
	if _, err := io.ReadFull(r, magicBuf); err != nil {
		return fmt.Errorf("%w: %v", ErrTableLoad, err)
	}
	magic := string(magicBuf)
	if magic != magicKociemba && magic != magicKrof {
		return fmt.Errorf("%w: bad magic %q", ErrTableLoad, magic)
	}

	var version, count uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("%w: %v", ErrTableLoad, err)
	}
	if version != tableVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrTableLoad, version)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("%w: %v", ErrTableLoad, err)
	}

	for i := uint32(0); i < count; i++ {
		rec, err := readRecord(r)
		if err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrTableLoad, i, err)
		}
		switch rec.id {
		case idCornerOrientation:
			pt.CornerOrientation = rec.table
		case idEdgeOrientSlice:
			pt.EdgeOrientSlice = rec.table
		case idCornerPermSlice:
			pt.CornerPermSlice = rec.table
		case idEdgePermSlice:
			pt.EdgePermSlice = rec.table
		case idCornerFull:
			pt.CornerFull = rec.table
		case idEdgeFirst6:
			pt.EdgeFirst6 = rec.table
		case idEdgeLast6:
			pt.EdgeLast6 = rec.table
		}
	}
	return nil
}

// Phase1Heuristic returns an admissible lower bound on the number of
// moves remaining to reach the phase-1 goal subgroup.
func (pt *PruningTables) Phase1Heuristic(s State) uint8 {
	co := pt.CornerOrientation.Get(EncodeCornerOrientation(s))
	eoSlice := pt.EdgeOrientSlice.Get(EncodeEdgeOrientation(s)*SlicePlacementCount + EncodeSlicePlacement(s))
	if co > eoSlice {
		return co
	}
	return eoSlice
}

// Phase2Heuristic returns an admissible lower bound on the number of
// phase-2 moves remaining to reach the solved state, given a state
// already inside the phase-1 subgroup.
func (pt *PruningTables) Phase2Heuristic(s State) uint8 {
	sp := EncodeSlicePermutation(s)
	cp := pt.CornerPermSlice.Get(EncodeCornerPermutation(s)*Phase2SlicePermutationCount + sp)
	ep := pt.EdgePermSlice.Get(EncodeEdgePermutation(s)*Phase2SlicePermutationCount + sp)
	if cp > ep {
		return cp
	}
	return ep
}

// KrofHeuristic returns an admissible lower bound on the number of
// moves remaining to the solved state, as the max of the three
// independent pattern databases.
func (pt *PruningTables) KrofHeuristic(s State) uint8 {
	c := pt.CornerFull.Get(EncodeCornerFull(s))
	e1 := pt.EdgeFirst6.Get(EncodeEdgeHalf(s, FirstSixEdges))
	e2 := pt.EdgeLast6.Get(EncodeEdgeHalf(s, LastSixEdges))
	m := c
	if e1 > m {
		m = e1
	}
	if e2 > m {
		m = e2
	}
	return m
}

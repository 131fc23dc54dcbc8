package solver

import (
	"bytes"
	"testing"
)

func TestPackedTableGetSetRoundTrip(t *testing.T) {
	table := newPackedTable(10)
	for i := 0; i < 10; i++ {
		if table.Get(i) != sentinelDepth {
			t.Fatalf("fresh table index %d = %d, want sentinel", i, table.Get(i))
		}
	}
	for i := 0; i < 10; i++ {
		table.Set(i, uint8(i%8))
	}
	for i := 0; i < 10; i++ {
		if got := table.Get(i); got != uint8(i%8) {
			t.Errorf("table.Get(%d) = %d, want %d", i, got, i%8)
		}
	}
}

func TestBuildCoordDatabaseZeroAtGoal(t *testing.T) {
	table := CornerOrientationTable(AllMoves())
	db := buildCoordDatabase(CornerOrientationCount, table, 0)
	if db.Get(0) != 0 {
		t.Fatalf("corner orientation database distance at goal = %d, want 0", db.Get(0))
	}
	// Every reachable coordinate should have a finite (non-sentinel)
	// distance, since all 18 moves are available and the orientation
	// group is small enough to fully explore well under 15 moves.
	for c := 0; c < CornerOrientationCount; c++ {
		if db.Get(c) == sentinelDepth {
			t.Fatalf("coordinate %d unreached in corner orientation database", c)
		}
	}
}

func TestPhase1HeuristicZeroAtSolved(t *testing.T) {
	co, eoSlice := BuildPhase1Tables()
	tables := &PruningTables{CornerOrientation: co, EdgeOrientSlice: eoSlice}
	if h := tables.Phase1Heuristic(Solved()); h != 0 {
		t.Fatalf("Phase1Heuristic(Solved()) = %d, want 0", h)
	}
}

func TestPhase1HeuristicAdmissibleAfterOneMove(t *testing.T) {
	co, eoSlice := BuildPhase1Tables()
	tables := &PruningTables{CornerOrientation: co, EdgeOrientSlice: eoSlice}
	s := Solved().Rotate(Move{Face: R, Turns: 1})
	if h := tables.Phase1Heuristic(s); h > 1 {
		t.Fatalf("Phase1Heuristic after a single move = %d, should be an admissible (<=1) lower bound", h)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	co, eoSlice := BuildPhase1Tables()
	cpSlice, epSlice := BuildPhase2Tables()
	original := &PruningTables{
		CornerOrientation: co,
		EdgeOrientSlice:   eoSlice,
		CornerPermSlice:   cpSlice,
		EdgePermSlice:     epSlice,
	}

	buf := &bytes.Buffer{}
	if err := original.Save(buf, "kociemba"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := &PruningTables{}
	if err := loaded.Load(buf); err != nil {
		t.Fatalf("Load: %v", err)
	}

	for i := 0; i < CornerOrientationCount; i++ {
		if loaded.CornerOrientation.Get(i) != original.CornerOrientation.Get(i) {
			t.Fatalf("corner orientation mismatch at %d", i)
		}
	}
}

func TestKrofTablesOnlyInFullSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("KROF pattern databases cover tens of millions of coordinates; skip under -short")
	}
	corner, first6, last6 := BuildKrofTables()
	if corner.Get(EncodeCornerFull(Solved())) != 0 {
		t.Fatal("corner pattern database distance at solved should be 0")
	}
	if first6.Get(EncodeEdgeHalf(Solved(), FirstSixEdges)) != 0 {
		t.Fatal("first-six edge pattern database distance at solved should be 0")
	}
	if last6.Get(EncodeEdgeHalf(Solved(), LastSixEdges)) != 0 {
		t.Fatal("last-six edge pattern database distance at solved should be 0")
	}
}

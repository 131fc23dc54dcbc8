package cube

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/avidal/cubecore/internal/solver"
)

// TableKind identifies one of the two persisted pruning-table sets.
type TableKind string

const (
	KociembaTables TableKind = "kociemba"
	KrofTables     TableKind = "krof"
)

// TablesDir returns the directory pruning tables are read from and
// written to. CUBECORE_TABLES_DIR overrides the default, which lives
// under the user's cache directory so a normal install never needs to
// write next to the binary.
func TablesDir() string {
	if dir := os.Getenv("CUBECORE_TABLES_DIR"); dir != "" {
		return dir
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = "."
	}
	return filepath.Join(cacheDir, "cubecore")
}

func tablePath(kind TableKind) string {
	return filepath.Join(TablesDir(), string(kind)+".tbl")
}

var (
	tableMu      sync.Mutex
	loadedTables = map[TableKind]*solver.PruningTables{}
)

// BuildTables computes the pruning tables for kind from scratch, writes
// them to disk, and caches them in memory. This is the expensive path:
// for KrofTables it runs a breadth-first search over tens of millions
// of states.
func BuildTables(kind TableKind) (*solver.PruningTables, error) {
	tables := &solver.PruningTables{}
	switch kind {
	case KociembaTables:
		co, eoSlice := solver.BuildPhase1Tables()
		cpSlice, epSlice := solver.BuildPhase2Tables()
		tables.CornerOrientation = co
		tables.EdgeOrientSlice = eoSlice
		tables.CornerPermSlice = cpSlice
		tables.EdgePermSlice = epSlice
	case KrofTables:
		corner, first6, last6 := solver.BuildKrofTables()
		tables.CornerFull = corner
		tables.EdgeFirst6 = first6
		tables.EdgeLast6 = last6
	default:
		return nil, fmt.Errorf("%w: unknown table kind %q", solver.ErrInvalidConfig, kind)
	}

	if err := os.MkdirAll(TablesDir(), 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating tables directory: %v", solver.ErrTableSave, err)
	}
	f, err := os.Create(tablePath(kind))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", solver.ErrTableSave, err)
	}
	defer f.Close()
	if err := tables.Save(f, string(kind)); err != nil {
		return nil, err
	}

	tableMu.Lock()
	loadedTables[kind] = tables
	tableMu.Unlock()
	return tables, nil
}

// LoadOrBuildTables returns the in-memory pruning tables for kind,
// loading them from disk on first use (or building and persisting them
// if no table file exists yet). Subsequent calls for the same kind
// return the cached copy.
func LoadOrBuildTables(kind TableKind) (*solver.PruningTables, error) {
	tableMu.Lock()
	if t, ok := loadedTables[kind]; ok {
		tableMu.Unlock()
		return t, nil
	}
	tableMu.Unlock()

	f, err := os.Open(tablePath(kind))
	if err != nil {
		if os.IsNotExist(err) {
			return BuildTables(kind)
		}
		return nil, fmt.Errorf("%w: %v", solver.ErrTableLoad, err)
	}
	defer f.Close()

	tables := &solver.PruningTables{}
	if err := tables.Load(f); err != nil {
		return nil, err
	}

	tableMu.Lock()
	loadedTables[kind] = tables
	tableMu.Unlock()
	return tables, nil
}

// TableInfo summarizes a persisted table set, for the `cube tables info`
// command and the /api/tables/status endpoint.
type TableInfo struct {
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Present bool   `json:"present"`
	Bytes   int64  `json:"bytes"`
}

// TableStatus reports what table files currently exist on disk, without
// loading or building anything.
func TableStatus() []TableInfo {
	kinds := []TableKind{KociembaTables, KrofTables}
	infos := make([]TableInfo, len(kinds))
	for i, kind := range kinds {
		path := tablePath(kind)
		info := TableInfo{Kind: string(kind), Path: path}
		if stat, err := os.Stat(path); err == nil {
			info.Present = true
			info.Bytes = stat.Size()
		}
		infos[i] = info
	}
	return infos
}

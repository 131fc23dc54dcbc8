package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/avidal/cubecore/internal/cube"
	"github.com/avidal/cubecore/internal/solver"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Manage Kociemba/KROF pruning tables",
	Long: `Build or inspect the pruning tables the Kociemba and KROF solvers
need. Tables are cached under a per-user directory (see CUBECORE_TABLES_DIR)
and built automatically on first solve if missing; this command lets you
build them ahead of time instead of paying that cost on the first solve.`,
}

var tablesBuildCmd = &cobra.Command{
	Use:   "build [kociemba|krof|all]",
	Short: "Build and persist pruning tables",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := "all"
		if len(args) == 1 {
			target = args[0]
		}

		kinds, err := tableKindsFor(target)
		if err != nil {
			fmt.Println(err)
			return
		}

		for _, kind := range kinds {
			fmt.Printf("Building %s tables...\n", kind)
			start := time.Now()
			if _, err := cube.BuildTables(kind); err != nil {
				fmt.Printf("Error building %s tables: %v\n", kind, err)
				return
			}
			fmt.Printf("Built %s tables in %v\n", kind, time.Since(start))
		}
	},
}

var tablesInfoCmd = &cobra.Command{
	Use:   "info [path]",
	Short: "Show which pruning tables are built and where, or decode a table file's header",
	Long: `With no argument, report presence and size of the well-known cached
table files. Given a path, read just that file's header (magic, version, and
per-record coordinate-domain sizes) without decoding the packed nibble data.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				fmt.Printf("Error opening %s: %v\n", path, err)
				return
			}
			defer f.Close()

			header, err := solver.PeekTableHeader(f)
			if err != nil {
				fmt.Printf("Error reading header of %s: %v\n", path, err)
				return
			}
			fmt.Printf("path:    %s\n", path)
			fmt.Printf("kind:    %s\n", header.Kind)
			fmt.Printf("version: %d\n", header.Version)
			fmt.Printf("records: %d\n", len(header.RecordSizes))
			for i, size := range header.RecordSizes {
				fmt.Printf("  [%d] %d coordinates (%d bytes packed)\n", i, size, (size+1)/2)
			}
			return
		}

		for _, info := range cube.TableStatus() {
			status := "missing"
			if info.Present {
				status = fmt.Sprintf("%d bytes", info.Bytes)
			}
			fmt.Printf("%-10s %-10s %s\n", info.Kind, status, info.Path)
		}
	},
}

func tableKindsFor(target string) ([]cube.TableKind, error) {
	switch target {
	case "kociemba":
		return []cube.TableKind{cube.KociembaTables}, nil
	case "krof":
		return []cube.TableKind{cube.KrofTables}, nil
	case "all":
		return []cube.TableKind{cube.KociembaTables, cube.KrofTables}, nil
	default:
		return nil, fmt.Errorf("unknown table target %q (want kociemba, krof, or all)", target)
	}
}

func init() {
	tablesCmd.AddCommand(tablesBuildCmd)
	tablesCmd.AddCommand(tablesInfoCmd)
	rootCmd.AddCommand(tablesCmd)
}

// Package runs implements the run-history CLI commands.
package runs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	dbpkg "github.com/nwillems/confluence-lifecycle/pkg/db"
)

// ListAction prints the most recent recorded runs.
func ListAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	limit := c.Int("limit")
	runs, err := database.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-20s %-10s %-7s %-7s %-7s %-7s %-6s %-10s\n",
		"ID", "Created", "Space", "Pages", "Fresh", "Stale", "Rotten", "Errors", "Mode")
	fmt.Println(strings.Repeat("-", 90))

	for _, r := range runs {
		mode := "apply"
		if r.ReadOnly {
			mode = "read-only"
		}
		fmt.Printf("%-6d %-20s %-10s %-7d %-7d %-7d %-7d %-6d %-10s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Space,
			r.TotalPages(),
			r.Fresh.Total,
			r.Stale.Total,
			r.Rotten.Total,
			r.Errors,
			mode,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'confluence-lifecycle runs show <id>' to see details\n")

	return nil
}

// ShowAction prints the full tallies for one run, defaulting to the latest.
func ShowAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := runIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRunByID(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	mode := "apply"
	if run.ReadOnly {
		mode = "read-only"
	}

	fmt.Printf("Run %d\n", run.RunID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:   %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Space:     %s\n", run.Space)
	fmt.Printf("Mode:      %s\n", mode)
	fmt.Printf("Pages:     %d total (%d errors)\n", run.TotalPages(), run.Errors)
	fmt.Printf("Duration:  %v\n", run.Duration)

	fmt.Println()
	fmt.Printf("%-8s %-7s %-8s %-10s\n", "Phase", "Total", "Changed", "Suppressed")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("%-8s %-7d %-8d %-10d\n", "fresh", run.Fresh.Total, run.Fresh.Changed, run.Fresh.Suppressed)
	fmt.Printf("%-8s %-7d %-8d %-10d\n", "stale", run.Stale.Total, run.Stale.Changed, run.Stale.Suppressed)
	fmt.Printf("%-8s %-7d %-8d %-10d\n", "rotten", run.Rotten.Total, run.Rotten.Changed, run.Rotten.Suppressed)

	return nil
}

// runIDOrLatest resolves the run ID argument, falling back to the most
// recent run when none is given.
func runIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.NArg() >= 1 {
		runID, err := strconv.ParseInt(c.Args().First(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid run ID %q: %w", c.Args().First(), err)
		}
		return runID, nil
	}

	runID, err := database.LatestRunID()
	if err != nil {
		return 0, fmt.Errorf("no runs recorded yet: %w", err)
	}
	return runID, nil
}

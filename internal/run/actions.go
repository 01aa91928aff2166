// Package run implements the lifecycle run command: discovery,
// classification, reconciliation, and reporting over a whole space.
package run

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/nwillems/confluence-lifecycle/internal/common"
	"github.com/nwillems/confluence-lifecycle/models"
	"github.com/nwillems/confluence-lifecycle/pkg/confluence"
	"github.com/nwillems/confluence-lifecycle/pkg/db"
	"github.com/nwillems/confluence-lifecycle/pkg/lifecycle"
	"github.com/nwillems/confluence-lifecycle/pkg/report"
)

// reconcileOrder fixes the sequence in which phase buckets are processed.
var reconcileOrder = []models.Phase{models.PhaseRotten, models.PhaseStale, models.PhaseFresh}

func RunAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	config, err := BuildConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: invalid configuration: %v", err), 2)
	}

	return Execute(c.Context, logger, config, !c.Bool("no-history"))
}

// Execute performs one full lifecycle run with an already validated
// configuration.
func Execute(ctx context.Context, logger *slog.Logger, config *models.Config, recordHistory bool) error {
	startTime := time.Now()

	client := confluence.NewClient(config.Host, config.Username, config.Password, config.Cloud)

	logger.Info("Starting lifecycle run",
		"host", config.Host,
		"space", config.Space,
		"max_pages", config.MaxPages,
		"stale_days", config.StaleDays,
		"rotten_days", config.RottenDays,
		"read_only", config.ReadOnly,
	)

	pages, err := lifecycle.DiscoverPages(ctx, client, config.Space, config.MaxPages, config.PageLimit)
	if err != nil {
		return fmt.Errorf("failed to discover pages: %w", err)
	}
	logger.Info("Discovered pages", "count", len(pages))

	if err := inspectLabels(ctx, logger, client, pages); err != nil {
		return err
	}

	classifier := &lifecycle.Classifier{
		Store:      client,
		StaleDays:  config.StaleDays,
		RottenDays: config.RottenDays,
	}
	results := classifyAll(ctx, logger, classifier, pages, config.Workers)
	logger.Info("All classification workers finished")

	stats := models.RunStats{
		Space:     config.Space,
		StartedAt: startTime,
		ReadOnly:  config.ReadOnly,
	}

	buckets := make(map[models.Phase][]*models.PageState)
	for _, r := range results {
		if r.err != nil {
			if config.Strict {
				return fmt.Errorf("failed to classify page %s: %w", r.page.ID, r.err)
			}
			stats.Errors++
			continue
		}
		stats.Tally(r.state.Phase).Total++
		buckets[r.state.Phase] = append(buckets[r.state.Phase], r.state)
	}
	logger.Info("Classified pages",
		"fresh", stats.Fresh.Total,
		"stale", stats.Stale.Total,
		"rotten", stats.Rotten.Total,
		"errors", stats.Errors,
	)

	if !config.ReadOnly {
		reconcileAll(ctx, logger, client, config, buckets, &stats)
	}

	stats.Duration = time.Since(startTime)

	printSummary(&stats)

	if !config.ReadOnly && config.UpdateReport {
		publisher := &report.Publisher{Store: client, Logger: logger}
		if err := publisher.Publish(ctx, config.ReportPageID, config.ReportTitle, &stats); err != nil {
			return fmt.Errorf("failed to update report page: %w", err)
		}
		fmt.Printf("Updated the lifecycle report page at ID %s\n", config.ReportPageID)
	}

	if recordHistory {
		recordRun(logger, &stats)
	}

	return nil
}

// inspectLabels makes the sequential label pass over every discovered page.
// The reconciler fetches labels again before mutating; this pass surfaces
// the current state up front and feeds the debug output.
func inspectLabels(ctx context.Context, logger *slog.Logger, client *confluence.Client, pages []models.PageSummary) error {
	unlabelled := 0
	for _, page := range pages {
		labels, err := client.GetLabels(ctx, page.ID)
		if err != nil {
			return fmt.Errorf("failed to inspect labels for page %s: %w", page.ID, err)
		}

		if labels == nil {
			unlabelled++
			logger.Debug("Page has no labels", "page_id", page.ID)
			continue
		}
		logger.Debug("Page labels", "page_id", page.ID, "labels", labels)
	}

	logger.Info("Inspected labels", "pages", len(pages), "unlabelled", unlabelled)
	return nil
}

// reconcileAll processes the phase buckets sequentially. Reconciliation
// mutates each page's label set with no transactional guarantee from the
// API, so the calls are serialized.
func reconcileAll(ctx context.Context, logger *slog.Logger, client *confluence.Client, config *models.Config, buckets map[models.Phase][]*models.PageState, stats *models.RunStats) {
	reconciler := &lifecycle.Reconciler{
		Store:  client,
		Labels: config.Labels,
		Logger: logger,
	}

	for _, phase := range reconcileOrder {
		desired := config.Labels.For(phase)
		tally := stats.Tally(phase)

		for _, state := range buckets[phase] {
			outcome, err := reconciler.Reconcile(ctx, state.PageID, desired)
			if err != nil {
				logger.Error("Error reconciling page", "page_id", state.PageID, "error", err)
				stats.Errors++
				continue
			}

			if outcome.Changed {
				tally.Changed++
			}
			if outcome.Suppressed {
				tally.Suppressed++
				if !outcome.Until.IsZero() {
					logger.Debug("Page ignored until", "page_id", state.PageID, "until", outcome.Until.Format("2006-01-02"))
				}
			}
		}
	}
}

func printSummary(stats *models.RunStats) {
	fmt.Println()
	fmt.Println("=== Lifecycle Run Complete ===")
	if stats.ReadOnly {
		fmt.Println("Read-only mode enabled, so no labels were applied")
	}
	fmt.Printf("Fresh:    %d total, %d changed, %d suppressed\n", stats.Fresh.Total, stats.Fresh.Changed, stats.Fresh.Suppressed)
	fmt.Printf("Stale:    %d total, %d changed, %d suppressed\n", stats.Stale.Total, stats.Stale.Changed, stats.Stale.Suppressed)
	fmt.Printf("Rotten:   %d total, %d changed, %d suppressed\n", stats.Rotten.Total, stats.Rotten.Changed, stats.Rotten.Suppressed)
	fmt.Printf("Total:    %d pages\n", stats.TotalPages())
	fmt.Printf("Errors:   %d\n", stats.Errors)
	fmt.Printf("Duration: %v\n", stats.Duration.Round(time.Millisecond))
}

// recordRun persists the run outcome to the local history database. History
// is best effort and never fails the run.
func recordRun(logger *slog.Logger, stats *models.RunStats) {
	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open run history database", "error", err)
		return
	}
	defer database.Close()

	runID, err := database.RecordRun(stats)
	if err != nil {
		logger.Error("failed to record run", "error", err)
		return
	}

	logger.Info("Recorded run", "run_id", runID)
}

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nwillems/confluence-lifecycle/internal/inspect"
	"github.com/nwillems/confluence-lifecycle/internal/run"
	"github.com/nwillems/confluence-lifecycle/internal/runs"
	"github.com/nwillems/confluence-lifecycle/models"
)

func main() {
	app := &cli.App{
		Name:  "confluence-lifecycle",
		Usage: "Label Confluence pages fresh/stale/rotten from last-edit recency",
		Commands: []*cli.Command{
			runCommand(),
			pageCommand(),
			runsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// connectionFlags are shared by every command that talks to the API.
func connectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "host", Aliases: []string{"H"}, Usage: "The Atlassian URL/hostname to authenticate to"},
		&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "The Atlassian user to authenticate as"},
		&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "The Atlassian password or API token (falls back to CONFLUENCE_TOKEN)"},
		&cli.BoolFlag{Name: "cloud", Aliases: []string{"c"}, Value: true, Usage: "Whether the Atlassian instance is Cloud based"},
	}
}

func verbosityFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "Enable debugging output"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Only log errors"},
	}
}

func thresholdFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "stale", Aliases: []string{"S"}, Value: 90, Usage: "Number of days passed until a page is considered stale"},
		&cli.IntFlag{Name: "rotten", Aliases: []string{"R"}, Value: 180, Usage: "Number of days passed until a page is considered rotten"},
	}
}

func runCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "Path to a YAML config file; flags override its values"},
		&cli.StringFlag{Name: "space", Aliases: []string{"s"}, Usage: "The space inside of the Confluence account"},
		&cli.IntFlag{Name: "max-pages", Aliases: []string{"m"}, Value: 2500, Usage: "The maximum number of pages to process"},
		&cli.IntFlag{Name: "limit", Value: 500, Usage: "The maximum number of pages to request in each API call"},
		&cli.StringFlag{Name: "fresh-label", Value: models.DefaultFreshLabel, Usage: "The label for a fresh page"},
		&cli.StringFlag{Name: "stale-label", Value: models.DefaultStaleLabel, Usage: "The label for a stale page"},
		&cli.StringFlag{Name: "rotten-label", Value: models.DefaultRottenLabel, Usage: "The label for a rotten page"},
		&cli.IntFlag{Name: "workers", Value: 15, Usage: "Number of concurrent classification workers"},
		&cli.BoolFlag{Name: "read-only", Aliases: []string{"r"}, Usage: "Don't apply labels, just classify and report stats"},
		&cli.BoolFlag{Name: "strict", Usage: "Abort the whole run if any single page fails to classify"},
		&cli.BoolFlag{Name: "update-report", Aliases: []string{"U"}, Usage: "Update the lifecycle report page in Confluence"},
		&cli.StringFlag{Name: "report-page", Aliases: []string{"I"}, Usage: "The lifecycle report page ID"},
		&cli.StringFlag{Name: "report-title", Aliases: []string{"T"}, Value: "Confluence Page Lifecycle Report", Usage: "The lifecycle report page title"},
		&cli.BoolFlag{Name: "no-history", Usage: "Skip recording this run in the local history database"},
	}
	flags = append(flags, connectionFlags()...)
	flags = append(flags, thresholdFlags()...)
	flags = append(flags, verbosityFlags()...)

	return &cli.Command{
		Name:   "run",
		Usage:  "Classify and relabel every page in a space",
		Flags:  flags,
		Action: run.RunAction,
	}
}

func pageCommand() *cli.Command {
	flags := connectionFlags()
	flags = append(flags, thresholdFlags()...)
	flags = append(flags, verbosityFlags()...)

	return &cli.Command{
		Name:      "page",
		Usage:     "Classify a single page and print its state without mutating anything",
		ArgsUsage: "<page-id>",
		Flags:     flags,
		Action:    inspect.PageAction,
	}
}

func runsCommand() *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "Inspect recorded run history",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recent runs",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum number of runs to list"},
				},
				Action: runs.ListAction,
			},
			{
				Name:      "show",
				Usage:     "Show full tallies for a run (latest when no ID is given)",
				ArgsUsage: "[run-id]",
				Action:    runs.ShowAction,
			},
		},
	}
}

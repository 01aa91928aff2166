// Package inspect implements the single-page inspection command.
package inspect

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/nwillems/confluence-lifecycle/internal/common"
	"github.com/nwillems/confluence-lifecycle/models"
	"github.com/nwillems/confluence-lifecycle/pkg/confluence"
	"github.com/nwillems/confluence-lifecycle/pkg/lifecycle"
)

// PageAction classifies a single page and prints its state and labels. It
// never mutates anything.
func PageAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	if c.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: page ID required")
		fmt.Fprintln(os.Stderr, "Usage: confluence-lifecycle page <page-id>")
		os.Exit(1)
	}
	pageID := c.Args().First()

	config := models.DefaultConfig()
	config.Host = c.String("host")
	config.Username = c.String("username")
	config.Password = c.String("password")
	if config.Password == "" {
		config.Password = os.Getenv("CONFLUENCE_TOKEN")
	}
	config.Cloud = c.Bool("cloud")
	if c.IsSet("stale") {
		config.StaleDays = c.Int("stale")
	}
	if c.IsSet("rotten") {
		config.RottenDays = c.Int("rotten")
	}

	if err := config.ValidateConnection(); err != nil {
		return cli.Exit(fmt.Sprintf("Error: invalid configuration: %v", err), 2)
	}
	if err := config.ValidateThresholds(); err != nil {
		return cli.Exit(fmt.Sprintf("Error: invalid configuration: %v", err), 2)
	}

	client := confluence.NewClient(config.Host, config.Username, config.Password, config.Cloud)
	ctx := c.Context

	classifier := &lifecycle.Classifier{
		Store:      client,
		StaleDays:  config.StaleDays,
		RottenDays: config.RottenDays,
	}

	state, err := classifier.Classify(ctx, models.PageSummary{ID: pageID})
	if err != nil {
		return fmt.Errorf("failed to classify page: %w", err)
	}

	labels, err := client.GetLabels(ctx, pageID)
	if err != nil {
		return fmt.Errorf("failed to fetch labels: %w", err)
	}
	logger.Debug("Fetched page", "page_id", pageID, "labels", labels)

	out := struct {
		State  *models.PageState `yaml:"state"`
		Phase  string            `yaml:"phase"`
		Age    string            `yaml:"age"`
		Labels []string          `yaml:"labels"`
	}{
		State:  state,
		Phase:  state.Phase.String(),
		Age:    fmt.Sprintf("%dd", int(time.Since(state.When).Hours()/24)),
		Labels: labels,
	}

	yamlData, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal page state: %w", err)
	}
	fmt.Print(string(yamlData))

	return nil
}

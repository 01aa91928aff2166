package run

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nwillems/confluence-lifecycle/models"
)

// BuildConfig assembles the run configuration: defaults, then the optional
// YAML config file, then any explicitly set CLI flags on top.
func BuildConfig(c *cli.Context) (*models.Config, error) {
	config := models.DefaultConfig()

	if c.IsSet("config") {
		loaded, err := models.LoadConfig(c.String("config"))
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	setString(c, "host", &config.Host)
	setString(c, "username", &config.Username)
	setString(c, "password", &config.Password)
	setBool(c, "cloud", &config.Cloud)
	setString(c, "space", &config.Space)
	setInt(c, "max-pages", &config.MaxPages)
	setInt(c, "limit", &config.PageLimit)
	setInt(c, "stale", &config.StaleDays)
	setInt(c, "rotten", &config.RottenDays)
	setString(c, "fresh-label", &config.Labels.Fresh)
	setString(c, "stale-label", &config.Labels.Stale)
	setString(c, "rotten-label", &config.Labels.Rotten)
	setInt(c, "workers", &config.Workers)
	setBool(c, "read-only", &config.ReadOnly)
	setBool(c, "strict", &config.Strict)
	setBool(c, "update-report", &config.UpdateReport)
	setString(c, "report-page", &config.ReportPageID)
	setString(c, "report-title", &config.ReportTitle)

	if config.Password == "" {
		config.Password = os.Getenv("CONFLUENCE_TOKEN")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setString(c *cli.Context, name string, dst *string) {
	if c.IsSet(name) {
		*dst = c.String(name)
	}
}

func setInt(c *cli.Context, name string, dst *int) {
	if c.IsSet(name) {
		*dst = c.Int(name)
	}
}

func setBool(c *cli.Context, name string, dst *bool) {
	if c.IsSet(name) {
		*dst = c.Bool(name)
	}
}

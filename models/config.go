package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for a lifecycle run. Values come from
// CLI flags, optionally seeded from a YAML config file, and are threaded
// through every component rather than held in process-wide state.
type Config struct {
	Host     string `yaml:"host"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Cloud    bool   `yaml:"cloud"`

	Space     string `yaml:"space"`
	MaxPages  int    `yaml:"max_pages"`
	PageLimit int    `yaml:"page_limit"`

	StaleDays  int      `yaml:"stale_days"`
	RottenDays int      `yaml:"rotten_days"`
	Labels     LabelSet `yaml:"labels"`

	Workers  int  `yaml:"workers"`
	ReadOnly bool `yaml:"read_only"`
	// Strict restores all-or-nothing behaviour: a page whose last-modified
	// timestamp cannot be parsed aborts the whole run instead of being
	// skipped and counted as an error.
	Strict bool `yaml:"strict"`

	UpdateReport bool   `yaml:"update_report"`
	ReportPageID string `yaml:"report_page_id"`
	ReportTitle  string `yaml:"report_title"`
}

// DefaultConfig returns a Config with the standard thresholds and labels.
func DefaultConfig() *Config {
	return &Config{
		Cloud:       true,
		MaxPages:    2500,
		PageLimit:   500,
		StaleDays:   90,
		RottenDays:  180,
		Labels:      DefaultLabelSet(),
		Workers:     15,
		ReportTitle: "Confluence Page Lifecycle Report",
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// ValidateConnection checks the fields needed to reach the API at all.
func (c *Config) ValidateConnection() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Username == "" {
		return fmt.Errorf("username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password or API token is required")
	}
	return nil
}

// ValidateThresholds rejects threshold pairs that would misclassify pages.
func (c *Config) ValidateThresholds() error {
	if c.StaleDays < 0 || c.RottenDays < 0 {
		return fmt.Errorf("stale and rotten thresholds must be >= 0")
	}
	if c.StaleDays > c.RottenDays {
		return fmt.Errorf("stale threshold (%d days) must not exceed rotten threshold (%d days)", c.StaleDays, c.RottenDays)
	}
	return nil
}

// Validate checks a full run configuration.
func (c *Config) Validate() error {
	if err := c.ValidateConnection(); err != nil {
		return err
	}
	if c.Space == "" {
		return fmt.Errorf("space is required")
	}
	if err := c.ValidateThresholds(); err != nil {
		return err
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("max pages must be > 0")
	}
	if c.PageLimit <= 0 {
		return fmt.Errorf("page limit must be > 0")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("worker count must be > 0")
	}
	for _, l := range []string{c.Labels.Fresh, c.Labels.Stale, c.Labels.Rotten} {
		if l == "" {
			return fmt.Errorf("all three phase labels must be non-empty")
		}
	}
	if c.UpdateReport && c.ReportPageID == "" {
		return fmt.Errorf("report page ID is required when updating the report")
	}
	return nil
}

package models

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() *Config {
	config := DefaultConfig()
	config.Host = "wiki.example.com"
	config.Username = "bot@example.com"
	config.Password = "token"
	config.Space = "ENG"
	return config
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing host",
			mutate:  func(c *Config) { c.Host = "" },
			wantErr: true,
		},
		{
			name:    "missing credentials",
			mutate:  func(c *Config) { c.Password = "" },
			wantErr: true,
		},
		{
			name:    "missing space",
			mutate:  func(c *Config) { c.Space = "" },
			wantErr: true,
		},
		{
			name:    "stale exceeds rotten",
			mutate:  func(c *Config) { c.StaleDays = 200; c.RottenDays = 100 },
			wantErr: true,
		},
		{
			name:   "equal thresholds are allowed",
			mutate: func(c *Config) { c.StaleDays = 90; c.RottenDays = 90 },
		},
		{
			name:    "negative threshold",
			mutate:  func(c *Config) { c.StaleDays = -1 },
			wantErr: true,
		},
		{
			name:    "zero max pages",
			mutate:  func(c *Config) { c.MaxPages = 0 },
			wantErr: true,
		},
		{
			name:    "zero page limit",
			mutate:  func(c *Config) { c.PageLimit = 0 },
			wantErr: true,
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Workers = 0 },
			wantErr: true,
		},
		{
			name:    "empty phase label",
			mutate:  func(c *Config) { c.Labels.Stale = "" },
			wantErr: true,
		},
		{
			name:    "report update without page ID",
			mutate:  func(c *Config) { c.UpdateReport = true },
			wantErr: true,
		},
		{
			name:   "report update with page ID",
			mutate: func(c *Config) { c.UpdateReport = true; c.ReportPageID = "123" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(config)

			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
host: wiki.example.com
username: bot@example.com
password: token
space: ENG
stale_days: 30
labels:
  rotten: archive_me
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.StaleDays != 30 {
		t.Errorf("StaleDays = %d, want 30", config.StaleDays)
	}
	// Unset fields keep their defaults.
	if config.RottenDays != 180 {
		t.Errorf("RottenDays = %d, want default 180", config.RottenDays)
	}
	if config.Labels.Rotten != "archive_me" {
		t.Errorf("Labels.Rotten = %q, want %q", config.Labels.Rotten, "archive_me")
	}
	if config.Labels.Fresh != DefaultFreshLabel {
		t.Errorf("Labels.Fresh = %q, want default %q", config.Labels.Fresh, DefaultFreshLabel)
	}
	if !config.Cloud {
		t.Error("Cloud should default to true")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfig() with a missing file should fail")
	}
}

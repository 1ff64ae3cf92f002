package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tandemclub/tandem/internal/avail"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Grid.SlotsPerDay != 48 {
		t.Errorf("expected 48 slots per day, got %d", cfg.Grid.SlotsPerDay)
	}
	if cfg.Grid.WeekStart != "sunday" {
		t.Errorf("expected week_start sunday, got %s", cfg.Grid.WeekStart)
	}
	if cfg.Grid.FillPolicy != "rectangular" {
		t.Errorf("expected fill_policy rectangular, got %s", cfg.Grid.FillPolicy)
	}
	if cfg.Pool.TimeoutSeconds != 15 {
		t.Errorf("expected 15s timeout, got %d", cfg.Pool.TimeoutSeconds)
	}
	if cfg.UI.Theme != "frappe" {
		t.Errorf("expected theme frappe, got %s", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Grid.SlotsPerDay != 48 {
		t.Errorf("expected default slots_per_day, got %d", cfg.Grid.SlotsPerDay)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[profile]
member_id = "jdoe42"
name = "Jordan Doe"

[grid]
slots_per_day = 24
week_start = "monday"
day_start_hour = 7
fill_policy = "direction-aware-row"

[pool]
base_url = "https://pool.example.edu"
timeout_seconds = 5

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Profile.MemberID != "jdoe42" {
		t.Errorf("expected member_id jdoe42, got %s", cfg.Profile.MemberID)
	}
	if cfg.Grid.SlotsPerDay != 24 {
		t.Errorf("expected 24 slots per day, got %d", cfg.Grid.SlotsPerDay)
	}
	if cfg.WeekStartDay() != time.Monday {
		t.Errorf("expected Monday week start, got %v", cfg.WeekStartDay())
	}
	if cfg.FillPolicy() != avail.FillDirectionRow {
		t.Errorf("expected direction-aware-row policy, got %v", cfg.FillPolicy())
	}
	if cfg.PoolTimeout() != 5*time.Second {
		t.Errorf("expected 5s pool timeout, got %v", cfg.PoolTimeout())
	}
	if !cfg.HasProfile() {
		t.Error("expected HasProfile to be true")
	}
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	if err := os.WriteFile(configPath, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TANDEM_MEMBER_ID", "env-member")
	t.Setenv("TANDEM_SLOTS_PER_DAY", "24")
	t.Setenv("TANDEM_WEEK_START", "monday")
	t.Setenv("TANDEM_FILL_POLICY", "direction-aware-row")
	t.Setenv("TANDEM_POOL_URL", "https://env.example.edu")

	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Profile.MemberID != "env-member" {
		t.Errorf("expected env member id, got %s", cfg.Profile.MemberID)
	}
	if cfg.Grid.SlotsPerDay != 24 {
		t.Errorf("expected 24 slots per day, got %d", cfg.Grid.SlotsPerDay)
	}
	if cfg.Grid.WeekStart != "monday" {
		t.Errorf("expected monday week start, got %s", cfg.Grid.WeekStart)
	}
	if cfg.Pool.BaseURL != "https://env.example.edu" {
		t.Errorf("expected env pool url, got %s", cfg.Pool.BaseURL)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(*Config) {}, false},
		{"bad slots per day", func(c *Config) { c.Grid.SlotsPerDay = 96 }, true},
		{"bad week start", func(c *Config) { c.Grid.WeekStart = "wednesday" }, true},
		{"negative day start", func(c *Config) { c.Grid.DayStartHour = -1 }, true},
		{"day start too large", func(c *Config) { c.Grid.DayStartHour = 24 }, true},
		{"bad fill policy", func(c *Config) { c.Grid.FillPolicy = "spiral" }, true},
		{"zero timeout", func(c *Config) { c.Pool.TimeoutSeconds = 0 }, true},
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }, true},
		{"hourly grid with offset", func(c *Config) {
			c.Grid.SlotsPerDay = 24
			c.Grid.DayStartHour = 7
		}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	cfg := Default()
	cfg.Profile.MemberID = "jdoe42"
	cfg.Storage.DBPath = filepath.Join(tmpDir, "tandem.db")

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Profile.MemberID != "jdoe42" {
		t.Errorf("expected member_id to survive round trip, got %s", loaded.Profile.MemberID)
	}
}

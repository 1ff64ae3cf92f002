// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/tandemclub/tandem/internal/avail"
)

// Config holds the application configuration.
type Config struct {
	Profile ProfileConfig `toml:"profile"`
	Grid    GridConfig    `toml:"grid"`
	Pool    PoolConfig    `toml:"pool"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
}

// ProfileConfig identifies the club member.
type ProfileConfig struct {
	MemberID string `toml:"member_id"` // e.g., "jdoe42"
	Name     string `toml:"name"`      // display name, optional
}

// GridConfig holds availability grid settings.
type GridConfig struct {
	SlotsPerDay  int    `toml:"slots_per_day"`  // 24 (hourly) or 48 (half-hourly)
	WeekStart    string `toml:"week_start"`     // "sunday" or "monday"
	DayStartHour int    `toml:"day_start_hour"` // hour of day at slot 0, e.g. 0 or 7
	FillPolicy   string `toml:"fill_policy"`    // "rectangular" or "direction-aware-row"
}

// PoolConfig holds interview pool API settings.
type PoolConfig struct {
	BaseURL        string `toml:"base_url"`        // e.g., "https://pool.tandemclub.dev"
	TimeoutSeconds int    `toml:"timeout_seconds"` // request timeout
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Profile: ProfileConfig{},
		Grid: GridConfig{
			SlotsPerDay:  avail.SlotsHalfHourly,
			WeekStart:    "sunday",
			DayStartHour: 0,
			FillPolicy:   "rectangular",
		},
		Pool: PoolConfig{
			BaseURL:        "",
			TimeoutSeconds: 15,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tandem.db"
	}
	return filepath.Join(home, ".local", "share", "tandem", "tandem.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "tandem", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	// Profile overrides
	if v := os.Getenv("TANDEM_MEMBER_ID"); v != "" {
		cfg.Profile.MemberID = v
	}
	if v := os.Getenv("TANDEM_MEMBER_NAME"); v != "" {
		cfg.Profile.Name = v
	}

	// Grid overrides
	if v := os.Getenv("TANDEM_SLOTS_PER_DAY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Grid.SlotsPerDay = n
		}
	}
	if v := os.Getenv("TANDEM_WEEK_START"); v != "" {
		cfg.Grid.WeekStart = v
	}
	if v := os.Getenv("TANDEM_DAY_START_HOUR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Grid.DayStartHour = n
		}
	}
	if v := os.Getenv("TANDEM_FILL_POLICY"); v != "" {
		cfg.Grid.FillPolicy = v
	}

	// Pool overrides
	if v := os.Getenv("TANDEM_POOL_URL"); v != "" {
		cfg.Pool.BaseURL = v
	}

	// Storage overrides
	if v := os.Getenv("TANDEM_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// UI overrides
	if v := os.Getenv("TANDEM_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Grid.SlotsPerDay != avail.SlotsHourly && c.Grid.SlotsPerDay != avail.SlotsHalfHourly {
		return fmt.Errorf("slots_per_day must be %d or %d, got %d",
			avail.SlotsHourly, avail.SlotsHalfHourly, c.Grid.SlotsPerDay)
	}
	if _, err := parseWeekStart(c.Grid.WeekStart); err != nil {
		return err
	}
	if c.Grid.DayStartHour < 0 || c.Grid.DayStartHour > 23 {
		return fmt.Errorf("day_start_hour must be between 0 and 23, got %d", c.Grid.DayStartHour)
	}
	if _, err := avail.ParseFillPolicy(c.Grid.FillPolicy); err != nil {
		return err
	}
	if c.Pool.TimeoutSeconds <= 0 {
		return errors.New("timeout_seconds must be positive")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// parseWeekStart maps a week-start name to a weekday.
func parseWeekStart(s string) (time.Weekday, error) {
	switch strings.ToLower(s) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	default:
		return time.Sunday, fmt.Errorf("week_start must be \"sunday\" or \"monday\", got %q", s)
	}
}

// WeekStartDay returns the configured week-start weekday.
// Validate must have passed.
func (c *Config) WeekStartDay() time.Weekday {
	day, err := parseWeekStart(c.Grid.WeekStart)
	if err != nil {
		return time.Sunday
	}
	return day
}

// Geometry builds the grid geometry described by the configuration.
func (c *Config) Geometry() avail.Geometry {
	return avail.NewGeometry(c.Grid.SlotsPerDay, c.Grid.DayStartHour, c.WeekStartDay())
}

// FillPolicy returns the configured fill policy.
// Validate must have passed.
func (c *Config) FillPolicy() avail.FillPolicy {
	p, err := avail.ParseFillPolicy(c.Grid.FillPolicy)
	if err != nil {
		return avail.FillRectangular
	}
	return p
}

// PoolTimeout returns the pool request timeout as a duration.
func (c *Config) PoolTimeout() time.Duration {
	return time.Duration(c.Pool.TimeoutSeconds) * time.Second
}

// HasProfile reports whether a member id is configured.
func (c *Config) HasProfile() bool {
	return strings.TrimSpace(c.Profile.MemberID) != ""
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

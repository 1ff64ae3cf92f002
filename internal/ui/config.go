package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tandemclub/tandem/internal/config"
	"github.com/tandemclub/tandem/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  tandem config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.Profile.MemberID = promptValue(reader, "Member id", cfg.Profile.MemberID)
	cfg.Profile.Name = promptValue(reader, "Display name (optional)", cfg.Profile.Name)
	cfg.Grid.SlotsPerDay = promptInt(reader, "Slots per day (24 or 48)", cfg.Grid.SlotsPerDay)
	cfg.Grid.WeekStart = promptValue(reader, "Week start (sunday/monday)", cfg.Grid.WeekStart)
	cfg.Grid.DayStartHour = promptInt(reader, "Day start hour (0-23)", cfg.Grid.DayStartHour)
	cfg.Grid.FillPolicy = promptValue(reader, "Drag fill policy (rectangular/direction-aware-row)", cfg.Grid.FillPolicy)
	cfg.Pool.BaseURL = promptValue(reader, "Pool base URL (empty to disable submit)", cfg.Pool.BaseURL)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[profile]")
	fmt.Printf("  member_id      = %s\n", cfg.Profile.MemberID)
	fmt.Printf("  name           = %s\n", cfg.Profile.Name)
	fmt.Println("\n[grid]")
	fmt.Printf("  slots_per_day  = %d\n", cfg.Grid.SlotsPerDay)
	fmt.Printf("  week_start     = %s\n", cfg.Grid.WeekStart)
	fmt.Printf("  day_start_hour = %d\n", cfg.Grid.DayStartHour)
	fmt.Printf("  fill_policy    = %s\n", cfg.Grid.FillPolicy)
	fmt.Println("\n[pool]")
	fmt.Printf("  base_url       = %s\n", cfg.Pool.BaseURL)
	fmt.Printf("  timeout_secs   = %d\n", cfg.Pool.TimeoutSeconds)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path        = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme          = %s\n", cfg.UI.Theme)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		input := promptValue(reader, label, strconv.Itoa(current))
		value, err := strconv.Atoi(input)
		if err != nil {
			fmt.Printf("  Not a number: %q\n", input)
			continue
		}
		return value
	}
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}

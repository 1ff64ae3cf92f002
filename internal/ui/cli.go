package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tandemclub/tandem/internal/avail"
	"github.com/tandemclub/tandem/internal/config"
	"github.com/tandemclub/tandem/internal/db"
	"github.com/tandemclub/tandem/internal/pool"
	"github.com/tandemclub/tandem/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   avail.Repository
	client *pool.Client
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given repository and config.
func NewApp(repo avail.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "tandem",
		Short: "Weekly availability for mock interview pairing",
		Long: `Tandem collects your weekly interview availability for the club's
pairing pool.

Run it without arguments to open the interactive grid: drag across
slots to mark when you are free, save locally, and submit the week to
the pool when you are done.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.repo, a.client, a.config, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to tandem-debug.log)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.submitCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("tandem %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the database if a command opened it.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// ensureRepo opens the database lazily for non-TUI commands.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	dbPath := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// ensureClient builds the pool client from config when not injected.
func (a *App) ensureClient() {
	if a.client == nil {
		a.client = pool.New(a.config.Pool.BaseURL, a.config.PoolTimeout())
	}
}

// requireProfile fails commands that need a member id before setup.
func (a *App) requireProfile() error {
	if !a.config.HasProfile() {
		return fmt.Errorf("no member id configured; run 'tandem config' or the TUI first")
	}
	return nil
}

func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", path, err)
	}
	return filepath.Clean(abs), nil
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tandemclub/tandem/internal/avail"
	"github.com/tandemclub/tandem/internal/config"
	"github.com/tandemclub/tandem/internal/db"
)

// InitState tracks whether startup initialization is required.
type InitState struct {
	NeedsProfile bool
	ConfigPath   string
}

// DetectInitState checks whether a member profile is configured yet.
func DetectInitState(cfg *config.Config) (InitState, error) {
	return InitState{
		NeedsProfile: !cfg.HasProfile(),
		ConfigPath:   config.DefaultConfigPath(),
	}, nil
}

func openRepo(dbPath string) (avail.Repository, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}

// completeInit stores the entered member id and moves to normal mode.
func (m Model) completeInit() (Model, error) {
	memberID := strings.TrimSpace(m.memberInput.Value())
	if memberID == "" {
		return m, fmt.Errorf("member id is required")
	}

	m.config.Profile.MemberID = memberID
	path := m.initState.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if err := m.config.SaveTo(path); err != nil {
		return m, fmt.Errorf("saving config: %w", err)
	}

	m.initState.NeedsProfile = false
	m.mode = ModeNormal
	m.loading = true
	return m, nil
}

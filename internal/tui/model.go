package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tandemclub/tandem/internal/avail"
	"github.com/tandemclub/tandem/internal/config"
	"github.com/tandemclub/tandem/internal/pool"
	"github.com/tandemclub/tandem/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal        Mode = iota
	ModeInit               // First-run profile setup
	ModeConfirmSubmit      // Warning before resubmitting identical availability
	ModeHelp
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   avail.Repository
	client *pool.Client
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Grid state
	geom       avail.Geometry
	weekAnchor time.Time // pinned at creation, not recomputed per render
	matrix     *avail.Matrix
	session    *avail.Session // nil when idle
	window     avail.Window
	fullView   bool // window expanded to the whole day
	cursor     avail.Cell
	policy     avail.FillPolicy

	// Presentation overrides; when set, lengths are clamped to the
	// grid dimensions rather than trusted.
	title      string
	dayLabels  []string
	timeLabels []string

	// Save/submit bookkeeping. editSeq advances on every local
	// mutation; persistedSeq tracks the newest edit state known to be
	// saved. Completions for older sequences are ignored, so a slow
	// save can never mask newer edits as persisted.
	editSeq      uint64
	persistedSeq uint64
	lastSub      *avail.Submission
	loading      bool

	// Modal state
	memberInput textinput.Model
	initState   InitState
	initError   string

	// Terminal dimensions and layout
	width        int
	height       int
	colWidth     int
	scrollOffset int

	mode Mode

	// Messages
	statusMsg  string    // Temporary status/error message
	statusErr  bool      // Render the status in the error style
	statusTime time.Time // When to clear message

	now func() time.Time // Injectable for testing

	// Error state
	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithNow overrides the clock, pinning the week anchor for tests.
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
		m.weekAnchor = m.geom.WeekAnchor(now())
	}
}

// WithTitle overrides the grid title.
func WithTitle(title string) ModelOption {
	return func(m *Model) { m.title = title }
}

// WithDayLabels overrides the geometry-derived day headers. A sequence
// of the wrong length is clamped during rendering, never indexed past.
func WithDayLabels(labels []string) ModelOption {
	return func(m *Model) { m.dayLabels = labels }
}

// WithTimeLabels overrides the geometry-derived time labels, clamped
// the same way.
func WithTimeLabels(labels []string) ModelOption {
	return func(m *Model) { m.timeLabels = labels }
}

// WithMarkedColor overrides the theme's marked-cell color.
func WithMarkedColor(hex string) ModelOption {
	return func(m *Model) {
		m.styles.CellMarkedStyle = m.styles.CellMarkedStyle.Background(theme.Color(hex))
	}
}

// WithUnmarkedColor overrides the theme's unmarked-cell color.
func WithUnmarkedColor(hex string) ModelOption {
	return func(m *Model) {
		m.styles.CellUnmarkedStyle = m.styles.CellUnmarkedStyle.Background(theme.Color(hex))
	}
}

// WithInitState sets the startup initialization state.
func WithInitState(state InitState) ModelOption {
	return func(m *Model) {
		m.initState = state
		if state.NeedsProfile {
			m.mode = ModeInit
			m.memberInput.Focus()
		}
	}
}

// New creates a new TUI model.
func New(repo avail.Repository, client *pool.Client, cfg *config.Config, opts ...ModelOption) *Model {
	// Load theme from config
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		// Fallback to mocha on error
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	memberInput := textinput.New()
	memberInput.Placeholder = "e.g. jdoe42"
	memberInput.CharLimit = 64
	memberInput.Width = 32
	memberInput.PromptStyle = styles.ModalInputStyle
	memberInput.TextStyle = styles.ModalTextStyle

	geom := cfg.Geometry()
	now := time.Now
	matrix := avail.NewMatrix(geom.NumDays, geom.SlotsPerDay)

	m := &Model{
		repo:        repo,
		client:      client,
		config:      cfg,
		theme:       t,
		styles:      styles,
		geom:        geom,
		weekAnchor:  geom.WeekAnchor(now()),
		matrix:      matrix,
		window:      geom.DefaultWindow(matrix),
		cursor:      avail.Cell{},
		policy:      cfg.FillPolicy(),
		title:       "Interview availability",
		loading:     true,
		mode:        ModeNormal,
		memberInput: memberInput,
		colWidth:    defaultColWidth,
		now:         now,
	}
	m.cursor = avail.Cell{Day: 0, Slot: m.window.Start}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.mode == ModeInit {
		return textinput.Blink
	}
	return m.loadCmd()
}

// Run starts the TUI.
func Run(repo avail.Repository, client *pool.Client, cfg *config.Config) error {
	return RunWithDebug(repo, client, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo avail.Repository, client *pool.Client, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	initialRepo := repo
	var initState InitState

	if repo == nil {
		state, err := DetectInitState(cfg)
		if err != nil {
			return err
		}
		initState = state
		repo, err = openRepo(cfg.Storage.DBPath)
		if err != nil {
			return err
		}
	}
	if client == nil {
		client = pool.New(cfg.Pool.BaseURL, cfg.PoolTimeout())
	}

	model := New(repo, client, cfg, WithInitState(initState))
	p := tea.NewProgram(*model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	if initialRepo == nil {
		_ = repo.Close()
	}
	return err
}

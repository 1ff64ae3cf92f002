package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tandemclub/tandem/internal/avail"
)

// debugLog logs TUI state, keystrokes, and mouse events to a file.
var debugLog *zap.Logger = zap.NewNop()

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "tandem-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is
// enabled. The log file is created in the current directory with a
// fixed name so it is easy to find.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = zap.NewNop()
		return nil
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{DebugLogPath}
	cfg.ErrorOutputPaths = []string{DebugLogPath}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = logger
	debugLog.Debug("debug_start")
	return nil
}

// CloseDebugLogger flushes and closes the debug log.
func CloseDebugLogger() {
	debugLog.Debug("debug_end")
	_ = debugLog.Sync()
	debugLog = zap.NewNop()
}

// LogKey logs a key press event.
func LogKey(msg tea.KeyMsg, mode Mode) {
	debugLog.Debug("key_press",
		zap.String("key", msg.String()),
		zap.String("mode", modeString(mode)),
	)
}

// LogMouse logs a mouse event and the cell it resolved to, if any.
func LogMouse(msg tea.MouseMsg, cell avail.Cell, onGrid bool) {
	debugLog.Debug("mouse",
		zap.String("action", fmt.Sprintf("%d", msg.Action)),
		zap.Int("x", msg.X),
		zap.Int("y", msg.Y),
		zap.Int("day", cell.Day),
		zap.Int("slot", cell.Slot),
		zap.Bool("on_grid", onGrid),
	)
}

// LogSession logs the state of an active paint gesture.
func LogSession(s *avail.Session, action string) {
	if s == nil {
		debugLog.Debug("session", zap.String("action", action), zap.String("status", "nil"))
		return
	}
	debugLog.Debug("session",
		zap.String("action", action),
		zap.Int("anchor_day", s.Anchor().Day),
		zap.Int("anchor_slot", s.Anchor().Slot),
		zap.Bool("paint", s.Paint()),
	)
}

// LogError logs an error with the operation it came from.
func LogError(context string, err error) {
	debugLog.Debug("error",
		zap.String("context", context),
		zap.Error(err),
	)
}

func modeString(m Mode) string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeInit:
		return "Init"
	case ModeConfirmSubmit:
		return "ConfirmSubmit"
	case ModeHelp:
		return "Help"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Package logging adapts ipfs/go-log named loggers to the Log capability
// the depot and store consume. Output destination and levels follow the
// library's GOLOG_* environment configuration.
package logging

import (
	logging "github.com/ipfs/go-log/v2"

	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// Logger wraps a named go-log subsystem logger.
type Logger struct {
	l *logging.ZapEventLogger
}

// New returns the Log capability for the named subsystem.
func New(system string) *Logger {
	return &Logger{l: logging.Logger(system)}
}

// Infof records an informational event.
func (w *Logger) Infof(format string, args ...any) {
	w.l.Infof(format, args...)
}

// Errorf records a failure event.
func (w *Logger) Errorf(format string, args ...any) {
	w.l.Errorf(format, args...)
}

// SetLevelAll adjusts every subsystem's level ("debug", "info", "warn",
// "error"), including subsystems created later.
func SetLevelAll(level string) error {
	lvl, err := logging.LevelFromString(level)
	if err != nil {
		return err
	}
	logging.SetAllLoggers(lvl)
	return nil
}

var _ types.Log = (*Logger)(nil)

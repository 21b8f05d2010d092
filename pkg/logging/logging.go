// Package logging builds the toolkit-wide abstractlogger.Logger used at
// package boundaries (parser entry/exit, resolver pass start/end, validation
// rule registration), defaulting to abstractlogger.Noop{}.
package logging

import (
	"github.com/jensneuse/abstractlogger"
	"go.uber.org/zap"
)

// NewZap builds a production zap logger wrapped as an abstractlogger.Logger.
// Falls back to Noop if zap's own setup fails (stdout/stderr unwritable),
// since a missing logger must never block parsing or validation.
func NewZap() abstractlogger.Logger {
	zl, err := zap.NewProduction()
	if err != nil {
		return Noop()
	}
	return abstractlogger.NewZapLogger(zl, abstractlogger.DebugLevel)
}

// Noop returns the default no-op logger every component falls back to when
// none is configured.
func Noop() abstractlogger.Logger {
	return abstractlogger.Noop{}
}

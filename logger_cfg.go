package ladder

import (
	"github.com/axkov/ladder/internal/logger"
)

// UseColorLogger routes engine output through an aurora-colored logger.
// *log.Logger satisfies the Printer interface.
func UseColorLogger(p logger.Printer, printSQL, printDebug bool) OptionFunc {
	return func(e *Engine) error {
		e.lg = logger.NewColorLogger(p, printSQL, printDebug)
		return nil
	}
}

// UsePlainLogger routes engine output through an uncolored logger.
func UsePlainLogger(p logger.Printer, printSQL, printDebug bool) OptionFunc {
	return func(e *Engine) error {
		e.lg = logger.NewPlainLogger(p, printSQL, printDebug)
		return nil
	}
}

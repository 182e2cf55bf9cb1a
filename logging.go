package rsync

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds a zerolog.Logger suitable for passing to
// SyncOptions.Logger: JSON log lines written to w (os.Stderr when w is
// nil), filtered at level, each with a timestamp and the package's
// "rsync" component tag so log lines from this package are greppable
// alongside a host application's own logging.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("component", "rsync").Logger()
}

// NopLogger is the default Syncer logger: all log calls are no-ops.
func NopLogger() zerolog.Logger { return zerolog.Nop() }

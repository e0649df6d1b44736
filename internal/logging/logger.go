package logging

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var current atomic.Pointer[Config]

func init() {
	cfg := DefaultConfig(ProfileRuntime)
	current.Store(&cfg)
}

// New returns a console logger tagged with app and installs it as the
// zerolog global logger.
func New(app string) zerolog.Logger {
	logger := NewTo(os.Stdout, app)
	log.Logger = logger
	return logger
}

// NewTo builds a console logger writing to w using the applied Config.
func NewTo(w io.Writer, app string) zerolog.Logger {
	cfg := current.Load()
	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    cfg.NoColor,
		TimeFormat: time.RFC3339,
	}
	if !cfg.Timestamp {
		output.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	ctx := zerolog.New(output).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Str("app", app).Logger()
}

package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	slogenv "github.com/cbrewster/slog-env"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Setup installs the process-wide slog default. The level comes from the
// GO_LOG environment variable (default info); LOG_FORMAT=json switches to
// the JSON handler for collectors that want structured output.
func Setup() {
	opts := []slogenv.Opt{slogenv.WithDefaultLevel(slog.LevelInfo)}

	var handler slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		handler = slogenv.NewHandler(slog.NewJSONHandler(os.Stderr, nil), opts...)
	} else {
		handler = slogenv.NewHandler(tint.NewHandler(os.Stderr, &tint.Options{
			TimeFormat: time.TimeOnly,
			NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		}), opts...)
	}

	slog.SetDefault(slog.New(handler))
}

package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a human-readable logger writing into out. An empty level means info.
func New(level string, out io.Writer) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level = strings.TrimSpace(level); level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), err
		}

		lvl = parsed
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(output).Level(lvl).With().Timestamp().Logger(), nil
}

package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/phuslu/log"
)

// Format values accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a logger writing to w at the given level. Console output is
// uncoloured so it stays readable when redirected.
func New(w io.Writer, level, format string) (*log.Logger, error) {
	lvl := log.ParseLevel(strings.ToLower(level))
	if !strings.EqualFold(lvl.String(), level) {
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	logger := &log.Logger{Level: lvl}
	switch strings.ToLower(format) {
	case FormatConsole, "":
		logger.Writer = &log.ConsoleWriter{Writer: w}
	case FormatJSON:
		logger.Writer = &log.IOWriter{Writer: w}
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return logger, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return &log.Logger{Level: log.PanicLevel + 1, Writer: &log.IOWriter{Writer: io.Discard}}
}

package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Interface describes the minimal logging interface the tool relies on.
type Interface interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

var (
	globalLogger *zerologAdapter
	once         sync.Once
)

// Logger returns a lazily initialized zerolog-backed logger implementing Interface.
// Output goes to stderr so tables on stdout stay clean.
func Logger() Interface {
	return adapter()
}

func adapter() *zerologAdapter {
	once.Do(func() {
		globalLogger = &zerologAdapter{log: newBase(os.Stderr, zerolog.WarnLevel)}
	})
	return globalLogger
}

func newBase(w io.Writer, level zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// SetLevel changes the global log level. Unknown names fall back to warn.
func SetLevel(name string) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || name == "" {
		level = zerolog.WarnLevel
	}
	a := adapter()
	a.log = a.log.Level(level)
}

// SetOutput redirects the global logger, keeping its level.
func SetOutput(w io.Writer) {
	a := adapter()
	a.log = newBase(w, a.log.GetLevel())
}

type zerologAdapter struct {
	log zerolog.Logger
}

func (l *zerologAdapter) Infof(format string, args ...interface{}) {
	l.log.Info().Msgf(format, args...)
}

func (l *zerologAdapter) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l *zerologAdapter) Debugf(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l *zerologAdapter) Warnf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

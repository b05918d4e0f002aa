// Package logging builds the zap loggers of the command line tools.
package logging

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/askiada/go-lensing/pkg/diagnostics"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// ErrFormat is returned for an unknown log format.
var ErrFormat = errors.New("unknown log format")

// Options selects the logger level and encoding.
type Options struct {
	Level  string
	Format string
	// Verbose forces the debug level.
	Verbose bool
}

// New builds a production logger, JSON by default and console on request.
func New(opts Options) (*zap.Logger, error) {
	var config zap.Config

	switch strings.ToLower(opts.Format) {
	case "", FormatJSON:
		config = zap.NewProductionConfig()
	case FormatConsole:
		config = zap.NewDevelopmentConfig()
	default:
		return nil, errors.Wrapf(ErrFormat, "%q", opts.Format)
	}

	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid log level %q", opts.Level)
		}

		level = parsed
	}

	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	config.Level = zap.NewAtomicLevelAt(level)

	logger, err := config.Build()
	if err != nil {
		return nil, errors.Wrap(err, "unable to build logger")
	}

	return logger, nil
}

const errorPrefix = "ERROR:"

// Printer sends diagnostics messages to logger. Messages starting with
// "ERROR:" are logged at error level without the prefix.
func Printer(logger *zap.Logger) diagnostics.LogPrint {
	return func(msg string) {
		if rest, ok := strings.CutPrefix(msg, errorPrefix); ok {
			logger.Error(strings.TrimSpace(rest))

			return
		}

		logger.Info(msg)
	}
}

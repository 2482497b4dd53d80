// Package logging provides leveled, colorized logging for clipcomp, backed by zerolog.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"clipcomp/internal/domain/consts"

	"github.com/rs/zerolog"
)

// Level is the current debug verbosity. Debug messages at or below this
// level are printed.
var (
	Level  int
	mu     sync.Mutex
	logger = zerolog.New(consoleWriter(os.Stdout)).With().Timestamp().Logger()
)

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:         out,
		TimeFormat:  "15:04:05",
		FormatLevel: formatLevel,
	}
}

func formatLevel(i interface{}) string {
	l, _ := i.(string)
	switch l {
	case zerolog.LevelInfoValue:
		return consts.BlueInfo
	case zerolog.LevelDebugValue:
		return consts.YellowDebug
	case zerolog.LevelWarnValue:
		return consts.YellowWarn
	case zerolog.LevelErrorValue:
		return consts.RedError
	default:
		return ""
	}
}

// SetLevel sets the debug verbosity. 0 disables debug output entirely.
func SetLevel(l int) {
	mu.Lock()
	defer mu.Unlock()

	Level = l
	if l > 0 {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// SetupLogging creates and/or opens the log file inside targetDir and mirrors
// all output there.
func SetupLogging(targetDir string) error {
	f, err := os.OpenFile(filepath.Join(targetDir, consts.LogFilename),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	logger = zerolog.New(zerolog.MultiLevelWriter(consoleWriter(os.Stdout), f)).
		With().Timestamp().Logger()
	return nil
}

// I logs informational messages.
func I(format string, args ...interface{}) {
	logger.Info().Msgf(format, args...)
}

// S logs success messages.
func S(format string, args ...interface{}) {
	logger.Log().Msgf(consts.GreenSuccess+format, args...)
}

// W logs warnings.
func W(format string, args ...interface{}) {
	logger.Warn().Msgf(format, args...)
}

// E logs errors.
func E(format string, args ...interface{}) {
	logger.Error().Msgf(format, args...)
}

// P prints a plain message straight to stdout, bypassing the log format.
// Used for operator-facing output such as consent URLs.
func P(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// D logs debug messages at the given verbosity level.
func D(l int, format string, args ...interface{}) {
	if l > Level {
		return
	}
	logger.Debug().Msgf(format, args...)
}

package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// DebugFile is where PDFSCOUT_DEBUG sends log output
const DebugFile = "debug.log"

var (
	// Log is the root logger all component loggers write through
	Log *logrus.Logger

	Scanner *logrus.Entry
	Enum    *logrus.Entry
	Config  *logrus.Entry
	UI      *logrus.Entry

	// Enabled is true when debug logging was requested via PDFSCOUT_DEBUG
	Enabled bool
)

func init() {
	Log = logrus.New()
	Log.SetOutput(os.Stderr)
	Log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	Log.SetLevel(ParseLevel(os.Getenv("PDFSCOUT_LOG_LEVEL")))

	Scanner = Log.WithField("component", "scanner")
	Enum = Log.WithField("component", "enumerator")
	Config = Log.WithField("component", "config")
	UI = Log.WithField("component", "ui")

	if os.Getenv("PDFSCOUT_DEBUG") == "" {
		return
	}

	Enabled = true
	Log.SetLevel(logrus.DebugLevel)
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000000"})

	debugFile, err := os.OpenFile(DebugFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// Fall back to stderr if the file can't be opened
		return
	}
	Log.SetOutput(debugFile)
}

// ParseLevel maps a level name to a logrus level, defaulting to warn
func ParseLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}

// SetVerbose raises the level to info unless debug logging is active
func SetVerbose(verbose bool) {
	if verbose && !Enabled && Log.GetLevel() < logrus.InfoLevel {
		Log.SetLevel(logrus.InfoLevel)
	}
}

// SetOutput redirects all loggers
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}

// Quiet discards log output unless it already goes to the debug file.
// The TUI uses this so log lines do not tear the screen.
func Quiet() {
	if Enabled {
		if _, ok := Log.Out.(*os.File); ok && Log.Out != os.Stderr {
			return
		}
	}
	Log.SetOutput(io.Discard)
}

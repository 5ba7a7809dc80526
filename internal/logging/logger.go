package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type SetupParams struct {
	LogFile  string
	LogLevel string
	// Stderr receives logs when LogFile is empty. Defaults to os.Stderr.
	Stderr io.Writer
}

// Setup builds the process logger. With a log file, output goes to a
// size-rotated file; the returned closer releases it.
func Setup(params SetupParams) (*slog.Logger, io.Closer) {
	opts := &slog.HandlerOptions{Level: ParseLevel(params.LogLevel)}

	if params.LogFile == "" {
		out := params.Stderr
		if out == nil {
			out = os.Stderr
		}
		return slog.New(slog.NewTextHandler(out, opts)), io.NopCloser(nil)
	}

	if !strings.HasSuffix(params.LogFile, ".log") {
		params.LogFile += ".log"
	}
	rotating := &lumberjack.Logger{
		Filename:   params.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		LocalTime:  false,
		Compress:   true,
	}
	return slog.New(slog.NewJSONHandler(rotating, opts)), rotating
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger

// Init configures the package logger. Production gets JSON output,
// everything else gets human-readable text with debug enabled.
func Init(environment string) {
	var handler slog.Handler

	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	log = slog.New(handler)
}

func get() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Info(msg string, args ...any) {
	get().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
}

func Debug(msg string, args ...any) {
	get().Debug(msg, normalize(args)...)
}

// Fatal logs at error level and exits.
func Fatal(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
	os.Exit(1)
}

// normalize tolerates bare values (commonly a single error) passed
// without a key, so call sites can do logger.Error("failed", err).
func normalize(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}

	out := make([]any, 0, len(args)+1)
	out = append(out, args[:len(args)-1]...)

	last := args[len(args)-1]
	if err, ok := last.(error); ok {
		out = append(out, "error", err.Error())
	} else {
		out = append(out, "detail", last)
	}

	return out
}

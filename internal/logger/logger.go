package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New 构造全局使用的 zerolog 实例，日志级别由 LOG_LEVEL 控制。
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var level zerolog.Level
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}

	// 调试模式输出适合人读的控制台日志，线上输出 JSON。
	if os.Getenv("GIN_MODE") == "debug" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(level).
			With().
			Timestamp().
			Str("service", "inkwell").
			Logger()
	}

	return zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", "inkwell").
		Logger()
}

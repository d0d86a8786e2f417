package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// InitLogger writes to stdout and to a rotated file at filepath.
func InitLogger(filepath string) zerolog.Logger {
	return initLogger(filepath, true)
}

// InitFileLogger writes only to the rotated file, for processes that own the terminal.
func InitFileLogger(filepath string) zerolog.Logger {
	return initLogger(filepath, false)
}

func initLogger(filepath string, stdout bool) zerolog.Logger {
	once.Do(func() {
		zerolog.DurationFieldUnit = time.Microsecond
		zerolog.ErrorFieldName = "error"
		zerolog.ErrorStackFieldName = "stack-trace"
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.LevelFieldName = "level"
		zerolog.MessageFieldName = "message"
		zerolog.TimestampFieldName = "timestamp"

		fileWriter := &lumberjack.Logger{
			Filename:   filepath,
			MaxSize:    100,
			MaxBackups: 3,
			Compress:   true,
		}
		var output io.Writer = fileWriter
		if stdout {
			output = zerolog.MultiLevelWriter(os.Stdout, fileWriter)
		}

		logger = zerolog.New(output).
			Level(zerolog.InfoLevel).
			Hook(AttachTraceIdFromContext()).
			With().
			Timestamp().
			Caller().
			Stack().
			Int("pid", os.Getpid()).
			Int("gid", os.Getgid()).
			Int("uid", os.Getuid()).
			Logger()

		logger.Info().
			Str(KeyTag, "InitLogger").
			Str(KeyProcess, "InitLogger").
			Msg("finish initiating logging")
	})
	return logger
}

// LevelFor maps the application env to the log level used by the services.
func LevelFor(env string) zerolog.Level {
	switch env {
	case "development":
		return zerolog.TraceLevel
	case "test":
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// Package logger builds the zap loggers used by the bench harness.
package logger

import (
	"os"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the log level used in configuration.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]Level{
	"DEBUG": LevelDebug,
	"INFO":  LevelInfo,
	"WARN":  LevelWarn,
	"ERROR": LevelError,
}

// ParseLevel maps DEBUG/INFO/WARN/ERROR (any case) to a Level.
func ParseLevel(s string) (Level, error) {
	l, ok := levelNames[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return LevelInfo, errors.Errorf("unknown log level %q", s)
	}
	return l, nil
}

// LogConfig controls where and how much is logged.
type LogConfig struct {
	LogPath        string // rotated log file prefix; empty logs to console only
	LogLevel       Level
	RotationMaxAge int // days a rotated file is kept
	RotationTime   int // hours between rotations
	RotationSize   int // MB before a forced rotation
	ShowLine       bool
	LogInConsole   bool
}

// DefaultLogConfig returns a console logger config; dev mode logs at debug level.
func DefaultLogConfig(isDev bool) *LogConfig {
	lc := &LogConfig{
		LogLevel:       LevelInfo,
		RotationMaxAge: 1,
		RotationTime:   24,
		RotationSize:   30,
		LogInConsole:   true,
	}
	if isDev {
		lc.LogLevel = LevelDebug
		lc.ShowLine = true
	}
	return lc
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zap.DebugLevel
	case LevelWarn:
		return zap.WarnLevel
	case LevelError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// New builds a named logger from lc (nil means DefaultLogConfig(false)).
func New(name string, lc *LogConfig) (*zap.Logger, error) {
	if lc == nil {
		lc = DefaultLogConfig(false)
	}
	zapLevel := lc.LogLevel.zapLevel()
	priority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapLevel
	})

	var syncers []zapcore.WriteSyncer
	if lc.LogInConsole || lc.LogPath == "" {
		syncers = append(syncers, zapcore.AddSync(os.Stdout))
	}
	if lc.LogPath != "" {
		rotation, err := rotatelogs.New(
			lc.LogPath+".%Y%m%d%H",
			rotatelogs.WithRotationTime(time.Duration(lc.RotationTime)*time.Hour),
			rotatelogs.WithRotationSize(int64(lc.RotationSize)*1024*1024),
			rotatelogs.WithMaxAge(24*time.Hour*time.Duration(lc.RotationMaxAge)),
		)
		if err != nil {
			return nil, errors.Wrap(err, "create rotating log file")
		}
		syncers = append(syncers, zapcore.AddSync(rotation))
	}

	levelEncoder := func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + level.CapitalString() + "]")
	}
	timeEncoder := func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
	}
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "line",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    levelEncoder,
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	})
	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(syncers...), priority)

	var opts []zap.Option
	if lc.ShowLine {
		opts = append(opts, zap.AddCaller())
	}
	return zap.New(core, opts...).Named(name), nil
}

package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

type Config struct {
	Level        LogLevel
	Format       string // "json" or "text"
	Output       string // "stdout", "stderr" or a file path
	EnableCaller bool
	Component    string
}

// Logger wraps slog.Logger with component scoping.
type Logger struct {
	*slog.Logger
	config Config
	output io.Writer
}

func DefaultConfig() Config {
	return Config{
		Level:        LevelInfo,
		Format:       "json",
		Output:       "stdout",
		EnableCaller: true,
	}
}

func New(config Config) *Logger {
	var level slog.Level
	switch config.Level {
	case LevelDebug:
		level = slog.LevelDebug
	case LevelWarn:
		level = slog.LevelWarn
	case LevelError:
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var output io.Writer
	switch config.Output {
	case "", "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		if err := os.MkdirAll(filepath.Dir(config.Output), os.ModePerm); err == nil {
			if file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666); err == nil {
				output = file
			}
		}
		if output == nil {
			output = os.Stdout
		}
	}

	return newWithWriter(config, output, level)
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *Logger {
	return newWithWriter(Config{Format: "text"}, io.Discard, slog.LevelError+1)
}

func newWithWriter(config Config, output io.Writer, level slog.Level) *Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if config.Format == "text" {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}

	l := slog.New(handler)
	if config.Component != "" {
		l = l.With("component", config.Component)
	}

	return &Logger{
		Logger: l,
		config: config,
		output: output,
	}
}

func (l *Logger) WithContext(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
		config: l.config,
		output: l.output,
	}
}

func (l *Logger) WithComponent(component string) *Logger {
	return l.WithContext("component", component)
}

// Error adds the caller's file:line when caller info is enabled.
func (l *Logger) Error(msg string, args ...any) {
	if l.config.EnableCaller {
		if _, file, line, ok := runtime.Caller(1); ok {
			args = append(args, "caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
		}
	}
	l.Logger.Error(msg, args...)
}

func (l *Logger) Close() error {
	if closer, ok := l.output.(io.Closer); ok && l.output != os.Stdout && l.output != os.Stderr {
		return closer.Close()
	}
	return nil
}

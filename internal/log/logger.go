// Package log is the launcher's leveled, structured logger. It keeps a small
// package-level API (Info, Warnf, LogWithFields, ...) on top of logrus so
// callers never import logrus directly.
package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"codelaunch/internal/errors"

	"github.com/sirupsen/logrus"
)

// FileName is the log file written beside the executable.
const FileName = "codelaunch.log"

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single structured key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type options struct {
	out     io.Writer
	json    bool
	file    string
	console bool
	level   logrus.Level
}

// Option configures a Logger.
type Option func(*options)

// WithOutput sends log lines to w instead of stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile additionally appends every line to path.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithoutConsole drops the console writer; only the file (if any) is used.
func WithoutConsole() Option {
	return func(o *options) { o.console = false }
}

// WithLevel sets the minimum level for non-debug messages.
func WithLevel(level string) Option {
	return func(o *options) {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			o.level = lvl
		}
	}
}

// Logger wraps a logrus entry with a fixed field set.
type Logger struct {
	entry *logrus.Entry
	level logrus.Level
	file  *os.File
}

// NewLogger creates a logger writing to stderr at info level.
func NewLogger(opts ...Option) *Logger {
	o := &options{out: os.Stderr, console: true, level: logrus.InfoLevel}
	for _, opt := range opts {
		opt(o)
	}

	var writers []io.Writer
	if o.console && o.out != nil {
		writers = append(writers, o.out)
	}

	var file *os.File
	if o.file != "" {
		f, err := os.OpenFile(o.file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: cannot open %s: %v\n", o.file, err)
		} else {
			file = f
			writers = append(writers, f)
		}
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	base := logrus.New()
	base.SetOutput(io.MultiWriter(writers...))
	base.SetLevel(logrus.TraceLevel)
	base.SetFormatter(&formatter{json: o.json})

	return &Logger{
		entry: logrus.NewEntry(base),
		level: o.level,
		file:  file,
	}
}

// Configure replaces the package-level logger.
func Configure(opts ...Option) {
	old := logger
	logger = NewLogger(opts...)
	if old != nil && old.file != nil {
		old.file.Close()
	}
}

// Close releases the log file held by the package-level logger, if any.
func Close() {
	if logger.file != nil {
		logger.file.Close()
		logger.file = nil
	}
}

// DefaultFilePath returns the log path beside the running executable.
func DefaultFilePath() string {
	exe, err := os.Executable()
	if err != nil {
		return FileName
	}
	return filepath.Join(filepath.Dir(exe), FileName)
}

// SetDebug enables or disables debug output for every logger.
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// IsDebug reports whether debug output is enabled.
func IsDebug() bool {
	return isDebug.Load()
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), level: l.level, file: l.file}
}

// Debug logs msg when debug output is enabled.
func (l *Logger) Debug(msg string) {
	l.log(2, logrus.DebugLevel, msg)
}

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(2, logrus.DebugLevel, fmt.Sprintf(format, args...))
}

// Info logs msg at info level.
func (l *Logger) Info(msg string) {
	l.log(2, logrus.InfoLevel, msg)
}

// Infof logs a formatted info message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(2, logrus.InfoLevel, fmt.Sprintf(format, args...))
}

// Warn logs msg at warning level.
func (l *Logger) Warn(msg string) {
	l.log(2, logrus.WarnLevel, msg)
}

// Warnf logs a formatted warning.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(2, logrus.WarnLevel, fmt.Sprintf(format, args...))
}

// Error logs msg at error level.
func (l *Logger) Error(msg string) {
	l.log(2, logrus.ErrorLevel, msg)
}

// Errorf logs a formatted error.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(2, logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

// log writes one record; depth is the number of frames between log and the
// user call site.
func (l *Logger) log(depth int, level logrus.Level, msg string) {
	if level == logrus.DebugLevel {
		if !isDebug.Load() {
			return
		}
	} else if level > l.level {
		return
	}
	entry := l.entry
	if _, file, line, ok := runtime.Caller(depth); ok {
		entry = entry.WithField("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	entry.Log(level, msg)
}

func sprintf(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Info logs at info level. Arguments are applied to format when present.
func Info(format string, args ...interface{}) {
	logger.log(2, logrus.InfoLevel, sprintf(format, args))
}

// Infof logs a formatted info message
func Infof(format string, args ...interface{}) {
	logger.log(2, logrus.InfoLevel, fmt.Sprintf(format, args...))
}

// Debug logs a debug message when debug output is enabled
func Debug(format string, args ...interface{}) {
	logger.log(2, logrus.DebugLevel, sprintf(format, args))
}

// Debugf logs a formatted debug message
func Debugf(format string, args ...interface{}) {
	logger.log(2, logrus.DebugLevel, fmt.Sprintf(format, args...))
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	logger.log(2, logrus.WarnLevel, sprintf(format, args))
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.log(2, logrus.WarnLevel, fmt.Sprintf(format, args...))
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	logger.log(2, logrus.ErrorLevel, sprintf(format, args))
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.log(2, logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

// LogWithFields returns the package logger with extra fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError attaches err and whatever typed detail it carries.
func LogWithError(err error) *Logger {
	if err == nil {
		return logger.With(F("error", "<nil>"))
	}
	fields := []Field{
		F("error", err.Error()),
		F("error_kind", int(errors.KindOf(err))),
	}

	var configErr *errors.ConfigError
	var scanWarning *errors.ScanWarning
	var validationErr *errors.ValidationError
	var launchErr *errors.LaunchError
	switch {
	case errors.As(err, &configErr):
		fields = append(fields, F("path", configErr.Path()))
	case errors.As(err, &scanWarning):
		fields = append(fields, F("name", scanWarning.Name()))
	case errors.As(err, &validationErr):
		fields = append(fields, F("input", validationErr.Input()))
	case errors.As(err, &launchErr):
		fields = append(fields, F("command", strings.Join(launchErr.Command(), " ")))
	}
	return logger.With(fields...)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	LogWithError(err).log(2, logrus.ErrorLevel, msg)
}

// formatter renders "[time] LEVEL: message key=value ..." or JSON.
type formatter struct {
	json bool
}

func (f *formatter) Format(e *logrus.Entry) ([]byte, error) {
	level := strings.ToUpper(e.Level.String())
	if level == "WARNING" {
		level = "WARN"
	}
	timestamp := e.Time.Format("2006-01-02 15:04:05")

	if f.json {
		data := make(map[string]interface{}, len(e.Data)+3)
		for k, v := range e.Data {
			if err, ok := v.(error); ok {
				v = err.Error()
			}
			data[k] = v
		}
		data["level"] = level
		data["message"] = e.Message
		data["timestamp"] = timestamp
		out, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	}

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		if k != "caller" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", timestamp, level, e.Message)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	if caller, ok := e.Data["caller"]; ok {
		fmt.Fprintf(&b, " (%v)", caller)
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

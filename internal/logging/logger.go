// Package logging provides the prefixed loggers shared by the hosts. Every
// line carries the session id so runs can be told apart in one file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	DefaultDir  = "logs"
	logFileName = "snake.log"
)

type Logger struct {
	session string

	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// New writes every level to w under a fresh session id.
func New(w io.Writer) *Logger {
	session := uuid.New().String()
	flags := log.Ldate | log.Ltime | log.Lmicroseconds
	return &Logger{
		session:     session,
		infoLogger:  log.New(w, "[SNAKE-INFO] ", flags),
		warnLogger:  log.New(w, "[SNAKE-WARN] ", flags),
		errorLogger: log.New(w, "[SNAKE-ERROR] ", flags),
	}
}

// Discard returns a logger that writes nowhere.
func Discard() *Logger {
	return New(io.Discard)
}

// Open returns a logger for a host. With debug set it appends to
// dir/snake.log, otherwise it writes to fallback. The returned close func is
// always safe to call.
func Open(dir string, debug bool, fallback io.Writer) (*Logger, func() error, error) {
	if !debug {
		return New(fallback), func() error { return nil }, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, errors.Wrap(err, "create log directory")
	}
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open log file")
	}
	return New(f), f.Close, nil
}

func (l *Logger) Session() string {
	return l.session
}

func (l *Logger) Info(format string, args ...any) {
	l.infoLogger.Printf("%s %s", l.session, fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.warnLogger.Printf("%s %s", l.session, fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.errorLogger.Printf("%s %s", l.session, fmt.Sprintf(format, args...))
}

// Event logs a game event against the round it happened in.
func (l *Logger) Event(kind string, round int, details string) {
	l.infoLogger.Printf("%s [EVENT:%s] round:%d | %s", l.session, kind, round, details)
}

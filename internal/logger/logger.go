package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	once   sync.Once
	logger *log.Logger
	level  atomic.Int32
)

func init() {
	level.Store(int32(LevelInfo))
}

func Init() {
	once.Do(func() {
		logger = log.New(os.Stdout, "APP_LOG: ", log.LstdFlags|log.Lshortfile)
	})
}

// SetOutput redirects the package logger, e.g. to a buffer in tests.
func SetOutput(w io.Writer) {
	Init()
	logger.SetOutput(w)
}

// SetLevel sets the minimum level written. Unknown names fall back to info.
func SetLevel(name string) {
	level.Store(int32(ParseLevel(name)))
}

func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func output(l Level, prefix, message string, v ...interface{}) {
	if l < Level(level.Load()) {
		return
	}
	Init()
	// depth 3: output -> Info/Error/... -> caller
	_ = logger.Output(3, prefix+fmt.Sprintf(message, v...))
}

func Info(message string, v ...interface{}) {
	output(LevelInfo, "INFO: ", message, v...)
}

func Warn(message string, v ...interface{}) {
	output(LevelWarn, "WARN: ", message, v...)
}

func Error(message string, v ...interface{}) {
	output(LevelError, "ERROR: ", message, v...)
}

func Debug(message string, v ...interface{}) {
	output(LevelDebug, "DEBUG: ", message, v...)
}

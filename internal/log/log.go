// internal/log/log.go

// Package log writes to a file under the temp directory. The TUI owns
// stdout while it runs, so nothing here may print to the terminal
// before Close.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
)

var (
	InfoLog    = log.New(io.Discard, "", 0)
	WarningLog = log.New(io.Discard, "", 0)
	ErrorLog   = log.New(io.Discard, "", 0)
	DebugLog   = log.New(io.Discard, "", 0)
)

var debugEnabled = os.Getenv("DEBUG") == "true" || os.Getenv("DEBUG") == "1"

var logFileName = filepath.Join(os.TempDir(), "reponest.log")

var (
	globalLogFile *os.File
	warned        atomic.Bool
)

// warnTracker remembers that something worth telling the user about was
// logged, so Close can point at the file.
type warnTracker struct {
	w io.Writer
}

func (t warnTracker) Write(p []byte) (int, error) {
	warned.Store(true)
	return t.w.Write(p)
}

// Initialize opens the log file and wires the package loggers. Call it
// once at startup and defer Close. When the file cannot be opened the
// loggers fall back to stderr.
func Initialize() {
	flags := log.Ldate | log.Ltime | log.Lshortfile

	var sink io.Writer
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using stderr for logging: %v\n", err)
		sink = os.Stderr
	} else {
		globalLogFile = f
		sink = f
	}

	InfoLog = log.New(sink, "INFO: ", flags)
	WarningLog = log.New(warnTracker{sink}, "WARNING: ", flags)
	ErrorLog = log.New(warnTracker{sink}, "ERROR: ", flags)
	if debugEnabled {
		DebugLog = log.New(sink, "DEBUG: ", flags)
	} else {
		DebugLog = log.New(io.Discard, "", 0)
	}
}

// Close closes the log file and, when warnings or errors were written,
// prints its location. Call it after the TUI has released the terminal.
func Close() {
	if globalLogFile != nil {
		_ = globalLogFile.Close()
	}
	if warned.Load() {
		fmt.Println("wrote logs to " + logFileName)
	}
}

// IsDebugEnabled reports whether DEBUG-level logging is on.
func IsDebugEnabled() bool {
	return debugEnabled
}

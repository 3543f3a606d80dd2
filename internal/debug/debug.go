// Package debug provides opt-in structured logging for ngp's core. Output is
// silent unless explicitly enabled, because the TUI owns the terminal while
// it runs and stray stdout/stderr writes would corrupt the display.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnableDebug can be overridden at build time:
// go build -ldflags "-X github.com/standardbeagle/ngp/internal/debug.EnableDebug=true"
var EnableDebug = "false"

// TUIActive tracks whether the terminal UI currently owns the screen. While
// true, all debug output is suppressed regardless of EnableDebug, since the
// only legal writer of the terminal is the UI redraw loop.
var TUIActive = false

var (
	debugOutput io.Writer
	debugFile   *os.File
	debugMutex  sync.Mutex
)

// SetTUIActive toggles suppression of debug output while the TUI owns the
// screen. cmd/ngp calls this around the bubbletea program's Run.
func SetTUIActive(active bool) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	TUIActive = active
}

// SetOutput sets a custom writer for debug output. Pass nil to disable.
func SetOutput(w io.Writer) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	debugOutput = w
}

// InitLogFile initializes debug logging to a timestamped file under the OS
// temp directory and returns its path. Call CloseLogFile when done.
func InitLogFile() (string, error) {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	logDir := filepath.Join(os.TempDir(), "ngp-debug-logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create debug log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02T150405")
	logPath := filepath.Join(logDir, fmt.Sprintf("debug-%s.log", timestamp))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugFile = file
	debugOutput = file
	return logPath, nil
}

// CloseLogFile closes the debug log file if one is open.
func CloseLogFile() error {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	if debugFile != nil {
		err := debugFile.Close()
		debugFile = nil
		debugOutput = nil
		return err
	}
	return nil
}

// IsEnabled reports whether debug output should currently be written.
func IsEnabled() bool {
	if TUIActive {
		return false
	}
	if EnableDebug == "true" {
		return true
	}
	return os.Getenv("NGP_DEBUG") == "1"
}

func writer() io.Writer {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	return debugOutput
}

// Log writes a structured debug line tagged with a component name.
func Log(component, format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG:%s] "+format+"\n", append([]interface{}{component}, args...)...)
}

// LogScan logs the scan pipeline (walker, splitter, workers, collator).
func LogScan(format string, args ...interface{}) { Log("SCAN", format, args...) }

// LogSubsearch logs subsearch-stack construction.
func LogSubsearch(format string, args ...interface{}) { Log("SUBSEARCH", format, args...) }

// LogConfig logs config file and CLI-flag resolution.
func LogConfig(format string, args ...interface{}) { Log("CONFIG", format, args...) }

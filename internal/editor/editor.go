// Package editor invokes the user's $EDITOR on a result-store hit, filling
// in the ngprc command template and shelling out to it.
package editor

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/standardbeagle/ngp/internal/result"
)

// Invoke opens entry (a LineHit) in the configured editor. commandTemplate
// is the printf-style string loaded from ngprc, with four conversion
// specifiers consumed in order: the line number, the file path, the
// sanitized pattern, and a case-insensitivity suffix ("\c" for vim-style
// search, empty otherwise). mu guards the read of store's file/line pair
// against a concurrent collator write; the shell-out itself runs outside
// the lock so a slow editor never blocks scanning.
//
// The editor's exit code is discarded: ngp has no recovery action to take
// on a nonzero exit, and the terminal has already been handed back to it by
// the time Invoke returns.
func Invoke(commandTemplate string, store *result.Store, index int, pattern string, caseInsensitive bool, mu *sync.RWMutex) error {
	cmd, err := Command(commandTemplate, store, index, pattern, caseInsensitive, mu)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return err
	}
	return nil
}

// Command builds the *exec.Cmd Invoke would run, without running it. A TUI
// uses this form directly so it can suspend its own terminal session around
// the editor's, instead of shelling out underneath a live screen.
func Command(commandTemplate string, store *result.Store, index int, pattern string, caseInsensitive bool, mu *sync.RWMutex) (*exec.Cmd, error) {
	mu.RLock()
	path, ok := store.FindFile(index)
	line := store.Get(index).Line
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("editor: no file marker precedes entry %d", index)
	}

	command := fmt.Sprintf(commandTemplate, line, path, SanitizePattern(pattern), caseSuffix(caseInsensitive))
	return exec.Command("sh", "-c", command), nil
}

// SanitizePattern backslash-escapes every '/' and '\'' byte in pattern, the
// two characters vim's search command treats specially.
func SanitizePattern(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern))
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '/' || c == '\'' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// caseSuffix returns vim's case-insensitive search suffix when the root
// search was run with -i, and the empty string otherwise.
func caseSuffix(caseInsensitive bool) string {
	if caseInsensitive {
		return `\c`
	}
	return ""
}

// Package tui implements the interactive result browser: a cooperative,
// single-threaded reader of a search's result store, built on
// bubbletea's Elm-architecture model.
package tui

import (
	"sync"

	"github.com/standardbeagle/ngp/internal/subsearch"
)

type mode int

const (
	modeBrowse mode = iota
	modePrompt
)

// reservedRows is the header and status lines that never hold an entry.
const reservedRows = 2

// Model is the bubbletea model driving ngp's result browser. Its only
// cross-goroutine coordination with the scan pipeline's collator is
// acquiring mu before reading the current search's store (§5 of the
// concurrency model).
type Model struct {
	current *subsearch.Search
	mu      *sync.RWMutex

	editorTemplate  string
	caseInsensitive bool

	cursor int // absolute index into current.Store
	offset int // index of the first visible row

	width  int
	height int

	mode      mode
	promptBuf []rune

	quitting bool
	lastErr  error
}

// New builds the browser model for root, the root search created at
// startup.
func New(root *subsearch.Search, mu *sync.RWMutex, editorTemplate string, caseInsensitive bool) *Model {
	return &Model{
		current:         root,
		mu:              mu,
		editorTemplate:  editorTemplate,
		caseInsensitive: caseInsensitive,
		height:          24,
		width:           80,
	}
}

// storeLen reads the current search's entry count under the data mutex.
func (m *Model) storeLen() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Store.Len()
}

// pageSize is the number of entry rows visible at once.
func (m *Model) pageSize() int {
	rows := m.height - reservedRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

// clampCursor keeps cursor within [0, len) and offset within a window that
// always contains cursor.
func (m *Model) clampCursor() {
	n := m.storeLen()
	if n == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}

	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// moveCursor shifts the cursor by delta rows, clamping at the store's ends.
func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

// pageUp moves the cursor a full page toward the start.
func (m *Model) pageUp() { m.moveCursor(-m.pageSize()) }

// pageDown moves the cursor a full page toward the end.
func (m *Model) pageDown() { m.moveCursor(m.pageSize()) }

// openPrompt switches to subsearch-pattern entry mode.
func (m *Model) openPrompt() {
	m.mode = modePrompt
	m.promptBuf = m.promptBuf[:0]
}

// cancelPrompt discards prompt input and returns to browsing.
func (m *Model) cancelPrompt() {
	m.mode = modeBrowse
	m.promptBuf = nil
}

// appendPromptRune appends one typed rune to the pending subsearch pattern.
func (m *Model) appendPromptRune(r rune) {
	m.promptBuf = append(m.promptBuf, r)
}

// backspacePrompt removes the last typed rune, if any.
func (m *Model) backspacePrompt() {
	if len(m.promptBuf) > 0 {
		m.promptBuf = m.promptBuf[:len(m.promptBuf)-1]
	}
}

// confirmPrompt derives a child search from the typed pattern and makes it
// current. An empty pattern or a failed compile leaves current unchanged;
// the caller is expected to surface lastErr.
func (m *Model) confirmPrompt() {
	pattern := string(m.promptBuf)
	m.mode = modeBrowse
	m.promptBuf = nil

	m.mu.RLock()
	child, err := subsearch.CreateChild(m.current, pattern)
	m.mu.RUnlock()
	if err != nil {
		m.lastErr = err
		return
	}
	m.current = child
	m.cursor, m.offset = 0, 0
}

// popOrQuit pops one level of the subsearch stack, or requests exit if
// already at the root.
func (m *Model) popOrQuit() {
	if m.current.Parent == nil {
		m.quitting = true
		return
	}
	m.current = subsearch.Terminate(m.current)
	m.cursor, m.offset = 0, 0
}

package tui

import (
	"errors"
	"os/exec"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/standardbeagle/ngp/internal/editor"
)

// statusTick drives the 10ms status-indicator refresh.
const statusTick = 10 * time.Millisecond

type tickMsg time.Time

type editorDoneMsg struct{ err error }

// Init starts the status-refresh ticker.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(statusTick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update dispatches keyboard input, resize, and the periodic status tick.
// The only blocking work it triggers is the editor shell-out, suspended via
// tea.ExecProcess so the terminal session is handed to the editor and
// restored on return, per the confirm-opens-editor contract.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampCursor()
		return m, nil

	case tickMsg:
		return m, tickCmd()

	case editorDoneMsg:
		m.lastErr = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modePrompt {
		return m.handlePromptKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "pgup":
		m.pageUp()
	case "pgdown":
		m.pageDown()
	case "enter":
		return m, m.openEditorCmd()
	case "/":
		m.openPrompt()
	case "q", "esc", "ctrl+c":
		m.popOrQuit()
		if m.quitting {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.confirmPrompt()
	case tea.KeyEsc:
		m.cancelPrompt()
	case tea.KeyBackspace:
		m.backspacePrompt()
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.appendPromptRune(r)
		}
	}
	return m, nil
}

// openEditorCmd builds the exec.Cmd for the entry under the cursor and
// hands it to tea.ExecProcess, which suspends this program's terminal
// session for the duration of the editor and restarts it on return.
func (m *Model) openEditorCmd() tea.Cmd {
	if m.storeLen() == 0 {
		return nil
	}
	cmd, err := editor.Command(m.editorTemplate, m.current.Store, m.cursor, m.current.Pattern, m.caseInsensitive, m.mu)
	if err != nil {
		m.lastErr = err
		return nil
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			err = nil
		}
		return editorDoneMsg{err: err}
	})
}

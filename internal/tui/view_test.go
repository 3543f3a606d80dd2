package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewRendersHeaderAndEntries(t *testing.T) {
	m := newTestModel(t, 2)
	out := m.View()

	assert.Contains(t, out, "needle")
	assert.Contains(t, out, "a.c")
}

func TestViewShowsPromptLineInPromptMode(t *testing.T) {
	m := newTestModel(t, 2)
	m.openPrompt()
	for _, r := range "file" {
		m.appendPromptRune(r)
	}

	out := m.View()
	assert.True(t, strings.Contains(out, "/file"))
}

func TestViewEmptyWhenQuitting(t *testing.T) {
	m := newTestModel(t, 2)
	m.quitting = true
	assert.Equal(t, "", m.View())
}

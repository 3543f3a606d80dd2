package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempRC(t *testing.T, contents string) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "ngprc-*")
	require.NoError(t, err)
	_, err = f.WriteString(contents)
	require.NoError(t, err)
	_, err = f.Seek(0, 0)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestParseNGPRCEditorCommand(t *testing.T) {
	rc := `# comment with no semicolon is skipped
vim: "vim +%d '%s' +/'%s'%s";
`
	f := writeTempRC(t, rc)
	attrs, err := parseNGPRC(f, "vim")
	require.NoError(t, err)
	assert.Equal(t, `vim +%d '%s' +/'%s'%s`, attrs.EditorCommand)
}

func TestParseNGPRCFilesAndExtensions(t *testing.T) {
	rc := `files: "Makefile Dockerfile";
extensions: ".c .h .go";
`
	f := writeTempRC(t, rc)
	attrs, err := parseNGPRC(f, "vim")
	require.NoError(t, err)
	assert.Equal(t, []string{"Makefile", "Dockerfile"}, attrs.SpecialFiles)
	assert.Equal(t, []string{".c", ".h", ".go"}, attrs.Extensions)
}

func TestParseNGPRCSkipsLinesWithoutSemicolon(t *testing.T) {
	rc := `files "Makefile"
extensions: ".c";
`
	f := writeTempRC(t, rc)
	attrs, err := parseNGPRC(f, "vim")
	require.NoError(t, err)
	assert.Empty(t, attrs.SpecialFiles)
	assert.Equal(t, []string{".c"}, attrs.Extensions)
}

func TestParseNGPRCIndependentChecksPerLine(t *testing.T) {
	// A single line can legitimately set more than one attribute if it
	// happens to contain more than one trigger token; the checks are not
	// mutually exclusive, matching get_config's sequential if-statements.
	rc := `emacs files extensions: "one two";
`
	f := writeTempRC(t, rc)
	attrs, err := parseNGPRC(f, "emacs")
	require.NoError(t, err)
	assert.Equal(t, "one two", attrs.EditorCommand)
	assert.Equal(t, []string{"one", "two"}, attrs.SpecialFiles)
	assert.Equal(t, []string{"one", "two"}, attrs.Extensions)
}

func TestEditorBasenameDefaultsToVim(t *testing.T) {
	old, had := os.LookupEnv("EDITOR")
	os.Unsetenv("EDITOR")
	defer func() {
		if had {
			os.Setenv("EDITOR", old)
		}
	}()
	assert.Equal(t, "vim", editorBasename())
}

func TestEditorBasenameUsesBasenameOfPath(t *testing.T) {
	old, had := os.LookupEnv("EDITOR")
	os.Setenv("EDITOR", "/usr/local/bin/nvim")
	defer func() {
		if had {
			os.Setenv("EDITOR", old)
		} else {
			os.Unsetenv("EDITOR")
		}
	}()
	assert.Equal(t, "nvim", editorBasename())
}

func TestQuotedPayload(t *testing.T) {
	payload, ok := quotedPayload(`vim: "vim +%d '%s'";`)
	require.True(t, ok)
	assert.Equal(t, `vim +%d '%s'`, payload)

	_, ok = quotedPayload(`no quotes here;`)
	assert.False(t, ok)
}

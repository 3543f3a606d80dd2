package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	ngperrors "github.com/standardbeagle/ngp/internal/errors"
)

const (
	systemRCPath = "/etc/ngprc"
	localRCPath  = "./ngprc"
)

// LoadNGPRC searches /etc/ngprc then ./ngprc, in that order, and parses the
// first one found. Failure to find either is a startup ConfigError: ngp has
// no built-in defaults for the editor command, so there is nothing
// reasonable to fall back to.
func LoadNGPRC() (MainSearchAttributes, error) {
	f, path, err := openFirst(systemRCPath, localRCPath)
	if err != nil {
		return MainSearchAttributes{}, ngperrors.NewConfigError("ngprc", "", err)
	}
	defer f.Close()

	attrs, err := parseNGPRC(f, editorBasename())
	if err != nil {
		return MainSearchAttributes{}, ngperrors.NewConfigError("ngprc", path, err)
	}
	return attrs, nil
}

func openFirst(paths ...string) (*os.File, string, error) {
	var firstErr error
	for _, p := range paths {
		f, err := os.Open(p)
		if err == nil {
			return f, p, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, "", firstErr
}

// editorBasename resolves the $EDITOR environment variable to its basename,
// defaulting to "vim" when unset. ngprc's editor-command line is matched by
// this basename appearing anywhere in the line.
func editorBasename() string {
	if env := os.Getenv("EDITOR"); env != "" {
		return filepath.Base(env)
	}
	return "vim"
}

// parseNGPRC implements get_config's line grammar: a line is only
// significant if it contains a semicolon, and its payload is whatever falls
// between the first two double quotes on that line. A line matching the
// editor's basename supplies the printf-style editor command template; a
// line containing "files" or "extensions" supplies a space-separated list
// for the corresponding attribute. These three checks are independent, not
// mutually exclusive, mirroring the original parser.
func parseNGPRC(f *os.File, editorBase string) (MainSearchAttributes, error) {
	var attrs MainSearchAttributes

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, ";") {
			continue
		}

		payload, ok := quotedPayload(line)
		if !ok {
			continue
		}

		if strings.Contains(line, editorBase) {
			attrs.EditorCommand = payload
		}
		if strings.Contains(line, "files") {
			attrs.SpecialFiles = append(attrs.SpecialFiles, strings.Fields(payload)...)
		}
		if strings.Contains(line, "extensions") {
			attrs.Extensions = append(attrs.Extensions, strings.Fields(payload)...)
		}
	}
	if err := scanner.Err(); err != nil {
		return MainSearchAttributes{}, err
	}
	return attrs, nil
}

// quotedPayload returns the text between the first and second double quote
// on the line.
func quotedPayload(line string) (string, bool) {
	start := strings.IndexByte(line, '"')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(line[start+1:], '"')
	if end < 0 {
		return "", false
	}
	return line[start+1 : start+1+end], true
}

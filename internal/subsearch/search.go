// Package subsearch implements the Search node and the parent/child stack
// of derived searches that refine a result set by a new pattern.
package subsearch

import (
	"errors"

	ngperrors "github.com/standardbeagle/ngp/internal/errors"
	"github.com/standardbeagle/ngp/internal/matcher"
	"github.com/standardbeagle/ngp/internal/result"
)

// Status is a search's lifecycle state.
type Status int

const (
	StatusScanning Status = iota
	StatusDone
)

// ErrEmptyPattern is returned when a subsearch prompt is cancelled with an
// empty pattern.
var ErrEmptyPattern = errors.New("subsearch pattern is empty")

// Search is one node in the subsearch stack: the root search (attached to
// a directory and a live scan pipeline) or a derived search (filtering its
// parent's entries, no scanner of its own).
type Search struct {
	Pattern string
	IsRegex bool
	Matcher matcher.Matcher

	Directory string // root only; empty for derived searches

	Store *result.Store

	Cursor int
	Index  int
	Status Status

	Parent *Search
	Child  *Search
}

// NewRoot constructs the root search's matcher and empty result store. The
// scan pipeline populates the store; its caller sets Status to StatusDone
// once the pipeline's Run has returned. A pattern that fails to compile is
// reported as a ConfigError.
func NewRoot(directory, pattern string, isRegex, caseInsensitive bool) (*Search, error) {
	m, err := matcher.Select([]byte(pattern), isRegex, caseInsensitive)
	if err != nil {
		return nil, ngperrors.NewConfigError("pattern", pattern, err)
	}
	return &Search{
		Pattern:   pattern,
		IsRegex:   isRegex,
		Matcher:   m,
		Directory: directory,
		Store:     result.NewStore(result.RootGrowthIncrement),
		Status:    StatusScanning,
	}, nil
}

// CreateChild derives a new search from parent by filtering its entries
// against pattern, always compiled as a regex. An empty pattern cancels
// (ErrEmptyPattern); a pattern that fails to compile abandons the child
// with the compile error. On success, parent.Child is set to the
// returned search.
func CreateChild(parent *Search, pattern string) (*Search, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	m, err := matcher.Select([]byte(pattern), true, false)
	if err != nil {
		return nil, ngperrors.NewSubsearchError(pattern, err)
	}

	child := &Search{
		Pattern: pattern,
		IsRegex: true,
		Matcher: m,
		Store:   result.NewStore(result.DerivedGrowthIncrement),
		Status:  StatusDone,
		Parent:  parent,
	}
	filterEntries(parent, m, child.Store)
	child.Store.Trim()

	parent.Child = child
	return child, nil
}

// filterEntries walks the parent's entries in order, flushing a pending
// FileMarker into the child store the first time one of its lines
// survives the child's matcher. A FileMarker with no surviving lines is
// silently dropped; a later FileMarker in the parent supersedes any still
// pending one, since the previous file had no surviving lines.
func filterEntries(parent *Search, m matcher.Matcher, store *result.Store) {
	var pendingPath string
	pending := false

	for i := 0; i < parent.Store.Len(); i++ {
		e := parent.Store.Get(i)
		if e.IsFile() {
			pendingPath = e.Path
			pending = true
			continue
		}

		if _, found := m.Find(e.Text); found {
			if pending {
				store.AppendFile(pendingPath)
				pending = false
			}
			store.AppendLine(e.Text, e.Line)
		}
	}
}

// Terminate detaches search from its parent and returns the parent, which
// becomes the current search again. Calling Terminate on the root search
// returns nil.
func Terminate(search *Search) *Search {
	parent := search.Parent
	if parent != nil {
		parent.Child = nil
	}
	return parent
}

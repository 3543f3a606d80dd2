// Package result implements the append-only ordered entry sequence that a
// search's collator writes and its UI reads: FileMarker and LineHit
// entries, random access by index, and the backward scan an editor
// invocation uses to recover a hit's owning file.
package result

// Kind discriminates an Entry's two variants.
type Kind int

const (
	KindFileMarker Kind = iota
	KindLineHit
)

// maxSnippetBytes bounds a LineHit's stored text, including the
// terminator the original scanner counted against the 256-byte budget.
const maxSnippetBytes = 255

// Entry is one element of a search's result sequence: either a FileMarker
// (Line == 0, Path set) or a LineHit (Line >= 1, Text set).
type Entry struct {
	Kind Kind
	Path string
	Text []byte
	Line int
}

// IsFile reports whether this entry is a FileMarker.
func (e Entry) IsFile() bool { return e.Kind == KindFileMarker }

const (
	initialCapacity = 100

	// RootGrowthIncrement is the capacity step for the root search's store.
	RootGrowthIncrement = 500

	// DerivedGrowthIncrement is the capacity step for a subsearch's store.
	// The original derived-search growth check used a nonstandard
	// nbentry%100>=98 condition; this unifies both searches on the same
	// capacity-exceeded rule; the size of the step is what still differs.
	DerivedGrowthIncrement = 100
)

// Store is the append-only result sequence for one search. It performs no
// internal locking: the collator is its sole writer, and callers that read
// concurrently with a live scan must hold the search-level data mutex
// described in the concurrency model.
type Store struct {
	entries  []Entry
	nbLines  int
	growBy   int
}

// NewStore creates an empty store with the given growth increment (use
// RootGrowthIncrement for the root search, DerivedGrowthIncrement for a
// subsearch).
func NewStore(growBy int) *Store {
	return &Store{
		entries: make([]Entry, 0, initialCapacity),
		growBy:  growBy,
	}
}

// AppendFile appends a FileMarker for path. It never merges with a prior
// marker, even a contiguous one for the same path.
func (s *Store) AppendFile(path string) {
	s.reserve(1)
	s.entries = append(s.entries, Entry{Kind: KindFileMarker, Path: path})
}

// AppendLine appends a LineHit, truncating text to the snippet budget and
// incrementing the line-hit count.
func (s *Store) AppendLine(text []byte, lineNo int) {
	s.reserve(1)
	snippet := text
	if len(snippet) > maxSnippetBytes {
		snippet = snippet[:maxSnippetBytes]
	}
	cp := make([]byte, len(snippet))
	copy(cp, snippet)
	s.entries = append(s.entries, Entry{Kind: KindLineHit, Text: cp, Line: lineNo})
	s.nbLines++
}

// reserve grows the backing slice by growBy whenever an append would
// exceed its current capacity, mirroring the original's
// capacity-exceeded-by-a-fixed-increment reallocation rule.
func (s *Store) reserve(n int) {
	if len(s.entries)+n <= cap(s.entries) {
		return
	}
	grown := make([]Entry, len(s.entries), cap(s.entries)+s.growBy)
	copy(grown, s.entries)
	s.entries = grown
}

// Len returns the total entry count (FileMarkers and LineHits combined).
func (s *Store) Len() int { return len(s.entries) }

// NbLines returns the count of LineHit entries appended so far.
func (s *Store) NbLines() int { return s.nbLines }

// Get returns the entry at i.
func (s *Store) Get(i int) Entry { return s.entries[i] }

// IsFile reports whether the entry at i is a FileMarker.
func (s *Store) IsFile(i int) bool { return s.entries[i].IsFile() }

// FindFile scans backward from i to the nearest preceding FileMarker and
// returns its path. It is the helper an editor invocation uses: the UI
// only tracks a line index, but the editor needs the file path that owns
// it.
func (s *Store) FindFile(i int) (string, bool) {
	for j := i; j >= 0; j-- {
		if s.entries[j].IsFile() {
			return s.entries[j].Path, true
		}
	}
	return "", false
}

// Entries returns the full entry sequence. Callers must not mutate the
// returned slice.
func (s *Store) Entries() []Entry { return s.entries }

// Trim reallocates the backing slice down to its exact length, releasing
// any unused growth-increment headroom. A subsearch calls this once its
// entries are final.
func (s *Store) Trim() {
	if cap(s.entries) == len(s.entries) {
		return
	}
	trimmed := make([]Entry, len(s.entries))
	copy(trimmed, s.entries)
	s.entries = trimmed
}

package subsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rootWithEntries(t *testing.T, files map[string][]string) *Search {
	t.Helper()
	s, err := NewRoot(".", "x", true, false)
	require.NoError(t, err)

	for path, lines := range files {
		s.Store.AppendFile(path)
		for i, line := range lines {
			s.Store.AppendLine([]byte(line), i+1)
		}
	}
	return s
}

func TestCreateChildEmptyPatternCancels(t *testing.T) {
	root := rootWithEntries(t, map[string][]string{"a.c": {"hello"}})
	_, err := CreateChild(root, "")
	assert.ErrorIs(t, err, ErrEmptyPattern)
	assert.Nil(t, root.Child)
}

func TestCreateChildInvalidRegexAbandons(t *testing.T) {
	root := rootWithEntries(t, map[string][]string{"a.c": {"hello"}})
	_, err := CreateChild(root, "(unterminated")
	assert.Error(t, err)
	assert.Nil(t, root.Child)
}

func TestCreateChildFiltersOrphanMarkers(t *testing.T) {
	root := rootWithEntries(t, map[string][]string{
		"a.c": {"hello world", "nothing here"},
		"b.c": {"goodbye"},
	})

	child, err := CreateChild(root, "hello")
	require.NoError(t, err)

	require.Equal(t, 2, child.Store.Len())
	assert.True(t, child.Store.IsFile(0))
	assert.Equal(t, "a.c", child.Store.Get(0).Path)
	assert.Equal(t, "hello world", string(child.Store.Get(1).Text))
	assert.Equal(t, root, child.Parent)
	assert.Equal(t, child, root.Child)
}

func TestCreateChildDropsFilesWithNoSurvivors(t *testing.T) {
	root := rootWithEntries(t, map[string][]string{
		"a.c": {"nothing relevant"},
		"b.c": {"hello there"},
	})

	child, err := CreateChild(root, "hello")
	require.NoError(t, err)

	require.Equal(t, 2, child.Store.Len())
	assert.Equal(t, "b.c", child.Store.Get(0).Path)
}

func TestChildEntriesAreSubsequenceOfParent(t *testing.T) {
	root := rootWithEntries(t, map[string][]string{
		"a.c": {"hello world", "goodbye world", "hello again"},
	})
	child, err := CreateChild(root, "hello")
	require.NoError(t, err)

	parentTexts := []string{}
	for i := 0; i < root.Store.Len(); i++ {
		e := root.Store.Get(i)
		if !e.IsFile() {
			parentTexts = append(parentTexts, string(e.Text))
		}
	}
	childTexts := []string{}
	for i := 0; i < child.Store.Len(); i++ {
		e := child.Store.Get(i)
		if !e.IsFile() {
			childTexts = append(childTexts, string(e.Text))
		}
	}

	j := 0
	for _, want := range childTexts {
		for j < len(parentTexts) && parentTexts[j] != want {
			j++
		}
		require.Less(t, j, len(parentTexts), "child entry %q not found in parent order", want)
		j++
	}
}

func TestIdempotenceOfPattern(t *testing.T) {
	root := rootWithEntries(t, map[string][]string{
		"a.c": {"X marks the spot", "no match"},
	})
	child, err := CreateChild(root, "X")
	require.NoError(t, err)

	// Subsearching a search for its own pattern again should produce the
	// same hit set as that search.
	again, err := CreateChild(child, "X")
	require.NoError(t, err)

	assert.Equal(t, child.Store.NbLines(), again.Store.NbLines())
}

func TestCommutativityOfRefinement(t *testing.T) {
	root := rootWithEntries(t, map[string][]string{
		"a.c": {"A and B", "A only", "B only", "neither"},
	})

	ab, err := CreateChild(root, "A")
	require.NoError(t, err)
	abThenB, err := CreateChild(ab, "B")
	require.NoError(t, err)

	ba, err := CreateChild(root, "B")
	require.NoError(t, err)
	baThenA, err := CreateChild(ba, "A")
	require.NoError(t, err)

	collectLines := func(s *Search) map[string]bool {
		out := map[string]bool{}
		for i := 0; i < s.Store.Len(); i++ {
			e := s.Store.Get(i)
			if !e.IsFile() {
				out[string(e.Text)] = true
			}
		}
		return out
	}

	assert.Equal(t, collectLines(abThenB), collectLines(baThenA))
}

func TestImpossibleRegexYieldsZeroEntries(t *testing.T) {
	root := rootWithEntries(t, map[string][]string{
		"a.c": {"hello", "world"},
	})
	child, err := CreateChild(root, "zzz_never_matches_zzz")
	require.NoError(t, err)
	assert.Equal(t, 0, child.Store.Len())
}

func TestTerminateRestoresParent(t *testing.T) {
	root := rootWithEntries(t, map[string][]string{"a.c": {"hi"}})
	child, err := CreateChild(root, "hi")
	require.NoError(t, err)
	require.Equal(t, child, root.Child)

	parent := Terminate(child)
	assert.Equal(t, root, parent)
	assert.Nil(t, root.Child)
}

func TestTerminateRootReturnsNil(t *testing.T) {
	root := rootWithEntries(t, map[string][]string{"a.c": {"hi"}})
	assert.Nil(t, Terminate(root))
}

package scan

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/ngp/internal/matcher"
	"github.com/standardbeagle/ngp/internal/result"
)

func TestCollateDiscardsEmptyHits(t *testing.T) {
	store := result.NewStore(result.RootGrowthIncrement)
	var mu sync.RWMutex
	mf := &MappedFile{Path: "empty.c"}

	collate(mf, store, &mu)

	assert.Equal(t, 0, store.Len())
}

func TestCollateMergesBothWorkersInOrder(t *testing.T) {
	store := result.NewStore(result.RootGrowthIncrement)
	var mu sync.RWMutex

	// A real split, scanned by the actual workers rather than a hand-set
	// Midline, so this test would have caught the off-by-one where
	// Midline was computed as lineCount-1 instead of lineCount.
	data := []byte("aaa\nbbb\nccc\nddd\n")
	mid := computeMidpoint(data)
	require.Greater(t, mid, 0)
	require.Less(t, mid, len(data))

	m, err := matcher.Select([]byte("aaa|ddd"), true, false)
	require.NoError(t, err)

	mf := &MappedFile{Path: "a.c", Data: data, Midpoint: mid}
	runWorker0(mf, m)
	runWorker1(mf, m)
	require.Len(t, mf.Worker0Hits, 1)
	require.Len(t, mf.Worker1Hits, 1)

	collate(mf, store, &mu)

	require.Equal(t, 3, store.Len())
	assert.True(t, store.IsFile(0))
	path, ok := store.FindFile(0)
	require.True(t, ok)
	assert.Equal(t, "a.c", path)

	line1 := store.Get(1)
	assert.Equal(t, result.KindLineHit, line1.Kind)
	assert.Equal(t, 1, line1.Line)
	assert.Equal(t, "aaa", string(line1.Text))

	// worker 1's local line 1 ("ddd") is translated to the file's actual
	// fourth line, strictly after worker 0's last line.
	line2 := store.Get(2)
	assert.Equal(t, result.KindLineHit, line2.Kind)
	assert.Equal(t, 4, line2.Line)
	assert.Equal(t, "ddd", string(line2.Text))
	assert.Greater(t, line2.Line, line1.Line)

	assert.Equal(t, 2, store.NbLines())
}

func TestCollateNeverMergesFileMarkerWithZeroSurvivors(t *testing.T) {
	store := result.NewStore(result.RootGrowthIncrement)
	var mu sync.RWMutex

	collate(&MappedFile{Path: "skip-me.c"}, store, &mu)
	collate(&MappedFile{
		Path:        "keep-me.c",
		Worker0Hits: []Hit{{Text: []byte("hit"), Line: 1}},
	}, store, &mu)

	require.Equal(t, 2, store.Len())
	path, ok := store.FindFile(1)
	require.True(t, ok)
	assert.Equal(t, "keep-me.c", path)
}

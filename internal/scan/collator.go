package scan

import (
	"sync"

	"github.com/standardbeagle/ngp/internal/result"
)

// collate merges mf's two hit lists into store. If neither worker found
// anything the path is discarded entirely: the store never records a
// FileMarker with zero surviving lines. Otherwise a FileMarker is
// appended, followed by worker 0's hits in order and then worker 1's,
// each of the latter's line numbers offset by mf.Midline. mu is the
// search's data mutex, guarding this append against a concurrent UI read.
func collate(mf *MappedFile, store *result.Store, mu *sync.RWMutex) {
	if len(mf.Worker0Hits) == 0 && len(mf.Worker1Hits) == 0 {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	store.AppendFile(mf.Path)
	for _, h := range mf.Worker0Hits {
		store.AppendLine(h.Text, h.Line)
	}
	for _, h := range mf.Worker1Hits {
		store.AppendLine(h.Text, h.Line+mf.Midline)
	}
}

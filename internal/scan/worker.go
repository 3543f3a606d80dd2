package scan

import (
	"bytes"

	"github.com/standardbeagle/ngp/internal/matcher"
)

// scanHalf walks the half-open byte range [start, end) of data for m,
// stopping at the first line that is not newline-terminated: a trailing
// partial line with no newline is never scanned, matching the original
// splitter-and-scan design. Each scanned line's trailing newline is
// overwritten with a NUL terminator in place (safe: the mapping is
// private, so no other process ever observes it).
func scanHalf(data []byte, start, end int, m matcher.Matcher) ([]Hit, int) {
	var hits []Hit
	lineNo := 0
	pos := start
	for pos < end {
		rel := bytes.IndexByte(data[pos:end], '\n')
		if rel < 0 {
			break
		}
		nl := pos + rel
		line := data[pos:nl]
		data[nl] = 0
		lineNo++
		if _, found := m.Find(line); found {
			cp := make([]byte, len(line))
			copy(cp, line)
			hits = append(hits, Hit{Text: cp, Line: lineNo})
		}
		pos = nl + 1
	}
	return hits, lineNo
}

// runWorker0 scans [0, mf.Midpoint) and publishes Midline, the offset the
// collator adds to worker 1's local line numbers. If worker 0 scans K
// lines, the overall line number of worker 1's first line (local line 1)
// is K+1, so Midline must be K, not K-1.
func runWorker0(mf *MappedFile, m matcher.Matcher) {
	hits, lineCount := scanHalf(mf.Data, 0, mf.Midpoint, m)
	mf.Worker0Hits = hits
	mf.Midline = lineCount
}

// runWorker1 scans [mf.Midpoint, len(mf.Data)); its local line numbers
// start at 1 and are translated by the collator using Midline.
func runWorker1(mf *MappedFile, m matcher.Matcher) {
	hits, _ := scanHalf(mf.Data, mf.Midpoint, len(mf.Data), m)
	mf.Worker1Hits = hits
}

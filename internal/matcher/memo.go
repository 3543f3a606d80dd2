package matcher

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// tableCache memoizes Boyer-Moore-Horspool skip tables keyed by the xxhash
// of the pattern bytes, so that building a BMH matcher for a pattern seen
// before skips the O(256+n) table build. Select only picks BMH for
// case-sensitive, non-regex patterns, so the pattern alone determines the
// table; subsearches compile their patterns as regexes and never reach it.
// This is purely a performance layer: Select always produces an equivalent
// matcher whether or not the cache is warm.
var tableCache sync.Map // map[uint64][256]int

func cachedSkipTable(pattern []byte) [256]int {
	key := xxhash.Sum64(pattern)
	if v, ok := tableCache.Load(key); ok {
		return v.([256]int)
	}
	table := buildSkipTable(pattern)
	tableCache.Store(key, table)
	return table
}

// Package scan implements the producer/consumer scan pipeline: a directory
// walker that splits each admissible file in half, two long-lived workers
// that scan their half for the search pattern, and a collator that merges
// both halves into the result store in deterministic order.
package scan

// MappedFile is the ephemeral record for the file currently in flight. It
// is created by the splitter when it acquires the single-file slot and
// destroyed by the collator after draining both workers' hit lists.
type MappedFile struct {
	Path     string
	Data     []byte
	Midpoint int // byte offset where worker 1's range begins
	Midline  int // count of lines worker 0 scanned, added to worker 1's local line numbers; set by worker 0

	Worker0Hits []Hit
	Worker1Hits []Hit
}

// Hit is one match a worker found in its half of the file.
type Hit struct {
	Text []byte
	Line int
}

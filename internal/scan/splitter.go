package scan

import (
	"bytes"
	"os"

	"golang.org/x/sys/unix"

	ngperrors "github.com/standardbeagle/ngp/internal/errors"
)

// prepareFile mmaps path private (read-write, so a worker's in-place
// newline-to-NUL rewrite never touches the file on disk) and locates its
// midpoint on a line boundary. Per spec, an empty file, a non-regular
// file, or an open/stat failure are all "nothing to scan": the second
// return value is false and the caller releases the in-flight slot without
// treating it as an error worth surfacing past a log line.
func prepareFile(path string) (*MappedFile, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, ngperrors.NewScanError("open", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, false, ngperrors.NewScanError("stat", path, err)
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return nil, false, nil
	}

	size := int(info.Size())
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE)
	if err != nil {
		return nil, false, ngperrors.NewScanError("mmap", path, err)
	}

	return &MappedFile{
		Path:     path,
		Data:     data,
		Midpoint: computeMidpoint(data),
	}, true, nil
}

// computeMidpoint finds the first newline at or after size/2 and returns
// the byte offset just past it. If there is no newline at or after size/2,
// the midpoint degenerates to the last byte, leaving worker 1 only that
// byte, which holds no newline-terminated line to scan.
func computeMidpoint(data []byte) int {
	start := len(data) / 2
	idx := bytes.IndexByte(data[start:], '\n')
	if idx < 0 {
		return len(data) - 1
	}
	return start + idx + 1
}

// unmapFile releases the mapping. Called by the collator once both
// workers have signaled completion; no worker touches the region after
// that point.
func unmapFile(mf *MappedFile) error {
	if mf == nil || mf.Data == nil {
		return nil
	}
	return unix.Munmap(mf.Data)
}

package scan

import (
	"context"
	"os"
	"path/filepath"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/ngp/internal/config"
)

// Submit receives one admissible file's path, in traversal order.
type Submit func(path string) error

// Walk performs a single-threaded depth-first traversal from root. For
// each entry: a regular file (or a symlink when attrs.FollowSymlinks) is
// submitted if raw mode is set, or its basename matches the special-files
// list, or its name ends with a configured extension; a directory named
// ".", "..", ".git", or ".svn" is skipped, as is one whose inode appears
// in the exclude list or whose root-relative path matches an exclude
// glob.
//
// When root names a regular file rather than a directory, it is submitted
// directly without walking or admission filtering - an explicit file
// argument is always scanned, matching the original's
// isfile(d->directory) check in lookup_thread.
func Walk(ctx context.Context, root string, attrs config.MainSearchAttributes, submit Submit) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if info.Mode().IsRegular() {
		return submit(root)
	}
	return walkDir(ctx, root, root, attrs, submit)
}

func walkDir(ctx context.Context, root, dir string, attrs config.MainSearchAttributes, submit Submit) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		path := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.Mode()&os.ModeSymlink != 0 {
			if !attrs.FollowSymlinks {
				continue
			}
			resolved, err := os.Stat(path)
			if err != nil {
				continue
			}
			info = resolved
		}

		if info.IsDir() {
			if shouldSkipDir(root, path, entry.Name(), info, attrs) {
				continue
			}
			if err := walkDir(ctx, root, path, attrs, submit); err != nil {
				return err
			}
			continue
		}

		if !info.Mode().IsRegular() {
			continue
		}
		if admitFile(entry.Name(), attrs) {
			if err := submit(path); err != nil {
				return err
			}
		}
	}
	return nil
}

func admitFile(name string, attrs config.MainSearchAttributes) bool {
	if attrs.Raw {
		return true
	}
	if attrs.MatchesSpecialFile(name) {
		return true
	}
	return attrs.MatchesExtension(name)
}

func shouldSkipDir(root, path, name string, info os.FileInfo, attrs config.MainSearchAttributes) bool {
	if name == "." || name == ".." || name == ".git" || name == ".svn" {
		return true
	}
	if ino, ok := inodeOf(info); ok && attrs.ExcludesInode(ino) {
		return true
	}
	if len(attrs.ExcludeGlobs) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range attrs.ExcludeGlobs {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

func inodeOf(info os.FileInfo) (uint64, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return stat.Ino, true
}

// Package config resolves ngp's startup configuration: the mandatory ngprc
// file (editor command template, special-file list, extension list), an
// optional supplemental .ngprc.toml for glob-based exclusions, and the CLI
// flag overrides layered on top of both.
package config

// MainSearchAttributes holds the flags and lists that apply only to the
// root search: everything a subsearch inherits by filtering rather than
// rescanning.
type MainSearchAttributes struct {
	Raw             bool
	FollowSymlinks  bool
	CaseInsensitive bool
	UseRegex        bool

	Extensions    []string
	SpecialFiles  []string
	ExcludeInodes []uint64

	// ExcludeGlobs is additive: doublestar patterns matched against a
	// candidate's path relative to the search root, evaluated alongside the
	// inode exclusion list in the walker's directory-skip decision.
	ExcludeGlobs []string

	EditorCommand string
}

// Clone returns a deep copy suitable for handing to a pipeline goroutine
// group that must not observe later CLI-flag mutation.
func (a MainSearchAttributes) Clone() MainSearchAttributes {
	out := a
	out.Extensions = append([]string(nil), a.Extensions...)
	out.SpecialFiles = append([]string(nil), a.SpecialFiles...)
	out.ExcludeInodes = append([]uint64(nil), a.ExcludeInodes...)
	out.ExcludeGlobs = append([]string(nil), a.ExcludeGlobs...)
	return out
}

// MatchesExtension reports whether name ends with any configured extension,
// byte-for-byte.
func (a MainSearchAttributes) MatchesExtension(name string) bool {
	for _, ext := range a.Extensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// MatchesSpecialFile reports whether basename appears verbatim in the
// special-files list.
func (a MainSearchAttributes) MatchesSpecialFile(basename string) bool {
	for _, f := range a.SpecialFiles {
		if f == basename {
			return true
		}
	}
	return false
}

// ExcludesInode reports whether ino appears in the exclude-inode list.
func (a MainSearchAttributes) ExcludesInode(ino uint64) bool {
	for _, x := range a.ExcludeInodes {
		if x == ino {
			return true
		}
	}
	return false
}

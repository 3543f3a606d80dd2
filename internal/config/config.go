package config

import (
	"os"
	"syscall"

	ngperrors "github.com/standardbeagle/ngp/internal/errors"
)

// CLIFlags mirrors the command-line surface: -i -r -t -o -e -f -x. -h is
// handled by the CLI layer itself (prints usage and exits) and never
// reaches here.
type CLIFlags struct {
	CaseInsensitive bool
	Raw             bool
	Regex           bool
	FollowSymlinks  bool
	AddExtensions   []string // -t, repeatable
	ResetExtension  string   // -o, empty means unset
	ExcludeDirs     []string // -x, repeatable, resolved to inodes
}

// ApplyCLIFlags layers CLIFlags over attrs loaded from ngprc/.ngprc.toml.
// -o resets the include list to a single extension and clears the
// special-files list, per spec; -t is additive.
func ApplyCLIFlags(attrs MainSearchAttributes, flags CLIFlags) (MainSearchAttributes, error) {
	attrs.CaseInsensitive = attrs.CaseInsensitive || flags.CaseInsensitive
	attrs.Raw = attrs.Raw || flags.Raw
	attrs.UseRegex = attrs.UseRegex || flags.Regex
	attrs.FollowSymlinks = attrs.FollowSymlinks || flags.FollowSymlinks

	if flags.ResetExtension != "" {
		attrs.Extensions = []string{flags.ResetExtension}
		attrs.SpecialFiles = nil
	}
	attrs.Extensions = append(attrs.Extensions, flags.AddExtensions...)

	for _, dir := range flags.ExcludeDirs {
		ino, err := inodeOf(dir)
		if err != nil {
			return attrs, ngperrors.NewConfigError("exclude-dir", dir, err)
		}
		attrs.ExcludeInodes = append(attrs.ExcludeInodes, ino)
	}

	return attrs, nil
}

// inodeOf resolves a directory path given on the command line to its inode
// number, matching get_inode_from_path's translation of a local exclusion
// path into the stable identifier the walker compares against during
// recursive traversal.
func inodeOf(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, nil
	}
	return stat.Ino, nil
}

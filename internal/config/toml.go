package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	ngperrors "github.com/standardbeagle/ngp/internal/errors"
)

const supplementalConfigPath = ".ngprc.toml"

// supplementalDocument is the on-disk shape of .ngprc.toml. It is entirely
// additive to ngprc: absent, it changes nothing about scan behavior.
type supplementalDocument struct {
	Exclude struct {
		Globs []string `toml:"globs"`
	} `toml:"exclude"`
}

// LoadSupplemental reads ./.ngprc.toml if present and merges its
// glob-exclusion list into attrs. A missing file is not an error; a
// malformed one is, since the user clearly intended to configure something.
func LoadSupplemental(attrs MainSearchAttributes) (MainSearchAttributes, error) {
	data, err := os.ReadFile(supplementalConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return attrs, nil
		}
		return attrs, ngperrors.NewConfigError("ngprc.toml", supplementalConfigPath, err)
	}

	var doc supplementalDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return attrs, ngperrors.NewConfigError("ngprc.toml", supplementalConfigPath, err)
	}

	attrs.ExcludeGlobs = append(attrs.ExcludeGlobs, doc.Exclude.Globs...)
	return attrs, nil
}

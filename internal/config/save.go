package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-simtex/internal/fileutil"
	"github.com/alnah/go-simtex/internal/yamlutil"
)

// BackupSuffix is appended to the previous file by Save.
const BackupSuffix = ".bak"

// Merge fills the keys missing or empty in user from defaults. User values,
// including explicit false and zero, always win. It returns the merged
// document and the dotted paths that were added.
func Merge(user, defaults []byte) ([]byte, []string, error) {
	merged, added, err := yamlutil.MergeMissing(user, defaults)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return merged, added, nil
}

// Save writes data to path atomically, creating the parent directory.
// An existing file is first copied to path + ".bak".
func Save(path string, data []byte) error {
	if path == "" {
		return fileutil.ErrEmptyPath
	}

	if err := os.MkdirAll(filepath.Dir(path), fileutil.DirPermissions); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if fileutil.FileExists(path) {
		if err := fileutil.CopyFile(path, path+BackupSuffix); err != nil {
			return fmt.Errorf("backing up %s: %w", path, err)
		}
	}

	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Marshal encodes cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

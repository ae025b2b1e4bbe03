// Package fputil checks directories before files are written into them.
package fputil

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	touchFileName = ".touch"
	touchFileMode = os.FileMode(0600)
)

// IsWritableDir returns nil if a file can be created and removed in the
// directory dir.
func IsWritableDir(dir string) error {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return errors.WithStack(err)
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return errors.WithStack(err)
	}
	if !fi.IsDir() {
		return errors.Errorf("fputil: not a directory: %s", dir)
	}
	filename := filepath.Join(dir, touchFileName)
	if err := os.WriteFile(filename, nil, touchFileMode); err != nil {
		return errors.Wrapf(err, "fputil: not writable: %s", dir)
	}
	return errors.WithStack(os.Remove(filename))
}

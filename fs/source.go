// Package fs provides local filesystem access for citedoc sources.
package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/citedoc"
)

// DefaultMaxFileSize is the largest file Source will read.
const DefaultMaxFileSize = 10 << 20

// Ensure Source implements citedoc.FileSource at compile time.
var _ citedoc.FileSource = (*Source)(nil)

// Source implements citedoc.FileSource on the local filesystem.
type Source struct {
	// MaxFileSize limits ReadFile. Zero means DefaultMaxFileSize.
	MaxFileSize int64
}

// NewSource creates a new Source.
func NewSource() *Source {
	return &Source{MaxFileSize: DefaultMaxFileSize}
}

// Expand returns the files path refers to. A regular file expands to itself
// whatever its extension. A directory is walked recursively; hidden entries
// are skipped and only files with a supported extension are kept.
func (s *Source) Expand(path string) ([]string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, citedoc.Errorf(citedoc.ENOTFOUND, "no such file or directory: %s", path)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != path && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if supported(d.Name()) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

// ReadFile returns the contents of the file at path.
func (s *Source) ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, citedoc.Errorf(citedoc.ENOTFOUND, "no such file: %s", path)
	}
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, citedoc.Errorf(citedoc.EINVALID, "%s is a directory", path)
	}

	limit := s.MaxFileSize
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}
	if info.Size() > limit {
		return nil, citedoc.Errorf(citedoc.EINVALID, "%s exceeds the %d byte limit", path, limit)
	}

	return os.ReadFile(path)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// supported reports whether a file found while walking a directory should be
// ingested. Extensionless files are only accepted when named explicitly.
func supported(name string) bool {
	if filepath.Ext(name) == "" {
		return false
	}
	return citedoc.DetectFormat(name, nil) != citedoc.FormatUnknown
}

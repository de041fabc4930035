package stage

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ZipStager extracts a .zip archive into a temporary directory.
type ZipStager struct {
	path string
}

// NewZipStager creates a stager for the archive at path.
func NewZipStager(path string) *ZipStager {
	return &ZipStager{path: path}
}

// Name returns the archive's base file name.
func (s *ZipStager) Name() string {
	return filepath.Base(s.path)
}

// Stage extracts the archive into a fresh temp directory. On any failure
// the directory is already removed; the returned cleanup is still safe to
// call. A malformed container reports ErrInvalidArchive.
func (s *ZipStager) Stage() (string, func(), error) {
	noop := func() {}

	if _, err := os.Stat(s.path); err != nil {
		return "", noop, fmt.Errorf("reading archive: %w", err)
	}
	if !strings.EqualFold(filepath.Ext(s.path), ".zip") {
		return "", noop, fmt.Errorf("%w: %s is not a .zip file", ErrInvalidArchive, filepath.Base(s.path))
	}

	r, err := zip.OpenReader(s.path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) || errors.Is(err, zip.ErrInsecurePath) {
			return "", noop, fmt.Errorf("%w: %s is not a valid ZIP archive or is corrupted", ErrInvalidArchive, filepath.Base(s.path))
		}
		return "", noop, fmt.Errorf("opening archive: %w", err)
	}
	defer r.Close()

	dir, err := os.MkdirTemp("", "repotext-*")
	if err != nil {
		return "", noop, fmt.Errorf("creating temp dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	for _, f := range r.File {
		if err := extractMember(dir, f); err != nil {
			cleanup()
			return "", noop, err
		}
	}

	return dir, cleanup, nil
}

// extractMember writes a single archive member under dir, rejecting
// members whose resolved path would escape it.
func extractMember(dir string, f *zip.File) error {
	dest := filepath.Join(dir, filepath.FromSlash(f.Name))
	if !strings.HasPrefix(dest, filepath.Clean(dir)+string(os.PathSeparator)) {
		return fmt.Errorf("%w: member %q escapes extraction directory", ErrInvalidArchive, f.Name)
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("extracting %s: %w", f.Name, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: reading member %s: %v", ErrInvalidArchive, f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("extracting %s: %w", f.Name, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("extracting %s: %w", f.Name, err)
	}
	return nil
}

// Package repo locates the logical repository root inside a staged
// extraction directory.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Root describes the resolved repository top for traversal.
type Root struct {
	// Path is the directory the walker starts from.
	Path string
	// DisplayName heads the structure listing (no trailing slash).
	DisplayName string
	// Warning is non-empty when the layout was ambiguous and the staged
	// directory itself was assumed as the root.
	Warning string
}

// Resolve inspects the staged directory and picks the traversal root.
//
// Archives commonly wrap the repository in a single named top-level
// folder; that folder becomes the root and supplies the display name.
// Any other layout (several top-level directories, a flat file list, or
// an empty archive) falls back to the staged directory with the archive's
// base name for display. Ambiguity never fails resolution; only an
// unlistable staged directory is an error.
func Resolve(stagedDir, archiveName string) (Root, error) {
	entries, err := os.ReadDir(stagedDir)
	if err != nil {
		return Root{}, fmt.Errorf("listing staged directory: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(archiveName), filepath.Ext(archiveName))

	var dirs []string
	hasFiles := false
	for _, e := range entries {
		if isHidden(e.Name()) {
			continue
		}
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		} else {
			hasFiles = true
		}
	}

	switch {
	case len(dirs) == 1:
		return Root{
			Path:        filepath.Join(stagedDir, dirs[0]),
			DisplayName: dirs[0],
		}, nil
	case len(dirs) > 1:
		return Root{
			Path:        stagedDir,
			DisplayName: baseName,
			Warning:     "found multiple top-level directories in the archive; assuming archive root as the repository root",
		}, nil
	case hasFiles:
		return Root{
			Path:        stagedDir,
			DisplayName: baseName,
			Warning:     "archive has a flat file layout; assuming archive root as the repository root",
		}, nil
	default:
		return Root{
			Path:        stagedDir,
			DisplayName: baseName,
			Warning:     "no top-level directory found in the archive (maybe empty?); assuming archive root as the repository root",
		}, nil
	}
}

// isHidden checks if a filename is hidden (starts with .).
// The special entries "." and ".." are NOT considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}
